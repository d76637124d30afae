package repository

import (
	"context"
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/announcement-api/internal/criteria"
	"github.com/noah-isme/announcement-api/internal/models"
)

func seedMemory(t *testing.T) *MemoryAnnouncementRepository {
	t.Helper()
	repo := NewMemoryAnnouncementRepository()
	rows := []*models.Announcement{
		{Language: ptr(models.LanguageTurkish), StartDate: ptr(jan), EndDate: ptr(mar), AnnouncementType: ptr(models.AnnouncementTypeText), AnnouncementData: ptr("a")},
		{Language: ptr(models.LanguageEnglish), StartDate: ptr(feb), AnnouncementType: ptr(models.AnnouncementTypeImage), AnnouncementData: ptr("b")},
		{Language: ptr(models.LanguageEnglish), StartDate: ptr(jan), EndDate: ptr(feb), AnnouncementType: ptr(models.AnnouncementTypeText), AnnouncementData: ptr("c")},
	}
	for _, row := range rows {
		require.NoError(t, repo.Create(context.Background(), row))
	}
	return repo
}

func ids(items []models.Announcement) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, *item.ID)
	}
	return out
}

func TestMemoryAnnouncementRepositoryAssignsSequentialIDs(t *testing.T) {
	repo := seedMemory(t)

	all, err := repo.FindAllMatching(context.Background(), criteria.Predicate{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(all))
}

func TestMemoryAnnouncementRepositoryFindAllPagesAndSorts(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	page := models.PageRequest{Page: 0, Size: 2, Sort: []models.SortOrder{{Property: "endDate", Direction: models.SortAsc}}}
	items, total, err := repo.FindAll(ctx, criteria.Predicate{}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []int64{3, 1}, ids(items))

	page.Page = 1
	items, _, err = repo.FindAll(ctx, criteria.Predicate{}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(items), "null end date sorts last ascending")

	page = models.PageRequest{Page: 0, Size: 5, Sort: []models.SortOrder{{Property: "endDate", Direction: models.SortDesc}}}
	items, _, err = repo.FindAll(ctx, criteria.Predicate{}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1, 3}, ids(items), "null end date sorts first descending")

	items, total, err = repo.FindAll(ctx, criteria.Predicate{}, models.PageRequest{Page: 4, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.EqualValues(t, 3, total)
}

func TestMemoryAnnouncementRepositoryFindAllHugePage(t *testing.T) {
	repo := seedMemory(t)

	for _, page := range []models.PageRequest{
		{Page: math.MaxInt / 2, Size: 20},
		{Page: math.MaxInt, Size: math.MaxInt},
	} {
		items, total, err := repo.FindAll(context.Background(), criteria.Predicate{}, page)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.EqualValues(t, 3, total)
	}
}

func TestMemoryAnnouncementRepositoryCountAndActive(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	pred := criteria.Build(&criteria.AnnouncementCriteria{
		Language: &criteria.Filter[models.Language]{Equals: ptr(models.LanguageEnglish)},
	})
	total, err := repo.Count(ctx, pred)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	mid := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	active, err := repo.FindAllMatching(ctx, criteria.ActiveAt(mid, models.LanguageEnglish))
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids(active))
}

func TestMemoryAnnouncementRepositoryReturnsCopies(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	got, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	*got.AnnouncementData = "mutated"

	again, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", *again.AnnouncementData)
}

func TestMemoryAnnouncementRepositoryUpdatePatchDelete(t *testing.T) {
	repo := seedMemory(t)
	ctx := context.Background()

	err := repo.Update(ctx, &models.Announcement{ID: ptr[int64](42), AnnouncementData: ptr("x")})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, repo.Update(ctx, &models.Announcement{ID: ptr[int64](2), AnnouncementData: ptr("replaced")}))
	replaced, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, replaced.Language)

	merged, err := repo.Patch(ctx, &models.Announcement{ID: ptr[int64](1), AnnouncementData: ptr("patched")})
	require.NoError(t, err)
	assert.Equal(t, "patched", *merged.AnnouncementData)
	assert.Equal(t, models.LanguageTurkish, *merged.Language)

	_, err = repo.Patch(ctx, &models.Announcement{ID: ptr[int64](42)})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, repo.DeleteByID(ctx, 1))
	require.NoError(t, repo.DeleteByID(ctx, 1))
	exists, err := repo.ExistsByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
