package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/announcement-api/internal/criteria"
	"github.com/noah-isme/announcement-api/internal/models"
	appErrors "github.com/noah-isme/announcement-api/pkg/errors"
)

func seedQueryRepo(t *testing.T) *announcementRepoStub {
	t.Helper()
	repo := newAnnouncementRepoStub()
	ctx := context.Background()
	for _, lang := range []models.Language{models.LanguageEnglish, models.LanguageTurkish, models.LanguageEnglish} {
		a := sampleAnnouncement()
		a.Language = valueOf(lang)
		require.NoError(t, repo.Create(ctx, a))
	}
	return repo
}

func TestAnnouncementQueryServiceFindByCriteria(t *testing.T) {
	svc := NewAnnouncementQueryService(seedQueryRepo(t), nil)

	c := &criteria.AnnouncementCriteria{
		Language: &criteria.Filter[models.Language]{Equals: valueOf(models.LanguageEnglish)},
	}
	page, err := svc.FindByCriteria(context.Background(), c, models.PageRequest{Page: 0, Size: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, models.Pagination{Page: 0, PageSize: 1, TotalCount: 2}, page.Pagination)
	assert.Equal(t, 2, page.Pagination.TotalPages())
}

func TestAnnouncementQueryServiceEmptyCriteriaMatchesAll(t *testing.T) {
	svc := NewAnnouncementQueryService(seedQueryRepo(t), nil)

	total, err := svc.CountByCriteria(context.Background(), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	total, err = svc.CountByCriteria(context.Background(), &criteria.AnnouncementCriteria{
		ID: &criteria.RangeFilter[int64]{GreaterThan: valueOf[int64](1)},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestAnnouncementQueryServiceFindActive(t *testing.T) {
	svc := NewAnnouncementQueryService(seedQueryRepo(t), nil)
	ctx := context.Background()

	items, err := svc.FindActiveByDateAndLanguage(ctx, jun2024, valueOf(models.LanguageTurkish))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), *items[0].ID)

	items, err = svc.FindActiveByDateAndLanguage(ctx, jan2024, valueOf(models.LanguageTurkish))
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = svc.FindActiveByDateAndLanguage(ctx, dec2024, valueOf(models.LanguageEnglish))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAnnouncementQueryServiceFindActiveRequiresArguments(t *testing.T) {
	svc := NewAnnouncementQueryService(seedQueryRepo(t), nil)
	ctx := context.Background()

	_, err := svc.FindActiveByDateAndLanguage(ctx, time.Time{}, valueOf(models.LanguageEnglish))
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.FindActiveByDateAndLanguage(ctx, jun2024, nil)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.FindActiveByDateAndLanguage(ctx, jun2024, valueOf(models.Language("KLINGON")))
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
