package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/announcement-api/internal/criteria"
	"github.com/noah-isme/announcement-api/internal/models"
)

func newAnnouncementRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func ptr[T any](v T) *T { return &v }

var (
	jan = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	feb = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mar = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
)

func announcementRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "language", "start_date", "end_date", "announcement_type", "announcement_data"})
}

func TestAnnouncementRepositoryFindAll(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	observer := &recordingObserver{}
	repo := NewAnnouncementRepository(db, observer)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT id, language, start_date, end_date, announcement_type, announcement_data FROM announcement WHERE (language = $1) ORDER BY start_date DESC LIMIT 10 OFFSET 10`)).
		WithArgs("ENGLISH").
		WillReturnRows(announcementRows().
			AddRow(int64(7), "ENGLISH", feb, mar, "TEXT", "hello").
			AddRow(int64(3), "ENGLISH", jan, nil, "IMAGE", "img"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(DISTINCT id) FROM announcement WHERE (language = $1)`)).
		WithArgs("ENGLISH").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	pred := criteria.Build(&criteria.AnnouncementCriteria{
		Language: &criteria.Filter[models.Language]{Equals: ptr(models.LanguageEnglish)},
	})
	page := models.PageRequest{Page: 1, Size: 10, Sort: []models.SortOrder{{Property: "startDate", Direction: models.SortDesc}}}

	items, total, err := repo.FindAll(context.Background(), pred, page)
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, items, 2)
	assert.Equal(t, int64(7), *items[0].ID)
	assert.Equal(t, models.AnnouncementTypeText, *items[0].AnnouncementType)
	assert.Nil(t, items[1].EndDate)
	assert.Equal(t, []string{"announcement.find_all"}, observer.labels)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryFindAllWithoutCriteria(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, language, start_date, end_date, announcement_type, announcement_data FROM announcement LIMIT 20 OFFSET 0`)).
		WillReturnRows(announcementRows())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM announcement`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	pred := criteria.Build(&criteria.AnnouncementCriteria{Distinct: ptr(false)})
	items, total, err := repo.FindAll(context.Background(), pred, models.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.Zero(t, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryFindAllRejectsUnknownSort(t *testing.T) {
	db, _, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	_, _, err := repo.FindAll(context.Background(), criteria.Predicate{}, models.PageRequest{Size: 5, Sort: []models.SortOrder{{Property: "announcementData"}}})
	assert.Error(t, err)
}

func TestAnnouncementRepositoryFindAllMatchingActive(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM announcement WHERE (start_date < $1 AND end_date > $2 AND language = $3)`)).
		WithArgs(feb, feb, "TURKISH").
		WillReturnRows(announcementRows().AddRow(int64(1), "TURKISH", jan, mar, "TEXT", "merhaba"))

	items, err := repo.FindAllMatching(context.Background(), criteria.ActiveAt(feb, models.LanguageTurkish))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "merhaba", *items[0].AnnouncementData)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, language, start_date, end_date, announcement_type, announcement_data FROM announcement WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnRows(announcementRows())

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAnnouncementRepositoryExistsByID(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS( SELECT 1 FROM announcement WHERE id = $1 )`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByID(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAnnouncementRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	local := time.Date(2024, 1, 1, 3, 0, 0, 0, time.FixedZone("TRT", 3*3600))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO announcement (language,start_date,end_date,announcement_type,announcement_data) VALUES ($1,$2,$3,$4,$5) RETURNING id`)).
		WithArgs("TURKISH", jan, feb, "TEXT", "duyuru").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	a := &models.Announcement{
		Language:         ptr(models.LanguageTurkish),
		StartDate:        &local,
		EndDate:          ptr(feb),
		AnnouncementType: ptr(models.AnnouncementTypeText),
		AnnouncementData: ptr("duyuru"),
	}
	require.NoError(t, repo.Create(context.Background(), a))
	require.NotNil(t, a.ID)
	assert.Equal(t, int64(11), *a.ID)
	assert.Equal(t, jan, *a.StartDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryUpdateUnknownID(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE announcement SET announcement_data = $1, announcement_type = $2, end_date = $3, language = $4, start_date = $5 WHERE id = $6`)).
		WithArgs("x", "TEXT", nil, "ENGLISH", jan, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Announcement{
		ID:               ptr[int64](9),
		Language:         ptr(models.LanguageEnglish),
		StartDate:        ptr(jan),
		AnnouncementType: ptr(models.AnnouncementTypeText),
		AnnouncementData: ptr("x"),
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryPatchMergesInTransaction(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, language, start_date, end_date, announcement_type, announcement_data FROM announcement WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(4)).
		WillReturnRows(announcementRows().AddRow(int64(4), "ENGLISH", jan, feb, "TEXT", "old"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE announcement SET`)).
		WithArgs("new", "TEXT", feb, "ENGLISH", jan, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	merged, err := repo.Patch(context.Background(), &models.Announcement{ID: ptr[int64](4), AnnouncementData: ptr("new")})
	require.NoError(t, err)
	assert.Equal(t, "new", *merged.AnnouncementData)
	assert.Equal(t, models.LanguageEnglish, *merged.Language)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryPatchUnknownRollsBack(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`FOR UPDATE`)).
		WithArgs(int64(99)).
		WillReturnRows(announcementRows())
	mock.ExpectRollback()

	_, err := repo.Patch(context.Background(), &models.Announcement{ID: ptr[int64](99), AnnouncementData: ptr("x")})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryDeleteByID(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM announcement WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteByID(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}
