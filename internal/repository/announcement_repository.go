package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/announcement-api/internal/criteria"
	"github.com/noah-isme/announcement-api/internal/models"
)

const announcementTable = "announcement"

var announcementColumns = []string{"id", "language", "start_date", "end_date", "announcement_type", "announcement_data"}

// QueryObserver receives the latency of every statement the repository runs.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// AnnouncementStore is the storage contract shared by the PostgreSQL and in-memory
// repositories.
type AnnouncementStore interface {
	FindAll(ctx context.Context, pred criteria.Predicate, page models.PageRequest) ([]models.Announcement, int64, error)
	FindAllMatching(ctx context.Context, pred criteria.Predicate) ([]models.Announcement, error)
	Count(ctx context.Context, pred criteria.Predicate) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.Announcement, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Update(ctx context.Context, announcement *models.Announcement) error
	Patch(ctx context.Context, patch *models.Announcement) (*models.Announcement, error)
	DeleteByID(ctx context.Context, id int64) error
}

var (
	_ AnnouncementStore = (*AnnouncementRepository)(nil)
	_ AnnouncementStore = (*MemoryAnnouncementRepository)(nil)
)

// AnnouncementRepository persists announcements in PostgreSQL.
type AnnouncementRepository struct {
	db       *sqlx.DB
	psql     sq.StatementBuilderType
	observer QueryObserver
}

// NewAnnouncementRepository creates the repository. observer may be nil.
func NewAnnouncementRepository(db *sqlx.DB, observer QueryObserver) *AnnouncementRepository {
	return &AnnouncementRepository{
		db:       db,
		psql:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		observer: observer,
	}
}

// FindAll returns one page of announcements matching the predicate plus the total
// number of matches.
func (r *AnnouncementRepository) FindAll(ctx context.Context, pred criteria.Predicate, page models.PageRequest) ([]models.Announcement, int64, error) {
	defer r.observe("announcement.find_all", time.Now())

	query := r.selectBuilder(pred)
	for _, order := range page.Sort {
		field, ok := criteria.FieldForProperty(order.Property)
		if !ok {
			return nil, 0, fmt.Errorf("list announcements: unknown sort property %q", order.Property)
		}
		query = query.OrderBy(field.Column() + " " + string(order.Direction))
	}
	if page.Size > 0 {
		query = query.Limit(uint64(page.Size)).Offset(uint64(page.Offset()))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list announcements query: %w", err)
	}
	announcements := []models.Announcement{}
	if err := r.db.SelectContext(ctx, &announcements, stmt, args...); err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}

	total, err := r.count(ctx, pred)
	if err != nil {
		return nil, 0, err
	}
	return announcements, total, nil
}

// FindAllMatching returns every announcement matching the predicate, unpaged.
func (r *AnnouncementRepository) FindAllMatching(ctx context.Context, pred criteria.Predicate) ([]models.Announcement, error) {
	defer r.observe("announcement.find_all_matching", time.Now())

	stmt, args, err := r.selectBuilder(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build match announcements query: %w", err)
	}
	announcements := []models.Announcement{}
	if err := r.db.SelectContext(ctx, &announcements, stmt, args...); err != nil {
		return nil, fmt.Errorf("match announcements: %w", err)
	}
	return announcements, nil
}

// Count returns the number of announcements matching the predicate.
func (r *AnnouncementRepository) Count(ctx context.Context, pred criteria.Predicate) (int64, error) {
	defer r.observe("announcement.count", time.Now())
	return r.count(ctx, pred)
}

// FindByID returns an announcement by identifier or sql.ErrNoRows.
func (r *AnnouncementRepository) FindByID(ctx context.Context, id int64) (*models.Announcement, error) {
	defer r.observe("announcement.find_by_id", time.Now())

	stmt, args, err := r.psql.Select(announcementColumns...).
		From(announcementTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get announcement query: %w", err)
	}
	var announcement models.Announcement
	if err := r.db.GetContext(ctx, &announcement, stmt, args...); err != nil {
		return nil, err
	}
	return &announcement, nil
}

// ExistsByID checks whether a row with the identifier exists.
func (r *AnnouncementRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	defer r.observe("announcement.exists", time.Now())

	stmt, args, err := r.psql.Select("1").
		From(announcementTable).
		Where(sq.Eq{"id": id}).
		Prefix("SELECT EXISTS(").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build announcement exists query: %w", err)
	}
	var exists bool
	if err := r.db.GetContext(ctx, &exists, stmt, args...); err != nil {
		return false, fmt.Errorf("check announcement exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new announcement and assigns the generated id.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	defer r.observe("announcement.create", time.Now())

	announcement.Normalize()
	stmt, args, err := r.psql.Insert(announcementTable).
		Columns("language", "start_date", "end_date", "announcement_type", "announcement_data").
		Values(announcement.Language, announcement.StartDate, announcement.EndDate, announcement.AnnouncementType, announcement.AnnouncementData).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create announcement query: %w", err)
	}
	var id int64
	if err := r.db.QueryRowxContext(ctx, stmt, args...).Scan(&id); err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	announcement.ID = &id
	return nil
}

// Update replaces every mutable column. It returns sql.ErrNoRows when the id is unknown.
func (r *AnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	defer r.observe("announcement.update", time.Now())
	return r.update(ctx, r.db, announcement)
}

// Patch merges the non-nil fields of patch into the stored row inside one
// transaction, locking the row for the duration. It returns sql.ErrNoRows when the id
// is unknown.
func (r *AnnouncementRepository) Patch(ctx context.Context, patch *models.Announcement) (result *models.Announcement, err error) {
	defer r.observe("announcement.patch", time.Now())
	if patch == nil || patch.ID == nil {
		return nil, sql.ErrNoRows
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin patch announcement tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, args, err := r.psql.Select(announcementColumns...).
		From(announcementTable).
		Where(sq.Eq{"id": *patch.ID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lock announcement query: %w", err)
	}
	var existing models.Announcement
	if err = tx.GetContext(ctx, &existing, stmt, args...); err != nil {
		return nil, err
	}

	existing.Merge(patch)
	if err = r.update(ctx, tx, &existing); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit patch announcement tx: %w", err)
	}
	return &existing, nil
}

// DeleteByID removes an announcement. Deleting an unknown id is not an error.
func (r *AnnouncementRepository) DeleteByID(ctx context.Context, id int64) error {
	defer r.observe("announcement.delete", time.Now())

	stmt, args, err := r.psql.Delete(announcementTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete announcement query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementRepository) selectBuilder(pred criteria.Predicate) sq.SelectBuilder {
	query := r.psql.Select(announcementColumns...).From(announcementTable)
	if pred.Distinct {
		query = query.Distinct()
	}
	if !pred.IsEmpty() {
		query = query.Where(pred.Sqlizer())
	}
	return query
}

func (r *AnnouncementRepository) count(ctx context.Context, pred criteria.Predicate) (int64, error) {
	column := "COUNT(*)"
	if pred.Distinct {
		column = "COUNT(DISTINCT id)"
	}
	query := r.psql.Select(column).From(announcementTable)
	if !pred.IsEmpty() {
		query = query.Where(pred.Sqlizer())
	}
	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count announcements query: %w", err)
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, stmt, args...); err != nil {
		return 0, fmt.Errorf("count announcements: %w", err)
	}
	return total, nil
}

func (r *AnnouncementRepository) update(ctx context.Context, exec sqlx.ExtContext, announcement *models.Announcement) error {
	if announcement.ID == nil {
		return errors.New("update announcement: id is required")
	}
	announcement.Normalize()
	stmt, args, err := r.psql.Update(announcementTable).
		SetMap(map[string]interface{}{
			"language":          announcement.Language,
			"start_date":        announcement.StartDate,
			"end_date":          announcement.EndDate,
			"announcement_type": announcement.AnnouncementType,
			"announcement_data": announcement.AnnouncementData,
		}).
		Where(sq.Eq{"id": *announcement.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update announcement query: %w", err)
	}
	res, err := exec.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *AnnouncementRepository) observe(label string, start time.Time) {
	if r.observer != nil {
		r.observer.ObserveDBQuery(label, time.Since(start))
	}
}
