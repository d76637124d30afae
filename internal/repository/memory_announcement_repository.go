package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/noah-isme/announcement-api/internal/criteria"
	"github.com/noah-isme/announcement-api/internal/models"
)

// MemoryAnnouncementRepository keeps announcements in process memory. It evaluates
// predicates with criteria.Predicate.Matches and is used when DB_DRIVER=memory.
type MemoryAnnouncementRepository struct {
	mu     sync.RWMutex
	rows   map[int64]*models.Announcement
	nextID int64
}

// NewMemoryAnnouncementRepository creates an empty store whose ids start at 1.
func NewMemoryAnnouncementRepository() *MemoryAnnouncementRepository {
	return &MemoryAnnouncementRepository{rows: make(map[int64]*models.Announcement), nextID: 1}
}

// FindAll returns one page of matches. Without an explicit sort rows come back in
// id order.
func (r *MemoryAnnouncementRepository) FindAll(ctx context.Context, pred criteria.Predicate, page models.PageRequest) ([]models.Announcement, int64, error) {
	matches, err := r.FindAllMatching(ctx, pred)
	if err != nil {
		return nil, 0, err
	}
	if err := sortAnnouncements(matches, page.Sort); err != nil {
		return nil, 0, err
	}

	total := int64(len(matches))
	if page.Size > 0 {
		start := page.Offset()
		if start < 0 || start > len(matches) {
			start = len(matches)
		}
		end := len(matches)
		if page.Size < end-start {
			end = start + page.Size
		}
		matches = matches[start:end]
	}
	return matches, total, nil
}

// FindAllMatching returns every match in id order.
func (r *MemoryAnnouncementRepository) FindAllMatching(ctx context.Context, pred criteria.Predicate) ([]models.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Announcement{}
	for _, row := range r.rows {
		if pred.Matches(row) {
			out = append(out, *row.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].ID < *out[j].ID })
	return out, nil
}

// Count returns the number of matches.
func (r *MemoryAnnouncementRepository) Count(ctx context.Context, pred criteria.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, row := range r.rows {
		if pred.Matches(row) {
			total++
		}
	}
	return total, nil
}

// FindByID returns a copy of the stored row or sql.ErrNoRows.
func (r *MemoryAnnouncementRepository) FindByID(ctx context.Context, id int64) (*models.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return row.Clone(), nil
}

// ExistsByID checks whether the id is stored.
func (r *MemoryAnnouncementRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rows[id]
	return ok, nil
}

// Create stores a copy under the next id and assigns it to announcement.
func (r *MemoryAnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	announcement.ID = &id
	announcement.Normalize()
	r.rows[id] = announcement.Clone()
	return nil
}

// Update replaces the stored row or returns sql.ErrNoRows.
func (r *MemoryAnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if announcement.ID == nil {
		return errors.New("update announcement: id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[*announcement.ID]; !ok {
		return sql.ErrNoRows
	}
	announcement.Normalize()
	r.rows[*announcement.ID] = announcement.Clone()
	return nil
}

// Patch merges the non-nil fields of patch into the stored row.
func (r *MemoryAnnouncementRepository) Patch(ctx context.Context, patch *models.Announcement) (*models.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if patch == nil || patch.ID == nil {
		return nil, sql.ErrNoRows
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[*patch.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	merged := row.Clone()
	merged.Merge(patch)
	merged.Normalize()
	r.rows[*patch.ID] = merged
	return merged.Clone(), nil
}

// DeleteByID removes the row if present.
func (r *MemoryAnnouncementRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, id)
	return nil
}

// sortAnnouncements orders rows like PostgreSQL does by default: nulls sort after
// every value ascending and before every value descending.
func sortAnnouncements(rows []models.Announcement, orders []models.SortOrder) error {
	fields := make([]criteria.Field, len(orders))
	for i, order := range orders {
		field, ok := criteria.FieldForProperty(order.Property)
		if !ok {
			return fmt.Errorf("list announcements: unknown sort property %q", order.Property)
		}
		fields[i] = field
	}
	if len(fields) == 0 {
		return nil
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for k, field := range fields {
			cmp := compareNullable(field, &rows[i], &rows[j])
			if cmp == 0 {
				continue
			}
			if orders[k].Direction == models.SortDesc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return nil
}

func compareNullable(field criteria.Field, a, b *models.Announcement) int {
	av, aok := field.Value(a)
	bv, bok := field.Value(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	return criteria.Compare(av, bv)
}
