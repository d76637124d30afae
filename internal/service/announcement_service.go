package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/announcement-api/internal/criteria"
	"github.com/noah-isme/announcement-api/internal/models"
	appErrors "github.com/noah-isme/announcement-api/pkg/errors"
)

// announcementRepository is satisfied by both the PostgreSQL and the in-memory store.
type announcementRepository interface {
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

// AnnouncementService exposes raw entity operations without business validation.
type AnnouncementService struct {
	repo   announcementRepository
	logger *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo announcementRepository, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{repo: repo, logger: logger}
}

// Save inserts the announcement when it has no id and replaces it otherwise.
func (s *AnnouncementService) Save(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error) {
	s.logger.Debug("save announcement", zap.Stringer("announcement", announcement))
	if announcement.ID == nil {
		if err := s.repo.Create(ctx, announcement); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create announcement")
		}
		return announcement, nil
	}
	return s.Update(ctx, announcement)
}

// Update replaces every field of an existing announcement.
func (s *AnnouncementService) Update(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error) {
	s.logger.Debug("update announcement", zap.Stringer("announcement", announcement))
	if announcement.ID == nil {
		return nil, appErrors.ErrIDNull
	}
	if err := s.repo.Update(ctx, announcement); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update announcement")
	}
	return announcement, nil
}

// PartialUpdate merges the non-nil fields of patch into the stored announcement.
// The boolean is false when no announcement has the patch id.
func (s *AnnouncementService) PartialUpdate(ctx context.Context, patch *models.Announcement) (*models.Announcement, bool, error) {
	s.logger.Debug("partially update announcement", zap.Stringer("announcement", patch))
	if patch.ID == nil {
		return nil, false, appErrors.ErrIDNull
	}
	merged, err := s.repo.Patch(ctx, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to patch announcement")
	}
	return merged, true, nil
}

// FindOne returns the announcement with the id.
func (s *AnnouncementService) FindOne(ctx context.Context, id int64) (*models.Announcement, error) {
	s.logger.Debug("find announcement", zap.Int64("id", id))
	announcement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcement")
	}
	return announcement, nil
}

// Exists reports whether an announcement with the id is stored.
func (s *AnnouncementService) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check announcement")
	}
	return exists, nil
}

// Delete removes the announcement. Unknown ids are ignored.
func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("delete announcement", zap.Int64("id", id))
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete announcement")
	}
	return nil
}
