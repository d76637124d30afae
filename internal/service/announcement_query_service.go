package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/announcement-api/internal/criteria"
	"github.com/noah-isme/announcement-api/internal/models"
	appErrors "github.com/noah-isme/announcement-api/pkg/errors"
)

// AnnouncementQueryService runs read-only criteria queries.
type AnnouncementQueryService struct {
	repo   announcementRepository
	logger *zap.Logger
}

// NewAnnouncementQueryService constructs the query service.
func NewAnnouncementQueryService(repo announcementRepository, logger *zap.Logger) *AnnouncementQueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementQueryService{repo: repo, logger: logger}
}

// FindByCriteria returns one page of announcements matching c.
func (s *AnnouncementQueryService) FindByCriteria(ctx context.Context, c *criteria.AnnouncementCriteria, page models.PageRequest) (*models.AnnouncementPage, error) {
	s.logger.Debug("find announcements by criteria", zap.Stringer("criteria", c), zap.Int("page", page.Page), zap.Int("size", page.Size))
	items, total, err := s.repo.FindAll(ctx, criteria.Build(c), page)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	return &models.AnnouncementPage{
		Items:      items,
		Pagination: models.Pagination{Page: page.Page, PageSize: page.Size, TotalCount: total},
	}, nil
}

// CountByCriteria returns the number of announcements matching c.
func (s *AnnouncementQueryService) CountByCriteria(ctx context.Context, c *criteria.AnnouncementCriteria) (int64, error) {
	s.logger.Debug("count announcements by criteria", zap.Stringer("criteria", c))
	total, err := s.repo.Count(ctx, criteria.Build(c))
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count announcements")
	}
	return total, nil
}

// FindActiveByDateAndLanguage returns announcements that started strictly before date
// and end strictly after it, in the given language.
func (s *AnnouncementQueryService) FindActiveByDateAndLanguage(ctx context.Context, date time.Time, language *models.Language) ([]models.Announcement, error) {
	if date.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	if language == nil || !language.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "selectedLanguage is required")
	}

	items, err := s.repo.FindAllMatching(ctx, criteria.ActiveAt(date, *language))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active announcements")
	}
	s.logger.Info("active announcements loaded",
		zap.Time("date", date.UTC()),
		zap.String("language", string(*language)),
		zap.Int("count", len(items)),
	)
	return items, nil
}
