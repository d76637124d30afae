package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/announcement-api/internal/dto"
	appErrors "github.com/noah-isme/announcement-api/pkg/errors"
)

// Command outcomes reported to the metrics recorder.
const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

type commandRecorder interface {
	RecordAnnouncementCommand(operation, outcome string)
}

// AnnouncementCommandService validates structured requests and delegates persistence
// to the raw AnnouncementService.
type AnnouncementCommandService struct {
	raw       *AnnouncementService
	validator *validator.Validate
	logger    *zap.Logger
	metrics   commandRecorder
}

// NewAnnouncementCommandService constructs the service. validate, logger and metrics
// may be nil.
func NewAnnouncementCommandService(raw *AnnouncementService, validate *validator.Validate, logger *zap.Logger, metrics commandRecorder) *AnnouncementCommandService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterStructValidation(validateAnnouncementDates, dto.AnnouncementRequest{})
	return &AnnouncementCommandService{raw: raw, validator: validate, logger: logger, metrics: metrics}
}

// CreateAnnouncement persists a new announcement built from a CREATE request.
func (s *AnnouncementCommandService) CreateAnnouncement(ctx context.Context, req *dto.AnnouncementRequest) (resp *dto.AnnouncementResponse, err error) {
	defer s.record("create", &err)

	if err := s.validate(req, dto.RequestTypeCreate); err != nil {
		return nil, err
	}
	created, err := s.raw.Save(ctx, req.Entity())
	if err != nil {
		return nil, err
	}
	return &dto.AnnouncementResponse{
		Announcement: created,
		Message:      fmt.Sprintf("Announcement Successfully Created With Id: %d", *created.ID),
	}, nil
}

// UpdateAnnouncement overwrites all five fields of the announcement named by an UPDATE
// request.
func (s *AnnouncementCommandService) UpdateAnnouncement(ctx context.Context, req *dto.AnnouncementRequest) (resp *dto.AnnouncementResponse, err error) {
	defer s.record("update", &err)

	if err := s.validate(req, dto.RequestTypeUpdate); err != nil {
		return nil, err
	}
	if req.AnnouncementID == nil {
		return nil, appErrors.Clone(appErrors.ErrIDNull, "announcementId is required")
	}

	existing, err := s.raw.FindOne(ctx, *req.AnnouncementID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrAnnouncementNotFound, fmt.Sprintf("announcement %d not found", *req.AnnouncementID))
		}
		return nil, err
	}

	existing.Language = req.SelectedLanguage
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate
	existing.AnnouncementType = req.AnnouncementType
	existing.AnnouncementData = req.AnnouncementData

	updated, err := s.raw.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrAnnouncementNotFound, fmt.Sprintf("announcement %d not found", *req.AnnouncementID))
		}
		return nil, err
	}
	return &dto.AnnouncementResponse{
		Announcement: updated,
		Message:      fmt.Sprintf("Announcement Successfully Updated With Id: %d", *updated.ID),
	}, nil
}

// DeleteAnnouncement removes the announcement named by a DELETE request.
func (s *AnnouncementCommandService) DeleteAnnouncement(ctx context.Context, req *dto.AnnouncementRequest) (err error) {
	defer s.record("delete", &err)

	if err := checkRequestType(req, dto.RequestTypeDelete); err != nil {
		return err
	}
	if req.AnnouncementID == nil {
		return appErrors.Clone(appErrors.ErrIDNull, "announcementId is required")
	}
	return s.raw.Delete(ctx, *req.AnnouncementID)
}

func (s *AnnouncementCommandService) validate(req *dto.AnnouncementRequest, want dto.RequestType) error {
	if err := checkRequestType(req, want); err != nil {
		return err
	}
	if err := s.validator.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, describeFieldErrors(fieldErrs))
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement request")
	}
	return nil
}

func (s *AnnouncementCommandService) record(operation string, errp *error) {
	outcome := outcomeSuccess
	if *errp != nil {
		outcome = outcomeFailed
		if appErr := appErrors.FromError(*errp); appErr.Status < http.StatusInternalServerError {
			outcome = outcomeRejected
		}
		s.logger.Debug("announcement command failed", zap.String("operation", operation), zap.Error(*errp))
	}
	if s.metrics != nil {
		s.metrics.RecordAnnouncementCommand(operation, outcome)
	}
}

func checkRequestType(req *dto.AnnouncementRequest, want dto.RequestType) error {
	if req == nil {
		return appErrors.Clone(appErrors.ErrValidation, "request body is required")
	}
	if req.RequestType != want {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("requestType must be %s", want))
	}
	return nil
}

// validateAnnouncementDates rejects an end date strictly before the start date.
func validateAnnouncementDates(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.AnnouncementRequest)
	if req.StartDate == nil || req.EndDate == nil {
		return
	}
	if req.EndDate.Before(*req.StartDate) {
		sl.ReportError(req.EndDate, "endDate", "EndDate", "notbeforestart", "startDate")
	}
}

func describeFieldErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "min":
			parts = append(parts, fe.Field()+" must not be empty")
		case "notbeforestart":
			parts = append(parts, fe.Field()+" must not be before "+fe.Param())
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return "invalid announcement request: " + strings.Join(parts, ", ")
}
