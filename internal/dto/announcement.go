package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/announcement-api/internal/models"
)

// RequestType tags a structured announcement request with the operation it carries.
type RequestType string

const (
	RequestTypeCreate RequestType = "CREATE"
	RequestTypeUpdate RequestType = "UPDATE"
	RequestTypeDelete RequestType = "DELETE"
)

// ParseRequestType resolves a symbolic name, case-insensitively.
func ParseRequestType(raw string) (RequestType, error) {
	t := RequestType(strings.ToUpper(strings.TrimSpace(raw)))
	switch t {
	case RequestTypeCreate, RequestTypeUpdate, RequestTypeDelete:
		return t, nil
	}
	return "", fmt.Errorf("unknown request type %q", raw)
}

// UnmarshalText rejects unknown symbols when decoding JSON.
func (t *RequestType) UnmarshalText(text []byte) error {
	parsed, err := ParseRequestType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AnnouncementRequest is the payload of the structured create/update/delete endpoints.
type AnnouncementRequest struct {
	AnnouncementID   *int64                   `json:"announcementId,omitempty"`
	RequestType      RequestType              `json:"requestType"`
	SelectedLanguage *models.Language         `json:"selectedLanguage,omitempty" validate:"required"`
	StartDate        *time.Time               `json:"startDate,omitempty" validate:"required"`
	EndDate          *time.Time               `json:"endDate,omitempty" validate:"required"`
	AnnouncementType *models.AnnouncementType `json:"announcementType,omitempty" validate:"required"`
	AnnouncementData *string                  `json:"announcementData,omitempty" validate:"required,min=1"`
}

// Entity builds an announcement from the request fields. The id is left nil.
func (r *AnnouncementRequest) Entity() *models.Announcement {
	return &models.Announcement{
		Language:         r.SelectedLanguage,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		AnnouncementType: r.AnnouncementType,
		AnnouncementData: r.AnnouncementData,
	}
}

// AnnouncementResponse is returned by the structured create/update endpoints.
type AnnouncementResponse struct {
	Announcement *models.Announcement `json:"announcement"`
	Message      string               `json:"message"`
}

// ActiveAnnouncementsQuery binds the query string of the active announcements endpoint.
type ActiveAnnouncementsQuery struct {
	Date             string `form:"date"`
	SelectedLanguage string `form:"selectedLanguage"`
}
