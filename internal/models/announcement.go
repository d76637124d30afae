package models

import (
	"fmt"
	"strings"
	"time"
)

// Language identifies the audience language of an announcement.
type Language string

const (
	LanguageTurkish Language = "TURKISH"
	LanguageEnglish Language = "ENGLISH"
)

// Languages lists every supported language.
var Languages = []Language{LanguageTurkish, LanguageEnglish}

// Valid reports whether l is a known language.
func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

// ParseLanguage resolves a symbolic name, case-insensitively.
func ParseLanguage(raw string) (Language, error) {
	l := Language(strings.ToUpper(strings.TrimSpace(raw)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown language %q", raw)
	}
	return l, nil
}

// UnmarshalText rejects unknown symbols when decoding JSON.
func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// AnnouncementType describes how an announcement is rendered.
type AnnouncementType string

const (
	AnnouncementTypeText                 AnnouncementType = "TEXT"
	AnnouncementTypeImage                AnnouncementType = "IMAGE"
	AnnouncementTypeWarning              AnnouncementType = "WARNING"
	AnnouncementTypeWarningWithButton    AnnouncementType = "WARNING_WITH_BUTTON"
	AnnouncementTypeImageWithText        AnnouncementType = "IMAGE_WITH_TEXT"
	AnnouncementTypeButtonWithText       AnnouncementType = "BUTTON_WITH_TEXT"
	AnnouncementTypeImageWithTextAndLink AnnouncementType = "IMAGE_WITH_TEXT_WITH_LINK"
)

// AnnouncementTypes lists every supported announcement type.
var AnnouncementTypes = []AnnouncementType{
	AnnouncementTypeText,
	AnnouncementTypeImage,
	AnnouncementTypeWarning,
	AnnouncementTypeWarningWithButton,
	AnnouncementTypeImageWithText,
	AnnouncementTypeButtonWithText,
	AnnouncementTypeImageWithTextAndLink,
}

// Valid reports whether t is a known announcement type.
func (t AnnouncementType) Valid() bool {
	for _, known := range AnnouncementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseAnnouncementType resolves a symbolic name, case-insensitively.
func ParseAnnouncementType(raw string) (AnnouncementType, error) {
	t := AnnouncementType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown announcement type %q", raw)
	}
	return t, nil
}

// UnmarshalText rejects unknown symbols when decoding JSON.
func (t *AnnouncementType) UnmarshalText(text []byte) error {
	parsed, err := ParseAnnouncementType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Announcement represents a persisted announcement row. Every field is optional at
// the entity level; business rules live in the command service.
type Announcement struct {
	ID               *int64            `db:"id" json:"id"`
	Language         *Language         `db:"language" json:"language"`
	StartDate        *time.Time        `db:"start_date" json:"startDate"`
	EndDate          *time.Time        `db:"end_date" json:"endDate"`
	AnnouncementType *AnnouncementType `db:"announcement_type" json:"announcementType"`
	AnnouncementData *string           `db:"announcement_data" json:"announcementData"`
}

// Equal reports identity equality: both ids set and equal. An entity without an id
// only equals itself.
func (a *Announcement) Equal(other *Announcement) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil || a.ID == nil || other.ID == nil {
		return false
	}
	return *a.ID == *other.ID
}

// Merge copies every non-nil field of patch onto a. The id is never touched.
func (a *Announcement) Merge(patch *Announcement) {
	if patch == nil {
		return
	}
	if patch.Language != nil {
		a.Language = patch.Language
	}
	if patch.StartDate != nil {
		a.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		a.EndDate = patch.EndDate
	}
	if patch.AnnouncementType != nil {
		a.AnnouncementType = patch.AnnouncementType
	}
	if patch.AnnouncementData != nil {
		a.AnnouncementData = patch.AnnouncementData
	}
}

// Normalize stores both timestamps in UTC.
func (a *Announcement) Normalize() {
	if a.StartDate != nil {
		utc := a.StartDate.UTC()
		a.StartDate = &utc
	}
	if a.EndDate != nil {
		utc := a.EndDate.UTC()
		a.EndDate = &utc
	}
}

// Clone returns a deep copy so callers cannot alias stored state.
func (a *Announcement) Clone() *Announcement {
	if a == nil {
		return nil
	}
	cp := &Announcement{}
	if a.ID != nil {
		id := *a.ID
		cp.ID = &id
	}
	if a.Language != nil {
		l := *a.Language
		cp.Language = &l
	}
	if a.StartDate != nil {
		s := *a.StartDate
		cp.StartDate = &s
	}
	if a.EndDate != nil {
		e := *a.EndDate
		cp.EndDate = &e
	}
	if a.AnnouncementType != nil {
		t := *a.AnnouncementType
		cp.AnnouncementType = &t
	}
	if a.AnnouncementData != nil {
		d := *a.AnnouncementData
		cp.AnnouncementData = &d
	}
	return cp
}

func (a *Announcement) String() string {
	if a == nil {
		return "Announcement{<nil>}"
	}
	return fmt.Sprintf("Announcement{id=%s, language=%s, startDate=%s, endDate=%s, announcementType=%s}",
		ptrString(a.ID), ptrString(a.Language), ptrString(a.StartDate), ptrString(a.EndDate), ptrString(a.AnnouncementType))
}

func ptrString[T any](v *T) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(*v)
}
