package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"csr_backend/internals/features/csr/programs/model"
)

const DateLayout = "2006-01-02"

// ProgramRequest dipakai untuk create & update parsial. CategoryID 0 = lepas kategori.
type ProgramRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	Location    *string `json:"location" validate:"omitempty,max=255"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Status      *string `json:"status" validate:"omitempty,oneof=planned ongoing completed"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=500"`
	SourceLink  *string `json:"source_link" validate:"omitempty,url,max=500"`
}

func (r *ProgramRequest) Normalize() {
	for _, s := range []**string{&r.Title, &r.Description, &r.Location, &r.StartDate, &r.EndDate, &r.Status, &r.ImageURL, &r.SourceLink} {
		if *s != nil {
			v := strings.TrimSpace(**s)
			*s = &v
		}
	}
}

func (r ProgramRequest) ApplyTo(m *model.CsrProgram) error {
	if r.Title != nil {
		m.Title = *r.Title
	}
	if r.Description != nil {
		m.Description = optional(*r.Description)
	}
	if r.CategoryID != nil {
		if *r.CategoryID == 0 {
			m.CategoryID = nil
		} else {
			id := *r.CategoryID
			m.CategoryID = &id
		}
	}
	if r.Location != nil {
		m.Location = optional(*r.Location)
	}
	if r.Status != nil && *r.Status != "" {
		m.Status = *r.Status
	}
	if r.ImageURL != nil {
		m.ImageURL = optional(*r.ImageURL)
	}
	if r.SourceLink != nil {
		m.SourceLink = optional(*r.SourceLink)
	}

	var err error
	if r.StartDate != nil {
		if m.StartDate, err = parseOptionalDate("start_date", *r.StartDate); err != nil {
			return err
		}
	}
	if r.EndDate != nil {
		if m.EndDate, err = parseOptionalDate("end_date", *r.EndDate); err != nil {
			return err
		}
	}
	return nil
}

func parseOptionalDate(field, raw string) (*datatypes.Date, error) {
	if raw == "" {
		return nil, nil
	}
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s %q tidak valid, gunakan format YYYY-MM-DD", field, raw))
	}
	d := datatypes.Date(t)
	return &d, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
