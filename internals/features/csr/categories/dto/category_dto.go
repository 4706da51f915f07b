package dto

import (
	"strings"

	"csr_backend/internals/features/csr/categories/model"
)

type CategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

func (r *CategoryRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		r.Description = &v
	}
}

func (r CategoryRequest) ApplyTo(m *model.Category) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Description != nil {
		if *r.Description == "" {
			m.Description = nil
		} else {
			d := *r.Description
			m.Description = &d
		}
	}
}
