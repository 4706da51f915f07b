package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProgramPlanned   = "planned"
	ProgramOngoing   = "ongoing"
	ProgramCompleted = "completed"
)

var ProgramStatuses = []string{ProgramPlanned, ProgramOngoing, ProgramCompleted}

type CsrProgram struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string          `gorm:"column:title;size:255;not null" json:"title"`
	Description *string         `gorm:"column:description;type:text" json:"description"`
	CategoryID  *uint           `gorm:"column:category_id" json:"category_id"`
	Location    *string         `gorm:"column:location;size:255" json:"location"`
	StartDate   *datatypes.Date `gorm:"column:start_date;type:date" json:"start_date"`
	EndDate     *datatypes.Date `gorm:"column:end_date;type:date" json:"end_date"`
	Status      string          `gorm:"column:status;type:varchar(20);not null;default:'planned'" json:"status"`
	ImageURL    *string         `gorm:"column:image_url;size:500" json:"image_url"`
	SourceLink  *string         `gorm:"column:source_link;size:500" json:"source_link"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CsrProgram) TableName() string {
	return "csr_programs"
}

// ProgramWithCategory hasil LEFT JOIN categories.
type ProgramWithCategory struct {
	CsrProgram   `gorm:"embedded"`
	CategoryName *string `gorm:"column:category_name" json:"category_name"`
}
