package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobModel mirrors the 'jobs' table. owner_id cascades on user delete;
// category_id is restricted so a referenced category cannot be removed.
type JobModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid;index"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID"`
	Title       string         `gorm:"type:varchar(100);not null"`
	Company     string         `gorm:"type:varchar(100);not null"`
	Location    string         `gorm:"type:varchar(255);not null;default:''"`
	Description string         `gorm:"type:text;not null;default:''"`
	Salary      *float64       `gorm:"type:numeric(12,2)"`
	URL         string         `gorm:"column:url;type:varchar(2048);not null;default:''"`
	Notes       string         `gorm:"type:text;not null;default:''"`
	Status      string         `gorm:"type:varchar(32);not null"`
	DatePosted  time.Time      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (JobModel) TableName() string {
	return "jobs"
}

// BeforeCreate assigns a time-ordered ID when the caller did not set one.
func (m *JobModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
