package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is a shared label jobs can be filed under. It has no owner.
type Category struct {
	ID        uuid.UUID
	Name      string // Unique across all categories.
	CreatedAt time.Time
	UpdatedAt time.Time
}
