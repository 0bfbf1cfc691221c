// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"github.com/google/uuid"
)

// CRUDRepository is the data-access contract shared by every entity.
// Implementations return the entity-specific not-found sentinel when a row is missing.
type CRUDRepository[T any] interface {
	// FindByID retrieves a single entity by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)

	// Create persists a new entity and fills in generated fields (ID, timestamps).
	Create(ctx context.Context, entity *T) error

	// Update overwrites every mutable column of an existing entity.
	Update(ctx context.Context, entity *T) error

	// Delete removes an entity by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
