// Package model contains the GORM-specific structs that map to database tables.
package model

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func assignID(id *uuid.UUID) error {
	if *id != uuid.Nil {
		return nil
	}

	generated, err := uuid.NewV7()
	if err != nil {
		return errors.Wrap(err, "failed to generate UUIDv7")
	}
	*id = generated

	return nil
}
