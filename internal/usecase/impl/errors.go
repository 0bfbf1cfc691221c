package impl

import (
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/errors"
)

// translateErr maps a repository sentinel onto its domain error. AppErrors raised
// by the repositories (constraint violations) pass through; anything else is wrapped.
func translateErr(err, sentinel error, domainErr error, msg string) error {
	if errors.Is(err, sentinel) {
		return domainErr
	}
	if _, ok := errors.AsType[domainerrors.AppError](err); ok {
		return err
	}

	return errors.Wrap(err, msg)
}
