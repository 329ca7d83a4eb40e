package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/efoodhub/backend/internal/repo"
)

var (
	ErrValidation   = errors.New("validation")    // 400
	ErrUnauthorized = errors.New("unauthorized")  // 401
	ErrNotFound     = errors.New("not found")     // 404
	ErrConflict     = errors.New("conflict")      // 409
	ErrInvalidState = errors.New("invalid state") // 400
)

// mapStoreErr translates storage-level failures into the service taxonomy.
// Anything unmapped propagates as-is and surfaces as a transaction failure.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repo.ErrOwnership):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case errors.Is(err, repo.ErrEmptySubCart),
		errors.Is(err, repo.ErrQuantityUnderflow),
		errors.Is(err, repo.ErrCountMismatch),
		errors.Is(err, repo.ErrStatusTransition):
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	case errors.Is(err, repo.ErrTotalMismatch):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	case errors.Is(err, repo.ErrAlreadyEvaluated):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
