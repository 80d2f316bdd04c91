package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "campushub/internal/errors"
)

// lookupError maps a missing record to notFound and wraps anything else.
func lookupError(err error, notFound error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// writeError maps unique violations to conflict and wraps anything else.
func writeError(err error, conflict error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireText(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", apperrors.ErrInvalidInput, field)
	}
	return nil
}
