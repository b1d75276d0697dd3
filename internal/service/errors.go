package service

import (
	"errors"
	"fmt"

	"real-balance/internal/repository"
	"real-balance/pkg/apperrors"
)

var (
	ErrInvalidCredentials = apperrors.New(apperrors.CodeInvalidCredentials, "invalid credentials")
	ErrUnauthenticated    = apperrors.New(apperrors.CodeUnauthenticated, "authentication required")
	ErrTransactionMissing = apperrors.New(apperrors.CodeNotFound, "transaction not found")
	ErrCategoryMissing    = apperrors.New(apperrors.CodeNotFound, "category not found")
	ErrGoalMissing        = apperrors.New(apperrors.CodeNotFound, "goal not found")
	ErrCategoryInUse      = apperrors.New(apperrors.CodeCategoryInUse, "category is still used by transactions")
)

func validationError(field, message string) error {
	return apperrors.ForField(apperrors.CodeValidation, field, message)
}

func duplicateCredential(field string, cause error) error {
	return &apperrors.Error{
		Code:    apperrors.CodeDuplicateCredential,
		Message: field + " already in use",
		Param:   field,
		Cause:   cause,
	}
}

// storeError translates repository failures. Domain errors pass through
// untouched; anything unrecognised becomes INTERNAL with op kept in the cause.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.From(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return duplicateCredential("email", err)
	case errors.Is(err, repository.ErrDuplicateUsername):
		return duplicateCredential("username", err)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.Wrap(apperrors.CodeNotFound, "not found", err)
	default:
		return apperrors.Wrap(apperrors.CodeInternal, "internal server error", fmt.Errorf("%s: %w", op, err))
	}
}
