package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/noteflow-backend/internal/store"
)

// Error kinds. Every error returned by a service wraps exactly one of these.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict")
	ErrTransientStorage  = errors.New("storage temporarily unavailable")
	ErrInternal          = errors.New("internal error")
)

var (
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrUsernameTaken      = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired refresh token", ErrUnauthorized)
)

var kinds = []error{
	ErrValidation,
	ErrRecipientNotFound,
	ErrNotFound,
	ErrInvalidOperation,
	ErrUnauthorized,
	ErrConflict,
	ErrTransientStorage,
}

// Kind returns the error kind err belongs to. Unclassified errors are
// ErrInternal.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// storageError lifts a store error into the service taxonomy. notFound is
// the kind a missing row maps to for this call site.
func storageError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case store.IsTransient(err):
		return fmt.Errorf("%w: %w", ErrTransientStorage, err)
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// txError classifies an error returned from WithTx. Errors that already
// carry a kind pass through.
func txError(err error) error {
	if err == nil || Kind(err) != ErrInternal || errors.Is(err, ErrInternal) {
		return err
	}
	return storageError(err, ErrNotFound)
}
