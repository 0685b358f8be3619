// Package services defines the business logic for trips, cars, and passengers.
// This file centralizes the service-level error values returned by service
// methods and checked by callers.
//
// Every specific error wraps one of three kinds (ErrNotFound, ErrConflict,
// ErrPersistence) so the HTTP layer can branch on the kind with errors.Is
// while still showing the specific message to users.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/repo"
)

// Error kinds.
var (
	// ErrNotFound means the referenced trip or car does not exist or is not
	// visible from the caller's chat.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness rule would be violated.
	ErrConflict = errors.New("conflict")

	// ErrPersistence means the storage layer failed for an unanticipated
	// reason. The cause is logged, never returned.
	ErrPersistence = errors.New("operation not completed for unexpected reason")
)

// Specific errors.
var (
	// ErrTripNotFound is returned when a trip is missing or belongs to another chat.
	ErrTripNotFound = fmt.Errorf("no trip found: %w", ErrNotFound)

	// ErrCarNotFound is returned when no car matches the request.
	ErrCarNotFound = fmt.Errorf("no car found: %w", ErrNotFound)

	// ErrCarAlreadyAdded is returned when the user already registered a car in the trip.
	ErrCarAlreadyAdded = fmt.Errorf("car already added: %w", ErrConflict)

	// ErrAlreadyInCar is returned when the user re-selects the car they are in.
	ErrAlreadyInCar = fmt.Errorf("you are already in that car: %w", ErrConflict)
)

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way.
func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// classify passes domain errors through and converts anything else into
// ErrPersistence after logging the cause under op.
func classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	zerolog.Ctx(ctx).Error().Err(err).Str("op", op).Msg("carpool operation failed")
	return fmt.Errorf("%s: %w", op, ErrPersistence)
}
