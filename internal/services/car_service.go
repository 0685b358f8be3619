// Package services – CarService
//
// This file implements the Car Registry. A user registers at most one car per
// trip; the check and the insert share one transaction and the unique index
// on (trip_id, user_id) catches the race the check cannot see.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/repo"
)

// CarService owns car registration and capacity updates.
type CarService struct {
	DB   *gorm.DB
	Repo CarpoolRepo
}

// NewCarService constructs a CarService.
func NewCarService(db *gorm.DB, r CarpoolRepo) *CarService {
	return &CarService{DB: db, Repo: r}
}

// Add registers a car for userID in tripID, named after the user, with no
// declared capacity.
//
// Errors:
//   - ErrTripNotFound when the trip does not exist in chatID.
//   - ErrCarAlreadyAdded when userID already has a car in the trip.
func (s *CarService) Add(ctx context.Context, chatID string, tripID uint, userID, displayName string) (*Roster, error) {
	ctx, span := otel.Tracer("services/CarService").Start(ctx, "Add",
		trace.WithAttributes(
			attribute.String("chat.id", chatID),
			attribute.Int64("trip.id", int64(tripID)),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	out := &Roster{TripID: tripID}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.GetTripInChat(ctx, tx, chatID, tripID); err != nil {
			if isNotFound(err) {
				return ErrTripNotFound
			}
			return err
		}

		_, err := s.Repo.FindCarByOwner(ctx, tx, tripID, userID)
		switch {
		case err == nil:
			return ErrCarAlreadyAdded
		case !isNotFound(err):
			return err
		}

		if _, err := s.Repo.CreateCar(ctx, tx, tripID, userID, normalizeName(displayName)); err != nil {
			if repo.IsDuplicate(err) {
				return ErrCarAlreadyAdded
			}
			return err
		}

		cars, err := s.Repo.ListCarRefs(ctx, tx, tripID)
		if err != nil {
			return err
		}
		out.Cars = cars
		return nil
	})
	if err != nil {
		return nil, observe("add_car", classify(ctx, "add_car", err))
	}
	return out, observe("add_car", nil)
}

// UpdateCapacity sets maxPassengers on the highest-id car owned by userID in
// any trip of chatID. When the user owns cars in several trips of the chat,
// only the newest one can be targeted this way.
//
// Range checking of maxPassengers is left to the caller.
func (s *CarService) UpdateCapacity(ctx context.Context, maxPassengers int, chatID, userID string) (*Roster, error) {
	ctx, span := otel.Tracer("services/CarService").Start(ctx, "UpdateCapacity",
		trace.WithAttributes(
			attribute.String("chat.id", chatID),
			attribute.String("user.id", userID),
			attribute.Int("max_passengers", maxPassengers),
		),
	)
	defer span.End()

	out := &Roster{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		car, err := s.Repo.LatestCarInChat(ctx, tx, chatID, userID)
		if err != nil {
			if isNotFound(err) {
				return ErrCarNotFound
			}
			return err
		}
		if err := s.Repo.UpdateCarCapacity(ctx, tx, car.ID, maxPassengers); err != nil {
			if isNotFound(err) {
				return ErrCarNotFound
			}
			return err
		}

		cars, err := s.Repo.ListCarRefs(ctx, tx, car.TripID)
		if err != nil {
			return err
		}
		out.TripID, out.Cars = car.TripID, cars
		return nil
	})
	if err != nil {
		return nil, observe("update_capacity", classify(ctx, "update_capacity", err))
	}
	span.SetAttributes(attribute.Int64("trip.id", int64(out.TripID)))
	return out, observe("update_capacity", nil)
}
