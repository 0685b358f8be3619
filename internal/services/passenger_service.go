// Package services – PassengerService
//
// This file implements Passenger Assignment. A user holds at most one seat
// per trip: joining another car moves the existing row, and re-joining the
// current car is rejected.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// PassengerService owns car membership.
type PassengerService struct {
	DB   *gorm.DB
	Repo CarpoolRepo
}

// NewPassengerService constructs a PassengerService.
func NewPassengerService(db *gorm.DB, r CarpoolRepo) *PassengerService {
	return &PassengerService{DB: db, Repo: r}
}

// Join puts userID into carID, moving them out of any other car of the same
// trip. It returns the trip's car list.
//
// The trip row is locked before the membership lookup, so two first joins of
// the same user cannot both insert a row.
//
// Errors:
//   - ErrCarNotFound when carID does not exist.
//   - ErrAlreadyInCar when userID already sits in carID.
func (s *PassengerService) Join(ctx context.Context, carID uint, userID, displayName string) (*Roster, error) {
	return s.join(ctx, "", carID, userID, displayName)
}

// JoinInChat is Join restricted to cars whose trip belongs to chatID. A car
// of another chat's trip is reported as ErrCarNotFound and nothing is written.
func (s *PassengerService) JoinInChat(ctx context.Context, chatID string, carID uint, userID, displayName string) (*Roster, error) {
	return s.join(ctx, chatID, carID, userID, displayName)
}

func (s *PassengerService) join(ctx context.Context, chatID string, carID uint, userID, displayName string) (*Roster, error) {
	ctx, span := otel.Tracer("services/PassengerService").Start(ctx, "Join",
		trace.WithAttributes(
			attribute.Int64("car.id", int64(carID)),
			attribute.String("user.id", userID),
			attribute.String("chat.id", chatID),
		),
	)
	defer span.End()

	out := &Roster{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		car, err := s.Repo.GetCar(ctx, tx, carID)
		if err != nil {
			if isNotFound(err) {
				return ErrCarNotFound
			}
			return err
		}
		if chatID != "" {
			if _, err := s.Repo.GetTripInChat(ctx, tx, chatID, car.TripID); err != nil {
				if isNotFound(err) {
					return ErrCarNotFound
				}
				return err
			}
		}
		if err := s.Repo.LockTrip(ctx, tx, car.TripID); err != nil {
			if isNotFound(err) {
				return ErrCarNotFound
			}
			return err
		}

		existing, err := s.Repo.FindPassengerInTrip(ctx, tx, car.TripID, userID)
		switch {
		case err == nil && existing.CarID == carID:
			return ErrAlreadyInCar
		case err == nil:
			if err := s.Repo.MovePassenger(ctx, tx, existing.ID, carID); err != nil {
				return err
			}
		case isNotFound(err):
			if _, err := s.Repo.CreatePassenger(ctx, tx, carID, userID, normalizeName(displayName)); err != nil {
				return err
			}
		default:
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
		return nil, observe("join_car", classify(ctx, "join_car", err))
	}
	span.SetAttributes(attribute.Int64("trip.id", int64(out.TripID)))
	return out, observe("join_car", nil)
}
