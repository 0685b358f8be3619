// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Passenger
// model. Passenger rows only reference a car, so every trip-scoped query
// joins through the cars table.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

// CreatePassenger inserts a membership of userID in carID.
func CreatePassenger(ctx context.Context, db *gorm.DB, carID uint, userID, name string) (*domain.Passenger, error) {
	p := &domain.Passenger{CarID: carID, UserID: userID, Name: name}
	if err := db.WithContext(ctx).Omit("Car").Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// FindPassengerInTrip returns userID's membership in any car of tripID, or
// ErrNotFound when the user has not joined a car of that trip.
func FindPassengerInTrip(ctx context.Context, db *gorm.DB, tripID uint, userID string) (*domain.Passenger, error) {
	var p domain.Passenger
	err := db.WithContext(ctx).
		Model(&domain.Passenger{}).
		Select("passengers.*").
		Joins("JOIN cars ON cars.id = passengers.car_id").
		Where("cars.trip_id = ? AND passengers.user_id = ?", tripID, userID).
		Order("passengers.id ASC").
		Limit(1).
		Take(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MovePassenger points an existing membership row at carID.
func MovePassenger(ctx context.Context, db *gorm.DB, id, carID uint) error {
	res := db.WithContext(ctx).
		Model(&domain.Passenger{}).
		Where("id = ?", id).
		Update("car_id", carID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSeats returns every passenger of tripID joined with its car's name and
// declared capacity, ordered by car name. Ties are broken by car id and then
// passenger id so the result is stable.
func ListSeats(ctx context.Context, db *gorm.DB, tripID uint) ([]domain.Seat, error) {
	out := []domain.Seat{}
	err := db.WithContext(ctx).
		Table("passengers").
		Select("passengers.name AS passenger_name, cars.name AS car_name, cars.max_passengers AS max_passengers").
		Joins("JOIN cars ON cars.id = passengers.car_id").
		Where("cars.trip_id = ?", tripID).
		Order("cars.name ASC, cars.id ASC, passengers.id ASC").
		Scan(&out).Error
	return out, err
}
