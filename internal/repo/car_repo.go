// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Car model.
//
// Uniqueness of (trip_id, user_id) is backed by the ux_car_trip_user index;
// a violation surfaces as the raw driver error and is translated by the
// service layer.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

// CreateCar inserts a car for userID in tripID with no declared capacity.
func CreateCar(ctx context.Context, db *gorm.DB, tripID uint, userID, name string) (*domain.Car, error) {
	c := &domain.Car{TripID: tripID, UserID: userID, Name: name}
	if err := db.WithContext(ctx).Omit("Trip").Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetCar fetches a car by id.
func GetCar(ctx context.Context, db *gorm.DB, id uint) (*domain.Car, error) {
	var c domain.Car
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindCarByOwner returns the car userID registered in tripID, or ErrNotFound.
func FindCarByOwner(ctx context.Context, db *gorm.DB, tripID uint, userID string) (*domain.Car, error) {
	var c domain.Car
	err := db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Take(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// LatestCarInChat returns the highest-id car owned by userID across every
// trip of chatID. Ordering is by id, never by timestamp.
func LatestCarInChat(ctx context.Context, db *gorm.DB, chatID, userID string) (*domain.Car, error) {
	var c domain.Car
	err := db.WithContext(ctx).
		Model(&domain.Car{}).
		Select("cars.*").
		Joins("JOIN trips ON trips.id = cars.trip_id").
		Where("cars.user_id = ? AND trips.chat_id = ?", userID, chatID).
		Order("cars.id DESC").
		Limit(1).
		Take(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCarCapacity stores maxPassengers on car id. It returns ErrNotFound
// when no car matched.
func UpdateCarCapacity(ctx context.Context, db *gorm.DB, id uint, maxPassengers int) error {
	res := db.WithContext(ctx).
		Model(&domain.Car{}).
		Where("id = ?", id).
		Update("max_passengers", maxPassengers)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCarRefs returns every car of tripID in insertion (id) order. It returns
// an empty slice for a trip without cars.
func ListCarRefs(ctx context.Context, db *gorm.DB, tripID uint) ([]domain.CarRef, error) {
	out := []domain.CarRef{}
	err := db.WithContext(ctx).
		Model(&domain.Car{}).
		Select("id, name").
		Where("trip_id = ?", tripID).
		Order("id ASC").
		Scan(&out).Error
	return out, err
}
