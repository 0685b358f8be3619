// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

// TripStats summarizes how much state a trip carries and when it last changed.
type TripStats struct {
	Cars       int64
	Passengers int64
	LastChange time.Time
}

// GetTripStats returns row counts and the most recent UpdatedAt across the
// trip, its cars, and its passengers. A missing trip yields ErrNotFound.
func GetTripStats(ctx context.Context, db *gorm.DB, tripID uint) (*TripStats, error) {
	var trip struct {
		UpdatedAt time.Time
	}
	res := db.WithContext(ctx).Model(&domain.Trip{}).Select("updated_at").Where("id = ?", tripID).Limit(1).Scan(&trip)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	st := &TripStats{LastChange: trip.UpdatedAt}

	cars := db.WithContext(ctx).Model(&domain.Car{}).Where("trip_id = ?", tripID)
	if err := cars.Count(&st.Cars).Error; err != nil {
		return nil, err
	}
	if st.Cars > 0 {
		// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
		var row struct {
			UpdatedAt time.Time
		}
		if err := db.WithContext(ctx).Model(&domain.Car{}).Select("updated_at").
			Where("trip_id = ?", tripID).Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
			return nil, err
		}
		if row.UpdatedAt.After(st.LastChange) {
			st.LastChange = row.UpdatedAt
		}
	}

	passengers := db.WithContext(ctx).Model(&domain.Passenger{}).
		Joins("JOIN cars ON cars.id = passengers.car_id").
		Where("cars.trip_id = ?", tripID)
	if err := passengers.Count(&st.Passengers).Error; err != nil {
		return nil, err
	}
	if st.Passengers > 0 {
		var row struct {
			UpdatedAt time.Time
		}
		if err := db.WithContext(ctx).Model(&domain.Passenger{}).Select("passengers.updated_at").
			Joins("JOIN cars ON cars.id = passengers.car_id").
			Where("cars.trip_id = ?", tripID).
			Order("passengers.updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
			return nil, err
		}
		if row.UpdatedAt.After(st.LastChange) {
			st.LastChange = row.UpdatedAt
		}
	}
	return st, nil
}
