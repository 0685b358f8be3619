package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

// Carpool adapts the repository free functions to the single repository
// contract consumed by the services package (services.CarpoolRepo). Every
// method takes the handle to run on, so services can pass a transaction.
type Carpool struct{}

// CreateTrip proxies CreateTrip.
func (Carpool) CreateTrip(ctx context.Context, db *gorm.DB, chatID, name string) (*domain.Trip, error) {
	return CreateTrip(ctx, db, chatID, name)
}

// GetTrip proxies GetTrip.
func (Carpool) GetTrip(ctx context.Context, db *gorm.DB, id uint) (*domain.Trip, error) {
	return GetTrip(ctx, db, id)
}

// GetTripInChat proxies GetTripInChat.
func (Carpool) GetTripInChat(ctx context.Context, db *gorm.DB, chatID string, id uint) (*domain.Trip, error) {
	return GetTripInChat(ctx, db, chatID, id)
}

// LockTrip proxies LockTrip.
func (Carpool) LockTrip(ctx context.Context, db *gorm.DB, id uint) error {
	return LockTrip(ctx, db, id)
}

// SetTripMessageRef proxies SetTripMessageRef.
func (Carpool) SetTripMessageRef(ctx context.Context, db *gorm.DB, id uint, ref string) error {
	return SetTripMessageRef(ctx, db, id, ref)
}

// CountTrips proxies CountTrips.
func (Carpool) CountTrips(ctx context.Context, db *gorm.DB, chatID string) (int64, error) {
	return CountTrips(ctx, db, chatID)
}

// ListTripsPage proxies ListTripsPage.
func (Carpool) ListTripsPage(ctx context.Context, db *gorm.DB, chatID string, offset, limit int) ([]domain.Trip, error) {
	return ListTripsPage(ctx, db, chatID, offset, limit)
}

// CreateCar proxies CreateCar.
func (Carpool) CreateCar(ctx context.Context, db *gorm.DB, tripID uint, userID, name string) (*domain.Car, error) {
	return CreateCar(ctx, db, tripID, userID, name)
}

// GetCar proxies GetCar.
func (Carpool) GetCar(ctx context.Context, db *gorm.DB, id uint) (*domain.Car, error) {
	return GetCar(ctx, db, id)
}

// FindCarByOwner proxies FindCarByOwner.
func (Carpool) FindCarByOwner(ctx context.Context, db *gorm.DB, tripID uint, userID string) (*domain.Car, error) {
	return FindCarByOwner(ctx, db, tripID, userID)
}

// LatestCarInChat proxies LatestCarInChat.
func (Carpool) LatestCarInChat(ctx context.Context, db *gorm.DB, chatID, userID string) (*domain.Car, error) {
	return LatestCarInChat(ctx, db, chatID, userID)
}

// UpdateCarCapacity proxies UpdateCarCapacity.
func (Carpool) UpdateCarCapacity(ctx context.Context, db *gorm.DB, id uint, maxPassengers int) error {
	return UpdateCarCapacity(ctx, db, id, maxPassengers)
}

// ListCarRefs proxies ListCarRefs.
func (Carpool) ListCarRefs(ctx context.Context, db *gorm.DB, tripID uint) ([]domain.CarRef, error) {
	return ListCarRefs(ctx, db, tripID)
}

// CreatePassenger proxies CreatePassenger.
func (Carpool) CreatePassenger(ctx context.Context, db *gorm.DB, carID uint, userID, name string) (*domain.Passenger, error) {
	return CreatePassenger(ctx, db, carID, userID, name)
}

// FindPassengerInTrip proxies FindPassengerInTrip.
func (Carpool) FindPassengerInTrip(ctx context.Context, db *gorm.DB, tripID uint, userID string) (*domain.Passenger, error) {
	return FindPassengerInTrip(ctx, db, tripID, userID)
}

// MovePassenger proxies MovePassenger.
func (Carpool) MovePassenger(ctx context.Context, db *gorm.DB, id, carID uint) error {
	return MovePassenger(ctx, db, id, carID)
}

// ListSeats proxies ListSeats.
func (Carpool) ListSeats(ctx context.Context, db *gorm.DB, tripID uint) ([]domain.Seat, error) {
	return ListSeats(ctx, db, tripID)
}

// GetTripStats proxies GetTripStats.
func (Carpool) GetTripStats(ctx context.Context, db *gorm.DB, tripID uint) (*TripStats, error) {
	return GetTripStats(ctx, db, tripID)
}

// FindTripReceipt proxies FindTripReceipt.
func (Carpool) FindTripReceipt(ctx context.Context, db *gorm.DB, chatID, userID, key string, now time.Time) (*domain.TripReceipt, error) {
	return FindTripReceipt(ctx, db, chatID, userID, key, now)
}

// SaveTripReceipt proxies SaveTripReceipt.
func (Carpool) SaveTripReceipt(ctx context.Context, db *gorm.DB, chatID, userID, key string, tripID uint, status int, ttl time.Duration) (*domain.TripReceipt, error) {
	return SaveTripReceipt(ctx, db, chatID, userID, key, tripID, status, ttl)
}
