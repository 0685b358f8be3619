package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
	"github.com/tbourn/go-carpool-bot/internal/repo"
)

// CarpoolRepo defines the repository contract shared by every carpool
// service. Each method receives the handle to run on so a service can pass
// the transaction it opened; repo.Carpool is the production implementation.
type CarpoolRepo interface {
	CreateTrip(ctx context.Context, db *gorm.DB, chatID, name string) (*domain.Trip, error)
	GetTrip(ctx context.Context, db *gorm.DB, id uint) (*domain.Trip, error)
	// GetTripInChat fails with a not-found error for trips of another chat.
	GetTripInChat(ctx context.Context, db *gorm.DB, chatID string, id uint) (*domain.Trip, error)
	// LockTrip holds a row lock on the trip until the transaction ends.
	LockTrip(ctx context.Context, db *gorm.DB, id uint) error
	SetTripMessageRef(ctx context.Context, db *gorm.DB, id uint, ref string) error
	GetTripStats(ctx context.Context, db *gorm.DB, tripID uint) (*repo.TripStats, error)
	CountTrips(ctx context.Context, db *gorm.DB, chatID string) (int64, error)
	ListTripsPage(ctx context.Context, db *gorm.DB, chatID string, offset, limit int) ([]domain.Trip, error)

	CreateCar(ctx context.Context, db *gorm.DB, tripID uint, userID, name string) (*domain.Car, error)
	GetCar(ctx context.Context, db *gorm.DB, id uint) (*domain.Car, error)
	FindCarByOwner(ctx context.Context, db *gorm.DB, tripID uint, userID string) (*domain.Car, error)
	// LatestCarInChat returns the highest-id car of userID across all trips of chatID.
	LatestCarInChat(ctx context.Context, db *gorm.DB, chatID, userID string) (*domain.Car, error)
	UpdateCarCapacity(ctx context.Context, db *gorm.DB, id uint, maxPassengers int) error
	ListCarRefs(ctx context.Context, db *gorm.DB, tripID uint) ([]domain.CarRef, error)

	CreatePassenger(ctx context.Context, db *gorm.DB, carID uint, userID, name string) (*domain.Passenger, error)
	FindPassengerInTrip(ctx context.Context, db *gorm.DB, tripID uint, userID string) (*domain.Passenger, error)
	MovePassenger(ctx context.Context, db *gorm.DB, id, carID uint) error
	// ListSeats returns passengers joined with their car, sorted by car name.
	ListSeats(ctx context.Context, db *gorm.DB, tripID uint) ([]domain.Seat, error)

	FindTripReceipt(ctx context.Context, db *gorm.DB, chatID, userID, key string, now time.Time) (*domain.TripReceipt, error)
	SaveTripReceipt(ctx context.Context, db *gorm.DB, chatID, userID, key string, tripID uint, status int, ttl time.Duration) (*domain.TripReceipt, error)
}

// Roster is the car list of a trip after a mutation, in insertion order.
// Adapters rebuild their join buttons from it.
type Roster struct {
	TripID uint
	Cars   []domain.CarRef
}

// compile-time check
var _ CarpoolRepo = repo.Carpool{}
