package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-carpool-bot/internal/domain"
	"github.com/tbourn/go-carpool-bot/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:carpoolsvc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.Trip{}, &domain.Car{}, &domain.Passenger{}, &domain.TripReceipt{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// fixture bundles every service over one database.
type fixture struct {
	db         *gorm.DB
	trips      *TripService
	cars       *CarService
	passengers *PassengerService
	summaries  *SummaryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	r := repo.Carpool{}
	return &fixture{
		db:         db,
		trips:      NewTripService(db, r),
		cars:       NewCarService(db, r),
		passengers: NewPassengerService(db, r),
		summaries:  NewSummaryService(db, r),
	}
}

func (f *fixture) trip(t *testing.T, chatID, name string) *domain.Trip {
	t.Helper()
	trip, err := f.trips.Create(context.Background(), chatID, name)
	if err != nil {
		t.Fatalf("create trip %q: %v", name, err)
	}
	return trip
}

// car adds a car for userID and returns its id.
func (f *fixture) car(t *testing.T, chatID string, tripID uint, userID, name string) uint {
	t.Helper()
	if _, err := f.cars.Add(context.Background(), chatID, tripID, userID, name); err != nil {
		t.Fatalf("add car %q: %v", name, err)
	}
	c, err := repo.FindCarByOwner(context.Background(), f.db, tripID, userID)
	if err != nil {
		t.Fatalf("reload car %q: %v", name, err)
	}
	return c.ID
}

func (f *fixture) join(t *testing.T, carID uint, userID, name string) {
	t.Helper()
	if _, err := f.passengers.Join(context.Background(), carID, userID, name); err != nil {
		t.Fatalf("join %d as %q: %v", carID, name, err)
	}
}

func count(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func nowUTC() time.Time { return time.Now().UTC() }
