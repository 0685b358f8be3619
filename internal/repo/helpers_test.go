package repo

import (
	"fmt"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

// newTestDB opens a unique in-memory database per test to avoid schema
// leaking across tests. Pass models to migrate; none leaves the DB empty.
func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
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
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func newCarpoolDB(t *testing.T) *gorm.DB {
	t.Helper()
	return newTestDB(t, &domain.Trip{}, &domain.Car{}, &domain.Passenger{})
}

func seedTrip(t *testing.T, db *gorm.DB, chatID, name string) *domain.Trip {
	t.Helper()
	trip := &domain.Trip{ChatID: chatID, Name: name}
	if err := db.Create(trip).Error; err != nil {
		t.Fatalf("seed trip %q: %v", name, err)
	}
	return trip
}

func seedCar(t *testing.T, db *gorm.DB, tripID uint, userID, name string, max *int) *domain.Car {
	t.Helper()
	car := &domain.Car{TripID: tripID, UserID: userID, Name: name, MaxPassengers: max}
	if err := db.Omit("Trip").Create(car).Error; err != nil {
		t.Fatalf("seed car %q: %v", name, err)
	}
	return car
}

func seedPassenger(t *testing.T, db *gorm.DB, carID uint, userID, name string) *domain.Passenger {
	t.Helper()
	p := &domain.Passenger{CarID: carID, UserID: userID, Name: name}
	if err := db.Omit("Car").Create(p).Error; err != nil {
		t.Fatalf("seed passenger %q: %v", name, err)
	}
	return p
}

func intPtr(v int) *int { return &v }
