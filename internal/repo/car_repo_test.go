package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

func TestCreateCar_CapacityUnsetAndUniquePerTrip(t *testing.T) {
	db := newCarpoolDB(t)
	ctx := context.Background()
	trip := seedTrip(t, db, "c1", "Beach")

	car, err := CreateCar(ctx, db, trip.ID, "u1", "Alice")
	if err != nil {
		t.Fatalf("CreateCar: %v", err)
	}
	if car.MaxPassengers != nil {
		t.Fatalf("capacity must start NULL, got %d", *car.MaxPassengers)
	}

	_, err = CreateCar(ctx, db, trip.ID, "u1", "Alice again")
	if err == nil || !IsDuplicate(err) {
		t.Fatalf("expected duplicate-key error, got %v", err)
	}

	var n int64
	db.Model(&domain.Car{}).Where("trip_id = ?", trip.ID).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 car after duplicate insert, got %d", n)
	}
}

func TestGetCar_And_FindCarByOwner(t *testing.T) {
	db := newCarpoolDB(t)
	ctx := context.Background()
	trip := seedTrip(t, db, "c1", "Beach")
	other := seedTrip(t, db, "c1", "Hike")
	car := seedCar(t, db, trip.ID, "u1", "Alice", nil)

	got, err := GetCar(ctx, db, car.ID)
	if err != nil || got.TripID != trip.ID {
		t.Fatalf("GetCar = (%+v, %v)", got, err)
	}
	if _, err := GetCar(ctx, db, car.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetCar missing: expected ErrNotFound, got %v", err)
	}

	if _, err := FindCarByOwner(ctx, db, trip.ID, "u1"); err != nil {
		t.Fatalf("FindCarByOwner: %v", err)
	}
	if _, err := FindCarByOwner(ctx, db, other.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindCarByOwner other trip: expected ErrNotFound, got %v", err)
	}
}

func TestLatestCarInChat_HighestIDAcrossTrips(t *testing.T) {
	db := newCarpoolDB(t)
	ctx := context.Background()

	older := seedTrip(t, db, "c1", "Beach")
	newer := seedTrip(t, db, "c1", "Hike")
	foreign := seedTrip(t, db, "c2", "Elsewhere")

	// Car in the newer trip is inserted first, so the highest id lives in the older trip.
	first := seedCar(t, db, newer.ID, "u1", "Alice", nil)
	second := seedCar(t, db, older.ID, "u1", "Alice", nil)
	seedCar(t, db, foreign.ID, "u1", "Alice", nil)

	// Make the lower-id car look more recently touched; ordering must ignore timestamps.
	if err := db.Model(&domain.Car{}).Where("id = ?", first.ID).
		UpdateColumn("updated_at", second.UpdatedAt.Add(24*time.Hour)).Error; err != nil {
		t.Fatalf("touch: %v", err)
	}

	got, err := LatestCarInChat(ctx, db, "c1", "u1")
	if err != nil {
		t.Fatalf("LatestCarInChat: %v", err)
	}
	if got.ID != second.ID || got.TripID != older.ID {
		t.Fatalf("expected car %d of trip %d, got %+v", second.ID, older.ID, got)
	}

	if _, err := LatestCarInChat(ctx, db, "c1", "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for user without cars, got %v", err)
	}
	if _, err := LatestCarInChat(ctx, db, "c3", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other chat, got %v", err)
	}
}

func TestUpdateCarCapacity_SetsAndNotFound(t *testing.T) {
	db := newCarpoolDB(t)
	ctx := context.Background()
	trip := seedTrip(t, db, "c1", "Beach")
	car := seedCar(t, db, trip.ID, "u1", "Alice", nil)

	if err := UpdateCarCapacity(ctx, db, car.ID, 3); err != nil {
		t.Fatalf("UpdateCarCapacity: %v", err)
	}
	got, _ := GetCar(ctx, db, car.ID)
	if got.MaxPassengers == nil || *got.MaxPassengers != 3 {
		t.Fatalf("expected capacity 3, got %v", got.MaxPassengers)
	}

	if err := UpdateCarCapacity(ctx, db, car.ID+100, 3); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCarRefs_InsertionOrderAndEmpty(t *testing.T) {
	db := newCarpoolDB(t)
	ctx := context.Background()
	trip := seedTrip(t, db, "c1", "Beach")
	empty := seedTrip(t, db, "c1", "Hike")

	z := seedCar(t, db, trip.ID, "u1", "Zed", nil)
	a := seedCar(t, db, trip.ID, "u2", "Alice", intPtr(2))

	refs, err := ListCarRefs(ctx, db, trip.ID)
	if err != nil {
		t.Fatalf("ListCarRefs: %v", err)
	}
	if len(refs) != 2 || refs[0].ID != z.ID || refs[0].Name != "Zed" || refs[1].ID != a.ID {
		t.Fatalf("expected id order [Zed, Alice], got %+v", refs)
	}

	none, err := ListCarRefs(ctx, db, empty.ID)
	if err != nil {
		t.Fatalf("ListCarRefs empty: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}
}
