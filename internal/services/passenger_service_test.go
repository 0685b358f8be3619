package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
	"github.com/tbourn/go-carpool-bot/internal/repo"
)

func TestPassenger_Join_FirstJoinCreatesOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trip := f.trip(t, "c1", "Beach")
	a := f.car(t, "c1", trip.ID, "u1", "Alice")

	roster, err := f.passengers.Join(ctx, a, "u2", "Bob")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if roster.TripID != trip.ID || len(roster.Cars) != 1 || roster.Cars[0].ID != a {
		t.Fatalf("unexpected roster: %+v", roster)
	}
	if n := count(t, f.db, &domain.Passenger{}, "user_id = ?", "u2"); n != 1 {
		t.Fatalf("expected 1 passenger row, got %d", n)
	}
}

func TestPassenger_Join_SameCarTwiceIsConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trip := f.trip(t, "c1", "Beach")
	a := f.car(t, "c1", trip.ID, "u1", "Alice")
	f.join(t, a, "u2", "Bob")

	_, err := f.passengers.Join(ctx, a, "u2", "Bob")
	if !errors.Is(err, ErrAlreadyInCar) || !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrAlreadyInCar, got %v", err)
	}
	if n := count(t, f.db, &domain.Passenger{}, "user_id = ?", "u2"); n != 1 {
		t.Fatalf("row count changed: %d", n)
	}
}

func TestPassenger_Join_OtherCarMovesRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trip := f.trip(t, "c1", "Beach")
	a := f.car(t, "c1", trip.ID, "u1", "Alice")
	b := f.car(t, "c1", trip.ID, "u3", "Carl")
	f.join(t, a, "u2", "Bob")

	if _, err := f.passengers.Join(ctx, b, "u2", "Bob"); err != nil {
		t.Fatalf("Join B: %v", err)
	}
	var rows []domain.Passenger
	if err := f.db.Where("user_id = ?", "u2").Find(&rows).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 1 || rows[0].CarID != b {
		t.Fatalf("expected single row in car %d, got %+v", b, rows)
	}

	// Moving back is allowed; only re-selecting the current car is rejected.
	if _, err := f.passengers.Join(ctx, a, "u2", "Bob"); err != nil {
		t.Fatalf("Join A again: %v", err)
	}
}

func TestPassenger_Join_SeparateTripsAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	beach := f.trip(t, "c1", "Beach")
	hike := f.trip(t, "c1", "Hike")
	a := f.car(t, "c1", beach.ID, "u1", "Alice")
	h := f.car(t, "c1", hike.ID, "u1", "Alice")

	f.join(t, a, "u2", "Bob")
	if _, err := f.passengers.Join(ctx, h, "u2", "Bob"); err != nil {
		t.Fatalf("Join other trip: %v", err)
	}
	if n := count(t, f.db, &domain.Passenger{}, "user_id = ?", "u2"); n != 2 {
		t.Fatalf("expected one row per trip, got %d", n)
	}
}

func TestPassenger_Join_UnknownCar(t *testing.T) {
	f := newFixture(t)
	if _, err := f.passengers.Join(context.Background(), 999, "u2", "Bob"); !errors.Is(err, ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
}

// callLog records which repository calls a service made, in order.
type callLog struct {
	repo.Carpool
	calls *[]string
}

func (l callLog) LockTrip(ctx context.Context, db *gorm.DB, id uint) error {
	*l.calls = append(*l.calls, "LockTrip")
	return l.Carpool.LockTrip(ctx, db, id)
}

func (l callLog) FindPassengerInTrip(ctx context.Context, db *gorm.DB, tripID uint, userID string) (*domain.Passenger, error) {
	*l.calls = append(*l.calls, "FindPassengerInTrip")
	return l.Carpool.FindPassengerInTrip(ctx, db, tripID, userID)
}

func (l callLog) CreatePassenger(ctx context.Context, db *gorm.DB, carID uint, userID, name string) (*domain.Passenger, error) {
	*l.calls = append(*l.calls, "CreatePassenger")
	return l.Carpool.CreatePassenger(ctx, db, carID, userID, name)
}

func TestPassenger_Join_LocksTripBeforeMembershipCheck(t *testing.T) {
	f := newFixture(t)
	trip := f.trip(t, "c1", "Beach")
	a := f.car(t, "c1", trip.ID, "u1", "Alice")

	var calls []string
	svc := NewPassengerService(f.db, callLog{calls: &calls})
	if _, err := svc.Join(context.Background(), a, "u2", "Bob"); err != nil {
		t.Fatalf("Join: %v", err)
	}
	want := []string{"LockTrip", "FindPassengerInTrip", "CreatePassenger"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v; want %v", calls, want)
	}
}

func TestPassenger_JoinInChat_RejectsCarOfAnotherChat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.trip(t, "c2", "Ski")
	car := f.car(t, "c2", other.ID, "u1", "Alice")

	if _, err := f.passengers.JoinInChat(ctx, "c1", car, "u2", "Bob"); !errors.Is(err, ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
	if n := count(t, f.db, &domain.Passenger{}, "user_id = ?", "u2"); n != 0 {
		t.Fatalf("foreign-chat join wrote %d rows", n)
	}

	roster, err := f.passengers.JoinInChat(ctx, "c2", car, "u2", "Bob")
	if err != nil || roster.TripID != other.ID {
		t.Fatalf("JoinInChat = (%+v, %v)", roster, err)
	}
}
