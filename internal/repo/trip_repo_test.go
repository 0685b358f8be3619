package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

func TestCreateTrip_Error_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if _, err := CreateTrip(context.Background(), db, "c1", "Beach"); err == nil {
		t.Fatalf("expected error due to missing trips table")
	}
}

func TestCreateTrip_Success_AssignsIncreasingIDs(t *testing.T) {
	db := newCarpoolDB(t)
	ctx := context.Background()

	a, err := CreateTrip(ctx, db, "c1", "Beach")
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	b, err := CreateTrip(ctx, db, "c1", "Hike")
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if a.ID == 0 || b.ID <= a.ID {
		t.Fatalf("expected increasing ids, got %d then %d", a.ID, b.ID)
	}
	if a.MessageRef != nil {
		t.Fatalf("message ref must start unset, got %q", *a.MessageRef)
	}

	var got domain.Trip
	if err := db.First(&got, a.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.ChatID != "c1" || got.Name != "Beach" {
		t.Fatalf("unexpected stored trip: %+v", got)
	}
}

func TestGetTrip_FoundAndNotFound(t *testing.T) {
	db := newCarpoolDB(t)
	trip := seedTrip(t, db, "c1", "Beach")

	got, err := GetTrip(context.Background(), db, trip.ID)
	if err != nil || got.Name != "Beach" {
		t.Fatalf("GetTrip = (%+v, %v)", got, err)
	}
	if _, err := GetTrip(context.Background(), db, trip.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetTripInChat_ScopesByChat(t *testing.T) {
	db := newCarpoolDB(t)
	trip := seedTrip(t, db, "c1", "Beach")

	if _, err := GetTripInChat(context.Background(), db, "c1", trip.ID); err != nil {
		t.Fatalf("same chat: %v", err)
	}
	if _, err := GetTripInChat(context.Background(), db, "c2", trip.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other chat: expected ErrNotFound, got %v", err)
	}
}

func TestSetTripMessageRef_OverwritesAndNotFound(t *testing.T) {
	db := newCarpoolDB(t)
	ctx := context.Background()
	trip := seedTrip(t, db, "c1", "Beach")

	if err := SetTripMessageRef(ctx, db, trip.ID, "m-1"); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := SetTripMessageRef(ctx, db, trip.ID, "m-2"); err != nil {
		t.Fatalf("second set: %v", err)
	}
	got, err := GetTrip(ctx, db, trip.ID)
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if got.MessageRef == nil || *got.MessageRef != "m-2" {
		t.Fatalf("expected overwritten ref m-2, got %v", got.MessageRef)
	}

	if err := SetTripMessageRef(ctx, db, trip.ID+100, "m-3"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCountTrips_And_ListTripsPage(t *testing.T) {
	db := newCarpoolDB(t)
	ctx := context.Background()

	var ids []uint
	for _, name := range []string{"A", "B", "C"} {
		ids = append(ids, seedTrip(t, db, "c1", name).ID)
	}
	seedTrip(t, db, "c2", "other chat")

	n, err := CountTrips(ctx, db, "c1")
	if err != nil || n != 3 {
		t.Fatalf("CountTrips = (%d, %v); want 3", n, err)
	}
	if n, _ := CountTrips(ctx, db, "nobody"); n != 0 {
		t.Fatalf("CountTrips(nobody) = %d", n)
	}

	page, err := ListTripsPage(ctx, db, "c1", 0, 2)
	if err != nil {
		t.Fatalf("ListTripsPage: %v", err)
	}
	if len(page) != 2 || page[0].ID != ids[2] || page[1].ID != ids[1] {
		t.Fatalf("first page not newest-first: %+v", page)
	}
	rest, _ := ListTripsPage(ctx, db, "c1", 2, 2)
	if len(rest) != 1 || rest[0].ID != ids[0] {
		t.Fatalf("second page: %+v", rest)
	}
	empty, err := ListTripsPage(ctx, db, "nobody", 0, 10)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty page should be a non-nil empty slice: %#v, %v", empty, err)
	}
}

func TestLockTrip_ExistingAndMissing(t *testing.T) {
	db := newCarpoolDB(t)
	ctx := context.Background()
	trip := seedTrip(t, db, "c1", "Beach")

	err := db.Transaction(func(tx *gorm.DB) error {
		return LockTrip(ctx, tx, trip.ID)
	})
	if err != nil {
		t.Fatalf("LockTrip: %v", err)
	}
	if err := LockTrip(ctx, db, trip.ID+100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLockTrip_RowLockPerDialect(t *testing.T) {
	pg, err := gorm.Open(postgres.Open("host=localhost user=carpool dbname=carpool sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres dialector: %v", err)
	}
	lock := func(tx *gorm.DB) *gorm.DB { return lockTripQuery(tx, 7).Take(&domain.Trip{}) }

	if got := pg.ToSQL(lock); !strings.Contains(got, "FOR UPDATE") {
		t.Fatalf("postgres query must lock the row: %s", got)
	}
	if got := newCarpoolDB(t).ToSQL(lock); strings.Contains(got, "FOR UPDATE") {
		t.Fatalf("sqlite query must not carry a lock clause: %s", got)
	}
}
