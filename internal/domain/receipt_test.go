package domain

import (
	"testing"
	"time"
)

func TestTripReceipt_Live(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	r := TripReceipt{ExpiresAt: at}
	if !r.Live(at.Add(-time.Second)) || r.Live(at) || r.Live(at.Add(time.Hour)) {
		t.Fatalf("Live must hold strictly before ExpiresAt")
	}
}

func TestTripReceipt_ScopedToChatUserAndKey(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&TripReceipt{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if !db.Migrator().HasTable("trip_receipts") || !db.Migrator().HasIndex(&TripReceipt{}, "ux_trip_receipt") {
		t.Fatalf("trip_receipts table or ux_trip_receipt index missing")
	}

	exp := time.Now().UTC().Add(time.Hour)
	first := TripReceipt{ChatID: "c1", UserID: "u1", RequestKey: "retry-1", TripID: 7, Status: 201, ExpiresAt: exp}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.ID == 0 || first.CreatedAt.IsZero() {
		t.Fatalf("id/created_at not populated: %+v", first)
	}

	again := TripReceipt{ChatID: "c1", UserID: "u1", RequestKey: "retry-1", TripID: 8, Status: 201, ExpiresAt: exp}
	if err := db.Create(&again).Error; err == nil {
		t.Fatalf("same chat, user and key must be rejected")
	}

	for _, r := range []TripReceipt{
		{ChatID: "c2", UserID: "u1", RequestKey: "retry-1"},
		{ChatID: "c1", UserID: "u2", RequestKey: "retry-1"},
	} {
		r.TripID, r.Status, r.ExpiresAt = 9, 201, exp
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("%s/%s is a different request: %v", r.ChatID, r.UserID, err)
		}
	}
}
