package domain

import "time"

// TripReceipt remembers which trip a create request produced, so that a
// retried create carrying the same Idempotency-Key gets the same trip back.
// Receipts are scoped to (chat, user, key) and stop replaying at ExpiresAt.
type TripReceipt struct {
	ID         uint      `gorm:"primaryKey"`
	ChatID     string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_trip_receipt,priority:1"`
	UserID     string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_trip_receipt,priority:2"`
	RequestKey string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_trip_receipt,priority:3"`
	TripID     uint      `gorm:"not null;index"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (TripReceipt) TableName() string { return "trip_receipts" }

// Live reports whether the receipt still replays at now.
func (r TripReceipt) Live(now time.Time) bool { return now.Before(r.ExpiresAt) }
