package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

// ErrDuplicate is returned by SaveTripReceipt when (chat, user, key) already
// has a receipt.
var ErrDuplicate = errors.New("duplicate")

// FindTripReceipt returns the receipt for (chatID, userID, key) that is still
// live at now, or ErrNotFound. Requests outside a chat never replay.
func FindTripReceipt(ctx context.Context, db *gorm.DB, chatID, userID, key string, now time.Time) (*domain.TripReceipt, error) {
	if strings.TrimSpace(chatID) == "" || key == "" {
		return nil, ErrNotFound
	}
	var r domain.TripReceipt
	err := db.WithContext(ctx).
		Where(&domain.TripReceipt{ChatID: chatID, UserID: userID, RequestKey: key}).
		Where("expires_at > ?", now).
		Take(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SaveTripReceipt stores that key produced tripID with status, replayable
// for ttl.
func SaveTripReceipt(ctx context.Context, db *gorm.DB, chatID, userID, key string, tripID uint, status int, ttl time.Duration) (*domain.TripReceipt, error) {
	r := &domain.TripReceipt{
		ChatID:     chatID,
		UserID:     userID,
		RequestKey: key,
		TripID:     tripID,
		Status:     status,
		ExpiresAt:  time.Now().UTC().Add(ttl),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		if IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return r, nil
}

// IsDuplicate reports a unique-constraint violation. Drivers that do not
// translate errors are matched on their message: SQLite says "UNIQUE
// constraint failed", Postgres "duplicate key value".
func IsDuplicate(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"unique constraint", "constraint failed: unique", "duplicate key"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
