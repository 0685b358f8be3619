// Package repo stores trips, cars, passengers and trip receipts with GORM.
// This file holds the trip queries.
//
// Every function takes the *gorm.DB to run on, so a service can pass its
// transaction. Functions only compose queries; carpool rules live in the
// services package. A missing trip is ErrNotFound (gorm.ErrRecordNotFound);
// other gorm errors are returned as they are.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound so callers can use either sentinel.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateTrip inserts a new Trip owned by chatID. The message reference is
// left unset until the adapter records it.
func CreateTrip(ctx context.Context, db *gorm.DB, chatID, name string) (*domain.Trip, error) {
	t := &domain.Trip{ChatID: chatID, Name: name}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTrip fetches a trip by id regardless of chat.
func GetTrip(ctx context.Context, db *gorm.DB, id uint) (*domain.Trip, error) {
	var t domain.Trip
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTripInChat fetches a trip only when it belongs to chatID. A trip of
// another chat is reported as ErrNotFound.
func GetTripInChat(ctx context.Context, db *gorm.DB, chatID string, id uint) (*domain.Trip, error) {
	var t domain.Trip
	err := db.WithContext(ctx).
		Where("id = ? AND chat_id = ?", id, chatID).
		Take(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LockTrip takes a row lock on trip id that lasts until the surrounding
// transaction ends, so membership changes of one trip run one at a time.
// SQLite has no row locks and drops the clause; its single writer rejects the
// second of two overlapping write transactions instead.
func LockTrip(ctx context.Context, db *gorm.DB, id uint) error {
	var t domain.Trip
	return lockTripQuery(db.WithContext(ctx), id).Take(&t).Error
}

func lockTripQuery(db *gorm.DB, id uint) *gorm.DB {
	return db.Model(&domain.Trip{}).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id").
		Where("id = ?", id)
}

// SetTripMessageRef overwrites the message reference of a trip. It returns
// ErrNotFound when no trip matched.
func SetTripMessageRef(ctx context.Context, db *gorm.DB, id uint, ref string) error {
	res := db.WithContext(ctx).
		Model(&domain.Trip{}).
		Where("id = ?", id).
		Update("message_ref", ref)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountTrips returns how many trips chatID has.
func CountTrips(ctx context.Context, db *gorm.DB, chatID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Trip{}).
		Where("chat_id = ?", chatID).
		Count(&total).Error
	return total, err
}

// ListTripsPage returns a page of chatID's trips, newest (highest id) first.
// The caller computes offset and limit.
func ListTripsPage(ctx context.Context, db *gorm.DB, chatID string, offset, limit int) ([]domain.Trip, error) {
	out := []domain.Trip{}
	err := db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
