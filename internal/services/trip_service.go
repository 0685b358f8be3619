// Package services – TripService
//
// This file implements the Trip Registry: creating trips, recording which
// chat message displays a trip, and the idempotency bookkeeping that lets
// clients retry trip creation safely.
package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
	"github.com/tbourn/go-carpool-bot/internal/repo"
	"github.com/tbourn/go-carpool-bot/internal/utils"
)

// TripService owns the trip lifecycle.
type TripService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the carpool repository used by this service.
	Repo CarpoolRepo
	// IdempotencyTTL bounds how long a remembered trip creation can be replayed.
	IdempotencyTTL time.Duration
}

// NewTripService constructs a TripService with a 24h idempotency window.
func NewTripService(db *gorm.DB, r CarpoolRepo) *TripService {
	return &TripService{DB: db, Repo: r, IdempotencyTTL: 24 * time.Hour}
}

// Create inserts a new trip for chatID. The name is normalized but otherwise
// accepted as given.
func (s *TripService) Create(ctx context.Context, chatID, name string) (*domain.Trip, error) {
	ctx, span := otel.Tracer("services/TripService").Start(ctx, "Create",
		trace.WithAttributes(attribute.String("chat.id", chatID)),
	)
	defer span.End()

	var trip *domain.Trip
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.Repo.CreateTrip(ctx, tx, chatID, normalizeName(name))
		if err != nil {
			return err
		}
		trip = t
		return nil
	})
	if err != nil {
		return nil, observe("create_trip", classify(ctx, "create_trip", err))
	}
	span.SetAttributes(attribute.Int64("trip.id", int64(trip.ID)))
	return trip, observe("create_trip", nil)
}

// RecordMessageRef stores where the trip's live message lives. Repeated
// calls overwrite the previous reference.
func (s *TripService) RecordMessageRef(ctx context.Context, tripID uint, ref string) error {
	ctx, span := otel.Tracer("services/TripService").Start(ctx, "RecordMessageRef",
		trace.WithAttributes(attribute.Int64("trip.id", int64(tripID))),
	)
	defer span.End()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.SetTripMessageRef(ctx, tx, tripID, ref); err != nil {
			if isNotFound(err) {
				return ErrTripNotFound
			}
			return err
		}
		return nil
	})
	return observe("record_message_ref", classify(ctx, "record_message_ref", err))
}

// Get returns a trip by id.
func (s *TripService) Get(ctx context.Context, tripID uint) (*domain.Trip, error) {
	t, err := s.Repo.GetTrip(ctx, s.DB.WithContext(ctx), tripID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, classify(ctx, "get_trip", err)
	}
	return t, nil
}

// ListPage returns one page of chatID's trips, newest first, with the total
// count. Count and page are read in one transaction so they agree.
func (s *TripService) ListPage(ctx context.Context, chatID string, page utils.Page) ([]domain.Trip, int64, error) {
	ctx, span := otel.Tracer("services/TripService").Start(ctx, "ListPage",
		trace.WithAttributes(attribute.String("chat.id", chatID), attribute.Int("page", page.Number)),
	)
	defer span.End()

	var (
		items []domain.Trip
		total int64
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.CountTrips(ctx, tx, chatID)
		if err != nil {
			return err
		}
		total = n
		if n == 0 {
			items = []domain.Trip{}
			return nil
		}
		items, err = s.Repo.ListTripsPage(ctx, tx, chatID, page.Offset(), page.Size)
		return err
	})
	if err != nil {
		return nil, 0, classify(ctx, "list_trips", err)
	}
	return items, total, nil
}

// Stats returns the counters used to build a trip's ETag.
func (s *TripService) Stats(ctx context.Context, tripID uint) (*repo.TripStats, error) {
	st, err := s.Repo.GetTripStats(ctx, s.DB.WithContext(ctx), tripID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripNotFound
		}
		return nil, classify(ctx, "trip_stats", err)
	}
	return st, nil
}

// Replay returns the trip created earlier under the same (user, chat, key),
// or (nil, nil) when nothing replayable exists.
func (s *TripService) Replay(ctx context.Context, userID, chatID, key string) (*domain.Trip, error) {
	if key == "" {
		return nil, nil
	}
	db := s.DB.WithContext(ctx)
	rec, err := s.Repo.FindTripReceipt(ctx, db, chatID, userID, key, time.Now().UTC())
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, classify(ctx, "idempotency_lookup", err)
	}
	t, err := s.Repo.GetTrip(ctx, db, rec.TripID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, classify(ctx, "idempotency_lookup", err)
	}
	return t, nil
}

// Remember records that key produced tripID. A concurrent duplicate is not
// an error: the first stored result wins.
func (s *TripService) Remember(ctx context.Context, userID, chatID, key string, tripID uint, status int) error {
	if key == "" {
		return nil
	}
	_, err := s.Repo.SaveTripReceipt(ctx, s.DB.WithContext(ctx), chatID, userID, key, tripID, status, s.IdempotencyTTL)
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		return classify(ctx, "idempotency_store", err)
	}
	return nil
}

// Exists reports whether a replayable record exists for (user, chat, key).
// It matches the middleware.IdempotencyLookup signature.
func (s *TripService) Exists(ctx context.Context, userID, chatID, key string, now time.Time) (bool, error) {
	_, err := s.Repo.FindTripReceipt(ctx, s.DB.WithContext(ctx), chatID, userID, key, now)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
