// Package services – SummaryService
//
// This file renders the current state of a trip through the summary package.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
	"github.com/tbourn/go-carpool-bot/internal/summary"
)

// SummaryService reads a trip's seats and renders them.
type SummaryService struct {
	DB   *gorm.DB
	Repo CarpoolRepo
}

// NewSummaryService constructs a SummaryService.
func NewSummaryService(db *gorm.DB, r CarpoolRepo) *SummaryService {
	return &SummaryService{DB: db, Repo: r}
}

// TripSummary is everything an adapter needs to (re)draw a trip message.
type TripSummary struct {
	Trip    *domain.Trip
	Text    string
	Cars    []domain.CarRef
	Actions []summary.Action
}

// Render returns the grouped text of tripID in the given style.
func (s *SummaryService) Render(ctx context.Context, tripID uint, style summary.Style) (string, error) {
	ts, err := s.Describe(ctx, tripID, style)
	if err != nil {
		return "", err
	}
	return ts.Text, nil
}

// Describe renders tripID and also returns its cars and action buttons. All
// reads share one transaction so text and buttons reflect the same state.
func (s *SummaryService) Describe(ctx context.Context, tripID uint, style summary.Style) (*TripSummary, error) {
	ctx, span := otel.Tracer("services/SummaryService").Start(ctx, "Describe",
		trace.WithAttributes(attribute.Int64("trip.id", int64(tripID))),
	)
	defer span.End()

	out := &TripSummary{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trip, err := s.Repo.GetTrip(ctx, tx, tripID)
		if err != nil {
			if isNotFound(err) {
				return ErrTripNotFound
			}
			return err
		}
		seats, err := s.Repo.ListSeats(ctx, tx, tripID)
		if err != nil {
			return err
		}
		cars, err := s.Repo.ListCarRefs(ctx, tx, tripID)
		if err != nil {
			return err
		}

		out.Trip = trip
		out.Text = summary.Render(trip.Name, summary.Group(seats), style)
		out.Cars = cars
		out.Actions = summary.Actions(tripID, cars)
		return nil
	})
	if err != nil {
		return nil, classify(ctx, "render_summary", err)
	}
	return out, nil
}
