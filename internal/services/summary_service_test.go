package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-carpool-bot/internal/summary"
)

func TestSummary_BeachExample(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	trip := f.trip(t, "c1", "Beach")
	alice := f.car(t, "c1", trip.ID, "u1", "Alice")
	carl := f.car(t, "c1", trip.ID, "u3", "Carl")
	f.car(t, "c1", trip.ID, "u4", "Dora") // never joined: omitted

	if _, err := f.cars.UpdateCapacity(ctx, 2, "c1", "u1"); err != nil {
		t.Fatalf("UpdateCapacity: %v", err)
	}
	f.join(t, alice, "u1", "Alice")
	f.join(t, alice, "u2", "Bob")
	f.join(t, carl, "u3", "Carl")

	got, err := f.summaries.Render(ctx, trip.ID, summary.Markdown)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "📆 *Beach*\n" +
		"\n" +
		"🚗 *Alice* [2/2] 🚫:\n" +
		"• Alice\n" +
		"• Bob\n" +
		"\n" +
		"🚙 *Carl* [1/5]:\n" +
		"• Carl\n"
	if got != want {
		t.Fatalf("Render mismatch:\n got: %q\nwant: %q", got, want)
	}

	again, err := f.summaries.Render(ctx, trip.ID, summary.Markdown)
	if err != nil || again != got {
		t.Fatalf("second render differs: %q (%v)", again, err)
	}
}

func TestSummary_Describe_CarsAndActions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trip := f.trip(t, "c1", "Beach")
	a := f.car(t, "c1", trip.ID, "u1", "Alice")
	f.car(t, "c1", trip.ID, "u2", "Bob")

	ts, err := f.summaries.Describe(ctx, trip.ID, summary.Plain)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if ts.Trip.ID != trip.ID || ts.Text != "Beach\n" {
		t.Fatalf("unexpected summary: %+v", ts)
	}
	if len(ts.Cars) != 2 || len(ts.Actions) != 3 || ts.Actions[0].Label != "Join Alice" || ts.Cars[0].ID != a {
		t.Fatalf("unexpected cars/actions: %+v / %+v", ts.Cars, ts.Actions)
	}
}

func TestSummary_UnknownTrip(t *testing.T) {
	f := newFixture(t)
	if _, err := f.summaries.Render(context.Background(), 404, summary.Markdown); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}
