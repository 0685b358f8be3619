// Package handlers exposes the carpool operations over REST.
//
// Handlers are transport-thin: they resolve the caller's identity and display
// name, validate input, call application services, and translate results
// into a TripView or an ErrorResponse.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-carpool-bot/internal/domain"
	"github.com/tbourn/go-carpool-bot/internal/repo"
	"github.com/tbourn/go-carpool-bot/internal/services"
	"github.com/tbourn/go-carpool-bot/internal/summary"
	"github.com/tbourn/go-carpool-bot/internal/utils"
)

//
// Service contracts (context-aware)
//

// TripService defines the trip registry operations consumed by handlers.
type TripService interface {
	// Create opens a new trip in chatID.
	Create(ctx context.Context, chatID, name string) (*domain.Trip, error)
	// RecordMessageRef stores which chat message displays the trip.
	RecordMessageRef(ctx context.Context, tripID uint, ref string) error
	// ListPage returns one page of a chat's trips and the total count.
	ListPage(ctx context.Context, chatID string, page utils.Page) ([]domain.Trip, int64, error)
	// Stats returns the counters used for ETags.
	Stats(ctx context.Context, tripID uint) (*repo.TripStats, error)
	// Replay returns a trip created earlier under the same idempotency key.
	Replay(ctx context.Context, userID, chatID, key string) (*domain.Trip, error)
	// Remember stores the idempotency key of a created trip.
	Remember(ctx context.Context, userID, chatID, key string, tripID uint, status int) error
}

// CarService defines the car registry operations.
type CarService interface {
	Add(ctx context.Context, chatID string, tripID uint, userID, displayName string) (*services.Roster, error)
	UpdateCapacity(ctx context.Context, maxPassengers int, chatID, userID string) (*services.Roster, error)
}

// PassengerService defines passenger assignment.
type PassengerService interface {
	Join(ctx context.Context, carID uint, userID, displayName string) (*services.Roster, error)
	// JoinInChat fails with services.ErrCarNotFound for cars outside chatID.
	JoinInChat(ctx context.Context, chatID string, carID uint, userID, displayName string) (*services.Roster, error)
}

// SummaryService renders a trip.
type SummaryService interface {
	Describe(ctx context.Context, tripID uint, style summary.Style) (*services.TripSummary, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the carpool API.
type Handlers struct {
	trips      TripService
	cars       CarService
	passengers PassengerService
	summaries  SummaryService
	style      summary.Style
}

// New constructs Handlers bound to the given services. Trip texts are
// rendered with style.
func New(trips TripService, cars CarService, passengers PassengerService, summaries SummaryService, style summary.Style) *Handlers {
	return &Handlers{trips: trips, cars: cars, passengers: passengers, summaries: summaries, style: style}
}

// userID extracts the chat user id from Gin context (set by the Identity
// middleware), falling back to the X-User-ID header.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		return strings.TrimSpace(c.GetHeader("X-User-ID"))
	}
	return ""
}

// requireUser writes a 400 and returns false when the caller sent no identity.
func requireUser(c *gin.Context) (string, bool) {
	uid := userID(c)
	if uid == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "X-User-ID header required")
		return "", false
	}
	return uid, true
}

//
// DTOs
//

// Member carries the chat profile used to derive a display name.
type Member struct {
	Username  string `json:"username" example:"alice"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Smith"`
}

// DisplayName picks the name shown in summaries: the username, else the
// first initial and last name ("A.Smith"), else "ID:<user id>".
func (m Member) DisplayName(userID string) string {
	if u := cleanName(m.Username); u != "" {
		return u
	}
	first, last := cleanName(m.FirstName), cleanName(m.LastName)
	if first != "" && last != "" {
		r, _ := utf8.DecodeRuneInString(first)
		return string(r) + "." + last
	}
	return "ID:" + userID
}

// maxNameLen bounds trip names and display names, in characters.
const maxNameLen = 255

// checkName writes a 400 and returns false when s is longer than maxNameLen.
func checkName(c *gin.Context, field, s string) bool {
	if utf8.RuneCountInString(strings.TrimSpace(s)) > maxNameLen {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("%s must be at most %d characters", field, maxNameLen))
		return false
	}
	return true
}

// displayName resolves the caller's name and enforces maxNameLen on it.
func displayName(c *gin.Context, m Member, uid string) (string, bool) {
	name := m.DisplayName(uid)
	return name, checkName(c, "display name", name)
}

func cleanName(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// TripView is the response of every trip-changing endpoint: the rendered
// text plus the cars and buttons an adapter needs to redraw the message.
type TripView struct {
	TripID     uint             `json:"trip_id" example:"7"`
	ChatID     string           `json:"chat_id" example:"C024BE91L"`
	Name       string           `json:"name" example:"Beach"`
	MessageRef *string          `json:"message_ref,omitempty" example:"1718030000.000100"`
	Text       string           `json:"text" example:"📆 *Beach*\n"`
	Cars       []domain.CarRef  `json:"cars"`
	Actions    []summary.Action `json:"actions"`
}

// respondTrip renders tripID and writes it with status.
func (h *Handlers) respondTrip(c *gin.Context, status int, tripID uint) {
	ts, err := h.summaries.Describe(c.Request.Context(), tripID, h.style)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, status, TripView{
		TripID:     ts.Trip.ID,
		ChatID:     ts.Trip.ChatID,
		Name:       ts.Trip.Name,
		MessageRef: ts.Trip.MessageRef,
		Text:       ts.Text,
		Cars:       ts.Cars,
		Actions:    ts.Actions,
	})
}
