// Trip HTTP handlers.
//
// This file exposes REST endpoints for trips:
//   - POST /chats/{chat_id}/trips        (create, Idempotency-Key aware)
//   - GET  /chats/{chat_id}/trips        (paginated list, newest first)
//   - GET  /trips/{trip_id}                   (rendered state, ETag support)
//   - PUT  /trips/{trip_id}/message-ref       (record the live message reference)
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-carpool-bot/internal/domain"
	"github.com/tbourn/go-carpool-bot/internal/http/middleware"
	"github.com/tbourn/go-carpool-bot/internal/utils"
)

// CreateTripRequest is the JSON payload for opening a trip.
type CreateTripRequest struct {
	// Name is free text of at most 255 characters; surrounding whitespace is trimmed.
	Name string `json:"name" example:"Beach"`
}

// MessageRefRequest is the JSON payload for recording a trip message.
type MessageRefRequest struct {
	// MessageRef is the platform id of the message showing the trip.
	MessageRef string `json:"message_ref" binding:"required,min=1,max=128" example:"1718030000.000100"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page       int   `json:"page" example:"1"`
	PageSize   int   `json:"page_size" example:"20"`
	Total      int64 `json:"total" example:"3"`
	TotalPages int   `json:"total_pages" example:"1"`
	HasNext    bool  `json:"has_next" example:"false"`
}

// ListTripsResponse wraps a page of trips and pagination information.
type ListTripsResponse struct {
	Trips      []domain.Trip `json:"trips"`
	Pagination Pagination    `json:"pagination"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CreateTrip godoc
// @ID          createTrip
// @Summary     Start a trip
// @Description Opens a trip in the chat and returns its rendered state.
// @Description Supports idempotency via the Idempotency-Key header (same key → same trip).
// @Tags        Trips
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  true  "Chat user id"  example(U123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       chat_id          path    string  true  "Chat id"  example(C024BE91L)
// @Param       body             body    handlers.CreateTripRequest  true  "Trip payload"
//
// @Success     201  {object}  handlers.TripView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chats/{chat_id}/trips [post]
func (h *Handlers) CreateTrip(c *gin.Context) {
	ctx := c.Request.Context()
	chatID := strings.TrimSpace(c.Param("chat_id"))
	if chatID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "chat id required")
		return
	}
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if !checkName(c, "name", req.Name) {
		return
	}

	middleware.SetOperation(c, "create_trip")

	// Idempotency (replay path).
	idemKey := idempotencyKey(c)
	if idemKey != "" {
		if prev, err := h.trips.Replay(ctx, uid, chatID, idemKey); err == nil && prev != nil {
			c.Header("Idempotency-Replayed", "true")
			h.respondTrip(c, http.StatusCreated, prev.ID)
			return
		}
	}

	trip, err := h.trips.Create(ctx, chatID, req.Name)
	if err != nil {
		failService(c, err)
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" {
		if err := h.trips.Remember(ctx, uid, chatID, idemKey, trip.ID, http.StatusCreated); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record not stored")
		}
	}

	h.respondTrip(c, http.StatusCreated, trip.ID)
}

// ListTrips godoc
// @ID          listTrips
// @Summary     List trips (paginated)
// @Description Returns a page of the chat's trips, newest first.
// @Tags        Trips
// @Produce     json
//
// @Param       chat_id    path   string  true   "Chat id"         example(C024BE91L)
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListTripsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chats/{chat_id}/trips [get]
func (h *Handlers) ListTrips(c *gin.Context) {
	chatID := strings.TrimSpace(c.Param("chat_id"))
	if chatID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "chat id required")
		return
	}
	page := utils.ParsePage(c.Query("page"), c.Query("page_size"), defaultPageSize, maxPageSize)

	middleware.SetOperation(c, "list_trips")
	items, total, err := h.trips.ListPage(c.Request.Context(), chatID, page)
	if err != nil {
		failService(c, err)
		return
	}

	totalPages := page.TotalPages(total)
	ok(c, http.StatusOK, ListTripsResponse{
		Trips: items,
		Pagination: Pagination{
			Page:       page.Number,
			PageSize:   page.Size,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page.Number < totalPages,
		},
	})
}

// GetTrip godoc
// @ID          getTrip
// @Summary     Show a trip
// @Description Returns the rendered trip with its cars and actions. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Trips
// @Produce     json
//
// @Param       trip_id  path  int  true  "Trip id"  minimum(1)
//
// @Success     200  {object}  handlers.TripView
// @Success     304  "Not modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Trip not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /trips/{trip_id} [get]
func (h *Handlers) GetTrip(c *gin.Context) {
	tripID, okID := utils.ParseID(c.Param("trip_id"))
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "trip id must be a positive integer")
		return
	}

	// ETag pre-check (best effort).
	middleware.SetOperation(c, "get_trip")
	if st, err := h.trips.Stats(c.Request.Context(), tripID); err == nil {
		etag := fmt.Sprintf(`W/"trip:%d:%d:%d:%d"`, tripID, st.Cars, st.Passengers, st.LastChange.UnixNano())
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	h.respondTrip(c, http.StatusOK, tripID)
}

// RecordMessageRef godoc
// @ID          recordMessageRef
// @Summary     Record the trip message
// @Description Stores which chat message displays the trip. Repeated calls overwrite the reference.
// @Tags        Trips
// @Accept      json
//
// @Param       trip_id  path  int                          true  "Trip id"  minimum(1)
// @Param       body  body  handlers.MessageRefRequest  true  "Message reference"
//
// @Success     204  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Trip not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /trips/{trip_id}/message-ref [put]
func (h *Handlers) RecordMessageRef(c *gin.Context) {
	tripID, okID := utils.ParseID(c.Param("trip_id"))
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "trip id must be a positive integer")
		return
	}
	var req MessageRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message_ref required")
		return
	}
	ref := strings.TrimSpace(req.MessageRef)
	if ref == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message_ref required")
		return
	}

	middleware.SetOperation(c, "record_message_ref")
	if err := h.trips.RecordMessageRef(c.Request.Context(), tripID, ref); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// idempotencyKey returns the key validated by middleware.IdempotencyValidator,
// falling back to the raw header when that middleware is not mounted.
func idempotencyKey(c *gin.Context) string {
	if k, ok := middleware.GetIdempotencyKey(c); ok {
		return k
	}
	return strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
}
