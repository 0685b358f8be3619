// Car HTTP handlers.
//
// This file exposes REST endpoints for cars:
//   - POST /chats/{chat_id}/trips/{trip_id}/cars   (register the caller's car)
//   - PUT  /chats/{chat_id}/seats             (set capacity of the caller's newest car)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-carpool-bot/internal/http/middleware"
	"github.com/tbourn/go-carpool-bot/internal/utils"
)

// AddCarRequest carries the caller's chat profile; the car is named after it.
type AddCarRequest struct {
	Member
}

// UpdateSeatsRequest is the JSON payload for setting a car's capacity.
type UpdateSeatsRequest struct {
	// MaxPassengers is the new capacity (>= 1).
	MaxPassengers int `json:"max_passengers" binding:"required,min=1" example:"4"`
}

// AddCar godoc
// @ID          addCar
// @Summary     Add a car
// @Description Registers a car for the caller in the trip. A user may register one car per trip.
// @Tags        Cars
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                  true  "Chat user id"  example(U123)
// @Param       chat_id    path    string                  true  "Chat id"       example(C024BE91L)
// @Param       trip_id    path    int                     true  "Trip id"       minimum(1)
// @Param       body       body    handlers.AddCarRequest  false "Caller profile"
//
// @Success     200  {object}  handlers.TripView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Trip not found in this chat"
// @Failure     409  {object}  handlers.ErrorResponse  "Car already added"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chats/{chat_id}/trips/{trip_id}/cars [post]
func (h *Handlers) AddCar(c *gin.Context) {
	tripID, okID := utils.ParseID(c.Param("trip_id"))
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "trip id must be a positive integer")
		return
	}
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	var req AddCarRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	name, okName := displayName(c, req.Member, uid)
	if !okName {
		return
	}

	middleware.SetOperation(c, "add_car")
	roster, err := h.cars.Add(c.Request.Context(), c.Param("chat_id"), tripID, uid, name)
	h.respondRoster(c, roster, err)
}

// UpdateSeats godoc
// @ID          updateSeats
// @Summary     Set car capacity
// @Description Sets max_passengers on the caller's most recently added car in this chat (highest car id).
// @Tags        Cars
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                       true  "Chat user id"  example(U123)
// @Param       chat_id    path    string                       true  "Chat id"       example(C024BE91L)
// @Param       body       body    handlers.UpdateSeatsRequest  true  "Capacity"
//
// @Success     200  {object}  handlers.TripView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No car found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chats/{chat_id}/seats [put]
func (h *Handlers) UpdateSeats(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	var req UpdateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "max_passengers must be a positive integer")
		return
	}

	middleware.SetOperation(c, "update_car_capacity")
	roster, err := h.cars.UpdateCapacity(c.Request.Context(), req.MaxPassengers, c.Param("chat_id"), uid)
	h.respondRoster(c, roster, err)
}

// bindOptionalJSON binds a JSON body when one was sent. An empty body leaves
// dst untouched.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return false
	}
	return true
}
