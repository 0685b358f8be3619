// Passenger and action HTTP handlers.
//
// This file exposes:
//   - POST /cars/{car_id}/passengers        (join a car)
//   - POST /chats/{chat_id}/actions     (dispatch a button value such as "join_3")
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-carpool-bot/internal/http/middleware"
	"github.com/tbourn/go-carpool-bot/internal/services"
	"github.com/tbourn/go-carpool-bot/internal/summary"
	"github.com/tbourn/go-carpool-bot/internal/utils"
)

// JoinCarRequest carries the caller's chat profile.
type JoinCarRequest struct {
	Member
}

// ActionRequest is a button press forwarded by a chat adapter.
type ActionRequest struct {
	// Value is the opaque action payload, e.g. "join_3" or "add_car_7".
	Value string `json:"value" binding:"required" example:"join_3"`
	Member
}

// JoinCar godoc
// @ID          joinCar
// @Summary     Join a car
// @Description Puts the caller into the car, moving them out of any other car of the same trip.
// @Tags        Passengers
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                   true  "Chat user id"  example(U123)
// @Param       car_id     path    int                      true  "Car id"        minimum(1)
// @Param       body       body    handlers.JoinCarRequest  false "Caller profile"
//
// @Success     200  {object}  handlers.TripView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Car not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already in that car"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /cars/{car_id}/passengers [post]
func (h *Handlers) JoinCar(c *gin.Context) {
	carID, okID := utils.ParseID(c.Param("car_id"))
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "car id must be a positive integer")
		return
	}
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	var req JoinCarRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	name, okName := displayName(c, req.Member, uid)
	if !okName {
		return
	}
	middleware.SetOperation(c, "join_car")
	roster, err := h.passengers.Join(c.Request.Context(), carID, uid, name)
	h.respondRoster(c, roster, err)
}

// HandleAction godoc
// @ID          handleAction
// @Summary     Dispatch a button action
// @Description Runs the operation encoded in an action value returned by a previous TripView.
// @Tags        Actions
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string                  true  "Chat user id"  example(U123)
// @Param       chat_id    path    string                  true  "Chat id"       example(C024BE91L)
// @Param       body       body    handlers.ActionRequest  true  "Action"
//
// @Success     200  {object}  handlers.TripView
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or unknown action"
// @Failure     404  {object}  handlers.ErrorResponse  "Trip or car not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Conflict"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /chats/{chat_id}/actions [post]
func (h *Handlers) HandleAction(c *gin.Context) {
	uid, okUser := requireUser(c)
	if !okUser {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "value required")
		return
	}
	kind, id, okAction := summary.ParseAction(strings.TrimSpace(req.Value))
	if !okAction {
		fail(c, http.StatusBadRequest, ErrCodeUnknownAction, "unknown action")
		return
	}

	name, okName := displayName(c, req.Member, uid)
	if !okName {
		return
	}

	chatID := strings.TrimSpace(c.Param("chat_id"))
	var roster *services.Roster
	var err error
	middleware.SetOperation(c, "action_"+kind)
	switch kind {
	case "add_car":
		roster, err = h.cars.Add(c.Request.Context(), chatID, id, uid, name)
	default:
		roster, err = h.passengers.JoinInChat(c.Request.Context(), chatID, id, uid, name)
	}
	h.respondRoster(c, roster, err)
}

func (h *Handlers) respondRoster(c *gin.Context, roster *services.Roster, err error) {
	if err != nil {
		failService(c, err)
		return
	}
	h.respondTrip(c, http.StatusOK, roster.TripID)
}
