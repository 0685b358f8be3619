package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-carpool-bot/internal/http/middleware"
	"github.com/tbourn/go-carpool-bot/internal/services"
)

// ErrorResponse is the error body of every endpoint. Message is the short
// text a chat adapter can show to the user as is.
//
//	HTTP/1.1 409 Conflict
//	{"request_id":"5f0c…","code":"conflict","message":"car already added"}
type ErrorResponse struct {
	// Echo of the X-Request-ID response header.
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// One of the ErrCode* constants.
	Code    string `json:"code" example:"conflict"`
	Message string `json:"message" example:"car already added"`
}

// fail aborts with an ErrorResponse. Server errors are logged on the
// request logger together with the operation that failed.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("operation", middleware.Operation(c)).
			Msg(msg)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail lets the router answer unmatched routes with the same envelope.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) { c.JSON(status, body) }

func noContent(c *gin.Context) { c.Status(http.StatusNoContent) }

// failService maps service errors onto the envelope: NotFound is 404,
// Conflict is 409 and anything else is a 500 with the generic persistence
// message. Causes never reach the body.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, userMessage(err))
	case errors.Is(err, services.ErrConflict):
		fail(c, http.StatusConflict, ErrCodeConflict, userMessage(err))
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, services.ErrPersistence.Error())
	}
}

// userMessage returns the short text shown to chat users for known errors.
func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrTripNotFound):
		return "no trip found"
	case errors.Is(err, services.ErrCarNotFound):
		return "no car found"
	case errors.Is(err, services.ErrCarAlreadyAdded):
		return "car already added"
	case errors.Is(err, services.ErrAlreadyInCar):
		return "you are already in that car"
	case errors.Is(err, services.ErrNotFound):
		return "resource not found"
	case errors.Is(err, services.ErrConflict):
		return "conflict"
	default:
		return services.ErrPersistence.Error()
	}
}
