package handlers

// Machine-readable values of ErrorResponse.Code. Chat adapters branch on
// these and show Message to the user.
const (
	ErrCodeBadRequest       = "bad_request"    // malformed body, id, or over-long name
	ErrCodeUnknownAction    = "unknown_action" // button payload that is neither add_car nor join_<id>
	ErrCodeNotFound         = "not_found"      // no trip or no car (also unmatched routes)
	ErrCodeConflict         = "conflict"       // car already added, already in that car
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeRateLimited      = "too_many_requests" // sent by the rate limiter middleware
	ErrCodeInternal         = "internal_error"    // storage failure; details only in logs
)
