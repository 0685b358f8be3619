package summary

import (
	"strconv"
	"strings"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

const (
	joinPrefix   = "join_"
	addCarPrefix = "add_car_"
)

// Action is one button offered under a trip summary. Value is the opaque
// payload the adapter sends back when the button is pressed.
type Action struct {
	Label string `json:"label" example:"Join Alice"`
	Value string `json:"value" example:"join_3"`
}

// Actions lists one join button per car in the given order, followed by the
// add-car button of the trip.
func Actions(tripID uint, cars []domain.CarRef) []Action {
	out := make([]Action, 0, len(cars)+1)
	for _, c := range cars {
		out = append(out, Action{
			Label: "Join " + c.Name,
			Value: joinPrefix + strconv.FormatUint(uint64(c.ID), 10),
		})
	}
	out = append(out, Action{
		Label: "Add 🚙",
		Value: addCarPrefix + strconv.FormatUint(uint64(tripID), 10),
	})
	return out
}

// ParseAction decodes an action value into its kind ("join" or "add_car")
// and the car or trip id it targets.
func ParseAction(value string) (kind string, id uint, ok bool) {
	var raw string
	switch {
	case strings.HasPrefix(value, addCarPrefix):
		kind, raw = "add_car", strings.TrimPrefix(value, addCarPrefix)
	case strings.HasPrefix(value, joinPrefix):
		kind, raw = "join", strings.TrimPrefix(value, joinPrefix)
	default:
		return "", 0, false
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return "", 0, false
	}
	return kind, uint(n), true
}
