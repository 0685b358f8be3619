// Package summary turns the seat rows of a trip into the grouped text block
// and the action list shown by every chat adapter.
//
// Everything in this package is a pure function of its inputs: identical rows
// always render to byte-identical output.
package summary

import (
	"strconv"
	"strings"

	"github.com/tbourn/go-carpool-bot/internal/domain"
)

// CarGroup is one rendered section: a car name, its effective capacity and
// the display names of its members in row order.
type CarGroup struct {
	Car      string
	Capacity int
	Members  []string
}

// Full reports whether the group reached its effective capacity.
func (g CarGroup) Full() bool {
	return len(g.Members) >= g.Capacity
}

// Group folds seat rows into car groups keyed by car name. Groups appear in
// the order their name is first seen while scanning rows, so callers must
// pass rows already sorted by car name. Cars sharing a display name collapse
// into one group whose capacity comes from the first row seen.
func Group(rows []domain.Seat) []CarGroup {
	out := make([]CarGroup, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, r := range rows {
		i, ok := index[r.CarName]
		if !ok {
			i = len(out)
			index[r.CarName] = i
			out = append(out, CarGroup{
				Car:      r.CarName,
				Capacity: domain.EffectiveCapacity(r.MaxPassengers),
			})
		}
		out[i].Members = append(out[i].Members, r.PassengerName)
	}
	return out
}

// Style holds the glyphs and markup used by Render.
type Style struct {
	TripIcon string
	OpenIcon string
	FullIcon string
	Closed   string
	Bullet   string
	// Strong wraps text that should be emphasized (trip and car names).
	Strong string
}

var (
	// Markdown is the emoji style understood by Slack and Telegram.
	Markdown = Style{
		TripIcon: "📆",
		OpenIcon: "🚙",
		FullIcon: "🚗",
		Closed:   "🚫",
		Bullet:   "•",
		Strong:   "*",
	}

	// Plain renders without emoji or markup.
	Plain = Style{
		Closed: "(full)",
		Bullet: "-",
	}
)

// StyleByName maps a configured style name to a Style. Unknown names fall back
// to Markdown.
func StyleByName(name string) Style {
	if strings.EqualFold(strings.TrimSpace(name), "plain") {
		return Plain
	}
	return Markdown
}

// Render produces the trip header followed by one section per group, each
// section preceded by a blank line. Blank lines only separate blocks: the
// text ends with the last member line, and a trip without passengers renders
// its header line alone. Adapters that want trailing spacing add it.
func Render(tripName string, groups []CarGroup, st Style) string {
	var b strings.Builder
	b.WriteString(joinNonEmpty(st.TripIcon, st.strong(tripName)))
	b.WriteByte('\n')

	for _, g := range groups {
		icon, closed := st.OpenIcon, ""
		if g.Full() {
			icon, closed = st.FullIcon, st.Closed
		}
		count := "[" + strconv.Itoa(len(g.Members)) + "/" + strconv.Itoa(g.Capacity) + "]"

		b.WriteByte('\n')
		b.WriteString(joinNonEmpty(icon, st.strong(g.Car), count, closed))
		b.WriteString(":\n")
		for _, m := range g.Members {
			b.WriteString(joinNonEmpty(st.Bullet, m))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (st Style) strong(s string) string {
	return st.Strong + s + st.Strong
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
