package store

import (
	"github.com/templui/goaltracker/internal/clock"
	"github.com/templui/goaltracker/internal/model"
)

// StreakPolicy carries what the streak rule needs from outside the state:
// whether the streak lab is on, and today's calendar day.
type StreakPolicy struct {
	Enabled bool
	Today   clock.DayKey
}

// ApplyStreak credits a qualifying update to the goal's streak.
// It is idempotent per day: a second update on the same day changes nothing.
func ApplyStreak(g model.Goal, p StreakPolicy) model.Goal {
	if !p.Enabled {
		return g
	}

	today := p.Today
	if g.LastDone != nil && *g.LastDone == today {
		return g
	}

	if g.LastDone == nil {
		g.LastDone = &today
		g.Streak = 1
		return g
	}

	gap, err := clock.DaysBetween(*g.LastDone, today)
	switch {
	case err == nil && gap == 1:
		g.Streak++
	case err == nil && gap > 1:
		g.Streak = 1
	default:
		// lastDone in the future or unreadable: never drop below 1 or below the current streak
		g.Streak = max(1, g.Streak)
	}
	g.LastDone = &today

	return g
}
