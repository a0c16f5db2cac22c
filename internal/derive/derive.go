// Package derive computes presentation values from goals.
// Nothing here is cached; callers recompute after every state change.
package derive

import (
	"cmp"
	"math"
	"slices"

	"github.com/templui/goaltracker/internal/model"
)

// Ordered returns a copy of goals with priority goals first, newest first within each group.
// Goals with equal keys keep their relative order.
func Ordered(goals []model.Goal) []model.Goal {
	out := slices.Clone(goals)
	slices.SortStableFunc(out, func(a, b model.Goal) int {
		if a.Priority != b.Priority {
			if a.Priority {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.CreatedAt.UnixMilli(), a.CreatedAt.UnixMilli())
	})
	return out
}

// ProgressPercent is value/target as a whole percentage clamped to 0..100.
// A non-positive target is treated as 1.
func ProgressPercent(p model.Progress) int {
	target := p.Target
	if !(target > 0) {
		target = 1
	}
	pct := roundHalfUp(finite(p.Value) / target * 100)
	return int(min(100, max(0, pct)))
}

// ProgressRemaining is how far the value is from the target, never negative
func ProgressRemaining(p model.Progress) float64 {
	return math.Max(0, p.Target-finite(p.Value))
}

type ChecklistProgress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

func ChecklistCompletion(c model.Checklist) ChecklistProgress {
	done := c.DoneCount()
	total := len(c.Tasks)
	if total == 0 {
		return ChecklistProgress{Done: done, Total: 0, Percent: 0}
	}
	return ChecklistProgress{
		Done:    done,
		Total:   total,
		Percent: int(roundHalfUp(float64(done) / float64(total) * 100)),
	}
}

// roundHalfUp rounds .5 toward positive infinity
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
