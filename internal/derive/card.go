package derive

import (
	"slices"

	"github.com/templui/goaltracker/internal/clock"
	"github.com/templui/goaltracker/internal/model"
)

// Card is everything a renderer needs to draw one goal
type Card struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	Kind       model.GoalKind `json:"type"`
	Priority   bool           `json:"priority"`
	CreatedAt  int64          `json:"createdAt"`
	Streak     int            `json:"streak"`
	LastDone   *clock.DayKey  `json:"lastDone"`
	ShowStreak bool           `json:"showStreak"`
	Editing    bool           `json:"editing"`

	Count     *int               `json:"count,omitempty"`
	Value     *float64           `json:"value,omitempty"`
	Target    *float64           `json:"target,omitempty"`
	Percent   *int               `json:"percent,omitempty"`
	Remaining *float64           `json:"remaining,omitempty"`
	Checklist *ChecklistProgress `json:"checklist,omitempty"`
	Tasks     []model.Task       `json:"tasks,omitempty"`
}

type CardOptions struct {
	Labs      model.Labs
	EditingID int64
}

func NewCard(g model.Goal, opts CardOptions) Card {
	card := Card{
		ID:         g.ID,
		Title:      g.Title,
		Kind:       g.Kind(),
		Priority:   g.Priority,
		CreatedAt:  g.CreatedAt.UnixMilli(),
		Streak:     g.Streak,
		LastDone:   cloneDay(g.LastDone),
		ShowStreak: opts.Labs.Streak(),
		Editing:    opts.EditingID != 0 && opts.EditingID == g.ID,
	}

	switch p := g.Payload.(type) {
	case model.Counter:
		target := float64(p.Target)
		card.Count = &p.Count
		card.Target = &target
	case model.Progress:
		pct := ProgressPercent(p)
		remaining := ProgressRemaining(p)
		card.Value = &p.Value
		card.Target = &p.Target
		card.Percent = &pct
		card.Remaining = &remaining
	case model.Checklist:
		progress := ChecklistCompletion(p)
		card.Checklist = &progress
		card.Percent = &progress.Percent
		card.Tasks = slices.Clone(p.Tasks)
	}

	return card
}

// Cards derives one card per goal in display order
func Cards(goals []model.Goal, opts CardOptions) []Card {
	ordered := Ordered(goals)
	cards := make([]Card, len(ordered))
	for i, g := range ordered {
		cards[i] = NewCard(g, opts)
	}
	return cards
}

func cloneDay(d *clock.DayKey) *clock.DayKey {
	if d == nil {
		return nil
	}
	day := *d
	return &day
}
