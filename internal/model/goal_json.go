package model

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/templui/goaltracker/internal/clock"
)

// goalRecord is the flat stored shape of a goal:
// {id, title, type, priority, createdAt, streak, lastDone, count?, target?, value?, tasks?}
type goalRecord struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Type      GoalKind      `json:"type"`
	Priority  bool          `json:"priority"`
	CreatedAt int64         `json:"createdAt"`
	Streak    int           `json:"streak"`
	LastDone  *clock.DayKey `json:"lastDone"`
	Count     *int          `json:"count,omitempty"`
	Target    *float64      `json:"target,omitempty"`
	Value     *float64      `json:"value,omitempty"`
	Tasks     []Task        `json:"tasks,omitempty"`
}

func (g Goal) MarshalJSON() ([]byte, error) {
	rec := goalRecord{
		ID:        g.ID,
		Title:     g.Title,
		Type:      g.Kind(),
		Priority:  g.Priority,
		CreatedAt: g.CreatedAt.UnixMilli(),
		Streak:    g.Streak,
		LastDone:  g.LastDone,
	}

	switch p := g.Payload.(type) {
	case Counter:
		target := float64(p.Target)
		rec.Count = &p.Count
		rec.Target = &target
	case Progress:
		rec.Value = &p.Value
		rec.Target = &p.Target
	case Checklist:
		rec.Tasks = p.Tasks
		if rec.Tasks == nil {
			rec.Tasks = []Task{}
		}
	default:
		return nil, fmt.Errorf("goal %d has no payload", g.ID)
	}

	return json.Marshal(rec)
}

// UnmarshalJSON is forgiving about missing numbers but rejects unknown kinds
func (g *Goal) UnmarshalJSON(data []byte) error {
	var rec goalRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	if !rec.Type.Valid() {
		return fmt.Errorf("goal %d: unknown type %q", rec.ID, rec.Type)
	}

	out := Goal{
		ID:        rec.ID,
		Title:     rec.Title,
		Priority:  rec.Priority,
		CreatedAt: time.UnixMilli(rec.CreatedAt),
		Streak:    max(0, rec.Streak),
		LastDone:  rec.LastDone,
	}
	if out.LastDone != nil && *out.LastDone == "" {
		out.LastDone = nil
	}

	switch rec.Type {
	case GoalKindCounter:
		c := Counter{Target: CounterTarget}
		if rec.Count != nil && *rec.Count > 0 {
			c.Count = *rec.Count
		}
		if rec.Target != nil && *rec.Target > 0 {
			c.Target = int(*rec.Target)
		}
		out.Payload = c
	case GoalKindProgress:
		p := Progress{Target: DefaultProgressTarget}
		if rec.Value != nil && isFinite(*rec.Value) {
			p.Value = *rec.Value
		}
		if rec.Target != nil && *rec.Target > 0 && isFinite(*rec.Target) {
			p.Target = *rec.Target
		}
		out.Payload = p
	case GoalKindChecklist:
		tasks := rec.Tasks
		if tasks == nil {
			tasks = []Task{}
		}
		out.Payload = Checklist{Tasks: tasks}
	}

	*g = out
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
