// Package store holds the goal collection and every operation on it.
// Operations are pure: they take a State and return the next State
// without touching the slices of the input.
package store

import (
	"time"

	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/validation"
)

type State struct {
	Goals  []model.Goal
	LastID int64
	Edit   *EditSession
}

// NewGoal is the creation form. Size is the raw sizing field: the target for
// progress goals and the task count for checklists. Counters ignore it.
type NewGoal struct {
	Title string
	Kind  model.GoalKind
	Size  string
}

// New wraps a loaded collection, seeding LastID so new ids never collide with it
func New(goals []model.Goal) State {
	s := State{Goals: goals}
	for _, g := range goals {
		s.LastID = max(s.LastID, g.ID)
	}
	return s
}

// Goal looks up a goal by id
func (s State) Goal(id int64) (model.Goal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return model.Goal{}, false
}

func (s State) nextID(now time.Time) int64 {
	return max(s.LastID+1, now.UnixMilli())
}

func AddGoal(s State, in NewGoal, now time.Time) State {
	title, err := validation.ValidateTitle(in.Title)
	if err != nil {
		return s
	}

	var payload model.Payload
	switch in.Kind {
	case model.GoalKindCounter:
		payload = model.Counter{Count: 0, Target: model.CounterTarget}
	case model.GoalKindProgress:
		payload = model.Progress{Value: 0, Target: validation.ProgressTarget(in.Size)}
	case model.GoalKindChecklist:
		payload = model.NewChecklist(validation.ChecklistLength(in.Size))
	default:
		return s
	}

	id := s.nextID(now)
	goal := model.Goal{
		ID:        id,
		Title:     title,
		Priority:  false,
		CreatedAt: now,
		Streak:    0,
		LastDone:  nil,
		Payload:   payload,
	}

	goals := make([]model.Goal, 0, len(s.Goals)+1)
	goals = append(goals, goal)
	goals = append(goals, s.Goals...)

	return State{Goals: goals, LastID: id, Edit: s.Edit}
}

func TogglePriority(s State, id int64) State {
	return replace(s, id, func(g model.Goal) (model.Goal, bool) {
		g.Priority = !g.Priority
		return g, true
	})
}

// DeleteGoal removes the goal and drops any edit session targeting it.
// Confirmation is the caller's job.
func DeleteGoal(s State, id int64) State {
	idx := indexOf(s.Goals, id)
	if idx < 0 {
		return s
	}

	goals := make([]model.Goal, 0, len(s.Goals)-1)
	goals = append(goals, s.Goals[:idx]...)
	goals = append(goals, s.Goals[idx+1:]...)

	edit := s.Edit
	if edit != nil && edit.GoalID == id {
		edit = nil
	}

	return State{Goals: goals, LastID: s.LastID, Edit: edit}
}

func RenameGoal(s State, id int64, title string) State {
	trimmed, err := validation.ValidateTitle(title)
	if err != nil {
		return s
	}
	return replace(s, id, func(g model.Goal) (model.Goal, bool) {
		g.Title = trimmed
		return g, true
	})
}

func IncrementCounter(s State, id int64, streak StreakPolicy) State {
	return replace(s, id, func(g model.Goal) (model.Goal, bool) {
		c, ok := g.Counter()
		if !ok {
			return g, false
		}
		c.Count++
		g.Payload = c
		return ApplyStreak(g, streak), true
	})
}

// SetProgressValue parses raw as a number; unparsable or infinite input becomes 0
func SetProgressValue(s State, id int64, raw string, streak StreakPolicy) State {
	value := validation.FiniteOrZero(raw)
	return replace(s, id, func(g model.Goal) (model.Goal, bool) {
		p, ok := g.Progress()
		if !ok {
			return g, false
		}
		p.Value = value
		g.Payload = p
		return ApplyStreak(g, streak), true
	})
}

// ToggleTask flips one task. Every toggle counts toward the streak, un-checking included.
func ToggleTask(s State, goalID int64, taskID int, streak StreakPolicy) State {
	return replace(s, goalID, func(g model.Goal) (model.Goal, bool) {
		c, ok := g.Checklist()
		if !ok {
			return g, false
		}
		c = c.Clone()
		for i := range c.Tasks {
			if c.Tasks[i].ID == taskID {
				c.Tasks[i].Done = !c.Tasks[i].Done
			}
		}
		g.Payload = c
		return ApplyStreak(g, streak), true
	})
}

// ResetAll empties the collection. LastID survives so ids are never handed out twice.
func ResetAll(s State) State {
	return State{Goals: []model.Goal{}, LastID: s.LastID, Edit: nil}
}

func indexOf(goals []model.Goal, id int64) int {
	for i, g := range goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// replace swaps in fn's result for the goal with the given id.
// The input state is returned untouched when the id is absent or fn reports no change.
func replace(s State, id int64, fn func(model.Goal) (model.Goal, bool)) State {
	idx := indexOf(s.Goals, id)
	if idx < 0 {
		return s
	}

	updated, changed := fn(s.Goals[idx])
	if !changed {
		return s
	}

	goals := make([]model.Goal, len(s.Goals))
	copy(goals, s.Goals)
	goals[idx] = updated

	return State{Goals: goals, LastID: s.LastID, Edit: s.Edit}
}
