package model

import (
	"time"

	"github.com/templui/goaltracker/internal/clock"
)

type GoalKind string

const (
	GoalKindCounter   GoalKind = "counter"
	GoalKindProgress  GoalKind = "progress"
	GoalKindChecklist GoalKind = "checklist"
)

const (
	CounterTarget          = 1000
	DefaultProgressTarget  = 100.0
	DefaultChecklistLength = 5
)

func (k GoalKind) Valid() bool {
	switch k {
	case GoalKindCounter, GoalKindProgress, GoalKindChecklist:
		return true
	}
	return false
}

// Payload is the kind-specific part of a goal.
// Only Counter, Progress and Checklist implement it.
type Payload interface {
	Kind() GoalKind
}

type Counter struct {
	Count  int
	Target int
}

type Progress struct {
	Value  float64
	Target float64
}

type Checklist struct {
	Tasks []Task
}

func (Counter) Kind() GoalKind   { return GoalKindCounter }
func (Progress) Kind() GoalKind  { return GoalKindProgress }
func (Checklist) Kind() GoalKind { return GoalKindChecklist }

type Goal struct {
	ID        int64
	Title     string
	Priority  bool
	CreatedAt time.Time
	Streak    int
	LastDone  *clock.DayKey // nil until the first qualifying update
	Payload   Payload
}

// Kind is derived from the payload so it can never disagree with it
func (g Goal) Kind() GoalKind {
	if g.Payload == nil {
		return ""
	}
	return g.Payload.Kind()
}

func (g Goal) Counter() (Counter, bool) {
	c, ok := g.Payload.(Counter)
	return c, ok
}

func (g Goal) Progress() (Progress, bool) {
	p, ok := g.Payload.(Progress)
	return p, ok
}

func (g Goal) Checklist() (Checklist, bool) {
	c, ok := g.Payload.(Checklist)
	return c, ok
}

// NewChecklist builds n undone tasks labelled "Task 1".."Task n"
func NewChecklist(n int) Checklist {
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = NewTask(i + 1)
	}
	return Checklist{Tasks: tasks}
}

// Clone returns a checklist whose task slice is not shared with c
func (c Checklist) Clone() Checklist {
	tasks := make([]Task, len(c.Tasks))
	copy(tasks, c.Tasks)
	return Checklist{Tasks: tasks}
}

func (c Checklist) DoneCount() int {
	done := 0
	for _, t := range c.Tasks {
		if t.Done {
			done++
		}
	}
	return done
}
