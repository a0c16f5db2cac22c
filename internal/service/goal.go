package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/templui/goaltracker/internal/clock"
	"github.com/templui/goaltracker/internal/derive"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/repository"
	"github.com/templui/goaltracker/internal/store"
)

var (
	ErrNotConfirmed = errors.New("action not confirmed")
)

const (
	PromptDeleteGoal = "Delete this goal?"
	PromptResetAll   = "Delete ALL goals?"
)

const defaultSaveTimeout = 5 * time.Second

// Records handed to the background writer
const (
	recordGoals = "goals"
	recordView  = "view"
	recordLabs  = "labs"
	recordTheme = "theme"
)

// Confirm asks the user to approve a destructive action
type Confirm func(prompt string) bool

// Confirmed answers every prompt with ok
func Confirmed(ok bool) Confirm {
	return func(string) bool { return ok }
}

// Dashboard is the full derived view handed to the presentation layer
type Dashboard struct {
	Goals       []derive.Card      `json:"goals"`
	Preferences model.Preferences  `json:"preferences"`
	Edit        *store.EditSession `json:"edit"`
}

// GoalService owns the goal collection for one user session.
// It applies one operation at a time and persists after each change.
type GoalService struct {
	mu    sync.Mutex
	state store.State
	prefs model.Preferences

	goalRepo repository.GoalRepository
	prefRepo repository.PreferenceRepository
	clock    clock.Clock
	writer   *writer
}

// NewGoalService loads the four persisted records. Any record that cannot be
// loaded falls back to its default and the failure is only logged.
func NewGoalService(
	ctx context.Context,
	goalRepo repository.GoalRepository,
	prefRepo repository.PreferenceRepository,
	clk clock.Clock,
	saveTimeout time.Duration,
) *GoalService {
	if saveTimeout <= 0 {
		saveTimeout = defaultSaveTimeout
	}

	goals, err := goalRepo.Goals(ctx)
	if err != nil {
		slog.Error("failed to load goals, starting from what was readable", "error", err, "loaded", len(goals))
	}

	view, err := prefRepo.View(ctx)
	if err != nil {
		slog.Error("failed to load view, using default", "error", err, "default", view)
	}

	labs, err := prefRepo.Labs(ctx)
	if err != nil {
		slog.Error("failed to load labs, using default", "error", err)
	}

	theme, err := prefRepo.Theme(ctx)
	if err != nil {
		slog.Error("failed to load theme, using default", "error", err, "default", theme)
	}

	return &GoalService{
		state:    store.New(goals),
		prefs:    model.Preferences{View: view, Labs: labs, Theme: theme},
		goalRepo: goalRepo,
		prefRepo: prefRepo,
		clock:    clk,
		writer:   newWriter(saveTimeout),
	}
}

// Close waits for pending writes to be attempted
func (s *GoalService) Close() {
	s.writer.close()
}

// Flush blocks until every change made so far has been written or has failed
func (s *GoalService) Flush() {
	s.writer.flush()
}

func (s *GoalService) Dashboard() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dashboard()
}

// Goal returns the goal with the given id as currently stored
func (s *GoalService) Goal(id int64) (model.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Goal(id)
}

func (s *GoalService) AddGoal(in store.NewGoal) Dashboard {
	return s.apply(func(st store.State) store.State {
		next := store.AddGoal(st, in, s.clock.Now())
		if len(next.Goals) > len(st.Goals) {
			slog.Info("goal created", "goal_id", next.Goals[0].ID, "type", in.Kind)
		}
		return next
	})
}

func (s *GoalService) TogglePriority(id int64) Dashboard {
	return s.apply(func(st store.State) store.State {
		return store.TogglePriority(st, id)
	})
}

// DeleteGoal removes a goal once confirm approves
func (s *GoalService) DeleteGoal(id int64, confirm Confirm) (Dashboard, error) {
	s.mu.Lock()
	_, ok := s.state.Goal(id)
	s.mu.Unlock()
	if !ok {
		return s.Dashboard(), nil
	}

	if confirm == nil || !confirm(PromptDeleteGoal) {
		return s.Dashboard(), ErrNotConfirmed
	}

	return s.apply(func(st store.State) store.State {
		slog.Info("goal deleted", "goal_id", id)
		return store.DeleteGoal(st, id)
	}), nil
}

func (s *GoalService) RenameGoal(id int64, title string) Dashboard {
	return s.apply(func(st store.State) store.State {
		return store.RenameGoal(st, id, title)
	})
}

func (s *GoalService) StartEdit(id int64) Dashboard {
	return s.apply(func(st store.State) store.State {
		return store.StartEdit(st, id)
	})
}

func (s *GoalService) SetEditDraft(draft string) Dashboard {
	return s.apply(func(st store.State) store.State {
		return store.SetEditDraft(st, draft)
	})
}

func (s *GoalService) SaveEdit() Dashboard {
	return s.apply(store.SaveEdit)
}

func (s *GoalService) CancelEdit() Dashboard {
	return s.apply(store.CancelEdit)
}

func (s *GoalService) IncrementCounter(id int64) Dashboard {
	return s.apply(func(st store.State) store.State {
		return store.IncrementCounter(st, id, s.streakPolicy())
	})
}

func (s *GoalService) SetProgressValue(id int64, raw string) Dashboard {
	return s.apply(func(st store.State) store.State {
		return store.SetProgressValue(st, id, raw, s.streakPolicy())
	})
}

func (s *GoalService) ToggleTask(goalID int64, taskID int) Dashboard {
	return s.apply(func(st store.State) store.State {
		return store.ToggleTask(st, goalID, taskID, s.streakPolicy())
	})
}

// ResetAll empties the collection, restores default preferences and clears
// all four persisted records once confirm approves
func (s *GoalService) ResetAll(confirm Confirm) (Dashboard, error) {
	if confirm == nil || !confirm(PromptResetAll) {
		return s.Dashboard(), ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = store.ResetAll(s.state)
	s.prefs = model.DefaultPreferences()

	s.writer.enqueue(recordGoals, s.goalRepo.Clear)
	s.writer.enqueue(recordView, s.prefRepo.ClearView)
	s.writer.enqueue(recordLabs, s.prefRepo.ClearLabs)
	s.writer.enqueue(recordTheme, s.prefRepo.ClearTheme)

	slog.Info("all goals reset")
	return s.dashboard(), nil
}

func (s *GoalService) SetView(view model.ViewMode) Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	if view.Valid() && view != s.prefs.View {
		s.prefs.View = view
		s.writer.enqueue(recordView, func(ctx context.Context) error {
			return s.prefRepo.SaveView(ctx, view)
		})
	}
	return s.dashboard()
}

// SetLab switches one feature toggle
func (s *GoalService) SetLab(key string, on bool) Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.prefs.Labs[key]
	if !ok || current != on {
		s.setLabs(s.prefs.Labs.With(key, on))
	}
	return s.dashboard()
}

func (s *GoalService) ToggleStreakLab() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLabs(s.prefs.Labs.With(model.LabStreak, !s.prefs.Labs.Streak()))
	return s.dashboard()
}

func (s *GoalService) SetTheme(theme model.Theme) Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	if theme.Valid() && theme != s.prefs.Theme {
		s.setTheme(theme)
	}
	return s.dashboard()
}

func (s *GoalService) ToggleTheme() Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setTheme(s.prefs.Theme.Toggled())
	return s.dashboard()
}

// setLabs and setTheme expect s.mu to be held
func (s *GoalService) setLabs(labs model.Labs) {
	s.prefs.Labs = labs
	s.writer.enqueue(recordLabs, func(ctx context.Context) error {
		return s.prefRepo.SaveLabs(ctx, labs)
	})
}

func (s *GoalService) setTheme(theme model.Theme) {
	s.prefs.Theme = theme
	s.writer.enqueue(recordTheme, func(ctx context.Context) error {
		return s.prefRepo.SaveTheme(ctx, theme)
	})
}

// apply runs one store operation and schedules a save when the collection changed
func (s *GoalService) apply(op func(store.State) store.State) Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state = op(prev)

	if !sameCollection(prev.Goals, s.state.Goals) {
		goals := s.state.Goals
		s.writer.enqueue(recordGoals, func(ctx context.Context) error {
			return s.goalRepo.SaveGoals(ctx, goals)
		})
	}

	return s.dashboard()
}

// dashboard expects s.mu to be held
func (s *GoalService) dashboard() Dashboard {
	opts := derive.CardOptions{Labs: s.prefs.Labs}
	var edit *store.EditSession
	if s.state.Edit != nil {
		e := *s.state.Edit
		edit = &e
		opts.EditingID = e.GoalID
	}

	return Dashboard{
		Goals: derive.Cards(s.state.Goals, opts),
		Preferences: model.Preferences{
			View:  s.prefs.View,
			Labs:  s.prefs.Labs.With(model.LabStreak, s.prefs.Labs.Streak()),
			Theme: s.prefs.Theme,
		},
		Edit: edit,
	}
}

func (s *GoalService) streakPolicy() store.StreakPolicy {
	return store.StreakPolicy{
		Enabled: s.prefs.Labs.Streak(),
		Today:   clock.Today(s.clock),
	}
}

// sameCollection reports whether an operation returned the collection it was given.
// Store operations never modify a slice in place, so a changed collection always has a new backing array.
func sameCollection(a, b []model.Goal) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
