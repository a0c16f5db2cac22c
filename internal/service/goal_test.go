package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goaltracker/internal/clock"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/repository"
	"github.com/templui/goaltracker/internal/storage"
	"github.com/templui/goaltracker/internal/store"
)

var keys = repository.Keys{Prefix: "goal_tracker_v2"}

var march10 = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

// brokenStorage fails every call
type brokenStorage struct{}

var errUnavailable = errors.New("storage unavailable")

func (brokenStorage) Get(context.Context, string) (string, error) { return "", errUnavailable }
func (brokenStorage) Put(context.Context, string, string) error   { return errUnavailable }
func (brokenStorage) Delete(context.Context, string) error        { return errUnavailable }

func newService(t *testing.T, s storage.Storage, now time.Time) *GoalService {
	t.Helper()
	svc := NewGoalService(
		context.Background(),
		repository.NewGoalRepository(s, keys),
		repository.NewPreferenceRepository(s, keys),
		clock.Fixed{At: now},
		time.Second,
	)
	t.Cleanup(svc.Close)
	return svc
}

func savedGoals(t *testing.T, s storage.Storage) []model.Goal {
	t.Helper()
	goals, err := repository.NewGoalRepository(s, keys).Goals(context.Background())
	require.NoError(t, err)
	return goals
}

func TestGoalService_StartsWithDefaults(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage(), march10)

	d := svc.Dashboard()
	assert.Empty(t, d.Goals)
	assert.Nil(t, d.Edit)
	assert.Equal(t, model.ViewList, d.Preferences.View)
	assert.Equal(t, model.ThemeLight, d.Preferences.Theme)
	assert.True(t, d.Preferences.Labs.Streak())
}

func TestGoalService_LoadsPersistedState(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStorage()
	require.NoError(t, mem.Put(ctx, keys.Goals(), `[{"id":7,"title":"Read","type":"counter","count":4,"target":1000,"createdAt":7}]`))
	require.NoError(t, mem.Put(ctx, keys.View(), "grid"))
	require.NoError(t, mem.Put(ctx, keys.Labs(), `{"streak":false}`))
	require.NoError(t, mem.Put(ctx, keys.Theme(), "dark"))

	svc := newService(t, mem, march10)

	d := svc.Dashboard()
	require.Len(t, d.Goals, 1)
	assert.Equal(t, "Read", d.Goals[0].Title)
	assert.Equal(t, model.ViewGrid, d.Preferences.View)
	assert.Equal(t, model.ThemeDark, d.Preferences.Theme)
	assert.False(t, d.Preferences.Labs.Streak())
}

func TestGoalService_AddGoalPersists(t *testing.T) {
	mem := storage.NewMemoryStorage()
	svc := newService(t, mem, march10)

	d := svc.AddGoal(store.NewGoal{Title: "  Run  ", Kind: model.GoalKindProgress, Size: "40"})
	require.Len(t, d.Goals, 1)
	assert.Equal(t, "Run", d.Goals[0].Title)
	assert.Equal(t, march10.UnixMilli(), d.Goals[0].ID)

	svc.Flush()
	saved := savedGoals(t, mem)
	require.Len(t, saved, 1)
	p, ok := saved[0].Progress()
	require.True(t, ok)
	assert.Equal(t, 40.0, p.Target)
}

func TestGoalService_NoOpDoesNotWrite(t *testing.T) {
	mem := storage.NewMemoryStorage()
	svc := newService(t, mem, march10)

	svc.AddGoal(store.NewGoal{Title: "   ", Kind: model.GoalKindCounter})
	svc.TogglePriority(99)
	svc.IncrementCounter(99)
	svc.SetView("table")
	svc.SetTheme(model.ThemeLight)
	svc.Flush()

	assert.Equal(t, 0, mem.Len())
}

func TestGoalService_IdsStayUnique(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage(), march10)

	d := svc.AddGoal(store.NewGoal{Title: "A", Kind: model.GoalKindCounter})
	first := d.Goals[0].ID
	_, err := svc.DeleteGoal(first, Confirmed(true))
	require.NoError(t, err)

	d = svc.AddGoal(store.NewGoal{Title: "A", Kind: model.GoalKindCounter})
	assert.Greater(t, d.Goals[0].ID, first)
}

func TestGoalService_StreakUsesClockDay(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage(), march10)

	d := svc.AddGoal(store.NewGoal{Title: "Pushups", Kind: model.GoalKindCounter})
	id := d.Goals[0].ID

	d = svc.IncrementCounter(id)
	require.Len(t, d.Goals, 1)
	assert.Equal(t, 1, d.Goals[0].Streak)
	require.NotNil(t, d.Goals[0].LastDone)
	assert.Equal(t, clock.DayKey("2026-03-10"), *d.Goals[0].LastDone)
	assert.True(t, d.Goals[0].ShowStreak)

	// same day twice leaves the streak alone
	d = svc.IncrementCounter(id)
	assert.Equal(t, 1, d.Goals[0].Streak)
	require.NotNil(t, d.Goals[0].Count)
	assert.Equal(t, 2, *d.Goals[0].Count)
}

func TestGoalService_StreakLabDisabled(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage(), march10)

	d := svc.ToggleStreakLab()
	assert.False(t, d.Preferences.Labs.Streak())

	d = svc.AddGoal(store.NewGoal{Title: "Tasks", Kind: model.GoalKindChecklist, Size: "3"})
	id := d.Goals[0].ID

	d = svc.ToggleTask(id, 2)
	assert.Equal(t, 0, d.Goals[0].Streak)
	assert.Nil(t, d.Goals[0].LastDone)
	assert.False(t, d.Goals[0].ShowStreak)
	require.NotNil(t, d.Goals[0].Checklist)
	assert.Equal(t, 1, d.Goals[0].Checklist.Done)
}

func TestGoalService_SetProgressValue(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage(), march10)

	d := svc.AddGoal(store.NewGoal{Title: "Save", Kind: model.GoalKindProgress, Size: "200"})
	id := d.Goals[0].ID

	d = svc.SetProgressValue(id, "50")
	require.NotNil(t, d.Goals[0].Percent)
	assert.Equal(t, 25, *d.Goals[0].Percent)

	d = svc.SetProgressValue(id, "abc")
	require.NotNil(t, d.Goals[0].Value)
	assert.Equal(t, 0.0, *d.Goals[0].Value)
}

func TestGoalService_DeleteNeedsConfirmation(t *testing.T) {
	mem := storage.NewMemoryStorage()
	svc := newService(t, mem, march10)

	d := svc.AddGoal(store.NewGoal{Title: "Keep", Kind: model.GoalKindCounter})
	id := d.Goals[0].ID

	var prompt string
	d, err := svc.DeleteGoal(id, func(p string) bool {
		prompt = p
		return false
	})
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, PromptDeleteGoal, prompt)
	assert.Len(t, d.Goals, 1)

	d, err = svc.DeleteGoal(id, nil)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Len(t, d.Goals, 1)

	d, err = svc.DeleteGoal(id, Confirmed(true))
	require.NoError(t, err)
	assert.Empty(t, d.Goals)

	svc.Flush()
	assert.Empty(t, savedGoals(t, mem))
}

func TestGoalService_DeleteUnknownSkipsPrompt(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage(), march10)

	asked := false
	_, err := svc.DeleteGoal(42, func(string) bool {
		asked = true
		return true
	})
	assert.NoError(t, err)
	assert.False(t, asked)
}

func TestGoalService_EditSession(t *testing.T) {
	mem := storage.NewMemoryStorage()
	svc := newService(t, mem, march10)

	d := svc.AddGoal(store.NewGoal{Title: "Old", Kind: model.GoalKindCounter})
	id := d.Goals[0].ID

	d = svc.StartEdit(id)
	require.NotNil(t, d.Edit)
	assert.Equal(t, "Old", d.Edit.Draft)
	assert.True(t, d.Goals[0].Editing)

	svc.SetEditDraft("   ")
	d = svc.SaveEdit()
	require.NotNil(t, d.Edit)
	assert.Equal(t, "Old", d.Goals[0].Title)

	svc.SetEditDraft(" New ")
	d = svc.SaveEdit()
	assert.Nil(t, d.Edit)
	assert.Equal(t, "New", d.Goals[0].Title)
	assert.False(t, d.Goals[0].Editing)

	svc.StartEdit(id)
	d = svc.CancelEdit()
	assert.Nil(t, d.Edit)

	svc.Flush()
	assert.Equal(t, "New", savedGoals(t, mem)[0].Title)
}

func TestGoalService_Preferences(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStorage()
	svc := newService(t, mem, march10)

	d := svc.SetView(model.ViewGrid)
	assert.Equal(t, model.ViewGrid, d.Preferences.View)

	d = svc.ToggleTheme()
	assert.Equal(t, model.ThemeDark, d.Preferences.Theme)

	d = svc.SetLab("compact", true)
	assert.True(t, d.Preferences.Labs["compact"])
	assert.True(t, d.Preferences.Labs.Streak())

	svc.Flush()
	prefs := repository.NewPreferenceRepository(mem, keys)
	view, err := prefs.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ViewGrid, view)
	theme, err := prefs.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, theme)
	labs, err := prefs.Labs(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Labs{"streak": true, "compact": true}, labs)
}

func TestGoalService_ResetAll(t *testing.T) {
	mem := storage.NewMemoryStorage()
	svc := newService(t, mem, march10)

	d := svc.AddGoal(store.NewGoal{Title: "A", Kind: model.GoalKindCounter})
	lastID := d.Goals[0].ID
	svc.AddGoal(store.NewGoal{Title: "B", Kind: model.GoalKindChecklist})
	svc.SetView(model.ViewGrid)
	svc.ToggleStreakLab()
	svc.ToggleTheme()
	svc.Flush()
	require.Equal(t, 4, mem.Len())

	var prompt string
	_, err := svc.ResetAll(func(p string) bool {
		prompt = p
		return false
	})
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, PromptResetAll, prompt)
	assert.Len(t, svc.Dashboard().Goals, 2)

	d, err = svc.ResetAll(Confirmed(true))
	require.NoError(t, err)
	assert.Empty(t, d.Goals)
	assert.Equal(t, model.DefaultPreferences().View, d.Preferences.View)
	assert.Equal(t, model.DefaultPreferences().Theme, d.Preferences.Theme)
	assert.True(t, d.Preferences.Labs.Streak())

	svc.Flush()
	assert.Equal(t, 0, mem.Len())

	// a fresh load sees defaults everywhere
	reloaded := newService(t, mem, march10)
	assert.Equal(t, d, reloaded.Dashboard())

	// ids are never reused after a reset
	d = svc.AddGoal(store.NewGoal{Title: "C", Kind: model.GoalKindCounter})
	assert.Greater(t, d.Goals[0].ID, lastID)
}

func TestGoalService_ResetThenChangePersists(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStorage()
	svc := newService(t, mem, march10)

	svc.ToggleTheme()
	svc.Flush()

	_, err := svc.ResetAll(Confirmed(true))
	require.NoError(t, err)
	svc.ToggleTheme()
	svc.Flush()

	theme, err := repository.NewPreferenceRepository(mem, keys).Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, theme)
}

func TestGoalService_StorageFailuresAreSwallowed(t *testing.T) {
	svc := newService(t, brokenStorage{}, march10)

	d := svc.Dashboard()
	assert.Empty(t, d.Goals)
	assert.Equal(t, model.ViewList, d.Preferences.View)

	d = svc.AddGoal(store.NewGoal{Title: "Still works", Kind: model.GoalKindCounter})
	require.Len(t, d.Goals, 1)
	d = svc.IncrementCounter(d.Goals[0].ID)
	assert.Equal(t, 1, *d.Goals[0].Count)

	d = svc.ToggleTheme()
	assert.Equal(t, model.ThemeDark, d.Preferences.Theme)

	_, err := svc.ResetAll(Confirmed(true))
	require.NoError(t, err)
	svc.Flush()
	assert.Empty(t, svc.Dashboard().Goals)
}

func TestGoalService_Ordering(t *testing.T) {
	svc := newService(t, storage.NewMemoryStorage(), march10)

	a := svc.AddGoal(store.NewGoal{Title: "A", Kind: model.GoalKindCounter}).Goals[0].ID
	b := svc.AddGoal(store.NewGoal{Title: "B", Kind: model.GoalKindCounter}).Goals[0].ID
	c := svc.AddGoal(store.NewGoal{Title: "C", Kind: model.GoalKindCounter}).Goals[0].ID

	d := svc.TogglePriority(a)
	require.Len(t, d.Goals, 3)
	assert.Equal(t, []int64{a, c, b}, []int64{d.Goals[0].ID, d.Goals[1].ID, d.Goals[2].ID})
}
