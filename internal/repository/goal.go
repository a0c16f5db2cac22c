package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/storage"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
)

type GoalRepository interface {
	// Goals loads the collection. The returned slice is always usable:
	// on any failure it holds whatever could be recovered, possibly nothing.
	Goals(ctx context.Context) ([]model.Goal, error)
	SaveGoals(ctx context.Context, goals []model.Goal) error
	Clear(ctx context.Context) error
}

type goalRepository struct {
	store storage.Storage
	keys  Keys
}

func NewGoalRepository(store storage.Storage, keys Keys) GoalRepository {
	return &goalRepository{store: store, keys: keys}
}

func (r *goalRepository) Goals(ctx context.Context) ([]model.Goal, error) {
	raw, err := r.store.Get(ctx, r.keys.Goals())
	if errors.Is(err, storage.ErrNotFound) {
		return []model.Goal{}, nil
	}
	if err != nil {
		return []model.Goal{}, fmt.Errorf("failed to read goals: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return []model.Goal{}, fmt.Errorf("%w: goals: %v", ErrMalformedRecord, err)
	}

	// Keep every goal that decodes; one bad record should not cost the rest
	goals := make([]model.Goal, 0, len(records))
	seen := make(map[int64]bool, len(records))
	var errs []error
	for i, rec := range records {
		var g model.Goal
		if err := json.Unmarshal(rec, &g); err != nil {
			errs = append(errs, fmt.Errorf("goal #%d: %w", i, err))
			continue
		}
		if seen[g.ID] {
			errs = append(errs, fmt.Errorf("goal #%d: duplicate id %d", i, g.ID))
			continue
		}
		seen[g.ID] = true
		goals = append(goals, g)
	}

	if len(errs) > 0 {
		return goals, fmt.Errorf("%w: %w", ErrMalformedRecord, errors.Join(errs...))
	}
	return goals, nil
}

func (r *goalRepository) SaveGoals(ctx context.Context, goals []model.Goal) error {
	if goals == nil {
		goals = []model.Goal{}
	}

	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("failed to encode goals: %w", err)
	}

	err = r.store.Put(ctx, r.keys.Goals(), string(data))
	if err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}

	return nil
}

func (r *goalRepository) Clear(ctx context.Context) error {
	err := r.store.Delete(ctx, r.keys.Goals())
	if err != nil {
		return fmt.Errorf("failed to clear goals: %w", err)
	}
	return nil
}
