package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/storage"
)

// PreferenceRepository stores the display mode, lab toggles and theme.
// Loaders always return a usable value: the documented default when the
// record is absent, unreadable or malformed.
type PreferenceRepository interface {
	View(ctx context.Context) (model.ViewMode, error)
	SaveView(ctx context.Context, view model.ViewMode) error
	Labs(ctx context.Context) (model.Labs, error)
	SaveLabs(ctx context.Context, labs model.Labs) error
	Theme(ctx context.Context) (model.Theme, error)
	SaveTheme(ctx context.Context, theme model.Theme) error
	ClearView(ctx context.Context) error
	ClearLabs(ctx context.Context) error
	ClearTheme(ctx context.Context) error
	Clear(ctx context.Context) error
}

type preferenceRepository struct {
	store storage.Storage
	keys  Keys
}

func NewPreferenceRepository(store storage.Storage, keys Keys) PreferenceRepository {
	return &preferenceRepository{store: store, keys: keys}
}

func (r *preferenceRepository) View(ctx context.Context) (model.ViewMode, error) {
	raw, err := r.read(ctx, r.keys.View())
	if err != nil || raw == "" {
		return model.ViewList, err
	}

	view := model.ViewMode(raw)
	if !view.Valid() {
		return model.ViewList, fmt.Errorf("%w: view %q", ErrMalformedRecord, raw)
	}
	return view, nil
}

func (r *preferenceRepository) SaveView(ctx context.Context, view model.ViewMode) error {
	return r.write(ctx, r.keys.View(), string(view))
}

func (r *preferenceRepository) Labs(ctx context.Context) (model.Labs, error) {
	raw, err := r.read(ctx, r.keys.Labs())
	if err != nil || raw == "" {
		return model.DefaultLabs(), err
	}

	var labs model.Labs
	if err := json.Unmarshal([]byte(raw), &labs); err != nil {
		return model.DefaultLabs(), fmt.Errorf("%w: labs: %v", ErrMalformedRecord, err)
	}
	return labs, nil
}

func (r *preferenceRepository) SaveLabs(ctx context.Context, labs model.Labs) error {
	if labs == nil {
		labs = model.Labs{}
	}
	data, err := json.Marshal(labs)
	if err != nil {
		return fmt.Errorf("failed to encode labs: %w", err)
	}
	return r.write(ctx, r.keys.Labs(), string(data))
}

func (r *preferenceRepository) Theme(ctx context.Context) (model.Theme, error) {
	raw, err := r.read(ctx, r.keys.Theme())
	if err != nil || raw == "" {
		return model.ThemeLight, err
	}

	theme := model.Theme(raw)
	if !theme.Valid() {
		return model.ThemeLight, fmt.Errorf("%w: theme %q", ErrMalformedRecord, raw)
	}
	return theme, nil
}

func (r *preferenceRepository) SaveTheme(ctx context.Context, theme model.Theme) error {
	return r.write(ctx, r.keys.Theme(), string(theme))
}

func (r *preferenceRepository) ClearView(ctx context.Context) error {
	return r.remove(ctx, r.keys.View())
}

func (r *preferenceRepository) ClearLabs(ctx context.Context) error {
	return r.remove(ctx, r.keys.Labs())
}

func (r *preferenceRepository) ClearTheme(ctx context.Context) error {
	return r.remove(ctx, r.keys.Theme())
}

func (r *preferenceRepository) Clear(ctx context.Context) error {
	return errors.Join(r.ClearView(ctx), r.ClearLabs(ctx), r.ClearTheme(ctx))
}

// read returns "" with a nil error when the record does not exist
func (r *preferenceRepository) read(ctx context.Context, key string) (string, error) {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return raw, nil
}

func (r *preferenceRepository) remove(ctx context.Context, key string) error {
	err := r.store.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", key, err)
	}
	return nil
}

func (r *preferenceRepository) write(ctx context.Context, key, value string) error {
	err := r.store.Put(ctx, key, value)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
