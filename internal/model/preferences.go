package model

import (
	"encoding/json"
	"errors"
)

var ErrMalformedLabs = errors.New("labs must be a JSON object")

type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)

func (v ViewMode) Valid() bool {
	return v == ViewList || v == ViewGrid
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled flips between light and dark
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

const LabStreak = "streak"

// Labs is the feature-toggle set. Keys other than streak are kept as-is.
type Labs map[string]bool

func DefaultLabs() Labs {
	return Labs{LabStreak: true}
}

func (l Labs) Streak() bool {
	return l[LabStreak]
}

// With returns a copy of l with key set to on
func (l Labs) With(key string, on bool) Labs {
	next := make(Labs, len(l)+1)
	for k, v := range l {
		next[k] = v
	}
	next[key] = on
	return next
}

// UnmarshalJSON accepts only a JSON object; anything else is malformed
func (l *Labs) UnmarshalJSON(data []byte) error {
	var raw map[string]bool
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return ErrMalformedLabs
	}
	*l = raw
	return nil
}

// Preferences groups the three auxiliary records next to the goal collection
type Preferences struct {
	View  ViewMode `json:"view"`
	Labs  Labs     `json:"labs"`
	Theme Theme    `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		View:  ViewList,
		Labs:  DefaultLabs(),
		Theme: ThemeLight,
	}
}
