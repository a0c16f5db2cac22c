package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/templui/goaltracker/internal/model"
)

// MaxChecklistLength bounds how many tasks a single checklist can be created with
const MaxChecklistLength = 1000

// ParseNumber reads a form value as a number.
// Blank input is 0; anything unparsable is NaN so callers decide the fallback.
func ParseNumber(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}

	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// FiniteOrZero parses raw and substitutes 0 for NaN and infinities
func FiniteOrZero(raw string) float64 {
	n := ParseNumber(raw)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// ProgressTarget returns the requested target when positive, otherwise the default of 100
func ProgressTarget(raw string) float64 {
	n := ParseNumber(raw)
	if n > 0 && !math.IsInf(n, 0) {
		return n
	}
	return model.DefaultProgressTarget
}

// ChecklistLength returns the whole part of a positive requested count, otherwise the default of 5
func ChecklistLength(raw string) int {
	n := math.Floor(ParseNumber(raw))
	if !(n >= 1) {
		return model.DefaultChecklistLength
	}
	if n > MaxChecklistLength {
		return MaxChecklistLength
	}
	return int(n)
}
