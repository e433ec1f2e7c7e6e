package presets

import (
	"time"

	"data-correlator/core/correlate"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Same matches a and b when both accessors yield equal values.
func Same[A, B any, F comparable](fa func(A) F, fb func(B) F) correlate.CorrelationStrategy[A, B] {
	return func(a A, b B) bool {
		return fa(a) == fb(b)
	}
}

// SameField is Same for two sets of the same record type.
func SameField[T any, F comparable](field func(T) F) correlate.CorrelationStrategy[T, T] {
	return Same(field, field)
}

// SameFold matches strings that are equal under Unicode case folding.
// Both sides are NFC normalized first so composed and decomposed forms agree.
func SameFold[A, B any](fa func(A) string, fb func(B) string) correlate.CorrelationStrategy[A, B] {
	return func(a A, b B) bool {
		// cases.Caser keeps state between calls, one per comparison.
		folder := cases.Fold()
		left := folder.String(norm.NFC.String(fa(a)))
		return left == folder.String(norm.NFC.String(fb(b)))
	}
}

// SameTimeWithMinuteTolerance matches timestamps that fall in the same minute.
// Seconds and below are dropped on both sides, which absorbs precision loss
// between sources.
func SameTimeWithMinuteTolerance[A, B any](fa func(A) time.Time, fb func(B) time.Time) correlate.CorrelationStrategy[A, B] {
	return func(a A, b B) bool {
		return sameMinute(fa(a), fb(b))
	}
}

func sameMinute(x, y time.Time) bool {
	return x.Truncate(time.Minute).Equal(y.Truncate(time.Minute))
}
