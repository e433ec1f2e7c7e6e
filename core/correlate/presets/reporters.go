package presets

import (
	"fmt"

	"data-correlator/core/correlate"
)

// Identity reports elements as they are.
func Identity[T any]() correlate.Reporter[T, T] {
	return func(v T) T { return v }
}

// Inspect reports the %+v rendering of an element.
func Inspect[T any]() correlate.Reporter[T, string] {
	return func(v T) string { return fmt.Sprintf("%+v", v) }
}

// Joined reports two projections separated by a colon, e.g. "29:test@test.com".
func Joined[T, L, R any](left func(T) L, right func(T) R) correlate.Reporter[T, string] {
	return func(v T) string { return fmt.Sprintf("%v:%v", left(v), right(v)) }
}
