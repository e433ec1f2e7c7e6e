package presets

import (
	"time"

	"data-correlator/core/correlate"
)

// PickLast keeps the last candidate.
func PickLast[A, B any]() correlate.DisambiguationStrategy[A, B] {
	return func(_ A, candidates []B) []B {
		if len(candidates) == 0 {
			return []B{}
		}
		return []B{candidates[len(candidates)-1]}
	}
}

// PickLastBy keeps the candidate with the latest timestamp. On ties the
// candidate appearing last wins.
func PickLastBy[A, B any](at func(B) time.Time) correlate.DisambiguationStrategy[A, B] {
	return func(_ A, candidates []B) []B {
		return latest(candidates, at)
	}
}

// PickSameTimeWithMinuteTolerance keeps every candidate whose timestamp falls
// in the same minute as a's.
func PickSameTimeWithMinuteTolerance[A, B any](fa func(A) time.Time, fb func(B) time.Time) correlate.DisambiguationStrategy[A, B] {
	return correlate.Adapt(SameTimeWithMinuteTolerance(fa, fb))
}

// PickLastSameTimeWithMinuteTolerance keeps the latest candidate among those
// in the same minute as a. Nothing is kept when no candidate qualifies.
func PickLastSameTimeWithMinuteTolerance[A, B any](fa func(A) time.Time, fb func(B) time.Time) correlate.DisambiguationStrategy[A, B] {
	same := PickSameTimeWithMinuteTolerance(fa, fb)
	return func(a A, candidates []B) []B {
		return latest(same(a, candidates), fb)
	}
}

// Nullify replaces every candidate with the zero value of B. It is handy for
// checking whether a funnel stage was reached.
func Nullify[A, B any]() correlate.DisambiguationStrategy[A, B] {
	return func(_ A, candidates []B) []B {
		return make([]B, len(candidates))
	}
}

func latest[B any](candidates []B, at func(B) time.Time) []B {
	if len(candidates) == 0 {
		return []B{}
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if !at(candidates[i]).Before(at(candidates[best])) {
			best = i
		}
	}
	return []B{candidates[best]}
}
