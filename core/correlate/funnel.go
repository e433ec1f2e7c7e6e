package correlate

import (
	"context"
	"fmt"

	"data-correlator/core/contract"

	"golang.org/x/sync/errgroup"
)

// Funnel applies an ordered chain of disambiguation stages to each A-element.
//
// The stage sequence is never mutated. Every A-element walks it with its own
// cursor, so traversals are independent and may run concurrently.
type Funnel[A, B any] struct {
	stages  []DisambiguationStrategy[A, B]
	proceed ContinuationPredicate[A, B]
	workers int
}

// NewDisambiguationFunnel builds a funnel from disambiguation stages.
// Without a continuation predicate every stage is applied.
func NewDisambiguationFunnel[A, B any](stages ...DisambiguationStrategy[A, B]) *Funnel[A, B] {
	return &Funnel[A, B]{stages: append([]DisambiguationStrategy[A, B](nil), stages...)}
}

// NewCorrelationFunnel builds a funnel whose stages are adapted correlation
// predicates. Without a continuation predicate every stage is applied.
func NewCorrelationFunnel[A, B any](predicates ...CorrelationStrategy[A, B]) *Funnel[A, B] {
	return &Funnel[A, B]{stages: AdaptAll(predicates...)}
}

// NewQuickFunnel correlates with first and then disambiguates with rest.
// Its default continuation predicate stops once an element has at most one
// candidate, so later stages never touch resolved elements. The predicate is
// also consulted before first: with a single B-element the correlation stage
// is skipped and every A-element keeps that element as its match.
func NewQuickFunnel[A, B any](first CorrelationStrategy[A, B], rest ...DisambiguationStrategy[A, B]) *Funnel[A, B] {
	stages := make([]DisambiguationStrategy[A, B], 0, len(rest)+1)
	stages = append(stages, Adapt(first))
	stages = append(stages, rest...)
	return &Funnel[A, B]{stages: stages, proceed: Ambiguous[A, B]()}
}

// WithContinuation returns a copy of the funnel using p before each stage.
// A nil p restores "always continue".
func (f *Funnel[A, B]) WithContinuation(p ContinuationPredicate[A, B]) *Funnel[A, B] {
	clone := *f
	clone.proceed = p
	return &clone
}

// WithWorkers returns a copy of the funnel that spreads A-elements over n
// goroutines. n <= 1 keeps the run sequential.
func (f *Funnel[A, B]) WithWorkers(n int) *Funnel[A, B] {
	clone := *f
	clone.workers = n
	return &clone
}

// Len returns the number of stages.
func (f *Funnel[A, B]) Len() int {
	return len(f.stages)
}

// Always is the continuation predicate that never stops a funnel.
func Always[A, B any]() ContinuationPredicate[A, B] {
	return func(A, []B) bool { return true }
}

// Ambiguous continues while more than one candidate remains.
func Ambiguous[A, B any]() ContinuationPredicate[A, B] {
	return func(_ A, candidates []B) bool { return len(candidates) > 1 }
}

// validate rejects funnels holding stages that cannot be invoked.
func (f *Funnel[A, B]) validate() error {
	if f == nil {
		return contract.TypeContract("funnel", "is nil")
	}
	for i, s := range f.stages {
		if s == nil {
			return contract.TypeContract(fmt.Sprintf("strategies[%d]", i), "strategy is not callable")
		}
	}
	return nil
}

// narrow walks the stages for a single element. The returned slice is always
// a fresh copy, even when a stage hands back its input or a subslice of it.
func (f *Funnel[A, B]) narrow(a A, setB []B) []B {
	candidates := setB
	last := len(f.stages) - 1
	for i, stage := range f.stages {
		if len(candidates) == 0 || (f.proceed != nil && !f.proceed(a, candidates)) {
			break
		}
		candidates = stage(a, candidates)
		if i == last {
			break
		}
	}
	return append(make([]B, 0, len(candidates)), candidates...)
}

// Element narrows setB for a single A-element.
func (f *Funnel[A, B]) Element(a A, setB []B) ([]B, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	var result []B
	if err := guard("funnel", func() { result = f.narrow(a, setB) }); err != nil {
		return nil, err
	}
	return result, nil
}

// Run narrows setB for every element of setA. The mapping follows setA's
// order. Any failure aborts the batch and no mapping is returned.
func (f *Funnel[A, B]) Run(setA []A, setB []B) (Mapping[A, B], error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	mapping := make(Mapping[A, B], len(setA))
	if f.workers <= 1 || len(setA) < 2 {
		err := guard("funnel", func() {
			for i, a := range setA {
				mapping[i] = Entry[A, B]{Key: a, Matches: f.narrow(a, setB)}
			}
		})
		if err != nil {
			return nil, err
		}
		return mapping, nil
	}

	// The first failure cancels ctx, elements not yet started are skipped.
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(f.workers)
	for i, a := range setA {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			return guard(fmt.Sprintf("funnel element %d", i), func() {
				mapping[i] = Entry[A, B]{Key: a, Matches: f.narrow(a, setB)}
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mapping, nil
}

// ElementWithReporter narrows setB for a and projects the surviving
// candidates through reportB.
func ElementWithReporter[A, B, V any](f *Funnel[A, B], a A, setB []B, reportB Reporter[B, V]) ([]V, error) {
	if reportB == nil {
		return nil, contract.TypeContract("reporterB", "reporter is not callable")
	}
	matches, err := f.Element(a, setB)
	if err != nil {
		return nil, err
	}

	var projected []V
	if err := guard("reporterB", func() { projected = project(matches, reportB) }); err != nil {
		return nil, err
	}
	return projected, nil
}

// RunWithReporters runs the funnel and projects each key through reportA and
// each surviving candidate through reportB.
func RunWithReporters[A, B, K, V any](f *Funnel[A, B], setA []A, setB []B, reportA Reporter[A, K], reportB Reporter[B, V]) (Mapping[K, V], error) {
	if reportA == nil {
		return nil, contract.TypeContract("reporterA", "reporter is not callable")
	}
	if reportB == nil {
		return nil, contract.TypeContract("reporterB", "reporter is not callable")
	}
	mapping, err := f.Run(setA, setB)
	if err != nil {
		return nil, err
	}

	var projected Mapping[K, V]
	err = guard("reporter", func() { projected = projectMapping(mapping, reportA, reportB) })
	if err != nil {
		return nil, err
	}
	return projected, nil
}

func project[T, R any](values []T, reporter Reporter[T, R]) []R {
	out := make([]R, len(values))
	for i, v := range values {
		out[i] = reporter(v)
	}
	return out
}

func projectMapping[A, B, K, V any](mapping Mapping[A, B], reportA Reporter[A, K], reportB Reporter[B, V]) Mapping[K, V] {
	out := make(Mapping[K, V], len(mapping))
	for i, e := range mapping {
		out[i] = Entry[K, V]{Key: reportA(e.Key), Matches: project(e.Matches, reportB)}
	}
	return out
}
