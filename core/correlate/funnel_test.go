package correlate

import (
	"sync/atomic"
	"testing"

	"data-correlator/core/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elementStrategies() []CorrelationStrategy[int, int] {
	return []CorrelationStrategy[int, int]{
		func(_, b int) bool { return b < 6 },
		func(_, b int) bool { return b < 5 },
		func(_, b int) bool { return b < 4 },
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func TestFunnel_Element(t *testing.T) {
	setB := []int{1, 2, 3, 4, 5, 6}

	t.Run("Applies every stage without a predicate", func(t *testing.T) {
		result, err := NewCorrelationFunnel(elementStrategies()...).Element(1, setB)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, result)
	})

	t.Run("Stops when the predicate turns false", func(t *testing.T) {
		f := NewCorrelationFunnel(elementStrategies()...).
			WithContinuation(func(_ int, bs []int) bool { return sum(bs) > 10 })
		result, err := f.Element(1, setB)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4}, result)
	})

	t.Run("Rejects a non-callable stage", func(t *testing.T) {
		strategies := []CorrelationStrategy[int, int]{func(int, int) bool { return true }, nil}
		_, err := NewCorrelationFunnel(strategies...).Element(1, setB)
		assert.ErrorIs(t, err, contract.ErrTypeContract)
		assert.Contains(t, err.Error(), "strategies[1]")
	})
}

func TestElementWithReporter(t *testing.T) {
	setB := []int{1, 2, 3, 4, 5, 6}
	toString := func(b int) string { return string(rune('0' + b)) }

	result, err := ElementWithReporter(NewCorrelationFunnel(elementStrategies()...), 1, setB, toString)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, result)

	f := NewCorrelationFunnel(elementStrategies()...).
		WithContinuation(func(_ int, bs []int) bool { return sum(bs) > 10 })
	result, err = ElementWithReporter(f, 1, setB, toString)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, result)

	_, err = ElementWithReporter[int, int, string](f, 1, setB, nil)
	assert.ErrorIs(t, err, contract.ErrTypeContract)
	assert.Contains(t, err.Error(), "reporterB")
}

// TestFunnel_NonCallableStageRunsNothing tests that validation happens before any stage executes.
func TestFunnel_NonCallableStageRunsNothing(t *testing.T) {
	calls := 0
	counting := func(_ int, bs []int) []int {
		calls++
		return bs
	}

	_, err := NewDisambiguationFunnel(counting, nil, counting).Run([]int{1, 2}, []int{1, 2, 3})
	assert.ErrorIs(t, err, contract.ErrTypeContract)
	assert.Equal(t, 0, calls)
}

func TestDeepCorrelation(t *testing.T) {
	setA, setB := tiedSets()

	t.Run("Applies all stages without a predicate", func(t *testing.T) {
		mapping, err := NewCorrelationFunnel(personStrategies()...).Run(setA, setB)
		require.NoError(t, err)
		assert.Equal(t, Mapping[*person, *person]{
			{Key: setA[0], Matches: []*person{setB[0]}},
			{Key: setA[1], Matches: []*person{setB[4]}},
		}, mapping)
	})

	t.Run("Applies stages while the predicate holds", func(t *testing.T) {
		mapping, err := NewCorrelationFunnel(personStrategies()...).WithContinuation(moreThanTwo).Run(setA, setB)
		require.NoError(t, err)
		assert.Equal(t, Mapping[*person, *person]{
			{Key: setA[0], Matches: []*person{setB[0], setB[1]}},
			{Key: setA[1], Matches: []*person{setB[4], setB[5]}},
		}, mapping)
	})
}

func TestDeepDisambiguation(t *testing.T) {
	setA, setB := tiedSets()
	stages := []DisambiguationStrategy[*person, *person]{
		func(a *person, bs []*person) []*person { return CorrelateElement(a, bs, sameID) },
		func(a *person, bs []*person) []*person { return CorrelateElement(a, bs, sameEmail) },
		func(a *person, bs []*person) []*person { return CorrelateElement(a, bs, sameFirstName) },
	}

	mapping, err := NewDisambiguationFunnel(stages...).Run(setA, setB)
	require.NoError(t, err)
	assert.Equal(t, Mapping[*person, *person]{
		{Key: setA[0], Matches: []*person{setB[0]}},
		{Key: setA[1], Matches: []*person{setB[4]}},
	}, mapping)

	mapping, err = NewDisambiguationFunnel(stages...).WithContinuation(moreThanTwo).Run(setA, setB)
	require.NoError(t, err)
	assert.Equal(t, Mapping[*person, *person]{
		{Key: setA[0], Matches: []*person{setB[0], setB[1]}},
		{Key: setA[1], Matches: []*person{setB[4], setB[5]}},
	}, mapping)
}

// TestFunnel_ShortCircuit tests that a predicate that is always false returns the untouched subset.
func TestFunnel_ShortCircuit(t *testing.T) {
	executed := make([]int, 0)
	stage := func(id int) DisambiguationStrategy[int, int] {
		return func(_ int, bs []int) []int {
			executed = append(executed, id)
			return bs[:1]
		}
	}

	setB := []int{7, 8, 9}
	f := NewDisambiguationFunnel(stage(0), stage(1), stage(2)).
		WithContinuation(func(int, []int) bool { return false })
	result, err := f.Element(1, setB)
	require.NoError(t, err)
	assert.Equal(t, setB, result)
	assert.Empty(t, executed)

	// The returned subset never aliases the caller's slice.
	result[0] = 0
	assert.Equal(t, 7, setB[0])
}

// TestFunnel_Exhaustion tests that every stage runs, in order, when the funnel always continues.
func TestFunnel_Exhaustion(t *testing.T) {
	var executed []int
	stage := func(id int) DisambiguationStrategy[int, int] {
		return func(_ int, bs []int) []int {
			executed = append(executed, id)
			return bs
		}
	}

	for _, f := range []*Funnel[int, int]{
		NewDisambiguationFunnel(stage(0), stage(1), stage(2)),
		NewDisambiguationFunnel(stage(0), stage(1), stage(2)).WithContinuation(Always[int, int]()),
	} {
		executed = nil
		_, err := f.Element(1, []int{1})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2}, executed)
	}
}

// TestFunnel_TerminalStageIgnoresPredicate tests that the last stage's output is returned as is.
func TestFunnel_TerminalStageIgnoresPredicate(t *testing.T) {
	grow := func(_ int, bs []int) []int { return append(append([]int{}, bs...), 100) }
	f := NewDisambiguationFunnel(grow, grow).WithContinuation(func(_ int, bs []int) bool { return len(bs) < 3 })

	result, err := f.Element(0, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 100, 100}, result)
}

func TestFunnel_EdgeCases(t *testing.T) {
	t.Run("Zero stages keep the initial subset", func(t *testing.T) {
		result, err := NewDisambiguationFunnel[int, int]().Element(1, []int{3, 4})
		require.NoError(t, err)
		assert.Equal(t, []int{3, 4}, result)
	})

	t.Run("Empty subset stops before any stage", func(t *testing.T) {
		called := false
		f := NewDisambiguationFunnel(func(int, []int) []int {
			called = true
			return []int{42}
		})
		result, err := f.Element(1, nil)
		require.NoError(t, err)
		assert.Empty(t, result)
		assert.NotNil(t, result)
		assert.False(t, called)
	})

	t.Run("Empty output stops later stages", func(t *testing.T) {
		calls := 0
		empty := func(int, []int) []int {
			calls++
			return nil
		}
		result, err := NewDisambiguationFunnel(empty, empty, empty).Element(1, []int{1, 2})
		require.NoError(t, err)
		assert.Equal(t, []int{}, result)
		assert.Equal(t, 1, calls)
	})

	t.Run("Nil funnel", func(t *testing.T) {
		var f *Funnel[int, int]
		_, err := f.Run([]int{1}, []int{1})
		assert.ErrorIs(t, err, contract.ErrTypeContract)
	})
}

// TestFunnel_IndependentTraversals tests that one element's progress never affects another's.
func TestFunnel_IndependentTraversals(t *testing.T) {
	// Element 1 resolves after the first stage; element 2 needs both.
	f := NewQuickFunnel(
		func(a, b int) bool { return b%a == 0 },
		func(_ int, bs []int) []int { return bs[len(bs)-1:] },
	)
	mapping, err := f.Run([]int{5, 2}, []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, Mapping[int, int]{
		{Key: 5, Matches: []int{5}},
		{Key: 2, Matches: []int{6}},
	}, mapping)
}

func TestFunnel_Workers(t *testing.T) {
	setA := make([]int, 200)
	for i := range setA {
		setA[i] = i + 1
	}
	setB := make([]int, 50)
	for i := range setB {
		setB[i] = i + 1
	}
	pred := func(a, b int) bool { return a%b == 0 }

	sequential, err := NewCorrelationFunnel(pred).Run(setA, setB)
	require.NoError(t, err)

	parallel, err := NewCorrelationFunnel(pred).WithWorkers(8).Run(setA, setB)
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
	assert.Equal(t, setA, parallel.Keys())
}

// TestFunnel_PanicAbortsBatch tests that a panicking stage yields an error and no partial result.
func TestFunnel_PanicAbortsBatch(t *testing.T) {
	explode := func(a int, bs []int) []int {
		if a == 3 {
			panic("stage exploded")
		}
		return bs
	}

	for _, workers := range []int{0, 4} {
		mapping, err := NewDisambiguationFunnel(explode).WithWorkers(workers).Run([]int{1, 2, 3, 4}, []int{1})
		assert.ErrorIs(t, err, contract.ErrStrategyFailed)
		assert.Nil(t, mapping)
	}
}

// TestFunnel_WithCopies tests that option helpers never mutate the receiver.
func TestFunnel_WithCopies(t *testing.T) {
	base := NewDisambiguationFunnel(func(_ int, bs []int) []int { return bs[:1] })
	stopped := base.WithContinuation(func(int, []int) bool { return false })

	result, err := base.Element(1, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, result)

	result, err = stopped.Element(1, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, result)
	assert.Equal(t, 1, base.Len())
}

// TestFunnel_WorkersStopAfterFailure tests that elements not yet started are
// skipped once one element fails.
func TestFunnel_WorkersStopAfterFailure(t *testing.T) {
	setA := make([]int, 1000)
	for i := range setA {
		setA[i] = i
	}

	var calls atomic.Int64
	stage := func(a int, bs []int) []int {
		calls.Add(1)
		if a == 0 {
			panic("stage exploded")
		}
		return bs
	}

	mapping, err := NewDisambiguationFunnel(stage).WithWorkers(2).Run(setA, []int{1})
	assert.ErrorIs(t, err, contract.ErrStrategyFailed)
	assert.Nil(t, mapping)
	assert.Less(t, calls.Load(), int64(len(setA)))
}

// TestFunnel_ResultsNeverAliasSetB tests that stages returning their input
// do not share memory between the mapping and setB.
func TestFunnel_ResultsNeverAliasSetB(t *testing.T) {
	passThrough := func(_ int, bs []int) []int { return bs }
	head := func(_ int, bs []int) []int { return bs[:1] }

	for _, workers := range []int{0, 4} {
		setB := []int{1, 2, 3}
		mapping, err := NewDisambiguationFunnel(passThrough, head).WithWorkers(workers).Run([]int{1, 2}, setB)
		require.NoError(t, err)

		mapping[0].Matches[0] = 99
		assert.Equal(t, []int{1, 2, 3}, setB)
		assert.Equal(t, []int{1}, mapping[1].Matches)
	}

	setB := []int{1, 2, 3}
	result, err := NewDisambiguationFunnel(passThrough).Element(1, setB)
	require.NoError(t, err)
	result[0] = 99
	assert.Equal(t, []int{1, 2, 3}, setB)
}
