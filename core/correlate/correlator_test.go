package correlate

import (
	"testing"

	"data-correlator/core/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCorrelate_RequiresPredicate tests that correlation without a predicate is rejected.
func TestCorrelate_RequiresPredicate(t *testing.T) {
	mapping, err := Correlate[int, int](nil, nil, nil)
	assert.ErrorIs(t, err, contract.ErrConfiguration)
	assert.Contains(t, err.Error(), "predicate")
	assert.Nil(t, mapping)
}

// TestCorrelate_Modulo tests the numerical divisibility correlation.
func TestCorrelate_Modulo(t *testing.T) {
	numbers := []int{1, 2, 3, 4}
	fixed := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	mapping, err := Correlate(numbers, fixed, func(a, b int) bool { return b%a == 0 })
	require.NoError(t, err)

	assert.Equal(t, Mapping[int, int]{
		{Key: 1, Matches: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{Key: 2, Matches: []int{2, 4, 6, 8}},
		{Key: 3, Matches: []int{3, 6, 9}},
		{Key: 4, Matches: []int{4, 8}},
	}, mapping)
}

func TestCorrelate_ForcedResults(t *testing.T) {
	setA := createList(3, "A")
	setB := createList(3, "B")

	t.Run("Always false", func(t *testing.T) {
		mapping, err := Correlate(setA, setB, func(*person, *person) bool { return false })
		require.NoError(t, err)
		require.Len(t, mapping, 3)
		for _, e := range mapping {
			assert.Empty(t, e.Matches)
			assert.NotNil(t, e.Matches)
		}
	})

	t.Run("Always true", func(t *testing.T) {
		bogus := []int{0, 1, 2}
		mapping, err := Correlate(setA, bogus, func(*person, int) bool { return true })
		require.NoError(t, err)
		for _, e := range mapping {
			assert.Equal(t, bogus, e.Matches)
		}
	})

	t.Run("Unique attribute", func(t *testing.T) {
		mapping, err := Correlate(setA, setB, sameID)
		require.NoError(t, err)
		for i, e := range mapping {
			require.Len(t, e.Matches, 1)
			assert.Same(t, setB[i], e.Matches[0])
		}
	})
}

// TestCorrelate_DuplicatesKeepTheirEntries tests that repeated A-elements are not collapsed.
func TestCorrelate_DuplicatesKeepTheirEntries(t *testing.T) {
	mapping, err := Correlate([]int{2, 2, 3}, []int{2, 3, 4}, func(a, b int) bool { return a == b })
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 3}, mapping.Keys())
}

// TestCorrelateElement_Idempotent tests that re-filtering a filtered subset changes nothing.
func TestCorrelateElement_Idempotent(t *testing.T) {
	pred := func(a, b int) bool { return b > a }
	once := CorrelateElement(3, []int{5, 1, 4, 3, 9}, pred)
	twice := CorrelateElement(3, once, pred)
	assert.Equal(t, []int{5, 4, 9}, once)
	assert.Equal(t, once, twice)
}

func TestCorrelationFrequencyMapping(t *testing.T) {
	groups, err := CorrelationFrequencyMapping([]int{1, 2, 3, 4, 5}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, func(a, b int) bool { return b%a == 0 })
	require.NoError(t, err)

	counts := make([]int, len(groups))
	for i, g := range groups {
		counts[i] = g.Count
	}
	assert.Equal(t, []int{9, 4, 3, 2, 1}, counts)

	_, err = CorrelationFrequencyMapping[int, int]([]int{1}, []int{1}, nil)
	assert.ErrorIs(t, err, contract.ErrConfiguration)
}

// TestGroupByFrequency_SharedCounts tests that entries with equal counts land in one group, in order.
func TestGroupByFrequency_SharedCounts(t *testing.T) {
	mapping := Mapping[string, int]{
		{Key: "a", Matches: []int{1}},
		{Key: "b", Matches: []int{}},
		{Key: "c", Matches: []int{2}},
	}
	groups := GroupByFrequency(mapping)
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Count)
	assert.Equal(t, []string{"a", "c"}, groups[0].Entries.Keys())
	assert.Equal(t, 0, groups[1].Count)
	assert.Equal(t, []string{"b"}, groups[1].Entries.Keys())
}

// TestAdapt_MatchesFilter tests that an adapted predicate behaves like a filter over the subset.
func TestAdapt_MatchesFilter(t *testing.T) {
	pred := func(a, b int) bool { return (a+b)%2 == 0 }
	subset := []int{1, 2, 3, 4, 5, 6}

	for _, a := range []int{1, 2} {
		assert.Equal(t, CorrelateElement(a, subset, pred), Adapt(pred)(a, subset))
	}
	assert.Nil(t, Adapt[int, int](nil))
}

// TestCorrelate_PanicAbortsBatch tests that a panicking predicate yields no partial mapping.
func TestCorrelate_PanicAbortsBatch(t *testing.T) {
	mapping, err := Correlate([]int{1, 2, 3}, []int{1, 2}, func(a, b int) bool {
		if a == 3 {
			panic("unexpected record")
		}
		return true
	})
	assert.ErrorIs(t, err, contract.ErrStrategyFailed)
	assert.Contains(t, err.Error(), "unexpected record")
	assert.Nil(t, mapping)
}
