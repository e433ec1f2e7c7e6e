package correlate

import "data-correlator/core/contract"

// CorrelateElement returns the elements of setB matching a, in setB's order.
// The result is never nil.
func CorrelateElement[A, B any](a A, setB []B, predicate CorrelationStrategy[A, B]) []B {
	matches := make([]B, 0, len(setB))
	for _, b := range setB {
		if predicate(a, b) {
			matches = append(matches, b)
		}
	}
	return matches
}

// Correlate maps every element of setA to its matches in setB, including
// elements without matches. There is no default predicate.
func Correlate[A, B any](setA []A, setB []B, predicate CorrelationStrategy[A, B]) (Mapping[A, B], error) {
	if predicate == nil {
		return nil, contract.Configuration("predicate", "cannot correlate without a predicate")
	}

	var mapping Mapping[A, B]
	err := guard("correlation predicate", func() {
		mapping = make(Mapping[A, B], len(setA))
		for i, a := range setA {
			mapping[i] = Entry[A, B]{Key: a, Matches: CorrelateElement(a, setB, predicate)}
		}
	})
	if err != nil {
		return nil, err
	}
	return mapping, nil
}

// CorrelationFrequencyMapping correlates setA with setB and groups the entries
// by match count. Groups appear in the order their count is first seen.
func CorrelationFrequencyMapping[A, B any](setA []A, setB []B, predicate CorrelationStrategy[A, B]) ([]FrequencyGroup[A, B], error) {
	mapping, err := Correlate(setA, setB, predicate)
	if err != nil {
		return nil, err
	}
	return GroupByFrequency(mapping), nil
}

// GroupByFrequency groups an existing mapping by match count.
func GroupByFrequency[K, V any](mapping Mapping[K, V]) []FrequencyGroup[K, V] {
	var groups []FrequencyGroup[K, V]
	index := make(map[int]int)
	for _, e := range mapping {
		n := len(e.Matches)
		i, ok := index[n]
		if !ok {
			i = len(groups)
			index[n] = i
			groups = append(groups, FrequencyGroup[K, V]{Count: n})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// Adapt turns a correlation predicate into the equivalent disambiguation
// strategy: the candidates for which predicate(a, b) holds, in order.
func Adapt[A, B any](predicate CorrelationStrategy[A, B]) DisambiguationStrategy[A, B] {
	if predicate == nil {
		return nil
	}
	return func(a A, candidates []B) []B {
		return CorrelateElement(a, candidates, predicate)
	}
}

// AdaptAll adapts every predicate, keeping nil entries so validation can
// report their position.
func AdaptAll[A, B any](predicates ...CorrelationStrategy[A, B]) []DisambiguationStrategy[A, B] {
	stages := make([]DisambiguationStrategy[A, B], len(predicates))
	for i, p := range predicates {
		stages[i] = Adapt(p)
	}
	return stages
}

// guard runs fn and converts a panic raised by caller code into an error.
func guard(stage string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = contract.StrategyFailure(stage, r)
		}
	}()
	fn()
	return nil
}
