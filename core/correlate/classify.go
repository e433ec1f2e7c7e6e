package correlate

import "data-correlator/core/contract"

// Classify buckets a mapping and computes the unmatched part of setB.
//
// Each allocated candidate removes exactly one equal occurrence of itself
// from setB, earliest first, so duplicated values are tracked per occurrence.
// Candidates that do not occur in setB remove nothing.
//
// V may be an interface type such as any. A dynamic value that cannot be
// hashed (a slice or map returned by a reporter) is reported as a
// TypeContractError rather than a panic.
func Classify[K any, V comparable](mapping Mapping[K, V], setB []V) (report *Report[K, V], err error) {
	defer func() {
		if r := recover(); r != nil {
			report, err = nil, contract.TypeContract("reporterB", "projected values must be comparable: %v", r)
		}
	}()
	return classify(mapping, setB)
}

func classify[K any, V comparable](mapping Mapping[K, V], setB []V) (*Report[K, V], error) {
	report := &Report[K, V]{
		OneToOne:       []Pair[K, V]{},
		OneToMany:      Mapping[K, V]{},
		NoCorrelationA: []K{},
	}

	allocated := make(map[V]int)
	for _, e := range mapping {
		switch n := len(e.Matches); {
		case n == 0:
			report.NoCorrelationA = append(report.NoCorrelationA, e.Key)
		case n == 1:
			report.OneToOne = append(report.OneToOne, Pair[K, V]{Key: e.Key, Match: e.Matches[0]})
			allocated[e.Matches[0]]++
		case n > 1:
			report.OneToMany = append(report.OneToMany, e)
			for _, m := range e.Matches {
				allocated[m]++
			}
		default:
			// Unreachable while len is non-negative. Kept so a broken
			// bucket state surfaces as an error instead of a silent miscount.
			return nil, contract.Invariant("negative candidate count %d for a mapping entry", n)
		}
	}

	report.NoCorrelationB = subtract(setB, allocated)
	report.Summary = Summary{
		OneToOneCount:       len(report.OneToOne),
		OneToManyCount:      len(report.OneToMany),
		NoCorrelationACount: len(report.NoCorrelationA),
		NoCorrelationBCount: len(report.NoCorrelationB),
	}
	return report, nil
}

// subtract removes one occurrence of setB's values per allocation, keeping
// the remaining elements in order. allocated is consumed.
func subtract[V comparable](setB []V, allocated map[V]int) []V {
	remaining := make([]V, 0, len(setB))
	for _, b := range setB {
		if allocated[b] > 0 {
			allocated[b]--
			continue
		}
		remaining = append(remaining, b)
	}
	return remaining
}

// ReportMapping runs the funnel and classifies the result.
func ReportMapping[A any, B comparable](f *Funnel[A, B], setA []A, setB []B) (*Report[A, B], error) {
	mapping, err := f.Run(setA, setB)
	if err != nil {
		return nil, err
	}
	return Classify(mapping, setB)
}

// ReportWithReporters runs the funnel, projects keys through reportA and
// candidates through reportB, and classifies the projected mapping against
// the projected setB.
func ReportWithReporters[A, B, K any, V comparable](f *Funnel[A, B], setA []A, setB []B, reportA Reporter[A, K], reportB Reporter[B, V]) (*Report[K, V], error) {
	mapping, err := RunWithReporters(f, setA, setB, reportA, reportB)
	if err != nil {
		return nil, err
	}

	var projectedB []V
	if err := guard("reporterB", func() { projectedB = project(setB, reportB) }); err != nil {
		return nil, err
	}
	return Classify(mapping, projectedB)
}
