// Package correlate reconciles two collections of records, "Set A" and "Set B",
// coming from different sources.
//
// Each element of A is associated with zero or more candidates from B through
// caller-supplied strategies, and ambiguous multi-matches are narrowed step by
// step toward a one-to-one correspondence. The final mapping is classified into
// one-to-one matches, unresolved one-to-many groups and unmatched elements from
// either side.
//
// # Architecture
//
//  1. Correlator: CorrelateElement and Correlate filter Set B with a pairwise
//     predicate. CorrelationFrequencyMapping groups the result by match count.
//
//  2. Funnel: an immutable, ordered chain of DisambiguationStrategy stages applied
//     per A-element under a ContinuationPredicate. Correlation stages are adapted
//     with Adapt so correlation and disambiguation share one pipeline.
//
//  3. Classifier: Classify buckets a mapping and subtracts every allocated
//     candidate from Set B, one occurrence per allocation.
//
// Reporters only shape the output. They never influence which elements match.
//
// # Defaults
//
// A funnel built with NewCorrelationFunnel or NewDisambiguationFunnel applies
// every stage when no continuation predicate is given. NewQuickFunnel instead
// stops as soon as an element has at most one candidate left. The two defaults
// differ on purpose.
//
// # Usage Example
//
//	f := correlate.NewQuickFunnel(sameID, presets.PickLast[*Person, *Person]())
//	report, err := correlate.ReportWithReporters(f, setA, setB, byEmail, byEmail)
//
// The engine holds no state between calls and performs no I/O.
package correlate
