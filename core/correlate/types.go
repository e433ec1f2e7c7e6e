package correlate

// CorrelationStrategy decides whether a single B-element matches an A-element.
// It must be pure and deterministic.
type CorrelationStrategy[A, B any] func(a A, b B) bool

// DisambiguationStrategy narrows the candidate subset of an A-element.
// The result may be smaller, equal or empty.
type DisambiguationStrategy[A, B any] func(a A, candidates []B) []B

// ContinuationPredicate is consulted before every stage of a funnel.
// Returning false stops the funnel and keeps the current candidates.
type ContinuationPredicate[A, B any] func(a A, candidates []B) bool

// Reporter projects an element into its reported representation.
type Reporter[T, R any] func(T) R

// Entry associates an A-element (or its projection) with its matches.
type Entry[K, V any] struct {
	Key     K   `json:"key" yaml:"key"`
	Matches []V `json:"matches" yaml:"matches"`
}

// Mapping is an ordered result mapping. Entries follow Set A's order and
// duplicate A-elements keep their own entries.
type Mapping[K, V any] []Entry[K, V]

// Keys returns the keys in mapping order.
func (m Mapping[K, V]) Keys() []K {
	keys := make([]K, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Pair is a resolved one-to-one match.
type Pair[K, V any] struct {
	Key   K `json:"key" yaml:"key"`
	Match V `json:"match" yaml:"match"`
}

// Summary holds the bucket counts of a Report.
type Summary struct {
	OneToOneCount       int `json:"one_to_one_count" yaml:"one_to_one_count"`
	OneToManyCount      int `json:"one_to_many_count" yaml:"one_to_many_count"`
	NoCorrelationACount int `json:"no_correlation_a_count" yaml:"no_correlation_a_count"`
	NoCorrelationBCount int `json:"no_correlation_b_count" yaml:"no_correlation_b_count"`
}

// Report is the classified outcome of a correlation run.
type Report[K, V any] struct {
	// Summary provides the four bucket counts.
	Summary Summary `json:"summary" yaml:"summary"`

	// OneToOne holds every A-element with exactly one match, in Set A order.
	OneToOne []Pair[K, V] `json:"one_to_one" yaml:"one_to_one"`

	// OneToMany holds every A-element still left with several candidates.
	OneToMany Mapping[K, V] `json:"one_to_many" yaml:"one_to_many"`

	// NoCorrelationA lists the A-elements without any match.
	NoCorrelationA []K `json:"no_correlation_a" yaml:"no_correlation_a"`

	// NoCorrelationB lists the B-elements never allocated, in Set B order.
	NoCorrelationB []V `json:"no_correlation_b" yaml:"no_correlation_b"`
}

// FrequencyGroup gathers the entries of a mapping sharing the same match count.
type FrequencyGroup[A, B any] struct {
	Count   int           `json:"count" yaml:"count"`
	Entries Mapping[A, B] `json:"entries" yaml:"entries"`
}
