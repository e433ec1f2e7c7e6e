package presets

import (
	"sort"

	"data-correlator/core/contract"
	"data-correlator/core/correlate"
)

// Registry names the strategies and reporters available for one pair of
// record types, so runs can be described by configuration.
type Registry[A, B any] struct {
	correlators    map[string]correlate.CorrelationStrategy[A, B]
	disambiguators map[string]correlate.DisambiguationStrategy[A, B]
	reporters      map[string]reporterPair[A, B]
}

type reporterPair[A, B any] struct {
	a correlate.Reporter[A, any]
	b correlate.Reporter[B, any]
}

// Catalog lists registered names, sorted.
type Catalog struct {
	Correlators    []string `json:"correlators" yaml:"correlators"`
	Disambiguators []string `json:"disambiguators" yaml:"disambiguators"`
	Reporters      []string `json:"reporters" yaml:"reporters"`
}

// NewRegistry creates an empty registry.
func NewRegistry[A, B any]() *Registry[A, B] {
	return &Registry[A, B]{
		correlators:    make(map[string]correlate.CorrelationStrategy[A, B]),
		disambiguators: make(map[string]correlate.DisambiguationStrategy[A, B]),
		reporters:      make(map[string]reporterPair[A, B]),
	}
}

// RegisterCorrelator adds or replaces a correlation strategy.
func (r *Registry[A, B]) RegisterCorrelator(name string, s correlate.CorrelationStrategy[A, B]) error {
	if s == nil {
		return contract.TypeContract(name, "strategy is not callable")
	}
	r.correlators[name] = s
	return nil
}

// RegisterDisambiguator adds or replaces a disambiguation strategy.
func (r *Registry[A, B]) RegisterDisambiguator(name string, s correlate.DisambiguationStrategy[A, B]) error {
	if s == nil {
		return contract.TypeContract(name, "strategy is not callable")
	}
	r.disambiguators[name] = s
	return nil
}

// RegisterReporter adds or replaces a reporter pair, one per side.
func (r *Registry[A, B]) RegisterReporter(name string, a correlate.Reporter[A, any], b correlate.Reporter[B, any]) error {
	if a == nil || b == nil {
		return contract.TypeContract(name, "reporter is not callable")
	}
	r.reporters[name] = reporterPair[A, B]{a: a, b: b}
	return nil
}

// Correlator looks up a correlation strategy.
func (r *Registry[A, B]) Correlator(name string) (correlate.CorrelationStrategy[A, B], error) {
	s, ok := r.correlators[name]
	if !ok {
		return nil, contract.Configuration("strategy", "unknown correlator %q", name)
	}
	return s, nil
}

// Stage looks up a funnel stage. Disambiguators are used as is and
// correlators are adapted.
func (r *Registry[A, B]) Stage(name string) (correlate.DisambiguationStrategy[A, B], error) {
	if s, ok := r.disambiguators[name]; ok {
		return s, nil
	}
	if s, ok := r.correlators[name]; ok {
		return correlate.Adapt(s), nil
	}
	return nil, contract.Configuration("strategy", "unknown strategy %q", name)
}

// Correlators resolves names that must all be correlators.
func (r *Registry[A, B]) Correlators(names []string) ([]correlate.CorrelationStrategy[A, B], error) {
	out := make([]correlate.CorrelationStrategy[A, B], len(names))
	for i, name := range names {
		s, err := r.Correlator(name)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Stages resolves names of correlators or disambiguators.
func (r *Registry[A, B]) Stages(names []string) ([]correlate.DisambiguationStrategy[A, B], error) {
	out := make([]correlate.DisambiguationStrategy[A, B], len(names))
	for i, name := range names {
		s, err := r.Stage(name)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Reporters looks up the reporter pair registered under name.
func (r *Registry[A, B]) Reporters(name string) (correlate.Reporter[A, any], correlate.Reporter[B, any], error) {
	p, ok := r.reporters[name]
	if !ok {
		return nil, nil, contract.Configuration("reporter", "unknown reporter %q", name)
	}
	return p.a, p.b, nil
}

// Catalog lists every registered name.
func (r *Registry[A, B]) Catalog() Catalog {
	return Catalog{
		Correlators:    sortedKeys(r.correlators),
		Disambiguators: sortedKeys(r.disambiguators),
		Reporters:      sortedKeys(r.reporters),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Any widens a typed reporter so it can be registered. nil stays nil.
func Any[T, R any](r correlate.Reporter[T, R]) correlate.Reporter[T, any] {
	if r == nil {
		return nil
	}
	return func(v T) any { return r(v) }
}
