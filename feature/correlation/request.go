package correlation

import (
	"fmt"

	"data-correlator/core/contract"
	"data-correlator/core/correlate"
	"data-correlator/feature/people"

	"github.com/go-playground/validator/v10"
)

// Funnel modes.
const (
	ModeDeepCorrelation    = "deep_correlation"
	ModeDeepDisambiguation = "deep_disambiguation"
	ModeQuick              = "quick"
)

// Continuation overrides.
const (
	ContinueAlways    = "always"
	ContinueAmbiguous = "ambiguous"
)

var validate = validator.New()

// RunRequest describes one correlation run. Each side is either a source
// reference or inline records.
type RunRequest struct {
	A          string          `json:"a,omitempty" yaml:"a,omitempty" validate:"required_without=RecordsA,excluded_with=RecordsA"`
	B          string          `json:"b,omitempty" yaml:"b,omitempty" validate:"required_without=RecordsB,excluded_with=RecordsB"`
	RecordsA   []people.Person `json:"records_a,omitempty" yaml:"records_a,omitempty"`
	RecordsB   []people.Person `json:"records_b,omitempty" yaml:"records_b,omitempty"`
	Mode       string          `json:"mode" yaml:"mode" validate:"required,oneof=deep_correlation deep_disambiguation quick"`
	Strategies []string        `json:"strategies" yaml:"strategies" validate:"required,min=1,dive,required"`
	Continue   string          `json:"continue,omitempty" yaml:"continue,omitempty" validate:"omitempty,oneof=always ambiguous"`
	ReporterA  string          `json:"reporter_a,omitempty" yaml:"reporter_a,omitempty"`
	ReporterB  string          `json:"reporter_b,omitempty" yaml:"reporter_b,omitempty"`
	Workers    int             `json:"workers,omitempty" yaml:"workers,omitempty" validate:"gte=0,lte=64"`
	// Store names the object the report is saved under, below the report prefix.
	Store string `json:"store,omitempty" yaml:"store,omitempty" validate:"omitempty,excludes=.."`
}

// Validate checks the request shape. Strategy and reporter names are checked
// against the registry when the funnel is built.
func (r *RunRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: request: %w", contract.ErrConfiguration, err)
	}
	return nil
}

// continuation maps the override to a predicate. nil keeps the mode default.
func continuation(name string) correlate.ContinuationPredicate[people.Person, people.Person] {
	switch name {
	case ContinueAlways:
		return correlate.Always[people.Person, people.Person]()
	case ContinueAmbiguous:
		return correlate.Ambiguous[people.Person, people.Person]()
	}
	return nil
}
