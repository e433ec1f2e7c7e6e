package record

import (
	"reflect"
	"slices"

	"data-correlator/core/contract"
	"data-correlator/core/utils"
)

// PatchOptions selects how a target record is filled from a source record.
type PatchOptions[R any] struct {
	// Source provides the values. Required.
	Source *R
	// Only restricts patching to these attributes.
	Only []string
	// Except excludes these attributes. Mutually exclusive with Only.
	Except []string
	// Present decides whether a value counts as set. Defaults to utils.IsPresent;
	// utils.IsNotNil keeps empty strings, zeros and false from being overwritten.
	Present func(any) bool
}

// Change is one attribute filled by Patch.
type Change struct {
	Name string `json:"name" yaml:"name"`
	From any    `json:"from" yaml:"from"`
	To   any    `json:"to" yaml:"to"`
}

// Patch returns a copy of target whose absent attributes are filled from the
// source, together with the list of filled attributes. Attributes present in
// target are never changed. Ignored and read-only attributes are skipped.
func (d *Descriptor[R]) Patch(target R, opts PatchOptions[R]) (R, []Change, error) {
	var zero R
	if opts.Source == nil {
		return zero, nil, contract.Configuration("source", "a source record is required to patch a target")
	}
	if len(opts.Only) > 0 && len(opts.Except) > 0 {
		return zero, nil, contract.Configuration("only/except", "only one of only or except may be given")
	}
	for _, name := range slices.Concat(opts.Only, opts.Except) {
		if _, ok := d.index[name]; !ok {
			return zero, nil, contract.Configuration("only/except", "unknown attribute %q", name)
		}
	}
	present := opts.Present
	if present == nil {
		present = utils.IsPresent
	}

	source := *opts.Source
	result := target
	changes := []Change{}
	for _, f := range d.fields {
		if f.set == nil || f.Kind == Ignored || !selected(f.Name, opts.Only, opts.Except) {
			continue
		}
		current := f.get(target)
		if present(current) {
			continue
		}
		value := f.get(source)
		if !present(value) {
			continue
		}
		f.set(&result, value)
		changes = append(changes, Change{Name: f.Name, From: current, To: value})
	}

	for _, f := range d.fields {
		if f.Kind == Ignored {
			continue
		}
		before := f.get(target)
		if present(before) && !reflect.DeepEqual(before, f.get(result)) {
			return zero, nil, contract.Invariant("patching changed attribute %q that was already present", f.Name)
		}
	}
	return result, changes, nil
}

func selected(name string, only, except []string) bool {
	if len(only) > 0 {
		return slices.Contains(only, name)
	}
	return !slices.Contains(except, name)
}
