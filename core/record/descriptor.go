package record

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"

	"data-correlator/core/contract"
)

// Kind classifies an attribute.
type Kind int

const (
	// Simple attributes describe the record itself.
	Simple Kind = iota
	// Relational attributes identify or link other records.
	Relational
	// Ignored attributes are bookkeeping and take no part in patching or comparison.
	Ignored
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Relational:
		return "relational"
	case Ignored:
		return "ignored"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	relationalName = regexp.MustCompile(`(^id|_ids?)$`)
	ignoredName    = regexp.MustCompile(`^(csv_row_number|errors)$`)
)

// InferKind classifies an attribute by its name.
func InferKind(name string) Kind {
	switch {
	case ignoredName.MatchString(name):
		return Ignored
	case relationalName.MatchString(name):
		return Relational
	}
	return Simple
}

// Field declares one attribute of R.
type Field[R any] struct {
	Name string
	Kind Kind

	typ  reflect.Type
	get  func(R) any
	set  func(*R, any)
	diff func(a, b R, path string) []Difference
}

// As overrides the inferred kind.
func (f Field[R]) As(k Kind) Field[R] {
	f.Kind = k
	return f
}

// Attr declares a readable and writable attribute.
func Attr[R, V any](name string, get func(R) V, set func(*R, V)) Field[R] {
	f := Field[R]{Name: name, Kind: InferKind(name), typ: reflect.TypeFor[V]()}
	if get != nil {
		f.get = func(r R) any { return get(r) }
	}
	if set != nil {
		f.set = func(r *R, v any) { set(r, v.(V)) }
	}
	return f
}

// Nested declares a relational attribute holding a single record described by d.
// Comparison descends into it field by field. Nested attributes are read only.
func Nested[R, C any](name string, get func(R) *C, d *Descriptor[C]) Field[R] {
	return Field[R]{
		Name: name,
		Kind: Relational,
		typ:  reflect.TypeFor[*C](),
		get:  func(r R) any { return get(r) },
		diff: func(a, b R, path string) []Difference {
			return d.compareTree([]*C{get(a)}, []*C{get(b)}, path, false)
		},
	}
}

// Collection declares a relational attribute holding records described by d.
func Collection[R, C any](name string, get func(R) []C, d *Descriptor[C]) Field[R] {
	return Field[R]{
		Name: name,
		Kind: Relational,
		typ:  reflect.TypeFor[[]C](),
		get:  func(r R) any { return get(r) },
		diff: func(a, b R, path string) []Difference {
			return d.compareTree(pointers(get(a)), pointers(get(b)), path, true)
		},
	}
}

// Attribute is a named attribute value read from a record.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Descriptor is the immutable attribute table of R.
type Descriptor[R any] struct {
	fields     []Field[R]
	index      map[string]int
	simple     []string
	relational []string
}

// NewDescriptor validates the field declarations and precomputes the
// attribute name lists.
func NewDescriptor[R any](fields ...Field[R]) (*Descriptor[R], error) {
	d := &Descriptor[R]{
		fields: slices.Clone(fields),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range d.fields {
		arg := fmt.Sprintf("fields[%d]", i)
		if f.Name == "" {
			return nil, contract.Configuration(arg, "attribute name is empty")
		}
		if f.get == nil {
			return nil, contract.TypeContract(arg, "attribute %q has no accessor", f.Name)
		}
		if _, dup := d.index[f.Name]; dup {
			return nil, contract.Configuration(arg, "attribute %q is declared twice", f.Name)
		}
		d.index[f.Name] = i

		switch f.Kind {
		case Simple:
			d.simple = append(d.simple, f.Name)
		case Relational:
			d.relational = append(d.relational, f.Name)
		}
	}
	return d, nil
}

// MustDescriptor is NewDescriptor for package-level declarations.
func MustDescriptor[R any](fields ...Field[R]) *Descriptor[R] {
	d, err := NewDescriptor(fields...)
	if err != nil {
		panic(err)
	}
	return d
}

// SimpleAttributeNames lists the simple attributes in declaration order.
func (d *Descriptor[R]) SimpleAttributeNames() []string {
	return slices.Clone(d.simple)
}

// RelationalAttributeNames lists the relational attributes in declaration order.
func (d *Descriptor[R]) RelationalAttributeNames() []string {
	return slices.Clone(d.relational)
}

// Names lists every declared attribute.
func (d *Descriptor[R]) Names() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// KindOf returns the kind of the named attribute.
func (d *Descriptor[R]) KindOf(name string) (Kind, bool) {
	i, ok := d.index[name]
	if !ok {
		return 0, false
	}
	return d.fields[i].Kind, true
}

// Get reads the named attribute from r.
func (d *Descriptor[R]) Get(r R, name string) (any, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, contract.Configuration("name", "unknown attribute %q", name)
	}
	return d.fields[i].get(r), nil
}

// SimpleAttributes returns the simple attributes of r.
func (d *Descriptor[R]) SimpleAttributes(r R) []Attribute {
	return d.read(r, d.simple)
}

// RelationalAttributes returns the relational attributes of r.
func (d *Descriptor[R]) RelationalAttributes(r R) []Attribute {
	return d.read(r, d.relational)
}

func (d *Descriptor[R]) read(r R, names []string) []Attribute {
	out := make([]Attribute, len(names))
	for i, name := range names {
		out[i] = Attribute{Name: name, Value: d.fields[d.index[name]].get(r)}
	}
	return out
}

// Accessor returns a typed accessor for the named attribute, suitable for
// building strategies and reporters.
func Accessor[R, V any](d *Descriptor[R], name string) (func(R) V, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, contract.Configuration("name", "unknown attribute %q", name)
	}
	f := d.fields[i]
	if want := reflect.TypeFor[V](); f.typ != want {
		return nil, contract.TypeContract("name", "attribute %q is a %s, not a %s", name, f.typ, want)
	}
	return func(r R) V {
		v, _ := f.get(r).(V)
		return v
	}, nil
}

func pointers[C any](values []C) []*C {
	out := make([]*C, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out
}
