package record

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Difference is one mismatch found by Compare. A and B hold dumps of the
// differing values.
type Difference struct {
	Path string `json:"path" yaml:"path"`
	A    string `json:"a" yaml:"a"`
	B    string `json:"b" yaml:"b"`
}

func (d Difference) String() string {
	return fmt.Sprintf("%s: %s != %s", d.Path, d.A, d.B)
}

var dumper = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func dump(v any) string {
	return strings.TrimSpace(dumper.Sdump(v))
}

// Compare lists every attribute where a and b differ. Nested and collection
// attributes are descended into using their own descriptors, so a difference
// deep in a tree is reported with its full path, e.g. "addresses[1].city".
func (d *Descriptor[R]) Compare(a, b R) []Difference {
	return d.compareFields(a, b, "")
}

// Equal reports whether Compare finds no difference.
func (d *Descriptor[R]) Equal(a, b R) bool {
	return len(d.Compare(a, b)) == 0
}

func (d *Descriptor[R]) compareFields(a, b R, prefix string) []Difference {
	var out []Difference
	for _, f := range d.fields {
		if f.Kind == Ignored {
			continue
		}
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		if f.diff != nil {
			out = append(out, f.diff(a, b, path)...)
			continue
		}
		av, bv := f.get(a), f.get(b)
		if !reflect.DeepEqual(av, bv) {
			out = append(out, Difference{Path: path, A: dump(av), B: dump(bv)})
		}
	}
	return out
}

// compareTree walks two record lists in step. Paths carry the position when
// indexed is set.
func (d *Descriptor[R]) compareTree(as, bs []*R, path string, indexed bool) []Difference {
	var out []Difference
	if len(as) != len(bs) {
		out = append(out, Difference{
			Path: path,
			A:    fmt.Sprintf("%d records", len(as)),
			B:    fmt.Sprintf("%d records", len(bs)),
		})
	}
	for i := range min(len(as), len(bs)) {
		at := path
		if indexed {
			at = fmt.Sprintf("%s[%d]", path, i)
		}
		a, b := as[i], bs[i]
		switch {
		case a == nil && b == nil:
		case a == nil || b == nil:
			out = append(out, Difference{Path: at, A: dump(a), B: dump(b)})
		default:
			out = append(out, d.compareFields(*a, *b, at)...)
		}
	}
	return out
}
