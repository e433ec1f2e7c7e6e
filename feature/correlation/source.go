package correlation

import (
	"strings"

	"data-correlator/core/config"
	"data-correlator/core/contract"
)

// SourceKind is where a record set is read from.
type SourceKind string

const (
	// SourceDB reads a table.
	SourceDB SourceKind = "db"
	// SourceStorage reads an exported object.
	SourceStorage SourceKind = "storage"
)

// Source is a parsed source reference such as "db:people".
type Source struct {
	Kind SourceKind `json:"kind" yaml:"kind"`
	Name string     `json:"name" yaml:"name"`
}

// String renders the reference back, it doubles as the cache key.
func (s Source) String() string {
	return string(s.Kind) + ":" + s.Name
}

// ParseSource parses "<kind>[:<name>]". A bare kind falls back to the
// configured people table or object.
func ParseSource(ref string, defaults config.Correlation) (Source, error) {
	kind, name, _ := strings.Cut(strings.TrimSpace(ref), ":")
	src := Source{Kind: SourceKind(kind), Name: strings.TrimSpace(name)}

	switch src.Kind {
	case SourceDB:
		if src.Name == "" {
			src.Name = defaults.PeopleTable
		}
	case SourceStorage:
		if src.Name == "" {
			src.Name = defaults.PeopleObject
		}
	default:
		return Source{}, contract.Configuration("source", "unknown source kind in %q, want db or storage", ref)
	}

	if src.Name == "" {
		return Source{}, contract.Configuration("source", "no name given in %q and no default configured", ref)
	}
	return src, nil
}
