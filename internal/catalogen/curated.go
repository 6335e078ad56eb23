package catalogen

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed curated.cue
var curatedCUE []byte

//go:embed schema.cue
var schemaCUE string

// Group is a named list of curated signal names.
type Group struct {
	Name  string
	Kinds []string
}

// Curated is the hand-maintained part of the catalog, in declaration order.
type Curated struct {
	Groups []Group
}

// Names returns every curated name in declaration order. A name listed in
// several groups appears several times.
func (c *Curated) Names() []string {
	var names []string
	for _, g := range c.Groups {
		names = append(names, g.Kinds...)
	}
	return names
}

// DefaultCurated returns the embedded curated list.
func DefaultCurated() (*Curated, error) {
	return LoadCuratedSource("curated.cue", curatedCUE)
}

// LoadCurated reads a curated list from a CUE file.
func LoadCurated(path string) (*Curated, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogen: read curated list: %w", err)
	}
	return LoadCuratedSource(path, src)
}

// LoadCuratedSource compiles src against the curated schema: a top-level
// `groups` struct of string lists whose elements are Go identifiers.
func LoadCuratedSource(filename string, src []byte) (*Curated, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("catalogen: compile schema: %w", err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, curatedError(filename, err)
	}

	v = schema.Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, curatedError(filename, err)
	}

	groups := v.LookupPath(cue.ParsePath("groups"))
	if !groups.Exists() {
		return nil, fmt.Errorf("catalogen: %s: no groups defined", filename)
	}

	iter, err := groups.Fields()
	if err != nil {
		return nil, curatedError(filename, err)
	}

	c := &Curated{}
	for iter.Next() {
		g := Group{Name: iter.Selector().Unquoted()}
		list, err := iter.Value().List()
		if err != nil {
			return nil, curatedError(filename, err)
		}
		for list.Next() {
			name, err := list.Value().String()
			if err != nil {
				return nil, curatedError(filename, err)
			}
			g.Kinds = append(g.Kinds, name)
		}
		c.Groups = append(c.Groups, g)
	}
	return c, nil
}

// curatedError flattens a CUE error, positions included.
func curatedError(filename string, err error) error {
	return fmt.Errorf("catalogen: %s: %s", filename, cueerrors.Details(err, nil))
}
