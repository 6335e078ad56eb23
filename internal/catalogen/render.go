package catalogen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"go/types"
	"slices"
	"text/template"

	"github.com/roach88/dosio/internal/catalog"
)

var kindsTemplate = template.Must(template.New("kinds").Parse(`// Code generated by dosio catalog gen. DO NOT EDIT.

package {{.Package}}

// Signal kinds, in catalog order.
const (
{{- range $i, $name := .Names}}
	{{$name}}{{if eq $i 0}} Kind = iota + 1{{end}}
{{- end}}
)

var names = [...]string{
	"",
{{- range .Names}}
	{{printf "%q" .}},
{{- end}}
}
`))

// reserved holds the package-level identifiers of the hand-written catalog
// sources plus the table the template declares. A kind named after one of
// them would not compile.
var reserved = map[string]bool{
	"Kind":          true,
	"Invalid":       true,
	"Lookup":        true,
	"MustLookup":    true,
	"Len":           true,
	"All":           true,
	"Names":         true,
	"DomainCatalog": true,
	"Fingerprint":   true,
	"FingerprintOf": true,
	"Normalize":     true,
	"IsIdentifier":  true,
	"names":         true,
	"fingerprint":   true,
	"fingerprintOf": true,
}

func checkName(name string) error {
	switch {
	case !catalog.IsIdentifier(name):
		return fmt.Errorf("catalogen: %q is not an identifier", name)
	case token.IsKeyword(name), types.Universe.Lookup(name) != nil:
		return fmt.Errorf("catalogen: %q is a Go keyword or predeclared identifier", name)
	case reserved[name]:
		return fmt.Errorf("catalogen: %q clashes with a catalog package identifier", name)
	}
	return nil
}

// Merge concatenates name lists, sorts the result and drops duplicates.
func Merge(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

// Render emits the catalog source for pkg. names must be sorted, unique
// identifiers, as returned by Merge.
func Render(pkg string, names []string) ([]byte, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("catalogen: empty catalog")
	}
	for i, name := range names {
		if err := checkName(name); err != nil {
			return nil, err
		}
		if i > 0 && names[i-1] >= name {
			return nil, fmt.Errorf("catalogen: names not sorted and unique at %q", name)
		}
	}

	var buf bytes.Buffer
	err := kindsTemplate.Execute(&buf, struct {
		Package string
		Names   []string
	}{pkg, names})
	if err != nil {
		return nil, fmt.Errorf("catalogen: render: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("catalogen: format: %w", err)
	}
	return src, nil
}
