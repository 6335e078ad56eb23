package catalogen

import (
	"log/slog"

	"github.com/roach88/dosio/internal/catalog"
)

// Options selects the catalog sources.
type Options struct {
	// CuratedPath is a CUE curated list; empty uses the embedded one.
	CuratedPath string

	// FEMRepo is a FEM repository directory; empty skips FEM discovery.
	FEMRepo string

	// Package is the package clause of the output, "catalog" by default.
	Package string
}

// Result is a generated catalog.
type Result struct {
	Names       []string
	Source      []byte
	Fingerprint string

	// Curated and Discovered count the names each source contributed
	// before merging.
	Curated    int
	Discovered int
}

// Generate loads the curated list, discovers the FEM names if a repository
// is given, and renders the merged catalog.
func Generate(opts Options) (*Result, error) {
	var (
		curated *Curated
		err     error
	)
	if opts.CuratedPath != "" {
		curated, err = LoadCurated(opts.CuratedPath)
	} else {
		curated, err = DefaultCurated()
	}
	if err != nil {
		return nil, err
	}

	var fem []string
	if opts.FEMRepo != "" {
		slog.Info("discovering FEM signals", "repo", opts.FEMRepo)
		fem, err = DiscoverFEM(opts.FEMRepo)
		if err != nil {
			return nil, err
		}
	} else {
		slog.Debug("no FEM repository, using the curated list only")
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = "catalog"
	}

	names := Merge(curated.Names(), fem)
	src, err := Render(pkg, names)
	if err != nil {
		return nil, err
	}
	slog.Debug("catalog rendered", "kinds", len(names))

	return &Result{
		Names:       names,
		Source:      src,
		Fingerprint: catalog.FingerprintOf(names),
		Curated:     len(curated.Names()),
		Discovered:  len(fem),
	}, nil
}
