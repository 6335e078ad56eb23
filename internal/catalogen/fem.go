package catalogen

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/roach88/dosio/internal/catalog"
)

// FEMArchive is the archive looked up in a FEM repository.
const FEMArchive = "modal_state_space_model_2ndOrder.zip"

const (
	femEntryFormat = "modal_state_space_model_2ndOrder_%s.parquet"
	groupColumn    = "group"
)

var (
	// ErrNoRecord is returned for a FEM table without rows.
	ErrNoRecord = errors.New("no suitable record in file")

	// ErrNoData is returned for a FEM table without a usable group column.
	ErrNoData = errors.New("no suitable data in file")
)

type groupRow struct {
	Group string `parquet:"group"`
}

// DiscoverFEM returns the normalized input then output names of the FEM
// stored in repo.
func DiscoverFEM(repo string) ([]string, error) {
	return DiscoverParquetZip(filepath.Join(repo, FEMArchive))
}

// DiscoverParquetZip reads the FEM input and output tables of a zip archive.
//
// Within each table, consecutive repeats of a group are collapsed (the
// table has one row per degree of freedom, grouped), and each group name is
// normalized to a Go identifier. Input names come before output names; no
// global sort or dedup is applied here (see Merge).
func DiscoverParquetZip(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("catalogen: open %s: %w", path, err)
	}
	defer zr.Close()

	var names []string
	for _, side := range []string{"in", "out"} {
		groups, err := readGroups(&zr.Reader, fmt.Sprintf(femEntryFormat, side))
		if err != nil {
			return nil, fmt.Errorf("catalogen: %s: %w", path, err)
		}
		names = append(names, groups...)
	}
	return names, nil
}

func readGroups(zr *zip.Reader, entry string) ([]string, error) {
	f, err := zr.Open(entry)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entry, err)
	}
	r := bytes.NewReader(data)

	pf, err := parquet.OpenFile(r, r.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry, err)
	}
	if _, ok := pf.Schema().Lookup(groupColumn); !ok {
		return nil, fmt.Errorf("%s: column %q: %w", entry, groupColumn, ErrNoData)
	}
	if pf.NumRows() == 0 {
		return nil, fmt.Errorf("%s: %w", entry, ErrNoRecord)
	}

	rows, err := parquet.Read[groupRow](r, r.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry, err)
	}

	var names []string
	prev := ""
	for i, row := range rows {
		if row.Group == "" {
			return nil, fmt.Errorf("%s: row %d: empty group: %w", entry, i, ErrNoData)
		}
		if row.Group == prev {
			continue
		}
		prev = row.Group
		name := catalog.Normalize(row.Group)
		if !catalog.IsIdentifier(name) {
			return nil, fmt.Errorf("%s: group %q normalizes to %q, not an identifier", entry, row.Group, name)
		}
		names = append(names, name)
	}
	return names, nil
}
