package catalogen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCurated(t *testing.T) {
	c, err := DefaultCurated()
	require.NoError(t, err)

	var groups []string
	for _, g := range c.Groups {
		groups = append(groups, g.Name)
		assert.NotEmpty(t, g.Kinds, g.Name)
	}
	assert.Equal(t, []string{
		"wind_loads", "mount_controller", "m1_hardpoints", "m1_cg", "m1_actuators",
		"fsm_positioner", "fsm_piezostack", "fsm_tiptilt", "ceo", "fem_baseline",
	}, groups, "declaration order")

	names := c.Names()
	assert.Equal(t, "OSSTopEnd6F", names[0])
	assert.Contains(t, names, "Pssn")
	assert.Len(t, Merge(names), 69)
}

func TestLoadCuratedSource(t *testing.T) {
	c, err := LoadCuratedSource("x.cue", []byte(`
groups: {
	a: ["Alpha", "Beta"]
	b: ["Alpha"]
}
`))
	require.NoError(t, err)
	assert.Equal(t, []Group{
		{Name: "a", Kinds: []string{"Alpha", "Beta"}},
		{Name: "b", Kinds: []string{"Alpha"}},
	}, c.Groups)
	assert.Equal(t, []string{"Alpha", "Beta", "Alpha"}, c.Names())
}

func TestLoadCuratedSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"not an identifier", `groups: a: ["9lives"]`, "x.cue"},
		{"underscore", `groups: a: ["snake_case"]`, "x.cue"},
		{"not a list", `groups: a: "Alpha"`, "x.cue"},
		{"syntax", `groups: {`, "x.cue"},
		{"no groups", `other: 1`, "no groups defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCuratedSource("x.cue", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCurated_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curated.cue")
	require.NoError(t, os.WriteFile(path, []byte(`groups: extra: ["Zeta"]`), 0o644))

	c, err := LoadCurated(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta"}, c.Names())

	_, err = LoadCurated(filepath.Join(t.TempDir(), "missing.cue"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
