package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dosio/internal/store"
)

func TestRunsEmpty(t *testing.T) {
	out, _, err := execute(t, "runs", "--db", filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestRunsList(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	_, _, err := execute(t, "run", "--db", dbPath, writeFile(t, dir, "hold.yaml", holdScenario))
	require.NoError(t, err)
	_, _, err = execute(t, "run", "--db", dbPath, writeFile(t, dir, "bare.yaml", failingScenario))
	require.Error(t, err)

	out, _, err := execute(t, "runs", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "cli-run-fail  failed        0 ticks  bare_monitor  (")
	assert.Contains(t, out, "cli-run-hold  completed     3 ticks  position_hold\n")

	out, _, err = execute(t, "--format", "json", "runs", "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Data RunList `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Runs, 2)
	assert.Equal(t, "cli-run-fail", resp.Data.Runs[0].ID)
	assert.Equal(t, store.StatusFailed, resp.Data.Runs[0].Status)
	assert.Equal(t, store.StatusCompleted, resp.Data.Runs[1].Status)
}

func TestRunsRequiresDB(t *testing.T) {
	_, _, err := execute(t, "runs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "db" not set`)
}

func TestComponents(t *testing.T) {
	out, _, err := execute(t, "components")
	require.NoError(t, err)
	assert.Contains(t, out, "delay      delays signals by one tick\n")
	assert.Contains(t, out, "playback   replays recorded series, one payload per tick\n")

	out, _, err = execute(t, "--format", "json", "components")
	require.NoError(t, err)

	var resp struct {
		Data ComponentList `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	names := make([]string, len(resp.Data.Components))
	for i, c := range resp.Data.Components {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"delay", "gain", "monitor", "playback", "sum"}, names)
}
