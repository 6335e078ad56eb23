package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const holdScenario = `
name: position_hold
description: "A seeded command is fed back every tick"
run_id: cli-run-hold
steps: 3
stages:
  - name: feedback
    component: gain
    params:
      pairs:
        - { in: M2poscmd, out: M2posFB, gain: -1 }
        - { in: MountCmd, out: OSSAzDriveTorque, gain: 2 }
initial:
  - kind: M2poscmd
    values: [1, -0.25]
assertions:
  - type: ticks
    count: 3
  - type: last_value
    kind: M2posFB
    values: [-1, 0.25]
`

const playbackScenario = `
name: short_playback
description: "Playback runs out after two ticks"
stages:
  - name: cmd
    component: playback
    params:
      series:
        - kind: TTcmd
          values: [[1], [2]]
  - name: lag
    component: delay
    params:
      pairs:
        - { in: TTcmd, out: TTSP }
assertions:
  - type: exhausted
  - type: ticks
    count: 2
`

const failingScenario = `
name: bare_monitor
description: "Monitor without a statistic"
run_id: cli-run-fail
stages:
  - name: cmd
    component: playback
    params:
      series:
        - kind: TTcmd
          values: [[1]]
  - name: monitor
    component: monitor
    params: { in: TTcmd, out: Pssn }
`

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
