// Package harness runs scenario files against the pipeline engine.
//
// A scenario names a pipeline of registered components, the signals seeded
// on the bus before the first tick, a tick budget and a set of assertions
// on the recorded run.
//
// # Scenario Format
//
//	name: hardpoint_loop
//	description: "Load cells follow the hardpoint command"
//	run_id: test-run-1
//	steps: 10
//	stages:
//	  - name: cmd
//	    component: playback
//	    params:
//	      series:
//	        - kind: M1HPCmd
//	          values: [[1, 2], [3, 4]]
//	  - name: loadcells
//	    component: gain
//	    params:
//	      pairs:
//	        - { in: M1HPCmd, out: M1HPLC, gain: 0.5 }
//	initial:
//	  - kind: M2poscmd
//	    values: [0]
//	assertions:
//	  - type: ticks
//	    count: 2
//	  - type: last_value
//	    kind: M1HPLC
//	    values: [1.5, 2]
//
// # Assertion Types
//
//   - ticks: the run completed exactly count ticks
//   - exhausted: a component ran out of input
//   - last_value: the last recorded payload of kind (optionally from stage)
//     equals values within tolerance, or is missing when absent is set
//   - mean: the mean of every recorded element of kind is value within
//     tolerance
//   - error: the run failed, optionally in the given phase and stage
//
// # Deterministic Testing
//
// Run executes each scenario in a fresh in-memory store with the
// scenario's fixed run ID (testutil.DefaultRunID when none is given), so
// the recorded trace is byte-identical between runs and can be compared
// against a golden file with RunWithGolden.
package harness
