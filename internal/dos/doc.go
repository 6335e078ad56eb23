// Package dos defines the component protocol of a discrete-time simulation.
//
// A component exposes three phases per tick:
//
//	Inputs(data)  ingest the signals addressed to it
//	Step()        advance its state by exactly one time step
//	Outputs()     report the signals it produces
//
// InStepOut chains the three phases with short-circuiting on the first
// failure. Every failure is reported as an *Error tagged with the phase it
// came from, so a driver can tell "bad input" from "model failed" from
// "cannot produce output" with errors.As or the IsInputs/IsStep/IsOutputs
// helpers.
//
// The protocol is synchronous and context-free. Cancellation is the driver's
// concern (see package engine).
package dos
