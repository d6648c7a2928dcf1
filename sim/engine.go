// Package sim provides the scaffolding that cycle-level simulator components
// build on, including hooking and the engine interfaces.
package sim

// A TimeTeller can tell the current cycle of a running simulation.
type TimeTeller interface {
	CurrentCycle() uint64
}

// An Engine drives a cycle-level simulation.
type Engine interface {
	TimeTeller

	// Run advances the simulation cycle by cycle until every core finishes
	// or the cycle cap is reached.
	Run() error

	// Pause prevents the Engine from advancing more cycles.
	Pause()

	// Continue allows a paused Engine to advance cycles again.
	Continue()
}
