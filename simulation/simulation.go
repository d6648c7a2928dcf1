// Package simulation assembles the cores, caches, bus, and memory into a
// runnable cycle-level simulation.
package simulation

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/mesisim/bus"
	"github.com/sarchlab/mesisim/cache"
	"github.com/sarchlab/mesisim/cpu"
	"github.com/sarchlab/mesisim/mem"
	"github.com/sarchlab/mesisim/sim"
)

// HookPosCycleEnd is triggered after every simulated cycle. The hook item
// is the cycle number.
var HookPosCycleEnd = &sim.HookPos{Name: "CycleEnd"}

// A Simulation owns every shared component and advances them one cycle at a
// time. Within a cycle the cores attempt their accesses in ascending id
// order, so the bus sees coherence requests deterministically.
type Simulation struct {
	sim.HookableBase

	cores  []*cpu.Core
	caches []*cache.Comp
	bus    *bus.Comp
	memory *mem.MainMemory

	cycle     uint64
	maxCycles uint64

	pauseLock    sync.Mutex
	isPaused     bool
	isPausedLock sync.Mutex
}

// CurrentCycle returns the cycle the simulation is currently executing.
func (s *Simulation) CurrentCycle() uint64 {
	return atomic.LoadUint64(&s.cycle)
}

// Run advances the simulation until every core has drained its trace and no
// miss is outstanding. A cycle cap guards against pathological traces.
func (s *Simulation) Run() error {
	for {
		s.pauseLock.Lock()

		if s.done() {
			s.pauseLock.Unlock()
			return nil
		}

		if s.CurrentCycle() >= s.maxCycles {
			log.Printf("simulation reached the cycle cap of %d", s.maxCycles)
			s.pauseLock.Unlock()
			return nil
		}

		s.advance()

		s.pauseLock.Unlock()
	}
}

func (s *Simulation) advance() {
	cycle := atomic.AddUint64(&s.cycle, 1)

	for _, core := range s.cores {
		if !core.Done() {
			core.Step()
		}
	}

	for i, c := range s.caches {
		if c.CheckMissResolved() {
			s.cores[i].Unblock()
		}
	}

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosCycleEnd,
		Item:   cycle,
	})
}

func (s *Simulation) done() bool {
	for _, core := range s.cores {
		if !core.Done() {
			return false
		}
	}

	return true
}

// Pause stops the simulation from advancing more cycles until Continue is
// called.
func (s *Simulation) Pause() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if s.isPaused {
		return
	}

	s.pauseLock.Lock()
	s.isPaused = true
}

// Continue lets a paused simulation advance again.
func (s *Simulation) Continue() {
	s.isPausedLock.Lock()
	defer s.isPausedLock.Unlock()

	if !s.isPaused {
		return
	}

	s.pauseLock.Unlock()
	s.isPaused = false
}

// Cores returns the simulated cores in ascending id order.
func (s *Simulation) Cores() []*cpu.Core {
	return s.cores
}

// Caches returns the per-core caches in ascending core-id order.
func (s *Simulation) Caches() []*cache.Comp {
	return s.caches
}

// Bus returns the shared bus arbiter.
func (s *Simulation) Bus() *bus.Comp {
	return s.bus
}

// Memory returns the shared main memory.
func (s *Simulation) Memory() *mem.MainMemory {
	return s.memory
}
