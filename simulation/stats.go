package simulation

// CoreStats are the per-core results of a finished simulation.
type CoreStats struct {
	CoreID          int
	Reads           uint64
	Writes          uint64
	Instructions    uint64
	ExecutionCycles uint64
	IdleCycles      uint64
	Accesses        uint64
	Hits            uint64
	Misses          uint64
	MissRate        float64
	Evictions       uint64
	WriteBacks      uint64
}

// Stats are the aggregated results of a finished simulation.
type Stats struct {
	Cores []CoreStats

	BusInvalidations uint64
	BusTrafficBytes  uint64
	CacheToCache     uint64

	MemoryReads  uint64
	MemoryWrites uint64

	TotalCycles       uint64
	TotalInstructions uint64
	MaxExecutionTime  uint64
}

// Stats collects the counters of every component. Execution cycles exclude
// the cycles a core spent blocked on a miss.
func (s *Simulation) Stats() Stats {
	stats := Stats{
		TotalCycles:  s.CurrentCycle(),
		MemoryReads:  s.memory.ReadCount(),
		MemoryWrites: s.memory.WriteCount(),

		BusInvalidations: s.bus.Invalidations(),
		BusTrafficBytes:  s.bus.TrafficBytes(),
		CacheToCache:     s.bus.CacheToCache(),
	}

	for i, core := range s.cores {
		cs := s.caches[i].Stats()

		coreStats := CoreStats{
			CoreID:       core.ID(),
			Reads:        cs.Reads,
			Writes:       cs.Writes,
			Instructions: core.InstructionsExecuted(),
			IdleCycles:   core.CyclesBlocked(),
			Accesses:     cs.Accesses,
			Hits:         cs.Hits,
			Misses:       cs.Misses,
			Evictions:    cs.Evictions,
			WriteBacks:   cs.WriteBacks,
		}

		if core.FinishCycle() > coreStats.IdleCycles {
			coreStats.ExecutionCycles =
				core.FinishCycle() - coreStats.IdleCycles
		}

		if cs.Accesses > 0 {
			coreStats.MissRate = float64(cs.Misses) / float64(cs.Accesses)
		}

		stats.TotalInstructions += coreStats.Instructions

		if core.FinishCycle() > stats.MaxExecutionTime {
			stats.MaxExecutionTime = core.FinishCycle()
		}

		stats.Cores = append(stats.Cores, coreStats)
	}

	return stats
}
