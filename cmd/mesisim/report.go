package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/mesisim/datarecording"
	"github.com/sarchlab/mesisim/simulation"
)

func report(stats simulation.Stats) error {
	out := io.Writer(os.Stdout)

	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("opening output file: %w", err)
		}
		defer f.Close()

		out = f
	}

	writeReport(out, stats)

	if outputFile != "" {
		fmt.Printf("Results written to %s\n", outputFile)
	}

	return nil
}

func writeReport(out io.Writer, stats simulation.Stats) {
	fmt.Fprintln(out, "===== Cache Simulation Results =====")
	fmt.Fprintf(out, "Cache parameters: %d sets, %d-way, %d bytes per block\n\n",
		1<<setBits, associativity, 1<<blockBits)

	for _, c := range stats.Cores {
		fmt.Fprintf(out, "Core %d Statistics:\n", c.CoreID)
		fmt.Fprintf(out, "  Read Instructions: %d\n", c.Reads)
		fmt.Fprintf(out, "  Write Instructions: %d\n", c.Writes)
		fmt.Fprintf(out, "  Total Instructions: %d\n", c.Instructions)
		fmt.Fprintf(out, "  Execution Cycles: %d\n", c.ExecutionCycles)
		fmt.Fprintf(out, "  Idle Cycles: %d\n", c.IdleCycles)
		fmt.Fprintf(out, "  Cache Miss Rate: %.4f%%\n", c.MissRate*100)
		fmt.Fprintf(out, "  Cache Evictions: %d\n", c.Evictions)
		fmt.Fprintf(out, "  Cache Writebacks: %d\n\n", c.WriteBacks)
	}

	fmt.Fprintln(out, "Bus Statistics:")
	fmt.Fprintf(out, "  Number of Invalidations: %d\n", stats.BusInvalidations)
	fmt.Fprintf(out, "  Data Traffic on Bus: %d bytes\n", stats.BusTrafficBytes)
	fmt.Fprintf(out, "  Cache-to-Cache Transfers: %d\n\n", stats.CacheToCache)

	fmt.Fprintln(out, "Memory Statistics:")
	fmt.Fprintf(out, "  Block Reads: %d\n", stats.MemoryReads)
	fmt.Fprintf(out, "  Block Writes: %d\n\n", stats.MemoryWrites)

	fmt.Fprintf(out, "Total Instructions: %d\n", stats.TotalInstructions)
	fmt.Fprintf(out, "Total Cycles: %d\n", stats.TotalCycles)
	fmt.Fprintf(out, "Maximum Execution Time: %d cycles\n",
		stats.MaxExecutionTime)
}

type coreStatsEntry struct {
	Core            int
	Reads           uint64
	Writes          uint64
	Instructions    uint64
	ExecutionCycles uint64
	IdleCycles      uint64
	MissRate        float64
	Evictions       uint64
	WriteBacks      uint64
}

type busStatsEntry struct {
	Invalidations    uint64
	TrafficBytes     uint64
	CacheToCache     uint64
	MemoryReads      uint64
	MemoryWrites     uint64
	TotalCycles      uint64
	MaxExecutionTime uint64
}

func recordStats(
	recorder datarecording.DataRecorder,
	stats simulation.Stats,
) {
	recorder.CreateTable("core_stats", coreStatsEntry{})
	recorder.CreateTable("bus_stats", busStatsEntry{})

	for _, c := range stats.Cores {
		recorder.InsertData("core_stats", coreStatsEntry{
			Core:            c.CoreID,
			Reads:           c.Reads,
			Writes:          c.Writes,
			Instructions:    c.Instructions,
			ExecutionCycles: c.ExecutionCycles,
			IdleCycles:      c.IdleCycles,
			MissRate:        c.MissRate,
			Evictions:       c.Evictions,
			WriteBacks:      c.WriteBacks,
		})
	}

	recorder.InsertData("bus_stats", busStatsEntry{
		Invalidations:    stats.BusInvalidations,
		TrafficBytes:     stats.BusTrafficBytes,
		CacheToCache:     stats.CacheToCache,
		MemoryReads:      stats.MemoryReads,
		MemoryWrites:     stats.MemoryWrites,
		TotalCycles:      stats.TotalCycles,
		MaxExecutionTime: stats.MaxExecutionTime,
	})

	recorder.Flush()
}
