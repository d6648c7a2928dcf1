package simulation

import (
	"github.com/sarchlab/mesisim/bus"
	"github.com/sarchlab/mesisim/cache"
	"github.com/sarchlab/mesisim/cpu"
	"github.com/sarchlab/mesisim/mem"
	"github.com/sarchlab/mesisim/trace"
)

// Builder builds simulations.
type Builder struct {
	setBits       uint
	blockBits     uint
	associativity int
	maxCycles     uint64
	traces        []*trace.Reader
}

// MakeBuilder returns a Builder with the default cache geometry and cycle
// cap.
func MakeBuilder() Builder {
	return Builder{
		setBits:       6,
		blockBits:     5,
		associativity: 2,
		maxCycles:     10_000_000,
	}
}

// WithSetBits sets the number of set-index bits of every cache.
func (b Builder) WithSetBits(s uint) Builder {
	b.setBits = s
	return b
}

// WithBlockBits sets the number of block-offset bits of every cache.
func (b Builder) WithBlockBits(blockBits uint) Builder {
	b.blockBits = blockBits
	return b
}

// WithAssociativity sets the number of lines per set of every cache.
func (b Builder) WithAssociativity(e int) Builder {
	b.associativity = e
	return b
}

// WithMaxCycles sets the cycle cap.
func (b Builder) WithMaxCycles(maxCycles uint64) Builder {
	b.maxCycles = maxCycles
	return b
}

// WithTraces sets the per-core trace readers. One core is created per
// reader, in ascending core-id order.
func (b Builder) WithTraces(traces []*trace.Reader) Builder {
	b.traces = traces
	return b
}

// Build assembles the memory, bus, caches, and cores into a Simulation.
func (b Builder) Build() *Simulation {
	if len(b.traces) == 0 {
		panic("simulation requires at least one trace")
	}

	s := &Simulation{
		maxCycles: b.maxCycles,
	}

	blockSize := uint32(1) << b.blockBits

	s.memory = mem.NewMainMemory(blockSize)
	s.bus = bus.MakeBuilder().
		WithTimeTeller(s).
		WithBlockSize(blockSize).
		Build()

	cacheBuilder := cache.MakeBuilder().
		WithSetBits(b.setBits).
		WithBlockBits(b.blockBits).
		WithAssociativity(b.associativity).
		WithMemory(s.memory).
		WithCoherenceIssuer(s.bus).
		WithTimeTeller(s)

	for i, tr := range b.traces {
		c := cacheBuilder.Build(i)
		s.caches = append(s.caches, c)
		s.bus.Connect(c)
		s.cores = append(s.cores, cpu.NewCore(i, tr, c, s))
	}

	return s
}
