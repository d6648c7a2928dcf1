package cache

import (
	"github.com/sarchlab/mesisim/bus"
	"github.com/sarchlab/mesisim/cache/tagging"
	"github.com/sarchlab/mesisim/mem"
	"github.com/sarchlab/mesisim/sim"
)

// Builder builds L1 cache controllers.
type Builder struct {
	setBits       uint
	blockBits     uint
	associativity int
	memory        *mem.MainMemory
	coherence     bus.Issuer
	timeTeller    sim.TimeTeller
	victimFinder  tagging.VictimFinder
}

// MakeBuilder returns a Builder with the default geometry (64 sets, 2-way,
// 32-byte blocks).
func MakeBuilder() Builder {
	return Builder{
		setBits:       6,
		blockBits:     5,
		associativity: 2,
	}
}

// WithSetBits sets the number of set-index bits (the cache holds 2^s sets).
func (b Builder) WithSetBits(s uint) Builder {
	b.setBits = s
	return b
}

// WithBlockBits sets the number of block-offset bits (blocks are 2^b bytes).
func (b Builder) WithBlockBits(blockBits uint) Builder {
	b.blockBits = blockBits
	return b
}

// WithAssociativity sets the number of lines per set.
func (b Builder) WithAssociativity(e int) Builder {
	b.associativity = e
	return b
}

// WithMemory sets the main memory behind the cache.
func (b Builder) WithMemory(m *mem.MainMemory) Builder {
	b.memory = m
	return b
}

// WithCoherenceIssuer sets the bus the cache issues coherence transactions
// on.
func (b Builder) WithCoherenceIssuer(i bus.Issuer) Builder {
	b.coherence = i
	return b
}

// WithTimeTeller sets the time teller used for miss-resolve bookkeeping.
func (b Builder) WithTimeTeller(t sim.TimeTeller) Builder {
	b.timeTeller = t
	return b
}

// WithVictimFinder overrides the replacement policy. The default is LRU.
func (b Builder) WithVictimFinder(vf tagging.VictimFinder) Builder {
	b.victimFinder = vf
	return b
}

// Build builds a cache controller for the given core.
func (b Builder) Build(coreID int) *Comp {
	if b.memory == nil {
		panic("cache requires a main memory")
	}

	if b.coherence == nil {
		panic("cache requires a coherence issuer")
	}

	if b.timeTeller == nil {
		panic("cache requires a time teller")
	}

	vf := b.victimFinder
	if vf == nil {
		vf = tagging.NewLRUVictimFinder()
	}

	numSets := 1 << b.setBits
	sets := make([]*tagging.Set, numSets)
	for i := range sets {
		sets[i] = tagging.NewSet(b.associativity)
	}

	return &Comp{
		coreID: coreID,
		decoder: mem.AddressDecoder{
			SetBits:   b.setBits,
			BlockBits: b.blockBits,
		},
		blockSize:    1 << b.blockBits,
		sets:         sets,
		victimFinder: vf,
		memory:       b.memory,
		coherence:    b.coherence,
		timeTeller:   b.timeTeller,
		dataSource:   MemorySourced,
	}
}
