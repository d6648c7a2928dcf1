package bus

import "github.com/sarchlab/mesisim/sim"

// Builder builds bus arbiters.
type Builder struct {
	timeTeller sim.TimeTeller
	blockSize  uint32
}

// MakeBuilder returns a new Builder.
func MakeBuilder() Builder {
	return Builder{
		blockSize: 64,
	}
}

// WithTimeTeller sets the time teller the bus uses for arbitration.
func (b Builder) WithTimeTeller(t sim.TimeTeller) Builder {
	b.timeTeller = t
	return b
}

// WithBlockSize sets the cache block size in bytes.
func (b Builder) WithBlockSize(blockSize uint32) Builder {
	b.blockSize = blockSize
	return b
}

// Build builds a bus arbiter.
func (b Builder) Build() *Comp {
	if b.timeTeller == nil {
		panic("bus requires a time teller")
	}

	return &Comp{
		timeTeller: b.timeTeller,
		blockSize:  b.blockSize,
	}
}
