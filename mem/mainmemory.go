package mem

import "fmt"

// ErrSizeMismatch is returned when a block written to memory does not match
// the configured block size.
var ErrSizeMismatch = fmt.Errorf("block size mismatch")

// MainMemory is a sparse, block-granular store. Blocks that were never
// written read as all zero. The payload is nominal; only the timing and the
// access counters matter to the simulation.
type MainMemory struct {
	blockSize uint32
	blocks    map[uint32][]byte

	readCount  uint64
	writeCount uint64
}

// NewMainMemory creates a MainMemory that stores blocks of blockSize bytes.
func NewMainMemory(blockSize uint32) *MainMemory {
	return &MainMemory{
		blockSize: blockSize,
		blocks:    make(map[uint32][]byte),
	}
}

// BlockSize returns the configured block size in bytes.
func (m *MainMemory) BlockSize() uint32 {
	return m.blockSize
}

// ReadBlock returns the block at blockAddr, materializing an all-zero block
// if the address was never written.
func (m *MainMemory) ReadBlock(blockAddr uint32) []byte {
	m.readCount++

	block, ok := m.blocks[blockAddr]
	if !ok {
		block = make([]byte, m.blockSize)
		m.blocks[blockAddr] = block
	}

	return block
}

// WriteBlock stores one block at blockAddr. A payload that does not match the
// block size indicates a logic bug in the caller and is rejected.
func (m *MainMemory) WriteBlock(blockAddr uint32, data []byte) error {
	m.writeCount++

	if uint32(len(data)) != m.blockSize {
		return fmt.Errorf("%w: expected %d bytes, got %d",
			ErrSizeMismatch, m.blockSize, len(data))
	}

	block := make([]byte, m.blockSize)
	copy(block, data)
	m.blocks[blockAddr] = block

	return nil
}

// ReadCount returns the number of block reads served.
func (m *MainMemory) ReadCount() uint64 {
	return m.readCount
}

// WriteCount returns the number of block writes served.
func (m *MainMemory) WriteCount() uint64 {
	return m.writeCount
}
