// Package mem provides address decoding and the flat main memory that backs
// the simulated cache hierarchy.
package mem

// A Location is the decomposition of a 32-bit byte address under a given
// cache geometry.
type Location struct {
	Tag       uint32
	SetIndex  uint32
	Offset    uint32
	BlockAddr uint32
}

// An AddressDecoder splits 32-bit addresses into (tag, set index, block
// offset) using s set-index bits and b block-offset bits. The decoder is only
// defined for 0 < b, s+b < 32; s may be zero for a single-set cache.
type AddressDecoder struct {
	SetBits   uint
	BlockBits uint
}

// Decode decomposes addr.
func (d AddressDecoder) Decode(addr uint32) Location {
	return Location{
		Tag:       addr >> (d.SetBits + d.BlockBits),
		SetIndex:  (addr >> d.BlockBits) & ((1 << d.SetBits) - 1),
		Offset:    addr & ((1 << d.BlockBits) - 1),
		BlockAddr: addr &^ ((1 << d.BlockBits) - 1),
	}
}

// BlockAddr returns the address of the block that contains addr.
func (d AddressDecoder) BlockAddr(addr uint32) uint32 {
	return addr &^ ((1 << d.BlockBits) - 1)
}

// Reconstruct rebuilds the block address of a line from its tag and set
// index. It is used when evicting a dirty line, where only the tag survives.
func (d AddressDecoder) Reconstruct(tag, setIndex uint32) uint32 {
	return tag<<(d.SetBits+d.BlockBits) | setIndex<<d.BlockBits
}
