// Package cache implements a private, set-associative, write-back,
// write-allocate L1 data cache controller kept coherent with its peers by
// the MESI protocol over a snooping bus.
package cache

import (
	"log"

	"github.com/sarchlab/mesisim/bus"
	"github.com/sarchlab/mesisim/cache/tagging"
	"github.com/sarchlab/mesisim/mem"
	"github.com/sarchlab/mesisim/sim"
)

// MemorySourced marks a pending miss whose block comes from main memory
// rather than a peer cache.
const MemorySourced = -1

// Stats are the access counters of one cache.
type Stats struct {
	Accesses     uint64
	Hits         uint64
	Misses       uint64
	Reads        uint64
	Writes       uint64
	Evictions    uint64
	WriteBacks   uint64
	CoherenceOps uint64
}

// Comp is the per-core cache controller. Read and Write are the entry
// points used by the owning processor; Snoop is invoked by the bus when
// another core's transaction targets a block this cache may hold.
//
// A controller tracks at most one outstanding miss. While the miss is
// pending the owning processor is blocked and no further accesses are
// accepted.
type Comp struct {
	coreID       int
	decoder      mem.AddressDecoder
	blockSize    uint32
	sets         []*tagging.Set
	victimFinder tagging.VictimFinder
	memory       *mem.MainMemory
	coherence    bus.Issuer
	timeTeller   sim.TimeTeller

	stats Stats

	pending      bool
	resolveCycle uint64
	dataSource   int
}

// CoreID returns the id of the core this cache belongs to.
func (c *Comp) CoreID() int {
	return c.coreID
}

// Stats returns a copy of the cache's counters.
func (c *Comp) Stats() Stats {
	return c.stats
}

// Pending returns true while a miss is outstanding.
func (c *Comp) Pending() bool {
	return c.pending
}

// DataSource returns the core that supplied the block of the last miss, or
// MemorySourced.
func (c *Comp) DataSource() int {
	return c.dataSource
}

// State reports the MESI state this cache currently holds the block of
// addr in. Blocks not present report Invalid.
func (c *Comp) State(addr uint32) tagging.State {
	loc := c.decoder.Decode(addr)

	set, ok := c.set(loc.SetIndex)
	if !ok {
		return tagging.StateInvalid
	}

	way, found := set.Find(loc.Tag)
	if !found {
		return tagging.StateInvalid
	}

	return set.Lines[way].State
}

// Read performs a load at addr. It returns true on a hit. On a miss the
// block is installed and the coherence traffic issued immediately, but the
// call returns false and the processor must block until CheckMissResolved
// reports completion.
func (c *Comp) Read(addr uint32) bool {
	if c.pending {
		return false
	}

	c.stats.Accesses++
	c.stats.Reads++

	loc := c.decoder.Decode(addr)

	set, ok := c.set(loc.SetIndex)
	if !ok {
		return true
	}

	if way, hit := set.Find(loc.Tag); hit {
		c.stats.Hits++
		set.Touch(way)
		return true
	}

	c.stats.Misses++
	c.pending = true

	way, penalty := c.evictVictim(set, loc.SetIndex)

	result := c.issue(bus.BusRd, loc.BlockAddr)
	if !result.Provided {
		c.memory.ReadBlock(loc.BlockAddr)
	}

	state := tagging.StateExclusive
	if result.Shared {
		state = tagging.StateShared
	}

	c.install(set, way, loc.Tag, state)
	c.dataSource = result.SourceCore
	c.resolveCycle = c.timeTeller.CurrentCycle() + penalty + result.Cycles

	return false
}

// Write performs a store at addr. It returns true on a hit. A hit on a
// Shared line upgrades it over the bus without stalling the core; a miss
// fetches the block exclusively, invalidating every peer copy.
func (c *Comp) Write(addr uint32) bool {
	if c.pending {
		return false
	}

	c.stats.Accesses++
	c.stats.Writes++

	loc := c.decoder.Decode(addr)

	set, ok := c.set(loc.SetIndex)
	if !ok {
		return true
	}

	if way, hit := set.Find(loc.Tag); hit {
		c.writeHit(set, way, loc.BlockAddr)
		return true
	}

	c.stats.Misses++
	c.pending = true

	way, penalty := c.evictVictim(set, loc.SetIndex)

	result := c.issue(bus.BusRdX, loc.BlockAddr)
	if !result.Provided {
		c.memory.ReadBlock(loc.BlockAddr)
	}

	c.install(set, way, loc.Tag, tagging.StateModified)
	c.dataSource = result.SourceCore
	c.resolveCycle = c.timeTeller.CurrentCycle() + penalty + result.Cycles

	return false
}

func (c *Comp) writeHit(set *tagging.Set, way int, blockAddr uint32) {
	c.stats.Hits++

	line := &set.Lines[way]
	switch line.State {
	case tagging.StateShared:
		c.issue(bus.BusUpgr, blockAddr)
		line.State = tagging.StateModified
	case tagging.StateExclusive:
		line.State = tagging.StateModified
	case tagging.StateModified:
	}

	set.Touch(way)
}

// CheckMissResolved reports whether the pending miss has completed at the
// current cycle, clearing the pending state on success.
func (c *Comp) CheckMissResolved() bool {
	if !c.pending {
		return false
	}

	if c.timeTeller.CurrentCycle() >= c.resolveCycle {
		c.pending = false
		return true
	}

	return false
}

// Snoop applies the MESI reaction of this cache to a transaction issued by
// another core. A cache that does not hold the block reports an empty
// result.
func (c *Comp) Snoop(tx bus.Transaction) bus.SnoopResult {
	loc := c.decoder.Decode(tx.BlockAddr)

	set, ok := c.set(loc.SetIndex)
	if !ok {
		return bus.SnoopResult{}
	}

	way, found := set.Find(loc.Tag)
	if !found {
		return bus.SnoopResult{}
	}

	line := &set.Lines[way]

	switch tx.Kind {
	case bus.BusRd:
		return c.snoopBusRd(line, loc.BlockAddr)
	case bus.BusRdX:
		return c.snoopBusRdX(line, loc.BlockAddr)
	case bus.BusUpgr:
		return c.snoopBusUpgr(line)
	case bus.Invalidate:
		return c.snoopInvalidate(line, loc.BlockAddr)
	case bus.Flush:
	}

	return bus.SnoopResult{}
}

func (c *Comp) snoopBusRd(line *tagging.Line, blockAddr uint32) bus.SnoopResult {
	switch line.State {
	case tagging.StateShared:
		return bus.SnoopResult{HadCopy: true}
	case tagging.StateExclusive:
		line.State = tagging.StateShared
		return bus.SnoopResult{HadCopy: true, Provided: true}
	case tagging.StateModified:
		c.writeBackBlock(blockAddr)
		line.State = tagging.StateShared
		return bus.SnoopResult{HadCopy: true, Provided: true}
	}

	return bus.SnoopResult{}
}

func (c *Comp) snoopBusRdX(line *tagging.Line, blockAddr uint32) bus.SnoopResult {
	switch line.State {
	case tagging.StateShared, tagging.StateExclusive:
		line.State = tagging.StateInvalid
		return bus.SnoopResult{HadCopy: true, Invalidated: true}
	case tagging.StateModified:
		c.writeBackBlock(blockAddr)
		line.State = tagging.StateInvalid
		return bus.SnoopResult{
			HadCopy:     true,
			Provided:    true,
			Invalidated: true,
		}
	}

	return bus.SnoopResult{}
}

func (c *Comp) snoopBusUpgr(line *tagging.Line) bus.SnoopResult {
	if line.State == tagging.StateShared {
		line.State = tagging.StateInvalid
		return bus.SnoopResult{HadCopy: true, Invalidated: true}
	}

	return bus.SnoopResult{HadCopy: true}
}

func (c *Comp) snoopInvalidate(
	line *tagging.Line,
	blockAddr uint32,
) bus.SnoopResult {
	switch line.State {
	case tagging.StateShared, tagging.StateExclusive:
		line.State = tagging.StateInvalid
		return bus.SnoopResult{HadCopy: true, Invalidated: true}
	case tagging.StateModified:
		c.writeBackBlock(blockAddr)
		line.State = tagging.StateInvalid
		return bus.SnoopResult{HadCopy: true, Invalidated: true}
	}

	return bus.SnoopResult{}
}

// evictVictim selects the way the incoming block will occupy. A valid
// victim counts as an eviction; a Modified victim is first flushed to
// memory, and the flush latency is charged on top of the fetch.
func (c *Comp) evictVictim(
	set *tagging.Set,
	setIndex uint32,
) (way int, penalty uint64) {
	way = c.victimFinder.FindVictim(set)
	line := &set.Lines[way]

	if !line.Valid() {
		return way, 0
	}

	c.stats.Evictions++

	if line.Dirty() {
		victimAddr := c.decoder.Reconstruct(line.Tag, setIndex)
		c.writeBackBlock(victimAddr)

		result := c.issue(bus.Flush, victimAddr)
		penalty = result.Cycles
	}

	return way, penalty
}

func (c *Comp) install(
	set *tagging.Set,
	way int,
	tag uint32,
	state tagging.State,
) {
	set.Lines[way].Tag = tag
	set.Lines[way].State = state
	set.Touch(way)
}

func (c *Comp) issue(kind bus.Kind, blockAddr uint32) bus.Result {
	c.stats.CoherenceOps++
	return c.coherence.Issue(kind, blockAddr, c.coreID)
}

// writeBackBlock pushes the nominal payload of a dirty block to memory,
// whether for a replacement or for a snoop that downgrades a Modified
// line. Payloads are opaque in this simulation, so an all-zero block of
// the right size stands in for the data.
func (c *Comp) writeBackBlock(blockAddr uint32) {
	c.stats.WriteBacks++

	err := c.memory.WriteBlock(blockAddr, make([]byte, c.blockSize))
	if err != nil {
		log.Printf("core %d: write-back of 0x%08x dropped: %v",
			c.coreID, blockAddr, err)
	}
}

// set resolves a decoded set index, guarding against decoder bugs. An
// out-of-range index aborts the access but keeps the simulation alive.
func (c *Comp) set(index uint32) (*tagging.Set, bool) {
	if int(index) >= len(c.sets) {
		log.Printf("core %d: set index %d out of range, access aborted",
			c.coreID, index)
		return nil, false
	}

	return c.sets[index], true
}
