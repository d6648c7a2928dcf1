package bus

import (
	"github.com/rs/xid"

	"github.com/sarchlab/mesisim/sim"
)

// HookPosTxIssued is triggered after a transaction completes arbitration.
// The hook item is the Transaction and the detail is the Result.
var HookPosTxIssued = &sim.HookPos{Name: "BusTxIssued"}

const memFetchLatency = 100

// Comp is the bus arbiter. It owns the single serial path between the
// caches and main memory: it reserves bus time for each transaction,
// broadcasts the transaction to every peer cache, and aggregates the
// snoop outcomes for the requester.
type Comp struct {
	sim.HookableBase

	timeTeller sim.TimeTeller
	blockSize  uint32
	snoopers   []Snooper

	busyUntil     uint64
	invalidations uint64
	trafficBytes  uint64
	cacheToCache  uint64
}

// Connect registers a cache as a snooper on the bus. Caches must be
// connected in ascending core-id order; the order decides which peer is
// recorded as the data source when several could supply a block.
func (c *Comp) Connect(s Snooper) {
	c.snoopers = append(c.snoopers, s)
}

// Issue arbitrates one transaction, lets every peer cache observe it, and
// returns the aggregated outcome. Every peer reacts before the requester
// sees the result, which is what makes coherence events sequentially
// consistent on this bus.
func (c *Comp) Issue(kind Kind, blockAddr uint32, requester int) Result {
	tx := Transaction{
		ID:        xid.New().String(),
		Kind:      kind,
		BlockAddr: blockAddr,
		Requester: requester,
	}

	result := Result{SourceCore: -1}

	if kind != Flush {
		c.snoop(tx, &result)
	}

	result.Cycles = c.length(kind, result.Provided)
	c.addTraffic(kind)
	c.reserve(result.Cycles)

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosTxIssued,
		Item:   tx,
		Detail: result,
	})

	return result
}

func (c *Comp) snoop(tx Transaction, result *Result) {
	for _, s := range c.snoopers {
		if s.CoreID() == tx.Requester {
			continue
		}

		sr := s.Snoop(tx)

		if sr.HadCopy {
			result.Shared = true
		}

		if sr.Invalidated {
			c.invalidations++
		}

		if sr.Provided && !result.Provided {
			result.Provided = true
			result.SourceCore = s.CoreID()
			c.cacheToCache++
		}
	}
}

// length returns the bus occupancy of a transaction. Block transfers cost
// two cycles per 4-byte word when a peer supplies the data; otherwise the
// block comes from memory at the fixed memory latency.
func (c *Comp) length(kind Kind, peerProvided bool) uint64 {
	switch kind {
	case BusRd, BusRdX:
		if peerProvided {
			return 2 * uint64(c.blockSize/4)
		}
		return memFetchLatency
	case BusUpgr, Invalidate:
		return 2
	case Flush:
		return memFetchLatency
	}

	return 0
}

func (c *Comp) addTraffic(kind Kind) {
	switch kind {
	case BusRd, BusRdX, Flush:
		c.trafficBytes += uint64(c.blockSize)
	}
}

// reserve pushes busyUntil forward. A transaction starts when the bus is
// free, never earlier than the current cycle.
func (c *Comp) reserve(length uint64) {
	start := c.timeTeller.CurrentCycle()
	if c.busyUntil > start {
		start = c.busyUntil
	}

	c.busyUntil = start + length
}

// BusyUntil returns the cycle at which the bus becomes free.
func (c *Comp) BusyUntil() uint64 {
	return c.busyUntil
}

// Invalidations returns the total number of peer lines invalidated by bus
// transactions.
func (c *Comp) Invalidations() uint64 {
	return c.invalidations
}

// TrafficBytes returns the total data traffic moved over the bus.
func (c *Comp) TrafficBytes() uint64 {
	return c.trafficBytes
}

// CacheToCache returns the number of blocks supplied by a peer cache
// instead of memory.
func (c *Comp) CacheToCache() uint64 {
	return c.cacheToCache
}
