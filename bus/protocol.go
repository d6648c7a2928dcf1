// Package bus implements the shared snooping bus that serializes all
// coherence transactions between the L1 caches and main memory.
package bus

// Kind is the type of a bus transaction.
type Kind int

const (
	// BusRd requests a block for reading. Peers holding the block keep a
	// Shared copy.
	BusRd Kind = iota

	// BusRdX requests a block for writing. Peers holding the block must
	// invalidate it.
	BusRdX

	// BusUpgr announces a write to a Shared block. Peers invalidate their
	// copies; no data moves.
	BusUpgr

	// Invalidate removes the block from every peer cache.
	Invalidate

	// Flush writes a dirty block back to main memory.
	Flush
)

func (k Kind) String() string {
	switch k {
	case BusRd:
		return "BusRd"
	case BusRdX:
		return "BusRdX"
	case BusUpgr:
		return "BusUpgr"
	case Invalidate:
		return "Invalidate"
	case Flush:
		return "Flush"
	}

	return "Unknown"
}

// A Transaction is one serialized use of the bus.
type Transaction struct {
	ID        string
	Kind      Kind
	BlockAddr uint32
	Requester int
}

// A SnoopResult is what one peer cache reports back after observing a
// transaction.
type SnoopResult struct {
	// HadCopy is true if the peer held the block in any valid state.
	HadCopy bool

	// Provided is true if the peer supplied the block to the requester.
	Provided bool

	// Invalidated is true if the peer dropped its copy in response.
	Invalidated bool
}

// A Snooper is a cache that observes transactions issued by other cores.
type Snooper interface {
	CoreID() int
	Snoop(tx Transaction) SnoopResult
}

// A Result is the aggregated outcome of a transaction, returned to the
// requester.
type Result struct {
	// Shared is true if any peer held the block when the transaction was
	// issued.
	Shared bool

	// Provided is true if a peer supplied the block, saving a memory fetch.
	Provided bool

	// SourceCore is the id of the supplying peer, or -1 when the block
	// comes from memory.
	SourceCore int

	// Cycles is the time charged to the requester for this transaction.
	Cycles uint64
}

// An Issuer accepts coherence transactions from a cache. It is the only way
// caches interact with their peers.
type Issuer interface {
	Issue(kind Kind, blockAddr uint32, requester int) Result
}
