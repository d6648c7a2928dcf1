// Package trace reads the prerecorded memory-reference traces that drive
// the simulated cores.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// Op is the kind of one memory reference.
type Op int

const (
	// OpRead is a load.
	OpRead Op = iota

	// OpWrite is a store.
	OpWrite
)

// An Instruction is one memory reference of a trace.
type Instruction struct {
	Op   Op
	Addr uint32
}

// ParseLine parses one trace line of the form `R 0x1a2b` or `W 1a2b`. Both
// upper and lower case operation letters are accepted.
func ParseLine(line string) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Instruction{}, fmt.Errorf("expected `op address`, got %q", line)
	}

	var op Op
	switch fields[0] {
	case "R", "r":
		op = OpRead
	case "W", "w":
		op = OpWrite
	default:
		return Instruction{}, fmt.Errorf("unknown operation %q", fields[0])
	}

	addrStr := strings.TrimPrefix(fields[1], "0x")
	addrStr = strings.TrimPrefix(addrStr, "0X")

	addr, err := strconv.ParseUint(addrStr, 16, 32)
	if err != nil {
		return Instruction{}, fmt.Errorf("bad address %q: %w", fields[1], err)
	}

	return Instruction{Op: op, Addr: uint32(addr)}, nil
}

// A Reader yields the instructions of one core's trace in order. Malformed
// lines are skipped with a warning so an imperfect trace cannot wedge the
// simulation.
type Reader struct {
	name    string
	scanner *bufio.Scanner
}

// NewReader creates a Reader over r. The name is only used in warnings.
func NewReader(r io.Reader, name string) *Reader {
	return &Reader{
		name:    name,
		scanner: bufio.NewScanner(r),
	}
}

// Next returns the next instruction, or false once the trace is exhausted.
func (r *Reader) Next() (Instruction, bool) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}

		inst, err := ParseLine(line)
		if err != nil {
			log.Printf("trace %s: skipping line: %v", r.name, err)
			continue
		}

		return inst, true
	}

	return Instruction{}, false
}
