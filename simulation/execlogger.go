package simulation

import (
	"github.com/sarchlab/mesisim/datarecording"
	"github.com/sarchlab/mesisim/sim"
)

// An ExecLogEntry is one sampled row of the periodic execution log.
type ExecLogEntry struct {
	Cycle        uint64
	Core         int
	State        string
	Instructions uint64
	Accesses     uint64
	Hits         uint64
	Misses       uint64
}

// An ExecLogger samples the state of every core once per period and records
// the rows with a DataRecorder. Attach it to a Simulation with AcceptHook.
type ExecLogger struct {
	recorder datarecording.DataRecorder
	period   uint64
}

// NewExecLogger creates an ExecLogger sampling every period cycles.
func NewExecLogger(
	recorder datarecording.DataRecorder,
	period uint64,
) *ExecLogger {
	if period == 0 {
		period = 1000
	}

	recorder.CreateTable("exec_log", ExecLogEntry{})

	return &ExecLogger{
		recorder: recorder,
		period:   period,
	}
}

// Func samples the simulation at the end of every period-th cycle.
func (l *ExecLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != HookPosCycleEnd {
		return
	}

	cycle := ctx.Item.(uint64)
	if cycle%l.period != 0 {
		return
	}

	s := ctx.Domain.(*Simulation)
	for i, core := range s.Cores() {
		cs := s.Caches()[i].Stats()

		l.recorder.InsertData("exec_log", ExecLogEntry{
			Cycle:        cycle,
			Core:         core.ID(),
			State:        coreState(core),
			Instructions: core.InstructionsExecuted(),
			Accesses:     cs.Accesses,
			Hits:         cs.Hits,
			Misses:       cs.Misses,
		})
	}
}

func coreState(core interface {
	Blocked() bool
	Done() bool
}) string {
	switch {
	case core.Done():
		return "done"
	case core.Blocked():
		return "blocked"
	default:
		return "active"
	}
}
