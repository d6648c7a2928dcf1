// mesisim simulates the L1 data caches of a four-core processor under the
// MESI snooping coherence protocol, replaying one memory trace per core.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/mesisim/datarecording"
	"github.com/sarchlab/mesisim/monitoring"
	"github.com/sarchlab/mesisim/simulation"
	"github.com/sarchlab/mesisim/trace"
)

const numCores = 4

var (
	tracePrefix   string
	setBits       uint
	associativity int
	blockBits     uint
	outputFile    string
	maxCycles     uint64
	dbPath        string
	execLogPeriod uint64
	useMonitor    bool
	monitorPort   int
	openBrowser   bool
)

var rootCmd = &cobra.Command{
	Use:   "mesisim",
	Short: "Cycle-level simulator of quad-core L1 caches under MESI",
	Long: `mesisim replays four prerecorded memory traces, one per core, ` +
		`against private set-associative write-back L1 caches kept coherent ` +
		`by a snooping MESI bus, and reports timing and coherence statistics.`,
	SilenceUsage: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		return run()
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&tracePrefix, "trace", "t", "",
		"application name whose four traces {app}_proc{0..3}.trace are replayed")
	flags.UintVarP(&setBits, "set-bits", "s", 0,
		"number of set-index bits (the cache holds 2^s sets)")
	flags.IntVarP(&associativity, "associativity", "E", 0,
		"number of cache lines per set")
	flags.UintVarP(&blockBits, "block-bits", "b", 0,
		"number of block-offset bits (blocks are 2^b bytes)")
	flags.StringVarP(&outputFile, "output", "o", "",
		"write the final statistics to this file instead of stdout")
	flags.Uint64Var(&maxCycles, "max-cycles", 10_000_000,
		"stop the simulation after this many cycles")
	flags.StringVar(&dbPath, "db", "",
		"record statistics in a SQLite database at this path")
	flags.Uint64Var(&execLogPeriod, "exec-log-period", 0,
		"sample per-core progress into the database every N cycles (requires --db)")
	flags.BoolVar(&useMonitor, "monitor", false,
		"serve the simulation state over HTTP while running")
	flags.IntVar(&monitorPort, "monitor-port", 0,
		"port of the monitoring server (0 picks a free port)")
	flags.BoolVar(&openBrowser, "open-browser", false,
		"open the monitoring page in a browser")
}

func validate() error {
	if tracePrefix == "" {
		return fmt.Errorf("a trace prefix is required (-t)")
	}

	if setBits == 0 {
		return fmt.Errorf("the number of set-index bits must be positive (-s)")
	}

	if associativity <= 0 {
		return fmt.Errorf("the associativity must be positive (-E)")
	}

	if blockBits < 2 {
		return fmt.Errorf(
			"the number of block-offset bits must be at least 2 (-b)")
	}

	if setBits+blockBits >= 32 {
		return fmt.Errorf("s + b must be smaller than 32, got %d",
			setBits+blockBits)
	}

	return nil
}

func run() error {
	if err := validate(); err != nil {
		return err
	}

	if dbPath == "" {
		dbPath = os.Getenv("MESISIM_DB")
	}

	traces, err := trace.OpenApp(tracePrefix, numCores)
	if err != nil {
		return err
	}
	defer traces.Close()

	s := simulation.MakeBuilder().
		WithSetBits(setBits).
		WithBlockBits(blockBits).
		WithAssociativity(associativity).
		WithMaxCycles(maxCycles).
		WithTraces(traces.Readers).
		Build()

	var recorder datarecording.DataRecorder
	if dbPath != "" {
		recorder = datarecording.New(dbPath)

		if execLogPeriod > 0 {
			s.AcceptHook(simulation.NewExecLogger(recorder, execLogPeriod))
		}
	}

	if useMonitor {
		startMonitor(s)
	}

	if err := s.Run(); err != nil {
		return err
	}

	stats := s.Stats()

	if err := report(stats); err != nil {
		return err
	}

	if recorder != nil {
		recordStats(recorder, stats)
	}

	return nil
}

func startMonitor(s *simulation.Simulation) {
	monitor := monitoring.NewMonitor().WithPortNumber(monitorPort)
	if openBrowser {
		monitor = monitor.WithBrowser()
	}

	monitor.RegisterEngine(s)
	monitor.RegisterComponent("Bus", s.Bus())
	monitor.RegisterComponent("Memory", s.Memory())

	for i, c := range s.Caches() {
		monitor.RegisterComponent(fmt.Sprintf("L1Cache%d", i), c)
	}

	monitor.RegisterProgress(func() any { return progressOf(s) })

	monitor.StartServer()
}

type coreProgress struct {
	Core         int    `json:"core"`
	State        string `json:"state"`
	Instructions uint64 `json:"instructions"`
}

func progressOf(s *simulation.Simulation) []coreProgress {
	progress := make([]coreProgress, 0, len(s.Cores()))

	for _, core := range s.Cores() {
		state := "active"
		switch {
		case core.Done():
			state = "done"
		case core.Blocked():
			state = "blocked"
		}

		progress = append(progress, coreProgress{
			Core:         core.ID(),
			State:        state,
			Instructions: core.InstructionsExecuted(),
		})
	}

	return progress
}

func main() {
	// A .env file can pre-seed defaults such as MESISIM_DB.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
