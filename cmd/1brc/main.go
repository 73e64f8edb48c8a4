// Command 1brc aggregates a key;value measurement file into per-key
// min/max/mean statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/andreyvit/diff"
	"github.com/pkg/profile"

	"github.com/Shahab96/1brc/internal/input"
	"github.com/Shahab96/1brc/internal/report"
	"github.com/Shahab96/1brc/internal/solve"
	"github.com/Shahab96/1brc/internal/stats"
)

// BRC_WORKERS overrides the worker count when -workers is not given.
const workersEnv = "BRC_WORKERS"

const defaultInput = "measurements.txt"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "1brc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		workers    = flag.Int("workers", 0, "number of parallel workers, 0 means $BRC_WORKERS or all CPUs")
		multiplier = flag.Int("multiplier", 1, "scale the worker count, handy on SMT machines")
		table      = flag.String("table", string(stats.EngineXXH3), "table engine: xxh3, swiss or map")
		reader     = flag.String("reader", string(input.ModeMmap), "input reader: mmap, mmapat or pread")
		cpuprofile = flag.String("cpuprofile", "", "write cpu.pprof into this directory")
		baseline   = flag.String("verify", "", "compare the report against this baseline file")
		verbose    = flag.Bool("v", false, "log timings to stderr")
	)
	flag.Parse()
	if flag.NArg() > 1 {
		return fmt.Errorf("expected at most one input file, got %d arguments", flag.NArg())
	}
	path := defaultInput
	if flag.NArg() == 1 {
		path = flag.Arg(0)
	}

	n, err := workerCount(*workers, *multiplier)
	if err != nil {
		return err
	}

	var lg *log.Logger
	if *verbose {
		lg = log.New(os.Stderr, "", 0)
	}

	if *cpuprofile != "" {
		defer profile.Start(profile.ProfilePath(*cpuprofile)).Stop()
	}

	src, err := input.Open(path, input.Mode(*reader))
	if err != nil {
		return err
	}
	defer src.Close()

	if lg != nil {
		lg.Printf("%s: %d bytes, %d workers, %s table, %s reader",
			path, src.Size(), n, *table, *reader)
	}

	start := time.Now()
	store, err := solve.Run(src, solve.Options{
		Workers: n,
		Engine:  stats.Engine(*table),
		Log:     lg,
	})
	if err != nil {
		return err
	}
	out := report.Render(store)
	if lg != nil {
		lg.Printf("%d keys in %v", store.Len(), time.Since(start))
	}

	fmt.Println(out)
	if *baseline != "" {
		return verify(out, *baseline)
	}
	return nil
}

func workerCount(n, multiplier int) (int, error) {
	if n == 0 {
		if s := os.Getenv(workersEnv); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return 0, fmt.Errorf("invalid %s value %q", workersEnv, s)
			}
			n = v
		} else {
			n = runtime.GOMAXPROCS(-1)
		}
	}
	if multiplier < 1 {
		return 0, fmt.Errorf("multiplier must be at least 1, got %d", multiplier)
	}
	n *= multiplier
	if n < 1 {
		return 0, fmt.Errorf("need at least one worker, got %d", n)
	}
	return n, nil
}

func verify(got, path string) error {
	want, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read baseline: %w", err)
	}
	a := diff.TrimLinesInString(string(want))
	b := diff.TrimLinesInString(got)
	if a != b {
		fmt.Fprintln(os.Stderr, diff.LineDiff(a, b))
		return fmt.Errorf("report does not match %s", path)
	}
	return nil
}
