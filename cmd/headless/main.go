package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/milk9111/princeguard/prefabs"
	"github.com/milk9111/princeguard/scene"
	"github.com/milk9111/princeguard/sequence"
)

type options struct {
	runs       int
	maxTicks   int
	seedBase   int64
	seedStep   int64
	spawnEvery int
	prefabDir  string
	verbose    bool
}

func main() {
	var opts options
	flag.IntVar(&opts.runs, "runs", 5, "number of runs")
	flag.IntVar(&opts.maxTicks, "max-ticks", 20000, "tick limit per run")
	flag.Int64Var(&opts.seedBase, "seed-base", 42, "seed for run 1")
	flag.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&opts.spawnEvery, "spawn-every", 30, "frames between defender calls during protection")
	flag.StringVar(&opts.prefabDir, "prefabs", "", "directory of prefab overrides (empty uses the embedded copies)")
	flag.BoolVar(&opts.verbose, "v", false, "log sequence transitions")
	flag.Parse()

	if opts.runs <= 0 || opts.maxTicks <= 0 {
		fmt.Fprintln(os.Stderr, "error: -runs and -max-ticks must be > 0")
		os.Exit(2)
	}
	prefabs.SetDiskDir(opts.prefabDir)

	logger := log.New(io.Discard, "", 0)
	if opts.verbose {
		logger = log.New(os.Stderr, "", 0)
	}

	cfg, err := scene.LoadConfig(logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	runID := uuid.NewString()
	fmt.Printf("=== Prince Guard Headless Report ===\n")
	fmt.Printf("run_id=%s runs=%d max_ticks=%d seed_base=%d seed_step=%d spawn_every=%d\n\n",
		runID, opts.runs, opts.maxTicks, opts.seedBase, opts.seedStep, opts.spawnEvery)

	reports := make([]scene.Report, 0, opts.runs)
	for i := 0; i < opts.runs; i++ {
		seed := opts.seedBase + int64(i)*opts.seedStep
		r, err := runOnce(cfg, seed, opts, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		fmt.Printf("--- Run %d ---\n", i+1)
		if err := r.Write(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Println()
		reports = append(reports, r)
	}

	printAggregate(os.Stdout, summarize(reports))
}

func runOnce(cfg scene.Config, seed int64, opts options, logger *log.Logger) (scene.Report, error) {
	s, err := scene.New(cfg, scene.Options{Seed: seed, Logger: logger})
	if err != nil {
		return scene.Report{}, err
	}
	defer s.Close()

	pilot := scene.NewAutopilot(opts.spawnEvery)
	for i := 0; i < opts.maxTicks; i++ {
		if s.Update(pilot.Next(s.Sequencer.View())) == sequence.Complete {
			break
		}
	}
	return s.Report(), nil
}

type aggregate struct {
	runs      int
	completed int
	ticks     []int
	// phaseTicks holds, per phase, the entry tick of every run that reached it.
	phaseTicks map[sequence.Phase][]int
	defenders  int
	caught     int
	princeHits int
	respawns   int
}

func summarize(reports []scene.Report) aggregate {
	agg := aggregate{runs: len(reports), phaseTicks: map[sequence.Phase][]int{}}
	for _, r := range reports {
		if r.Complete {
			agg.completed++
			agg.ticks = append(agg.ticks, r.Ticks)
		}
		for _, t := range r.Transitions {
			agg.phaseTicks[t.To] = append(agg.phaseTicks[t.To], t.Tick)
		}
		agg.defenders += r.DefendersSpawned
		agg.caught += r.ArrowsCaught
		agg.princeHits += r.PrinceHits
		agg.respawns += r.Respawns
	}
	return agg
}

func printAggregate(w io.Writer, agg aggregate) {
	fmt.Fprintf(w, "=== Aggregate ===\n")
	fmt.Fprintf(w, "completed=%d/%d ticks_to_done: %s\n", agg.completed, agg.runs, describe(agg.ticks))
	fmt.Fprintf(w, "defenders=%d caught=%d prince_hits=%d respawns=%d\n", agg.defenders, agg.caught, agg.princeHits, agg.respawns)

	phases := make([]sequence.Phase, 0, len(agg.phaseTicks))
	for p := range agg.phaseTicks {
		phases = append(phases, p)
	}
	sort.Slice(phases, func(i, j int) bool { return phases[i] < phases[j] })
	for _, p := range phases {
		fmt.Fprintf(w, "enter %-22s %s\n", p, describe(agg.phaseTicks[p]))
	}
}

// describe formats min/median/max of ticks, or "n/a".
func describe(ticks []int) string {
	if len(ticks) == 0 {
		return "n/a"
	}
	sorted := append([]int(nil), ticks...)
	sort.Ints(sorted)
	return fmt.Sprintf("min=%d median=%d max=%d", sorted[0], sorted[len(sorted)/2], sorted[len(sorted)-1])
}
