package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/claude/pacer/internal/engine"
	"github.com/claude/pacer/internal/localstate"
	"github.com/claude/pacer/internal/models"
	"gopkg.in/yaml.v3"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	planPath := flag.String("plan", "", "path to a workout plan YAML file")
	showHistory := flag.Bool("history", false, "print recent local runs and exit")
	historyLimit := flag.Int("limit", 10, "rows to show with -history")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("pacer-run", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	stateDB, err := openStateDB()
	if err != nil {
		log.Error("failed to open local run log", "error", err)
		os.Exit(1)
	}
	defer stateDB.Close()

	if *showHistory {
		printHistory(stateDB, *historyLimit)
		return
	}

	if *planPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: pacer-run -plan <plan.yaml> | -history [-limit N]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	spec, err := loadPlan(*planPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data := engine.Build(spec.Snapshot())
	if data.Phase() == engine.PhaseNeverStarted {
		fmt.Fprintf(os.Stderr, "Error: plan %q has no exercises to run\n", spec.Name)
		os.Exit(1)
	}

	if err := run(spec, data, stateDB); err != nil {
		log.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// openStateDB opens the run log under ~/.pacer.
func openStateDB() (*localstate.LogDB, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return localstate.Open(filepath.Join(homeDir, ".pacer"))
}

// loadPlan parses and validates a plan YAML file.
func loadPlan(path string) (models.PlanSpec, error) {
	var spec models.PlanSpec
	raw, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("reading plan file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return spec, fmt.Errorf("parsing plan file: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("invalid plan: %w", err)
	}
	return spec, nil
}

// run drives the workout in the terminal until it finishes or is aborted.
func run(spec models.PlanSpec, data engine.Data, stateDB *localstate.LogDB) error {
	runner := engine.NewRunner(data, engine.Config{})

	done := make(chan engine.Summary, 1)
	runner.OnFinish(func(s engine.Summary) { done <- s })

	events := runner.Subscribe(16)

	// Enter toggles pause. Ctrl-C aborts.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			runner.TogglePlay()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		runner.End()
	}()

	if tl, ok := data.Timeline(); ok {
		fmt.Printf("%s: %d blocks, %s total. Press Enter to pause/resume, Ctrl-C to stop.\n",
			spec.Name, tl.Len(), models.Duration(tl.TotalRemaining()))
	}

	runner.Start()

	for ev := range events {
		printEvent(ev)
	}

	summary := <-done
	if summary.Completed {
		fmt.Printf("\nDone. %s of work in %d blocks.\n",
			models.Duration(summary.PlannedSecs), summary.BlocksTotal)
	} else {
		fmt.Println("\nStopped early.")
	}

	secs := summary.PlannedSecs
	if !summary.Completed {
		secs = int(summary.EndedAt.Sub(summary.StartedAt).Round(time.Second).Seconds())
	}
	if err := stateDB.Record(spec.Name, summary.StartedAt, summary.EndedAt, secs, summary.Completed); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// printEvent renders one runner update as a terminal line.
func printEvent(ev engine.Event) {
	if ev.Phase == engine.PhaseFinished {
		fmt.Printf("\r%-60s\n", cueMark(ev.Cue)+" finished")
		return
	}
	if ev.Block == nil {
		return
	}
	state := ""
	if !ev.Playing {
		state = " [paused]"
	}
	line := fmt.Sprintf("%s %s  %s%s", cueMark(ev.Cue), ev.Block.Label(), models.Duration(ev.Remaining), state)
	fmt.Printf("\r%-60s", line)
}

func cueMark(c engine.Cue) string {
	switch c {
	case engine.CueWhistle:
		return "»"
	case engine.CueTick:
		return "!"
	case engine.CueTada:
		return "✓"
	default:
		return " "
	}
}

// printHistory lists recent local runs, newest first.
func printHistory(stateDB *localstate.LogDB, limit int) {
	runs, err := stateDB.Recent(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return
	}
	for _, r := range runs {
		status := "completed"
		if !r.Completed {
			status = "stopped"
		}
		fmt.Printf("%s  %-20s %8s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.PlanName, models.Duration(r.TotalSecs), status)
	}
}
