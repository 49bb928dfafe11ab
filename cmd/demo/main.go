package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ownership/handle"
)

// logObserver mirrors lifecycle events into a zap logger.
type logObserver struct {
	log *zap.Logger
}

func (l *logObserver) OnOwnershipEvent(e handle.Event) {
	l.log.Debug("lifecycle",
		zap.Stringer("event", e.Type),
		zap.Uintptr("lineage", e.Lineage),
		zap.Int64("count", e.Count),
	)
}

func main() {
	var (
		scenarioFile = flag.String("scenario", "", "Path to a YAML scenario (default: built-in walkthrough)")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		verbose      = flag.Bool("v", false, "Log lifecycle events")
	)
	flag.Parse()

	var logger *zap.Logger
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer l.Sync()
		handle.SetLogger(l)
		logger = l
	}

	sc := DefaultScenario()
	if *scenarioFile != "" {
		loaded, err := LoadScenario(*scenarioFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sc = loaded
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(sc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(sc, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sc *Scenario, logger *zap.Logger) error {
	runner := NewRunner()
	defer runner.Close()

	if logger != nil {
		obs := &logObserver{log: logger}
		runner.tracker.Subscribe(obs)
		defer runner.tracker.Unsubscribe(obs)
	}

	fmt.Printf("Scenario: %s (%d steps)\n", sc.Name, len(sc.Steps))

	frames, err := runner.Run(sc)
	for i, f := range frames {
		fmt.Printf("\n%2d. %s\n    %s\n", i+1, f.Step, f.Outcome)
		for _, line := range f.State {
			fmt.Printf("      %s\n", line)
		}
	}
	if err != nil {
		return err
	}

	if leaked := runner.Leaked(); len(leaked) > 0 {
		fmt.Printf("\nLeaked lineages:\n")
		for _, l := range leaked {
			fmt.Printf("  %s\n", l)
		}
	} else {
		fmt.Printf("\nAll lineages destroyed.\n")
	}
	return nil
}
