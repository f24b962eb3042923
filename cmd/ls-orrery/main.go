// Command ls-orrery is a real-time 3D orrery rendered in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/input"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/observability"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	simTime       float64
	watchInterval time.Duration
)

const (
	defaultFPS = 30
	minFPS     = 10
	maxFPS     = 60
)

func main() {
	// Parse flags
	fps := flag.Int("fps", defaultFPS, "Target frames per second (10-60)")
	seed := flag.Uint64("seed", 42, "Seed for satellites and the debris belt")
	hold := flag.Duration("hold", input.DefaultHold, "How long a key counts as held after its last press")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to this file (the TUI owns the terminal)")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g., :9090)")
	flag.BoolVar(&summaryMode, "summary", false, "Print a position table instead of the TUI")
	flag.Float64Var(&simTime, "sim-time", 0, "Simulation time for --summary, in seconds")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat --summary at interval, advancing time (e.g., 2s)")
	flag.Parse()

	// Validate frame rate
	if *fps < minFPS {
		*fps = minFPS
	} else if *fps > maxFPS {
		*fps = maxFPS
	}

	// Headless mode: no TUI
	if summaryMode {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		if err := runHeadless(ctx, os.Stdout, *seed); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdout is not a terminal (use --summary for text output)")
		os.Exit(1)
	}

	if err := run(*fps, *seed, *hold, *logLevel, *logFile, *metricsAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(fps int, seed uint64, hold time.Duration, logLevel, logFile, metricsAddr string) error {
	// Set up logging. Stderr would tear the alt screen, so without a
	// file logs are dropped.
	logger := logging.Discard()
	if logFile != "" {
		l, closer, err := logging.OpenFile(logFile, logging.ParseLevel(logLevel))
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = l
	}

	var metrics *observability.Collector
	if metricsAddr != "" {
		var err error
		metrics, err = observability.NewCollector(nil)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		srv := &http.Server{Addr: metricsAddr, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("Serving metrics on %s", metricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed: %v", err)
			}
		}()
		defer srv.Close()
	}

	// Initialize components
	cfg := sim.DefaultConfig()
	cfg.Seed = seed
	orrery := sim.New(cfg, logger.With("sim"), metrics)
	model := ui.New(orrery, input.NewKeyboard(hold), ui.Options{FPS: fps, Log: logger.With("ui")})

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			p.Quit()
		}
	}()

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// runHeadless prints the position table once, or repeatedly with --watch.
func runHeadless(ctx context.Context, w io.Writer, seed uint64) error {
	cfg := sim.DefaultConfig()
	system := orbit.NewSystem(cfg.Bodies, cfg.Belt, seed)

	// Single run
	if watchInterval == 0 {
		orbit.WriteSummaryTable(w, system, simTime)
		return nil
	}

	// Watch mode: sim time follows wall time
	start := time.Now()
	orbit.WriteSummaryTable(w, system, simTime)

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			fmt.Fprintln(w) // Blank line between outputs
			orbit.WriteSummaryTable(w, system, simTime+now.Sub(start).Seconds())
		}
	}
}
