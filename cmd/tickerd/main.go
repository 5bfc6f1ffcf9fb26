package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/tickerd/internal/browser"
	"github.com/abelbrown/tickerd/internal/config"
	"github.com/abelbrown/tickerd/internal/fetch"
	"github.com/abelbrown/tickerd/internal/logging"
	"github.com/abelbrown/tickerd/internal/memory"
	"github.com/abelbrown/tickerd/internal/poller"
	"github.com/abelbrown/tickerd/internal/ui"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg == nil {
		// --help or --version already printed
		return
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if err := logging.Init(filepath.Join(cfg.DataDir, "logs"), cfg.Debug); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	if err := config.LoadSources(cfg); err != nil {
		log.Fatalf("Failed to load sources: %v", err)
	}

	mem, err := memory.Open(filepath.Join(cfg.DataDir, "memory.db"), cfg.MemoryRetention)
	if err != nil {
		log.Fatalf("Failed to open shown-headline memory: %v", err)
	}
	defer mem.Close()

	logging.Info("tickerd starting",
		"version", config.GetVersion(),
		"sources", len(cfg.Sources),
		"poll_interval", cfg.PollInterval,
	)

	// Graceful shutdown: cancel stops the poller, quitting the UI returns
	// from Run.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fetcher := fetch.New(cfg.FetchTimeout, cfg.UserAgent)
	p := poller.New(cfg, fetcher, mem)
	p.Start(ctx)

	model := ui.New(cfg, p.Batches(), &browser.ExecOpener{}, mem)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, runErr := program.Run()

	cancel()
	p.Wait()

	if runErr != nil && ctx.Err() == nil {
		logging.Error("ui exited with error", "error", runErr)
		fmt.Fprintf(os.Stderr, "tickerd: %v\n", runErr)
		os.Exit(1)
	}
	logging.Info("tickerd stopped")
}
