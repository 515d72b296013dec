// ABOUTME: Root command wiring config, logging, storage and the repository.
// ABOUTME: With no subcommand it launches the interactive TUI.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/listahan/internal/config"
	"github.com/harper/listahan/internal/logger"
	"github.com/harper/listahan/internal/repository"
	"github.com/harper/listahan/internal/store"
	"github.com/harper/listahan/internal/tui"
	"github.com/harper/listahan/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configPath string
	backend    string
	dataDir    string
	logLevel   string
	logFile    string

	cfg        *config.Config
	log        logger.Logger
	kv         store.KV
	repo       *repository.Repository
	loadReport store.LoadReport
)

var rootCmd = &cobra.Command{
	Use:   "listahan",
	Short: "A local note-taking app",
	Long: `listahan keeps notes in a local key-value store.
Run without arguments for the interactive editor, or use the subcommands for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return setup(cmd == cmd.Root())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(tui.New(repo, log, loadReport), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

// setup loads config, builds the logger, opens the store and loads the repository.
// interactive routes logs away from the terminal the TUI owns.
func setup(interactive bool) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if backend != "" {
		cfg.Backend = backend
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err = newLogger(interactive)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	kv, err = store.Open(cfg.Backend, cfg.StorePath())
	if err != nil {
		// Run on without durability; the load report tells the user.
		log.Error("storage unavailable", logger.String("backend", cfg.Backend), logger.Error(err))
		kv = nil
	}

	adapter := store.NewAdapter(kv,
		store.WithCompaction(cfg.CompactOnLoad),
		store.WithLogger(log),
	)
	repo = repository.New(adapter, repository.WithLogger(log))
	loadReport = repo.Reload()

	if !interactive {
		if msg := ui.FormatLoadReport(loadReport); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
	}
	return nil
}

func newLogger(interactive bool) (logger.Logger, error) {
	if interactive {
		if cfg.LogFile == "" {
			return logger.Nop(), nil
		}
		return logger.New(cfg.LogLevel, false, cfg.LogFile)
	}
	return logger.New(cfg.LogLevel, cfg.PrettyLog, "stderr")
}

func teardown() error {
	if log != nil {
		_ = log.Sync() // stderr sync fails on some terminals
	}
	if kv != nil {
		if err := kv.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}

// Execute runs the root command and prints any error.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/listahan/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "storage backend (badger|sqlite)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file while the TUI runs")
}
