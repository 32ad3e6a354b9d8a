// Package cmd wires the casier CLI.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/casier/internal/config"
	"github.com/zjrosen/casier/internal/demo"
	"github.com/zjrosen/casier/internal/dispatch"
	"github.com/zjrosen/casier/internal/flags"
	"github.com/zjrosen/casier/internal/log"
	"github.com/zjrosen/casier/internal/ops"
	"github.com/zjrosen/casier/internal/tracing"
	"github.com/zjrosen/casier/internal/ui/browser"
	"github.com/zjrosen/casier/internal/ui/styles"
	"github.com/zjrosen/casier/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "casier",
	Short:   "A terminal ui for browsing registers",
	Long:    `An interactive browser over a register store: saved positions, text, rectangles, numbers, window layouts and file references, each behind a single key.`,
	Version: version,
	RunE:    runBrowser,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/casier/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also enabled by CASIER_DEBUG)")
	rootCmd.Flags().Bool("verbose", false,
		"open with the detail pane expanded")
	rootCmd.Flags().Bool("no-cache", false,
		"disable the description render cache")

	_ = viper.BindPFlag("ui.start_verbose", rootCmd.Flags().Lookup("verbose"))
	_ = viper.BindPFlag("cache.disabled", rootCmd.Flags().Lookup("no-cache"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("terse_width", defaults.TerseWidth)
	viper.SetDefault("separator", defaults.Separator)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.start_verbose", defaults.UI.StartVerbose)
	viper.SetDefault("cache.disabled", defaults.Cache.Disabled)
	viper.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("flags", defaults.Flags)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .casier/config.yaml (current directory)
		// 2. ~/.config/casier/config.yaml (user config)
		if _, err := os.Stat(".casier/config.yaml"); err == nil {
			viper.SetConfigFile(".casier/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "casier"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .casier/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".casier/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runBrowser(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logging if debug mode enabled (via flag or env var)
	if debugFlag || os.Getenv("CASIER_DEBUG") != "" {
		logPath := os.Getenv("CASIER_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "casier")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "casier starting", "debug", true, "logPath", logPath)
	}

	styles.ApplyTheme(cfg.Theme.FlattenedColors())

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	h, st := demo.Seed()
	defer st.Close()

	disp := dispatch.New(h.Services(),
		dispatch.WithTerseWidth(cfg.TerseWidth),
		dispatch.WithTracer(provider.Tracer()),
	)
	svc := ops.NewService(st, h.Services(),
		ops.WithSeparator(cfg.Separator),
		ops.WithTracer(provider.Tracer()),
	)

	registry := flags.New(cfg.Flags)

	model := browser.New(browser.Config{
		Store:         st,
		Dispatcher:    disp,
		Ops:           svc,
		ShowStatusBar: cfg.UI.ShowStatusBar,
		StartVerbose:  cfg.UI.StartVerbose,
		ReadOnly:      !registry.Enabled(flags.FlagDeleteKey),
		CacheDisabled: cfg.Cache.Disabled,
		CacheTTL:      time.Duration(cfg.Cache.TTLSeconds) * time.Second,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	stopWatch := func() {}
	if registry.Enabled(flags.FlagLiveReload) {
		stopWatch = watchConfig(p)
	}
	defer stopWatch()

	_, err = p.Run()
	model.Close()

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// watchConfig reloads theme colors when the config file changes on disk.
// Returns a stop function; a nil watcher (no config file) stops nothing.
func watchConfig(p *tea.Program) func() {
	path := viper.ConfigFileUsed()
	if path == "" {
		return func() {}
	}

	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		log.Warn(log.CatWatch, "config watcher unavailable", "error", err)
		return func() {}
	}

	changes, err := w.Start()
	if err != nil {
		log.Warn(log.CatWatch, "config watcher failed to start", "error", err)
		_ = w.Stop()
		return func() {}
	}

	go func() {
		for range changes {
			if err := viper.ReadInConfig(); err != nil {
				log.Warn(log.CatWatch, "config reload failed", "error", err)
				continue
			}
			var next config.Config
			if err := viper.Unmarshal(&next); err != nil {
				log.Warn(log.CatWatch, "config reload failed", "error", err)
				continue
			}
			if err := config.Validate(next); err != nil {
				log.Warn(log.CatWatch, "ignoring invalid config", "error", err)
				continue
			}
			cfg = next
			styles.ApplyTheme(cfg.Theme.FlattenedColors())
			log.Info(log.CatConfig, "config reloaded", "path", path)
			// Nudge the program so the new theme shows without a keypress
			p.Send(tea.WindowSizeMsg{})
		}
	}()

	return func() { _ = w.Stop() }
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
