// Command gravwm is a grid-based tiling window manager for X11.
//
// Windows are assigned to tags by matching their WM_CLASS and name
// properties against configured patterns, and views compose tags into
// workspaces. Each client carries a gravity that places it inside a
// screen-relative grid slot; clients sharing a slot are tiled within it.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gravwm/gravwm/internal/config"
	"github.com/gravwm/gravwm/internal/wm"
	"github.com/gravwm/gravwm/internal/x11"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func execute() error {
	var (
		displayName string
		configPath  string
		verbose     bool
	)

	root := &cobra.Command{
		Use:          "gravwm",
		Short:        "gravwm is a grid-based tiling window manager for X11",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if displayName == "" {
				displayName = cfg.Display
			}
			logger := newLogger(cfg, verbose)
			return runWM(cfg, displayName, logger)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("gravwm %s (%s)\n", version, commit))
	root.PersistentFlags().StringVarP(&displayName, "display", "d", "", "X display to connect to (defaults to $DISPLAY)")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCheckCmd(&configPath))

	return root.Execute()
}

// newCheckCmd validates a config file without connecting to the X server.
func newCheckCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration file and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *configPath
			if path == "" {
				var err error
				path, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}
			if _, err := config.LoadFromPath(path); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			return nil
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func newLogger(cfg *config.Config, verbose bool) *charmlog.Logger {
	level := charmlog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		level = charmlog.DebugLevel
	case "warn":
		level = charmlog.WarnLevel
	case "error":
		level = charmlog.ErrorLevel
	}
	if verbose {
		level = charmlog.DebugLevel
	}
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func runWM(cfg *config.Config, displayName string, logger *charmlog.Logger) error {
	conn, err := x11.NewConnection(displayName)
	if err != nil {
		return fmt.Errorf("connecting to X server: %w", err)
	}
	defer conn.Close()

	if err := conn.ClaimWMRole("gravwm"); err != nil {
		return err
	}
	if err := conn.SelectOutputChanges(); err != nil {
		logger.Warn("RandR unavailable, screen changes will not be tracked", "err", err)
	}

	mgr, err := wm.New(cfg, conn, logger)
	if err != nil {
		return fmt.Errorf("initializing window manager: %w", err)
	}
	mgr.Adopt()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sig
		logger.Info("shutting down", "signal", s)
		mgr.Shutdown()
	}()

	logger.Info("managing display", "display", conn.DisplayName(), "version", version)
	conn.Run(mgr)
	return nil
}
