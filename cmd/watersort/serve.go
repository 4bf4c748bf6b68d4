package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
	"github.com/vovakirdan/watersort/internal/platform/tui"
)

var (
	flagHost        string
	flagPort        int
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMetricsAddr string
	flagWatch       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Water Sort SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level picker.
Progress is stored per SSH user name in the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.watersort/host_key

Examples:
  watersort serve                           # Listen on :23234 with auto-generated key
  watersort serve --port 2222               # Listen on port 2222
  watersort serve --levels ./lv --watch     # Reload levels when files change
  watersort serve --metrics :9090           # Expose Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", "", "Host to listen on")
	serveCmd.Flags().IntVar(&flagPort, "port", 23234, "Port to listen on")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle time before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Address for the Prometheus /metrics endpoint (disabled if empty)")
	serveCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload levels when files in --levels change")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := stderrLogger("watersort-ssh")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(logger)
	if err != nil {
		return err
	}
	theme, err := tui.ThemeByName(flagTheme)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagWatch {
		if flagLevelsDir == "" {
			return fmt.Errorf("--watch needs --levels")
		}
		watcher, err := levels.NewWatcher(flagLevelsDir, catalog, logger)
		if err != nil {
			return err
		}
		go watcher.Run(ctx)
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = net.JoinHostPort(flagHost, strconv.Itoa(flagPort))
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.IdleTimeout = flagIdleTimeout
	serverCfg.MetricsAddress = flagMetricsAddr

	server, err := tui.NewSSHServer(serverCfg, tui.SessionOptions{
		Config:  cfg,
		Catalog: catalog,
		Store:   store,
		Logger:  logger,
		Runtime: core.RuntimeConfig{TickRate: flagFPS},
		Theme:   &theme,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Starting Water Sort SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %d\n", flagPort)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
