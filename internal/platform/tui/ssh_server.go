package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/core"
)

var (
	// activeSessions tracks the number of connected SSH players
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "watersort_ssh_sessions_active",
		Help: "Connected SSH sessions",
	})

	// sessionsTotal counts SSH sessions by outcome ("started" or "no_pty")
	sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "watersort_ssh_sessions_total",
		Help: "SSH sessions by outcome",
	}, []string{"outcome"})
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.watersort/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MetricsAddress serves Prometheus metrics at /metrics when set.
	MetricsAddress string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves Water Sort sessions over SSH. Every SSH user gets
// their own progress profile in the shared store.
type SSHServer struct {
	config  SSHServerConfig
	session SessionOptions
	server  *ssh.Server
	metrics *http.Server
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server. session is the template for
// every player session; its Player, AudioOut and Runtime are filled per connection.
func NewSSHServer(cfg SSHServerConfig, session SessionOptions) (*SSHServer, error) {
	logger := session.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "watersort-ssh",
		})
		session.Logger = logger
	}

	srv := &SSHServer{
		config:  cfg,
		session: session,
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(config.DataDir(), "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv.metrics = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		sessionsTotal.WithLabelValues("no_pty").Inc()
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "Water Sort needs an interactive terminal. Try: ssh -t")
		return nil, nil
	}
	sessionsTotal.WithLabelValues("started").Inc()

	opts := s.session
	opts.Player = sshSession.User()
	opts.AudioOut = sshSession.Stderr()
	opts.Runtime = core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.session.Runtime.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(opts)
	s.logger.Debug("session model created", "user", opts.Player, "session", model.ID())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		started := time.Now()
		activeSessions.Inc()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		activeSessions.Dec()
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(started).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled
// or the server fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 2)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- fmt.Errorf("ssh server: %w", err)
		}
	}()

	if s.metrics != nil {
		s.logger.Info("serving metrics", "address", s.metrics.Addr)
		go func() {
			if err := s.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
	case serveErr = <-errCh:
		s.logger.Error("server error", "error", serveErr)
	}

	return errors.Join(serveErr, s.Shutdown())
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if s.metrics != nil {
		errs = append(errs, s.metrics.Shutdown(ctx))
	}
	errs = append(errs, s.server.Shutdown(ctx))
	return errors.Join(errs...)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
