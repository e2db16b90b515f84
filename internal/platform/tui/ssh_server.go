package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/soliskit/tetris/internal/config"
	"github.com/soliskit/tetris/internal/core"
	"github.com/soliskit/tetris/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// SSHServerConfig configures the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on, e.g. ":23234".
	Address string

	// HostKeyPath is generated on first start when missing.
	// Empty means ~/.tetris/host_key.
	HostKeyPath string

	DBPath      string
	IdleTimeout time.Duration

	// MaxSessions caps concurrent players. Zero means no limit.
	MaxSessions int

	// Game is the engine configuration used for every session.
	Game config.TetrisConfig

	// Logger defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns the defaults used by `tetris serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tetris/tetris.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultTetrisConfig(),
	}
}

// SSHServer serves one game per SSH connection. Saved sessions are kept
// per SSH user and the score history is shared.
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	kv     *storage.Memory // used when the database is unavailable
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer opens storage and prepares the server. It does not listen
// until Serve is called.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "tetris-ssh"})
	}
	s := &SSHServer{cfg: cfg, logger: cfg.Logger}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if store, err := storage.Open(cfg.DBPath); err != nil {
		s.logger.Warn("could not open database, sessions kept in memory", "err", err)
		s.kv = storage.NewMemory()
	} else {
		s.store = store
	}

	// Middleware runs last to first: the limit and logging wrap the
	// terminal check, which wraps the game.
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			s.trackSessions,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// hostKeyPath resolves the key location and makes sure its directory
// exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".tetris", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// env returns the game environment for one SSH user.
func (s *SSHServer) env(user string) Env {
	env := Env{Config: s.cfg.Game, Store: s.store, Player: user, Logger: s.logger}
	if s.store == nil {
		env.KV = s.kv
	}
	return env
}

// teaHandler builds the program for a session. activeterm has already
// rejected connections without a PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	model := NewSessionModel(s.env(sess.User()), core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
	})
	s.logger.Info("game session", "user", sess.User(), "session", model.ID())
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// trackSessions enforces MaxSessions and logs connects and disconnects.
func (s *SSHServer) trackSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		if limit := s.cfg.MaxSessions; limit > 0 && n > int64(limit) {
			logger.Warn("session rejected, server full", "active", n-1)
			wish.Fatalln(sess, "Server full, try again later.")
			return
		}

		logger.Info("connected", "active", n)
		start := time.Now()
		next(sess)
		logger.Info("disconnected", "duration", time.Since(start).Round(time.Second))
	}
}

// Active returns the number of connected sessions.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}

// Serve listens until ctx is cancelled or the listener fails, then shuts
// down gracefully and closes the store.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.cfg.Address)

	errc := make(chan error, 1)
	go func() { errc <- s.server.ListenAndServe() }()

	var serveErr error
	select {
	case err := <-errc:
		if !errors.Is(err, ssh.ErrServerClosed) {
			serveErr = err
		}
	case <-ctx.Done():
		s.logger.Info("shutting down", "active", s.Active())
	}

	if err := s.Shutdown(); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

// Shutdown stops accepting connections, waits for open sessions up to a
// timeout and closes the store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
