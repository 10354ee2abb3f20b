package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the multi-session SSH host.
type SSHServerConfig struct {
	Address     string // listen address, e.g. ":23234"
	HostKeyPath string // empty means ~/.blockfall/host_key, generated on first run
	DBPath      string // scores database shared by every session
	IdleTimeout time.Duration

	TickRate   int                     // frames per second for every session
	Difficulty config.DifficultyPreset // preset the menu opens on
	NewGame    GameFactory             // nil means the registry
}

// DefaultSSHServerConfig returns the settings used by "blockfall serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.blockfall/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
		Difficulty:  config.DifficultyNormal,
	}
}

// SSHServer runs one SessionModel per SSH connection. All sessions share
// one score store.
type SSHServer struct {
	cfg    SSHServerConfig
	srv    *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer prepares the server. A scores database that cannot be opened
// only disables score keeping.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.NewGame == nil {
		cfg.NewGame = registryFactory
	}

	s := &SSHServer{
		cfg: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blockfall-ssh",
		}),
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		s.logger.Warn("scores disabled", "db", cfg.DBPath, "err", err)
		s.store = nil
	}

	// Middlewares run last to first: logging wraps the PTY check, which
	// wraps the game.
	s.srv, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(s.logger, log.InfoLevel),
		),
	)
	if err != nil {
		s.store.Close()
		return nil, fmt.Errorf("ssh: new server: %w", err)
	}
	return s, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: host key: %w", err)
		}
		path = filepath.Join(home, ".blockfall", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the program model for a connection. activeterm has
// already rejected sessions without a PTY.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	user := sess.User()

	m := NewSessionModel(SessionOptions{
		Store: s.store,
		Config: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.cfg.TickRate,
		},
		Player:     user,
		Difficulty: s.cfg.Difficulty,
		NewGame:    s.cfg.NewGame,
		Painter:    NewPainter(bubbletea.MakeRenderer(sess)),
		Logger:     s.logger.With("user", user),
	})
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

// Serve accepts connections until ctx is done, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Address)
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.store.Close()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown waits up to a few seconds for sessions to end and closes the
// score store.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	s.store.Close()
	return err
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
