package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/farmactiva/schemactl"
	"github.com/farmactiva/schemactl/metrics"
)

// LauncherConfig holds configuration for the server Launcher.
type LauncherConfig struct {
	// Port is the TCP port to reclaim before starting (required when
	// Reclaimer is set).
	Port uint32

	// Command is the server executable to start (required).
	Command string

	// Args are passed to the server process.
	Args []string

	// Dir is the working directory for the server process (optional).
	Dir string

	// Reclaimer frees the port before the launch (optional; when nil the
	// launch proceeds without any reclamation).
	Reclaimer *Reclaimer

	// WaitReady makes the launcher poll until the port is free after
	// reclaiming, up to ReadyTimeout. Off by default: the contract is
	// last-writer-wins with no verification.
	WaitReady bool

	// ReadyTimeout bounds the WaitReady poll (default: 10s).
	ReadyTimeout time.Duration

	// Logger is for observability (optional).
	Logger schemactl.Logger

	// Collector records launch metrics (optional).
	Collector *metrics.Collector
}

// Launcher reclaims the server port and runs the server process in the
// foreground, mirroring its exit code.
type Launcher struct {
	config LauncherConfig
}

// NewLauncher creates a Launcher with the given configuration.
// Applies the default ReadyTimeout if not set.
func NewLauncher(cfg LauncherConfig) *Launcher {
	if cfg.ReadyTimeout == 0 {
		cfg.ReadyTimeout = 10 * time.Second
	}
	return &Launcher{config: cfg}
}

// Run reclaims the port (best-effort), starts the server with stdio
// passed through, and blocks until it exits. The server's exit code is
// returned; reclamation failures never affect it. Cancelling ctx sends
// the server SIGTERM and, after a grace period, kills it.
//
// If reclamation did not actually free the port, the server fails to
// bind and that failure surfaces as its own exit code. Nothing here
// handles it specially.
func (l *Launcher) Run(ctx context.Context) (int, error) {
	if l.config.Command == "" {
		return 0, schemactl.ErrNoServerCommand
	}

	if l.config.Reclaimer != nil {
		killed := l.config.Reclaimer.Reclaim(ctx, l.config.Port)
		l.logInfo(ctx, "port reclaimed", "port", l.config.Port, "killed", killed)

		if l.config.WaitReady {
			if err := l.config.Reclaimer.WaitFree(ctx, l.config.Port, l.config.ReadyTimeout); err != nil {
				// Still best-effort; the bind failure is the real signal.
				l.logDebug(ctx, "port not confirmed free", "port", l.config.Port, "error", err)
			}
		}
	}

	cmd := exec.CommandContext(ctx, l.config.Command, l.config.Args...)
	cmd.Dir = l.config.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = 10 * time.Second

	l.logInfo(ctx, "starting server", "command", l.config.Command, "dir", l.config.Dir)
	if err := cmd.Start(); err != nil {
		return -1, err
	}
	if l.config.Collector != nil {
		l.config.Collector.IncServerLaunches()
	}

	err := cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		l.logInfo(ctx, "server exited", "code", exitErr.ExitCode())
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}

	l.logInfo(ctx, "server exited", "code", 0)
	return 0, nil
}

func (l *Launcher) logDebug(ctx context.Context, msg string, kv ...any) {
	if l.config.Logger != nil {
		l.config.Logger.Debug(ctx, msg, kv...)
	}
}

func (l *Launcher) logInfo(ctx context.Context, msg string, kv ...any) {
	if l.config.Logger != nil {
		l.config.Logger.Info(ctx, msg, kv...)
	}
}
