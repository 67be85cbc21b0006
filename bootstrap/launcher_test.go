package bootstrap

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmactiva/schemactl"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix coreutils")
	}
}

func TestRun_PropagatesZeroExitCode(t *testing.T) {
	skipOnWindows(t)

	launcher := NewLauncher(LauncherConfig{Command: "true"})

	code, err := launcher.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, code)
}

func TestRun_PropagatesNonZeroExitCode(t *testing.T) {
	skipOnWindows(t)

	launcher := NewLauncher(LauncherConfig{Command: "false"})

	code, err := launcher.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestRun_ReclaimsBeforeLaunching(t *testing.T) {
	skipOnWindows(t)

	controller := NewMockController()
	controller.ListenersFunc = func(ctx context.Context, port uint32) ([]int32, error) {
		return []int32{101}, nil
	}
	launcher := NewLauncher(LauncherConfig{
		Port:      8002,
		Command:   "true",
		Reclaimer: NewReclaimer(ReclaimerConfig{Controller: controller}),
	})

	code, err := launcher.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, code)
	assert.Equal(t, []uint32{8002}, controller.ListenersCalls)
	assert.Equal(t, []int32{101}, controller.TerminateCalls)
}

func TestRun_ReclaimFailureDoesNotBlockLaunch(t *testing.T) {
	skipOnWindows(t)

	controller := NewMockController()
	controller.ListenersFunc = func(ctx context.Context, port uint32) ([]int32, error) {
		return []int32{101}, nil
	}
	controller.TerminateFunc = func(ctx context.Context, pid int32) error {
		return context.DeadlineExceeded
	}
	launcher := NewLauncher(LauncherConfig{
		Port:      8002,
		Command:   "true",
		Reclaimer: NewReclaimer(ReclaimerConfig{Controller: controller}),
	})

	code, err := launcher.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, code)
}

func TestRun_MissingCommand(t *testing.T) {
	launcher := NewLauncher(LauncherConfig{})

	_, err := launcher.Run(context.Background())

	assert.ErrorIs(t, err, schemactl.ErrNoServerCommand)
}

func TestRun_NonexistentCommand(t *testing.T) {
	launcher := NewLauncher(LauncherConfig{Command: "definitely-not-a-real-binary-8002"})

	code, err := launcher.Run(context.Background())

	assert.Error(t, err)
	assert.Equal(t, -1, code)
}
