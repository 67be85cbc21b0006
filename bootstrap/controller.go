// Package bootstrap frees the application server's TCP port and launches
// the server process. Reclamation is best-effort by contract: failures to
// find or terminate a holder never stop the launch, and the server's own
// bind error is the signal that reclamation did not succeed.
package bootstrap

import (
	"context"
	"fmt"

	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessController abstracts process discovery and termination.
// This interface allows for mock implementations in tests.
type ProcessController interface {
	// Listeners returns the PIDs holding a LISTEN socket on the port.
	Listeners(ctx context.Context, port uint32) ([]int32, error)

	// Terminate forcibly kills the process with the given PID.
	Terminate(ctx context.Context, pid int32) error
}

// SystemController is the ProcessController backed by the operating
// system's connection and process tables.
type SystemController struct{}

// Listeners implements the ProcessController interface.
func (SystemController) Listeners(ctx context.Context, port uint32) ([]int32, error) {
	conns, err := gnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to list tcp connections: %w", err)
	}

	var pids []int32
	seen := map[int32]bool{}
	for _, conn := range conns {
		if conn.Status != "LISTEN" || conn.Laddr.Port != port || conn.Pid == 0 {
			continue
		}
		if seen[conn.Pid] {
			continue
		}
		seen[conn.Pid] = true
		pids = append(pids, conn.Pid)
	}
	return pids, nil
}

// Terminate implements the ProcessController interface.
func (SystemController) Terminate(ctx context.Context, pid int32) error {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := proc.KillWithContext(ctx); err != nil {
		return fmt.Errorf("failed to kill process %d: %w", pid, err)
	}
	return nil
}
