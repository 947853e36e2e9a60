package mcp

import (
	"context"
	"os"
	"time"

	"odooctl/internal/logging"
)

// WatchParent monitors for parent process death in a background goroutine.
// When the parent PID changes (the MCP host disconnected or restarted), it
// calls cancelFn to trigger graceful shutdown, preventing zombie server
// processes.
//
// It must NOT read from stdin — the SDK's StdioTransport owns stdin
// exclusively, and stealing bytes there corrupts the protocol stream.
//
// The goroutine exits when ctx is canceled or parent death is detected.
func WatchParent(ctx context.Context, interval time.Duration, cancelFn context.CancelFunc) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "was_pid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
