package schedule

import (
	"context"
	"time"
)

// LockProvider guards a task so only one server runs it per tick.
type LockProvider interface {
	// GetLock tries to take the named lock without waiting. It reports
	// false when another holder has it.
	GetLock(ctx context.Context, name string, duration time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name string) error
}
