// internal/common/database/health.go
package database

import (
	"context"
	"fmt"
	"time"
)

// Pinger is any backend that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckAll pings every named backend with a shared deadline and returns the
// first failure.
func CheckAll(ctx context.Context, timeout time.Duration, backends map[string]Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for name, b := range backends {
		if b == nil {
			continue
		}
		if err := b.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
