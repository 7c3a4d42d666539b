package daemonctl

import (
	"context"
	"os/signal"
	"syscall"
)

// WaitForShutdown returns a context cancelled on SIGTERM or SIGINT,
// plus the stop function the caller must defer. This is the
// context.Context re-architecture in place of the original's
// catchSigterm/sigTermHandler pair and its `volatile sig_atomic_t done`
// loop variable.
func WaitForShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
}
