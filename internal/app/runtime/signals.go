package runtime

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyContext is cancelled on Ctrl-C or SIGTERM.
func NotifyContext(parent context.Context) (context.Context, func()) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
