package console

import (
	"context"
	"io"
	"time"

	"github.com/davidmdm/ansi"
)

type (
	consoleKey struct{}
	debugKey   struct{}
)

func WithConsole(ctx context.Context, console Console) context.Context {
	return context.WithValue(ctx, consoleKey{}, console)
}

func FromContext(ctx context.Context) Console {
	console, ok := ctx.Value(consoleKey{}).(Console)
	if !ok {
		return Std()
	}
	return console
}

func WithDebugFlag(ctx context.Context, debug *bool) context.Context {
	return context.WithValue(ctx, debugKey{}, debug)
}

// Debug returns a terminal writing to the context console's error stream when
// the debug flag is set, and discarding otherwise.
func Debug(ctx context.Context) ansi.Terminal {
	debug, _ := ctx.Value(debugKey{}).(*bool)
	if debug == nil || !*debug {
		return ansi.Terminal{Writer: io.Discard}
	}
	return ansi.Terminal{Writer: writer(FromContext(ctx).Err)}
}

func DebugTimer(ctx context.Context, msg string) func() {
	start := time.Now()
	Debug(ctx).Printf("start: %s\n", msg)
	return func() {
		Debug(ctx).Printf("done:  %s: %s\n", msg, time.Since(start))
	}
}
