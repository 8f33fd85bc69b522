package toolchain

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/lienzo-app/buildgate/internal/console"
)

// waitDelay bounds how long Build waits for the child's streams after it is
// killed on cancellation, as grandchildren may still hold them open.
const waitDelay = 2 * time.Second

// Toolchain is an externally installed compiler toolchain activated by sourcing
// a shell script before running the build command.
type Toolchain struct {
	// Root is the repository root. The build runs with Root as its working directory.
	Root string
	// Activate is the activation script path relative to Root.
	Activate string
	Shell    string
	Command  string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// Marker returns the absolute path of the activation script.
func (toolchain Toolchain) Marker() string {
	return resolve(toolchain.Root, toolchain.Activate)
}

// Source is the activation script as an argument to the shell's source builtin:
// quoted when needed, and prefixed with ./ when it has no slash so that source
// does not search PATH.
func (toolchain Toolchain) Source() string {
	path := filepath.ToSlash(toolchain.Activate)
	if !strings.Contains(path, "/") {
		path = "./" + path
	}
	return shellescape.Quote(path)
}

// Script is the shell script handed to Shell with -c.
func (toolchain Toolchain) Script() string {
	return fmt.Sprintf("source %s && %s", toolchain.Source(), toolchain.Command)
}

// Build activates the toolchain and runs the build command, blocking until it exits.
// The child's standard streams are the toolchain's streams, or the process's own when unset.
func (toolchain Toolchain) Build(ctx context.Context) error {
	shell := toolchain.Shell
	if shell == "" {
		shell = "bash"
	}

	cmd := exec.CommandContext(ctx, shell, "-c", toolchain.Script())
	cmd.Dir = toolchain.Root
	cmd.WaitDelay = waitDelay

	cmd.Stdout = or[io.Writer](toolchain.Stdout, os.Stdout)
	cmd.Stderr = or[io.Writer](toolchain.Stderr, os.Stderr)
	cmd.Stdin = or[io.Reader](toolchain.Stdin, os.Stdin)

	console.Debug(ctx).Printf("exec: %s -c %q (dir: %s)\n", shell, toolchain.Script(), cmd.Dir)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s -c %q: %w", shell, toolchain.Script(), err)
	}

	return nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func or[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}
