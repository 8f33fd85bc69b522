package gate

import (
	"context"
	"fmt"
	"path"
	"unicode"
	"unicode/utf8"

	"github.com/lienzo-app/buildgate/internal/console"
)

type Builder interface {
	Build(ctx context.Context) error
}

type BuilderFunc func(ctx context.Context) error

func (fn BuilderFunc) Build(ctx context.Context) error { return fn(ctx) }

// Gate blocks until the artifacts exist, building them once through the
// toolchain when they do not. It never retries.
type Gate struct {
	Artifacts ArtifactSet
	// Marker is the toolchain activation script. A build is only attempted when it exists.
	Marker  string
	Builder Builder

	// Names used in operator facing messages and remediation text.
	ToolchainName string
	OutputDir     string
	ToolchainDir  string
	// Activate is the activation script as typed after source, quoted if needed.
	Activate string
	Command  string
}

func (gate Gate) CheckArtifacts() bool {
	return gate.Artifacts.Present()
}

func (gate Gate) Run(ctx context.Context) error {
	out := console.FromContext(ctx)

	out.Info("Checking for WASM files...")

	if gate.CheckArtifacts() {
		out.Success("WASM files found. Ready for deployment!")
		return nil
	}

	for _, path := range gate.Artifacts.Missing() {
		console.Debug(ctx).Printf("missing: %s\n", path)
	}

	out.Warn("WASM files not found.")

	return gate.TryBuild(ctx)
}

func (gate Gate) TryBuild(ctx context.Context) error {
	out := console.FromContext(ctx)

	out.Println("WASM files not found. Attempting to build...")

	name := gate.ToolchainName
	if name == "" {
		name = "toolchain"
	}

	if !Exists(gate.Marker) {
		install := fmt.Sprintf("Please ensure %s is installed in the %s/ directory.", path.Base(gate.ToolchainDir), gate.ToolchainDir)
		if gate.ToolchainDir == "" || gate.ToolchainDir == "." {
			install = fmt.Sprintf("Please ensure %s exists in the repository root.", gate.Activate)
		}
		return &Error{
			Kind: MissingToolchain,
			Msg:  name + " not found at expected location",
			Remedy: []string{
				install,
				fmt.Sprintf("Or pre-build WASM files and commit them to the %s/ directory.", gate.OutputDir),
			},
		}
	}

	out.Println("Activating " + name + "...")

	done := console.DebugTimer(ctx, "build")
	err := gate.Builder.Build(ctx)
	done()

	if err != nil {
		return &Error{
			Kind: BuildExecutionFailure,
			Msg:  "build failed",
			Err:  err,
			Remedy: []string{
				"Tip: Pre-build WASM files locally and commit them:",
				fmt.Sprintf("1. Run: source %s", gate.Activate),
				fmt.Sprintf("2. Run: %s", gate.Command),
				fmt.Sprintf("3. Commit the %s/ directory", gate.OutputDir),
			},
		}
	}

	if !gate.CheckArtifacts() {
		return &Error{
			Kind: PostBuildVerificationFailure,
			Msg:  "build completed but WASM files not found",
		}
	}

	out.Success("WASM files built successfully!")

	return nil
}

// Report renders a failure as a sentence cased error line followed by its
// remedy. The first remedy line of a build failure is a tip header.
func Report(out console.Console, err error) {
	kind, _ := KindOf(err)

	msg := capitalize(err.Error())
	switch kind {
	case MissingToolchain:
		msg = "Error: " + msg + "."
	case PostBuildVerificationFailure:
		msg += "."
	}

	out.Error("%s", msg)

	remedy := RemedyOf(err)
	if kind == BuildExecutionFailure && len(remedy) > 0 {
		out.Tip("%s", remedy[0])
		remedy = remedy[1:]
	}

	for _, line := range remedy {
		out.Detail("%s", line)
	}
}

func capitalize(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}
