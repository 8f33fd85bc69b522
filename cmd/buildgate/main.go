package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/davidmdm/x/xcontext"

	"github.com/lienzo-app/buildgate/internal"
	"github.com/lienzo-app/buildgate/internal/console"
	"github.com/lienzo-app/buildgate/internal/gate"
)

func main() {
	ctx, done := xcontext.WithSignalCancelation(context.Background(), syscall.SIGINT)
	defer done()

	out := console.Std()
	ctx = console.WithConsole(ctx, out)

	if err := run(ctx, os.Args[1:]); err != nil {
		report(out, err)
		if internal.IsWarning(err) {
			return
		}
		done()
		os.Exit(1)
	}
}

//go:embed cmd_help.txt
var rootHelp string

type GlobalSettings struct {
	Root       string
	ConfigPath string
	Debug      bool
}

func RegisterGlobalFlags(flagset *flag.FlagSet, settings *GlobalSettings) {
	flagset.StringVar(&settings.Root, "root", settings.Root, "repository root (default: parent of the executable's directory)")
	flagset.StringVar(&settings.ConfigPath, "config", settings.ConfigPath, "path to config file (default: <root>/"+configFile+")")
	flagset.BoolVar(&settings.Debug, "debug", settings.Debug, "print debug output to stderr")
}

func run(ctx context.Context, args []string) error {
	out := console.FromContext(ctx)

	var settings GlobalSettings

	flagset := flag.NewFlagSet("buildgate", flag.ContinueOnError)
	flagset.SetOutput(out.Err)
	flagset.Usage = func() {
		fmt.Fprintln(flagset.Output(), console.Help(rootHelp, out.Color))
		flagset.PrintDefaults()
	}

	RegisterGlobalFlags(flagset, &settings)

	if err := flagset.Parse(args); err != nil {
		return parseError(err)
	}

	cmd, subcmdArgs := flagset.Arg(0), flagset.Args()
	if len(subcmdArgs) > 0 {
		subcmdArgs = subcmdArgs[1:]
	}

	if cmd != "" {
		subflags := flag.NewFlagSet(cmd, flag.ContinueOnError)
		subflags.SetOutput(out.Err)
		RegisterGlobalFlags(subflags, &settings)
		if err := subflags.Parse(subcmdArgs); err != nil {
			return parseError(err)
		}
	}

	if cmd == "version" {
		return Version(ctx)
	}

	cfg, err := GetConfig(settings)
	if err != nil {
		return err
	}

	ctx = console.WithDebugFlag(ctx, &cfg.Debug)

	console.Debug(ctx).Printf("root: %s\n", cfg.Root)

	switch cmd {
	case "", "check", "build":
		return cfg.Gate(out).Run(ctx)
	case "status":
		return Status(ctx, cfg)
	default:
		flagset.Usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// printedError is an error the flag package has already written along with usage.
type printedError struct{ error }

func (err printedError) Unwrap() error { return err.error }

func parseError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return printedError{err}
}

func report(out console.Console, err error) {
	switch {
	case errors.As(err, new(printedError)):
		return
	case internal.IsWarning(err):
		out.Warn("%s", err.Error())
	default:
		gate.Report(out, err)
	}
}
