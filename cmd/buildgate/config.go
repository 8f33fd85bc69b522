package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/davidmdm/conf"

	"github.com/lienzo-app/buildgate/internal/console"
	"github.com/lienzo-app/buildgate/internal/gate"
	"github.com/lienzo-app/buildgate/internal/toolchain"
)

const configFile = "buildgate.yaml"

type Config struct {
	Root   string `yaml:"-"`
	Debug  bool   `yaml:"-"`
	Output struct {
		Dir     string `yaml:"dir"`
		Loader  string `yaml:"loader"`
		Payload string `yaml:"payload"`
	} `yaml:"output"`
	Toolchain struct {
		Name     string `yaml:"name"`
		Dir      string `yaml:"dir"`
		Activate string `yaml:"activate"`
		Shell    string `yaml:"shell"`
		Command  string `yaml:"command"`
	} `yaml:"toolchain"`
}

func DefaultConfig() Config {
	var cfg Config
	cfg.Output.Dir = "build"
	cfg.Output.Loader = "lienzo.js"
	cfg.Output.Payload = "lienzo.wasm"
	cfg.Toolchain.Name = "Emscripten SDK"
	cfg.Toolchain.Dir = "emsdk"
	cfg.Toolchain.Activate = "emsdk_env.sh"
	cfg.Toolchain.Shell = "bash"
	cfg.Toolchain.Command = "make build"
	return cfg
}

type environ struct {
	Root    string
	Config  string
	Shell   string
	Command string
	Debug   bool
}

var env environ

func init() {
	conf.Var(conf.Environ, &env.Root, "BUILDGATE_ROOT")
	conf.Var(conf.Environ, &env.Config, "BUILDGATE_CONFIG")
	conf.Var(conf.Environ, &env.Shell, "BUILDGATE_SHELL")
	conf.Var(conf.Environ, &env.Command, "BUILDGATE_BUILD_COMMAND")
	conf.Var(conf.Environ, &env.Debug, "BUILDGATE_DEBUG")
}

func loadEnviron() (environ, error) {
	env = environ{}
	if err := conf.Environ.Parse(); err != nil {
		return environ{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return env, nil
}

// GetConfig layers defaults, the yaml config file, the environment and flags, in that order.
func GetConfig(settings GlobalSettings) (Config, error) {
	environment, err := loadEnviron()
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()

	cfg.Root, err = resolveRoot(settings.Root, environment.Root)
	if err != nil {
		return Config{}, err
	}

	path, explicit := filepath.Join(cfg.Root, configFile), false
	if value := first(settings.ConfigPath, environment.Config); value != "" {
		path, explicit = cfg.resolve(value), true
	}

	if err := readConfigFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if environment.Shell != "" {
		cfg.Toolchain.Shell = environment.Shell
	}
	if environment.Command != "" {
		cfg.Toolchain.Command = environment.Command
	}

	cfg.Debug = settings.Debug || environment.Debug

	return cfg, cfg.Validate()
}

func (cfg Config) Validate() error {
	var errs []error
	for _, field := range []struct{ Name, Value string }{
		{"output.loader", cfg.Output.Loader},
		{"output.payload", cfg.Output.Payload},
		{"toolchain.activate", cfg.Toolchain.Activate},
		{"toolchain.command", cfg.Toolchain.Command},
	} {
		if field.Value == "" {
			errs = append(errs, fmt.Errorf("%s is required", field.Name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (cfg Config) Artifacts() gate.ArtifactSet {
	return gate.ArtifactSet{
		Loader:  cfg.resolve(cfg.Output.Dir, cfg.Output.Loader),
		Payload: cfg.resolve(cfg.Output.Dir, cfg.Output.Payload),
	}
}

// Activate is the activation script relative to root, as an operator would type it.
func (cfg Config) Activate() string {
	return filepath.ToSlash(filepath.Join(cfg.Toolchain.Dir, cfg.Toolchain.Activate))
}

// Builder returns the toolchain with its build output bound to the console streams.
func (cfg Config) Builder(out console.Console) toolchain.Toolchain {
	return toolchain.Toolchain{
		Root:     cfg.Root,
		Activate: cfg.Activate(),
		Shell:    cfg.Toolchain.Shell,
		Command:  cfg.Toolchain.Command,
		Stdout:   out.Out,
		Stderr:   out.Err,
	}
}

func (cfg Config) Gate(out console.Console) gate.Gate {
	tc := cfg.Builder(out)
	return gate.Gate{
		Artifacts:     cfg.Artifacts(),
		Marker:        tc.Marker(),
		Builder:       tc,
		ToolchainName: cfg.Toolchain.Name,
		OutputDir:     filepath.ToSlash(cfg.Output.Dir),
		ToolchainDir:  filepath.ToSlash(cfg.Toolchain.Dir),
		Activate:      tc.Source(),
		Command:       cfg.Toolchain.Command,
	}
}

func (cfg Config) resolve(elems ...string) string {
	path := filepath.Join(elems...)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.Root, path)
}

func readConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return nil
}

// resolveRoot prefers explicit values, relative ones taken from the invocation
// directory, and falls back to the parent of the directory holding the executable.
func resolveRoot(values ...string) (string, error) {
	if value := first(values...); value != "" {
		return filepath.Abs(value)
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(filepath.Dir(exe)), nil
}

func first(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
