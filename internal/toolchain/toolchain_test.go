package toolchain

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, activate, env string) string {
	t.Helper()

	root := t.TempDir()
	path := filepath.Join(root, filepath.FromSlash(activate))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(env), 0o644))

	return root
}

func TestBuild(t *testing.T) {
	cases := []struct {
		Name     string
		Activate string
		Env      string
		Command  string
		Stdout   string
		Error    string
	}{
		{
			Name:    "activation environment is visible to the build",
			Env:     "export EMSDK_MARKER=activated\n",
			Command: "echo $EMSDK_MARKER",
			Stdout:  "activated\n",
		},
		{
			Name:    "runs in the repository root",
			Command: "test -f emsdk/emsdk_env.sh && echo here",
			Stdout:  "here\n",
		},
		{
			Name:    "non zero exit",
			Command: "echo compiling && exit 3",
			Stdout:  "compiling\n",
			Error:   "exit status 3",
		},
		{
			Name:     "activation path with spaces",
			Activate: "my sdk/emsdk_env.sh",
			Env:      "export EMSDK_MARKER=spaced\n",
			Command:  "echo $EMSDK_MARKER",
			Stdout:   "spaced\n",
		},
		{
			Name:     "bare activation file is not looked up in PATH",
			Activate: "emsdk_env.sh",
			Env:      "export EMSDK_MARKER=local\n",
			Command:  "echo $EMSDK_MARKER",
			Stdout:   "local\n",
		},
		{
			Name:    "activation failure stops the build",
			Env:     "return 7\n",
			Command: "echo unreachable",
			Error:   "exit status 7",
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			activate := tc.Activate
			if activate == "" {
				activate = "emsdk/emsdk_env.sh"
			}

			root := setup(t, activate, tc.Env)

			var stdout, stderr bytes.Buffer

			toolchain := Toolchain{
				Root:     root,
				Activate: activate,
				Shell:    "bash",
				Command:  tc.Command,
				Stdout:   &stdout,
				Stderr:   &stderr,
				Stdin:    bytes.NewReader(nil),
			}

			err := toolchain.Build(context.Background())
			if tc.Error != "" {
				require.ErrorContains(t, err, tc.Error)
			} else {
				require.NoError(t, err)
			}

			require.Equal(t, tc.Stdout, stdout.String())
		})
	}
}

func TestBuildCancelled(t *testing.T) {
	root := setup(t, "emsdk/emsdk_env.sh", "")

	toolchain := Toolchain{
		Root:     root,
		Activate: "emsdk/emsdk_env.sh",
		Shell:    "bash",
		Command:  "sleep 10",
		Stdout:   io.Discard,
		Stderr:   io.Discard,
		Stdin:    bytes.NewReader(nil),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := toolchain.Build(ctx)

	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)

	require.Error(t, toolchain.Build(ctx))
}

func TestBuildMissingShell(t *testing.T) {
	toolchain := Toolchain{
		Root:     t.TempDir(),
		Activate: "emsdk/emsdk_env.sh",
		Shell:    "shell-that-does-not-exist",
		Command:  "make build",
	}

	require.ErrorContains(t, toolchain.Build(context.Background()), "executable file not found")
}

func TestMarkerAndScript(t *testing.T) {
	toolchain := Toolchain{
		Root:     "/repo",
		Activate: "emsdk/emsdk_env.sh",
		Command:  "make build",
	}

	require.Equal(t, filepath.Join("/repo", "emsdk", "emsdk_env.sh"), toolchain.Marker())
	require.Equal(t, "source emsdk/emsdk_env.sh && make build", toolchain.Script())

	toolchain.Activate = "/opt/emsdk/emsdk_env.sh"
	require.Equal(t, "/opt/emsdk/emsdk_env.sh", toolchain.Marker())

	toolchain.Activate = "my sdk/emsdk_env.sh"
	require.Equal(t, filepath.Join("/repo", "my sdk", "emsdk_env.sh"), toolchain.Marker())
	require.Equal(t, "source 'my sdk/emsdk_env.sh' && make build", toolchain.Script())

	toolchain.Activate = "emsdk_env.sh"
	require.Equal(t, "./emsdk_env.sh", toolchain.Source())
	require.Equal(t, "source ./emsdk_env.sh && make build", toolchain.Script())
}
