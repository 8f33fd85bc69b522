package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

func TestTracked(t *testing.T) {
	root := t.TempDir()

	repository, err := git.PlainInit(root, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "build"), 0o755))
	for _, name := range []string{"lienzo.js", "lienzo.wasm"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, "build", name), []byte(name), 0o644))
	}

	worktree, err := repository.Worktree()
	require.NoError(t, err)

	_, err = worktree.Add("build/lienzo.js")
	require.NoError(t, err)

	repo, err := Open(filepath.Join(root, "build"))
	require.NoError(t, err)

	cases := []struct {
		Name     string
		Path     string
		Expected bool
	}{
		{
			Name:     "staged file",
			Path:     filepath.Join(root, "build", "lienzo.js"),
			Expected: true,
		},
		{
			Name:     "untracked file",
			Path:     filepath.Join(root, "build", "lienzo.wasm"),
			Expected: false,
		},
		{
			Name:     "missing file",
			Path:     filepath.Join(root, "build", "missing.wasm"),
			Expected: false,
		},
		{
			Name:     "outside worktree",
			Path:     filepath.Join(filepath.Dir(root), "elsewhere.js"),
			Expected: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			tracked, err := repo.Tracked(tc.Path)
			require.NoError(t, err)
			require.Equal(t, tc.Expected, tracked)
		})
	}
}

func TestOpenNotRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.ErrorIs(t, err, ErrNotRepository)
}
