package repo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

var ErrNotRepository = errors.New("not a git repository")

// Repo answers whether files are part of the git index, which is what a
// deployment that checks out the repository will see.
type Repo struct {
	root  string
	index *index.Index
}

// Open finds the repository containing path, walking up parent directories.
func Open(path string) (*Repo, error) {
	repository, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, fmt.Errorf("failed to open git repo: %w", err)
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	idx, err := repository.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	return &Repo{root: worktree.Filesystem.Root(), index: idx}, nil
}

func (repo *Repo) Root() string {
	return repo.root
}

// Tracked reports whether path has an entry in the index. Paths outside the
// worktree are never tracked.
func (repo *Repo) Tracked(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(repo.root, abs)
	if err != nil {
		return false, err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}

	if _, err := repo.index.Entry(filepath.ToSlash(rel)); err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
