// Package git locates the repository a changelog lives in and reads the
// commit that last touched it. It uses go-git only, so no git binary is
// required.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoCommits means the path has no history in the repository.
var ErrNoCommits = errors.New("no commits touch path")

// Commit describes the last commit that changed a file.
type Commit struct {
	Hash    string
	Author  string
	When    time.Time
	Message string
}

// ShortHash returns the first 8 characters of the hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}

// openRepo opens the repository containing path, walking up the directory
// tree until a .git directory is found. If path is empty, the current
// working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// RepositoryRoot returns the top-level directory of the repository that
// contains start.
func RepositoryRoot(start string) (string, error) {
	repo, err := openRepo(start)
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// RootOrDir returns the repository root containing dir, or dir itself when
// dir is not inside a repository.
func RootOrDir(dir string) string {
	root, err := RepositoryRoot(dir)
	if err != nil {
		return dir
	}
	return root
}

// LastCommit returns the most recent commit that changed path. path may be
// absolute or relative to the repository root.
func LastCommit(path string) (Commit, error) {
	repo, err := openRepo(filepath.Dir(path))
	if err != nil {
		return Commit{}, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return Commit{}, fmt.Errorf("getting worktree: %w", err)
	}

	rel := path
	if filepath.IsAbs(path) {
		rel, err = filepath.Rel(wt.Filesystem.Root(), path)
		if err != nil {
			return Commit{}, fmt.Errorf("resolving %s: %w", path, err)
		}
	}
	rel = filepath.ToSlash(rel)

	if _, err := repo.Head(); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Commit{}, fmt.Errorf("%s: %w", rel, ErrNoCommits)
		}
		return Commit{}, fmt.Errorf("getting HEAD reference: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return Commit{}, fmt.Errorf("reading log for %s: %w", rel, err)
	}
	defer iter.Close()

	c, err := iter.Next()
	if err != nil {
		return Commit{}, fmt.Errorf("%s: %w", rel, ErrNoCommits)
	}

	return Commit{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		When:    c.Author.When,
		Message: firstLine(c.Message),
	}, nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
