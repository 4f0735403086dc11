// Package gitinfo reports the git state of single paths using go-git.
package gitinfo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	perrors "github.com/jmgilman/go/errors"
)

// Status values reported by Lookup.
const (
	StatusClean     = "clean"
	StatusModified  = "modified"
	StatusAdded     = "added"
	StatusDeleted   = "deleted"
	StatusRenamed   = "renamed"
	StatusCopied    = "copied"
	StatusUpdated   = "updated"
	StatusUntracked = "untracked"
	StatusIgnored   = "ignored"
)

// Info is the git state of one path.
type Info struct {
	RepoRoot string
	Path     string // slash separated, relative to RepoRoot
	Tracked  bool
	Ignored  bool
	Status   string
}

// Map returns i as a plain map for rendering.
func (i Info) Map() map[string]any {
	return map[string]any{
		"path":    i.Path,
		"tracked": i.Tracked,
		"ignored": i.Ignored,
		"status":  i.Status,
	}
}

// Lookup opens the repository enclosing path and reports its state.
// Returns a NOT_FOUND error when path is not inside a repository.
func Lookup(path string) (Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Info{}, perrors.Wrap(err, perrors.CodeInvalidInput, "resolve path")
	}
	start := abs
	fi, statErr := os.Stat(abs)
	if statErr != nil || !fi.IsDir() {
		start = filepath.Dir(abs)
	}
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Info{}, perrors.Newf(perrors.CodeNotFound, "not a git repository: %s", path)
		}
		return Info{}, perrors.Wrap(err, perrors.CodeExecutionFailed, "open git repository")
	}
	wt, err := repo.Worktree()
	if err != nil {
		return Info{}, perrors.Wrap(err, perrors.CodeExecutionFailed, "open git worktree")
	}
	root := wt.Filesystem.Root()
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Info{}, perrors.Newf(perrors.CodeInvalidInput, "path is not a file inside the repository: %s", path)
	}
	info := Info{RepoRoot: root, Path: filepath.ToSlash(rel)}

	idx, err := repo.Storer.Index()
	if err != nil {
		return Info{}, perrors.Wrap(err, perrors.CodeExecutionFailed, "read git index")
	}
	if _, err := idx.Entry(info.Path); err == nil {
		info.Tracked = true
	} else if !errors.Is(err, index.ErrEntryNotFound) {
		return Info{}, perrors.Wrap(err, perrors.CodeExecutionFailed, "read git index")
	}

	ps, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		return Info{}, perrors.Wrap(err, perrors.CodeExecutionFailed, "read gitignore patterns")
	}
	isDir := statErr == nil && fi.IsDir()
	info.Ignored = gitignore.NewMatcher(ps).Match(strings.Split(info.Path, "/"), isDir)

	st, err := wt.Status()
	if err != nil {
		return Info{}, perrors.Wrap(err, perrors.CodeExecutionFailed, "compute git status")
	}
	info.Status = statusFor(st, info)
	return info, nil
}

func statusFor(st git.Status, info Info) string {
	fs, ok := st[info.Path]
	if !ok {
		switch {
		case info.Tracked:
			return StatusClean
		case info.Ignored:
			return StatusIgnored
		default:
			return StatusUntracked
		}
	}
	code := fs.Worktree
	if code == git.Unmodified {
		code = fs.Staging
	}
	switch code {
	case git.Untracked:
		return StatusUntracked
	case git.Modified:
		return StatusModified
	case git.Added:
		return StatusAdded
	case git.Deleted:
		return StatusDeleted
	case git.Renamed:
		return StatusRenamed
	case git.Copied:
		return StatusCopied
	case git.UpdatedButUnmerged:
		return StatusUpdated
	}
	return StatusClean
}
