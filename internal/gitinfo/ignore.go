package gitinfo

import (
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	perrors "github.com/jmgilman/go/errors"
)

// Ignorer answers gitignore questions for paths relative to a filesystem
// root. Patterns come from .git/info/exclude and every .gitignore below the
// root.
type Ignorer struct {
	m gitignore.Matcher
}

// NewIgnorer reads the ignore patterns of fs.
func NewIgnorer(fs billy.Filesystem) (*Ignorer, error) {
	ps, err := gitignore.ReadPatterns(fs, nil)
	if err != nil {
		return nil, perrors.Wrap(err, perrors.CodeExecutionFailed, "read gitignore patterns")
	}
	return &Ignorer{m: gitignore.NewMatcher(ps)}, nil
}

// Ignored reports whether the slash-separated path rel is ignored.
func (i *Ignorer) Ignored(rel string, isDir bool) bool {
	rel = strings.Trim(rel, "/")
	if i == nil || rel == "" || rel == "." {
		return false
	}
	return i.m.Match(strings.Split(rel, "/"), isDir)
}
