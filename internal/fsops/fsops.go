// Package fsops implements the file-system toolkit behind `nodecli fs`.
//
// Every operation runs against a billy.Filesystem so the same code serves the
// local disk (osfs, rooted at a base directory) and in-memory filesystems.
// Paths are relative to the filesystem root. Files opened by an operation are
// always closed before it returns.
//
// Errors are github.com/jmgilman/go/errors PlatformErrors:
//
//	NOT_FOUND       path does not exist
//	ALREADY_EXISTS  exclusive create hit an existing file
//	FORBIDDEN       permission denied
//	CONFLICT        rename onto a directory
//	INVALID_INPUT   bad arguments (range, mode, directory where a file is required)
package fsops

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/helper/chroot"
	"github.com/go-git/go-billy/v5/helper/polyfill"
	"github.com/go-git/go-billy/v5/osfs"
	perrors "github.com/jmgilman/go/errors"

	"github.com/flarebyte/nodecli/internal/logging"
)

const defaultFileMode os.FileMode = 0o644

// FS wraps a billy.Filesystem with the toolkit operations.
type FS struct {
	fs  billy.Filesystem
	log *slog.Logger
}

// Option configures an FS.
type Option func(*FS)

// WithLogger sets the logger used for debug records of each operation.
func WithLogger(l *slog.Logger) Option {
	return func(f *FS) {
		if l != nil {
			f.log = l
		}
	}
}

// New wraps bfs.
func New(bfs billy.Filesystem, opts ...Option) *FS {
	f := &FS{fs: bfs, log: logging.Discard()}
	for _, o := range opts {
		o(f)
	}
	return f
}

// NewLocal returns an FS over the local disk rooted at root.
func NewLocal(root string, opts ...Option) *FS {
	return New(osfs.New(root), opts...)
}

// Filesystem returns the underlying billy filesystem.
func (f *FS) Filesystem() billy.Filesystem { return f.fs }

// Root returns the OS directory backing the filesystem, or "" for
// filesystems that are not backed by the OS.
func (f *FS) Root() string {
	switch b := f.fs.(type) {
	case *osfs.BoundOS:
		return b.Root()
	case *chroot.ChrootHelper:
		// memfs is a chroot helper too; only osfs.ChrootOS writes to disk.
		u := b.Underlying()
		if p, ok := u.(*polyfill.Polyfill); ok {
			u = p.Basic
		}
		if _, ok := u.(*osfs.ChrootOS); ok {
			return b.Root()
		}
	}
	return ""
}

// OSPath maps a filesystem-relative name to the OS path under Root.
func (f *FS) OSPath(name string) (string, bool) {
	root := f.Root()
	if root == "" {
		return "", false
	}
	clean := path.Clean("/" + filepath.ToSlash(name))
	return filepath.Join(root, filepath.FromSlash(clean)), true
}

// FileInfo is the rendered subset of os.FileInfo.
type FileInfo struct {
	Name    string
	Size    int64
	Mode    string
	ModTime string
	IsDir   bool
}

// Map returns fi as a plain map for rendering.
func (fi FileInfo) Map() map[string]any {
	return map[string]any{
		"name":    fi.Name,
		"size":    fi.Size,
		"mode":    fi.Mode,
		"modTime": fi.ModTime,
		"isDir":   fi.IsDir,
	}
}

func toFileInfo(name string, fi os.FileInfo) FileInfo {
	// Normalize to UTC, seconds precision
	mt := fi.ModTime().UTC().Truncate(time.Second).Format(time.RFC3339)
	return FileInfo{
		Name:    name,
		Size:    fi.Size(),
		Mode:    fi.Mode().String(),
		ModTime: mt,
		IsDir:   fi.IsDir(),
	}
}

// pathError converts a filesystem error into a coded PlatformError.
func pathError(err error, op, name string) error {
	if err == nil {
		return nil
	}
	code := perrors.CodeExecutionFailed
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = perrors.CodeNotFound
	case errors.Is(err, fs.ErrExist):
		code = perrors.CodeAlreadyExists
	case errors.Is(err, fs.ErrPermission):
		code = perrors.CodeForbidden
	}
	return perrors.WithContext(perrors.Wrapf(err, code, "%s %s", op, name), "path", name)
}

func invalidf(format string, args ...any) error {
	return perrors.Newf(perrors.CodeInvalidInput, format, args...)
}

func sameFile(a, b string) bool {
	return path.Clean("/"+filepath.ToSlash(a)) == path.Clean("/"+filepath.ToSlash(b))
}

func trimSlash(s string) string {
	s = strings.Trim(filepath.ToSlash(s), "/")
	if s == "" {
		return "."
	}
	return s
}
