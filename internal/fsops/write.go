package fsops

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	perrors "github.com/jmgilman/go/errors"
)

// WriteFile creates or replaces name with data.
func (f *FS) WriteFile(name string, data []byte) error {
	if err := f.refuseDir("write", name); err != nil {
		return err
	}
	if err := util.WriteFile(f.fs, name, data, defaultFileMode); err != nil {
		return pathError(err, "write", name)
	}
	f.log.Debug("fs write", "path", name, "bytes", len(data))
	return nil
}

// AppendFile appends data to name, creating it when missing.
func (f *FS) AppendFile(name string, data []byte) (err error) {
	if err := f.refuseDir("append", name); err != nil {
		return err
	}
	file, err := f.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, defaultFileMode)
	if err != nil {
		return pathError(err, "append", name)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = pathError(cerr, "close", name)
		}
	}()
	if _, err := file.Write(data); err != nil {
		return pathError(err, "append", name)
	}
	f.log.Debug("fs append", "path", name, "bytes", len(data))
	return nil
}

// Truncate cuts name to size bytes. The file must exist.
func (f *FS) Truncate(name string, size int64) (err error) {
	if size < 0 {
		return invalidf("truncate %s: negative size %d", name, size)
	}
	if err := f.refuseDir("truncate", name); err != nil {
		return err
	}
	file, err := f.fs.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return pathError(err, "truncate", name)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = pathError(cerr, "close", name)
		}
	}()
	if err := file.Truncate(size); err != nil {
		return pathError(err, "truncate", name)
	}
	f.log.Debug("fs truncate", "path", name, "size", size)
	return nil
}

// ParseMode parses an octal permission string such as "775" or "0o644".
func ParseMode(s string) (os.FileMode, error) {
	t := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0o"), "0O")
	if t == "" {
		return 0, invalidf("invalid mode %q: expected octal permissions", s)
	}
	v, err := strconv.ParseUint(t, 8, 32)
	if err != nil || v > 0o777 {
		return 0, invalidf("invalid mode %q: expected octal permissions", s)
	}
	return os.FileMode(v), nil
}

// Chmod changes the permission bits of name. Filesystems implementing
// billy.Change are used directly; OS-backed filesystems fall back to
// os.Chmod under Root.
func (f *FS) Chmod(name string, mode os.FileMode) error {
	if _, err := f.fs.Stat(name); err != nil {
		return pathError(err, "chmod", name)
	}
	mode &= os.ModePerm
	if c, ok := f.fs.(billy.Change); ok {
		return pathError(c.Chmod(name, mode), "chmod", name)
	}
	p, ok := f.OSPath(name)
	if !ok {
		return perrors.Newf(perrors.CodeNotImplemented, "chmod %s: filesystem does not support permission changes", name)
	}
	if err := os.Chmod(p, mode); err != nil {
		return pathError(err, "chmod", name)
	}
	f.log.Debug("fs chmod", "path", name, "mode", mode.String())
	return nil
}

// Copy copies src to dst, replacing dst unless excl is set, in which case an
// existing dst is an ALREADY_EXISTS error and is left untouched.
func (f *FS) Copy(src, dst string, excl bool) (err error) {
	fi, err := f.fs.Stat(src)
	if err != nil {
		return pathError(err, "copy", src)
	}
	if fi.IsDir() {
		return invalidf("copy %s: is a directory", src)
	}
	if sameFile(src, dst) {
		if excl {
			return pathError(os.ErrExist, "copy", dst)
		}
		return invalidf("copy %s: source and destination are the same file", src)
	}
	if err := f.refuseDir("copy", dst); err != nil {
		return err
	}
	in, err := f.fs.Open(src)
	if err != nil {
		return pathError(err, "copy", src)
	}
	defer func() { _ = in.Close() }()

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if excl {
		flag |= os.O_EXCL
	}
	out, err := f.fs.OpenFile(dst, flag, fi.Mode().Perm())
	if err != nil {
		return pathError(err, "copy", dst)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = pathError(cerr, "close", dst)
		}
	}()
	n, err := io.Copy(out, in)
	if err != nil {
		return pathError(err, "copy", dst)
	}
	f.log.Debug("fs copy", "src", src, "dst", dst, "bytes", n, "excl", excl)
	return nil
}

// Rename moves oldpath to newpath. An existing file at newpath is replaced
// by the underlying rename, so a failed rename leaves it in place; an
// existing directory is a CONFLICT error.
func (f *FS) Rename(oldpath, newpath string) error {
	if _, err := f.fs.Lstat(oldpath); err != nil {
		return pathError(err, "rename", oldpath)
	}
	if sameFile(oldpath, newpath) {
		return nil
	}
	if fi, err := f.fs.Stat(newpath); err == nil {
		if fi.IsDir() {
			return perrors.WithContext(
				perrors.Newf(perrors.CodeConflict, "rename %s: destination %s is a directory", oldpath, newpath),
				"path", newpath)
		}
	} else if !os.IsNotExist(err) {
		return pathError(err, "rename", newpath)
	}
	if err := f.fs.Rename(oldpath, newpath); err != nil {
		return pathError(err, "rename", oldpath)
	}
	f.log.Debug("fs rename", "from", oldpath, "to", newpath)
	return nil
}

// Unlink removes a file or symbolic link. Directories are refused.
func (f *FS) Unlink(name string) error {
	fi, err := f.fs.Lstat(name)
	if err != nil {
		return pathError(err, "unlink", name)
	}
	if fi.IsDir() {
		return invalidf("unlink %s: is a directory", name)
	}
	if err := f.fs.Remove(name); err != nil {
		return pathError(err, "unlink", name)
	}
	f.log.Debug("fs unlink", "path", name)
	return nil
}

func (f *FS) refuseDir(op, name string) error {
	if fi, err := f.fs.Stat(name); err == nil && fi.IsDir() {
		return invalidf("%s %s: is a directory", op, name)
	}
	return nil
}
