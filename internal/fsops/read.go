package fsops

import (
	"io"
	"os"
	"path"
	"sort"
)

// AccessMode selects the checks made by Access.
type AccessMode uint8

const (
	// Exists only checks that the path exists.
	Exists   AccessMode = 0
	Readable AccessMode = 1 << iota
	Writable
)

// Access reports whether name exists and, for Readable/Writable, whether its
// owner permission bits allow it. A missing path is not an error.
func (f *FS) Access(name string, mode AccessMode) (bool, error) {
	fi, err := f.fs.Stat(name)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, pathError(err, "access", name)
	}
	perm := fi.Mode().Perm()
	if mode&Readable != 0 && perm&0o400 == 0 {
		return false, nil
	}
	if mode&Writable != 0 && perm&0o200 == 0 {
		return false, nil
	}
	return true, nil
}

// OpenClose opens name read-only and closes it again.
func (f *FS) OpenClose(name string) error {
	fi, err := f.fs.Stat(name)
	if err != nil {
		return pathError(err, "open", name)
	}
	if fi.IsDir() {
		return invalidf("open %s: is a directory", name)
	}
	file, err := f.fs.Open(name)
	if err != nil {
		return pathError(err, "open", name)
	}
	f.log.Debug("fs open", "path", name)
	return pathError(file.Close(), "close", name)
}

// Stat returns information about name.
func (f *FS) Stat(name string) (FileInfo, error) {
	fi, err := f.fs.Stat(name)
	if err != nil {
		return FileInfo{}, pathError(err, "stat", name)
	}
	return toFileInfo(trimSlash(name), fi), nil
}

// ReadFile copies the whole content of name to w.
func (f *FS) ReadFile(name string, w io.Writer) (int64, error) {
	file, err := f.openRegular("read", name)
	if err != nil {
		return 0, err
	}
	defer func() { _ = file.Close() }()
	n, err := io.Copy(w, file)
	if err != nil {
		return n, pathError(err, "read", name)
	}
	return n, nil
}

// ReadRange copies bytes start..end (both inclusive) of name to w. A range
// reaching past the end of the file is cut short without error.
func (f *FS) ReadRange(name string, start, end int64, w io.Writer) (int64, error) {
	if start < 0 || end < start {
		return 0, invalidf("read %s: invalid range [%d, %d]", name, start, end)
	}
	fi, err := f.fs.Stat(name)
	if err != nil {
		return 0, pathError(err, "read", name)
	}
	if fi.IsDir() {
		return 0, invalidf("read %s: is a directory", name)
	}
	if last := fi.Size() - 1; end > last {
		end = last
	}
	if end < start {
		return 0, nil
	}
	file, err := f.openRegular("read", name)
	if err != nil {
		return 0, err
	}
	defer func() { _ = file.Close() }()
	if _, err := file.Seek(start, io.SeekStart); err != nil {
		return 0, pathError(err, "seek", name)
	}
	n, err := io.CopyN(w, file, end-start+1)
	if err != nil && err != io.EOF {
		return n, pathError(err, "read", name)
	}
	f.log.Debug("fs read range", "path", name, "start", start, "end", end, "bytes", n)
	return n, nil
}

// ReadDir lists dir sorted by name. Directory names carry a trailing "/".
// skip, when non-nil, receives the slash-separated path relative to the
// filesystem root and hides the entry when it returns true.
func (f *FS) ReadDir(dir string, skip func(rel string, isDir bool) bool) ([]string, error) {
	dir = trimSlash(dir)
	fis, err := f.fs.ReadDir(dir)
	if err != nil {
		return nil, pathError(err, "readdir", dir)
	}
	sort.Slice(fis, func(i, j int) bool { return fis[i].Name() < fis[j].Name() })
	out := make([]string, 0, len(fis))
	for _, fi := range fis {
		rel := path.Join(dir, fi.Name())
		if skip != nil && skip(rel, fi.IsDir()) {
			continue
		}
		name := fi.Name()
		if fi.IsDir() {
			name += "/"
		}
		out = append(out, name)
	}
	return out, nil
}

type readSeekCloser interface {
	io.ReadSeeker
	io.Closer
}

func (f *FS) openRegular(op, name string) (readSeekCloser, error) {
	fi, err := f.fs.Stat(name)
	if err != nil {
		return nil, pathError(err, op, name)
	}
	if fi.IsDir() {
		return nil, invalidf("%s %s: is a directory", op, name)
	}
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, pathError(err, op, name)
	}
	return file, nil
}
