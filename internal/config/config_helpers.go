package config

import (
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	perrors "github.com/jmgilman/go/errors"
)

// compileCUE loads and compiles a CUE file at the given path.
func compileCUE(path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, perrors.New(perrors.CodeInvalidConfig, "unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, perrors.Wrap(err, perrors.CodeInvalidConfig, "failed to read config")
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return cue.Value{}, perrors.Wrap(err, perrors.CodeInvalidConfig, "invalid config")
	}
	return v, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return perrors.Newf(perrors.CodeInvalidConfig, "missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return perrors.Newf(perrors.CodeInvalidConfig, "invalid type for field: %s (expected string)", name)
	}
	return nil
}

// optionalString decodes parent.name into dst when present. A present field
// of the wrong kind is an error.
func optionalString(parent cue.Value, section, name string, dst *string) error {
	f := parent.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return nil
	}
	if f.Kind() != cue.StringKind {
		return perrors.Newf(perrors.CodeInvalidConfig, "invalid type for field: %s.%s (expected string)", section, name)
	}
	return f.Decode(dst)
}

func optionalInt(parent cue.Value, section, name string, dst *int) error {
	f := parent.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return nil
	}
	if f.Kind() != cue.IntKind {
		return perrors.Newf(perrors.CodeInvalidConfig, "invalid type for field: %s.%s (expected int)", section, name)
	}
	if err := f.Decode(dst); err != nil {
		return perrors.Wrapf(err, perrors.CodeInvalidConfig, "invalid value for %s.%s", section, name)
	}
	if *dst < 0 {
		return perrors.Newf(perrors.CodeInvalidConfig, "invalid value for %s.%s: must be >= 0", section, name)
	}
	return nil
}
