package config

import (
	"cuelang.org/go/cue"
	perrors "github.com/jmgilman/go/errors"
)

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"auto": true, "text": true, "json": true}
)

// parseLogSection extracts optional log settings.
func parseLogSection(v cue.Value, out *Log) error {
	lv := v.LookupPath(cue.ParsePath("log"))
	if !lv.Exists() {
		return nil
	}
	if err := optionalString(lv, "log", "level", &out.Level); err != nil {
		return err
	}
	if !validLevels[out.Level] {
		return perrors.Newf(perrors.CodeInvalidConfig, "invalid value for log.level: %q", out.Level)
	}
	if err := optionalString(lv, "log", "format", &out.Format); err != nil {
		return err
	}
	if !validFormats[out.Format] {
		return perrors.Newf(perrors.CodeInvalidConfig, "invalid value for log.format: %q", out.Format)
	}
	return nil
}

// parseFSSection extracts the optional fs root.
func parseFSSection(v cue.Value, out *FS) error {
	fv := v.LookupPath(cue.ParsePath("fs"))
	if !fv.Exists() {
		return nil
	}
	if err := optionalString(fv, "fs", "root", &out.Root); err != nil {
		return err
	}
	if out.Root == "" {
		out.Root = "."
	}
	return nil
}

// parseWatchSection extracts the optional watch filter and limits.
func parseWatchSection(v cue.Value, out *Watch) error {
	wv := v.LookupPath(cue.ParsePath("watch"))
	if !wv.Exists() {
		return nil
	}
	if err := optionalString(wv, "watch", "filter", &out.Filter); err != nil {
		return err
	}
	if err := optionalInt(wv, "watch", "maxEvents", &out.MaxEvents); err != nil {
		return err
	}
	return optionalInt(wv, "watch", "timeoutMs", &out.TimeoutMs)
}
