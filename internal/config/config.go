package config

import (
	"cuelang.org/go/cue"
	perrors "github.com/jmgilman/go/errors"
)

// Settings is the resolved configuration. Zero-valued sections mean
// "use the default"; command line flags override whatever is set here.
type Settings struct {
	ConfigVersion string
	Path          string
	Log           Log
	FS            FS
	Watch         Watch
}

// Log holds diagnostics settings.
type Log struct {
	Level  string
	Format string
}

// FS holds settings for the fs commands.
type FS struct {
	Root string
}

// Watch holds settings for `fs watch`.
type Watch struct {
	Filter    string
	MaxEvents int
	TimeoutMs int
}

// Default returns the settings used when no config file is given.
func Default() Settings {
	return Settings{
		ConfigVersion: CurrentConfigVersion,
		Log:           Log{Level: "warn", Format: "auto"},
		FS:            FS{Root: "."},
		Watch:         Watch{TimeoutMs: DefaultFilterTimeoutMs},
	}
}

// DefaultFilterTimeoutMs bounds a single evaluation of the watch filter.
const DefaultFilterTimeoutMs = 200

// Load reads a CUE config file and overlays it on Default.
// Required fields:
//   - configVersion: string, one of SupportedConfigVersions
func Load(path string) (Settings, error) {
	v, err := compileCUE(path)
	if err != nil {
		return Settings{}, err
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return Settings{}, err
	}
	s := Default()
	s.Path = path
	if err := v.LookupPath(cue.ParsePath("configVersion")).Decode(&s.ConfigVersion); err != nil {
		return Settings{}, perrors.Wrap(err, perrors.CodeInvalidConfig, "invalid value for configVersion")
	}
	if err := checkConfigVersion(s.ConfigVersion); err != nil {
		return Settings{}, err
	}
	if err := parseLogSection(v, &s.Log); err != nil {
		return Settings{}, err
	}
	if err := parseFSSection(v, &s.FS); err != nil {
		return Settings{}, err
	}
	if err := parseWatchSection(v, &s.Watch); err != nil {
		return Settings{}, err
	}
	return s, nil
}
