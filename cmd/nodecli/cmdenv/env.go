// Package cmdenv holds the state shared by every nodecli command during one
// process run: the parsed invocation, the resolved configuration and the
// logger.
package cmdenv

import (
	"io"
	"log/slog"

	"github.com/flarebyte/nodecli/internal/config"
	"github.com/flarebyte/nodecli/internal/fsops"
	"github.com/flarebyte/nodecli/internal/invocation"
	"github.com/flarebyte/nodecli/internal/logging"
)

// Env is created once per invocation. Flag fields are bound by the root
// command and resolved against the config file in Setup.
type Env struct {
	Invocation invocation.Invocation
	Config     config.Settings
	Logger     *slog.Logger

	ConfigPath string
	LogLevel   string
	LogFormat  string
	FSRoot     string
}

// New returns an Env with default configuration and a silent logger.
func New() *Env {
	return &Env{
		Config: config.Default(),
		Logger: logging.Discard(),
	}
}

// Setup loads the config file, if any, and builds the logger. Flags take
// precedence over config values.
func (e *Env) Setup(stderr io.Writer) error {
	cfg := config.Default()
	if e.ConfigPath != "" {
		c, err := config.Load(e.ConfigPath)
		if err != nil {
			return err
		}
		cfg = c
	}
	log, err := logging.New(stderr,
		firstNonEmpty(e.LogLevel, cfg.Log.Level, logging.DefaultLevel),
		firstNonEmpty(e.LogFormat, cfg.Log.Format, logging.DefaultFormat))
	if err != nil {
		return err
	}
	e.Config = cfg
	e.Logger = log
	if cfg.Path != "" {
		log.Debug("config loaded", "path", cfg.Path, "configVersion", cfg.ConfigVersion)
	}
	return nil
}

// FS returns the file-system toolkit rooted at --root, the config fs.root
// or the working directory, in that order.
func (e *Env) FS() *fsops.FS {
	root := firstNonEmpty(e.FSRoot, e.Config.FS.Root, ".")
	return fsops.NewLocal(root, fsops.WithLogger(e.Logger.With("component", "fs")))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
