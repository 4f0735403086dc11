package fs

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/flarebyte/nodecli/cmd/nodecli/cmdenv"
	"github.com/flarebyte/nodecli/internal/fsops"
	"github.com/flarebyte/nodecli/internal/luafilter"
)

func newWatchCmd(env *cmdenv.Env) *cobra.Command {
	var filter string
	var maxEvents int
	cmd := leaf("watch <path>", "Print change events for a file or directory until interrupted", exactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			opts, err := watchOptions(env, cmd, filter, maxEvents)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			return env.FS().Watch(ctx, args[0], opts, func(ev fsops.Event) error {
				if err := writeLine(w, "event type is: %s", ev.Op); err != nil {
					return err
				}
				if ev.Name == "" {
					return writeLine(w, "filename not provided")
				}
				return writeLine(w, "filename provided: %s", ev.Name)
			})
		})
	cmd.Flags().StringVar(&filter, "filter", "", "Lua predicate over event and name (default: config watch.filter)")
	cmd.Flags().IntVar(&maxEvents, "max-events", 0, "Stop after N events (default: config watch.maxEvents, 0 = unlimited)")
	return cmd
}

// watchOptions merges flags over the config watch section and compiles the
// filter before the watcher is created.
func watchOptions(env *cmdenv.Env, cmd *cobra.Command, filter string, maxEvents int) (fsops.WatchOptions, error) {
	wc := env.Config.Watch
	if !cmd.Flags().Changed("filter") {
		filter = wc.Filter
	}
	if !cmd.Flags().Changed("max-events") {
		maxEvents = wc.MaxEvents
	}
	if maxEvents < 0 {
		return fsops.WatchOptions{}, invalidMaxEvents(maxEvents)
	}
	opts := fsops.WatchOptions{MaxEvents: maxEvents}
	if filter != "" {
		f, err := luafilter.Compile(filter, luafilter.WithTimeout(time.Duration(wc.TimeoutMs)*time.Millisecond))
		if err != nil {
			return fsops.WatchOptions{}, err
		}
		opts.Filter = f
		env.Logger.Debug("watch filter compiled", "source", f.Source())
	}
	return opts, nil
}
