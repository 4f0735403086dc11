// Package nodes wires the node commands (add, remove, list) into cobra.
package nodes

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/flarebyte/nodecli/cmd/nodecli/cmdenv"
	"github.com/flarebyte/nodecli/internal/command"
	"github.com/spf13/cobra"
)

// Commands returns one cobra command per known command name, in
// enumeration order.
func Commands(env *cmdenv.Env) []*cobra.Command {
	names := command.All()
	out := make([]*cobra.Command, 0, len(names))
	for _, n := range names {
		out = append(out, newCmd(env, n))
	}
	return out
}

func newCmd(env *cmdenv.Env, n command.Name) *cobra.Command {
	return &cobra.Command{
		Use:                n.String(),
		Short:              n.Short(),
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Handle(cmd.OutOrStdout(), env.Logger, n, env.Invocation.Options)
		},
	}
}

// Handle prints the fixed message of n. Options are logged only.
func Handle(w io.Writer, log *slog.Logger, n command.Name, opts map[string]string) error {
	log.Debug("dispatch", "command", n.String(), "options", opts)
	_, err := fmt.Fprintln(w, n.Message())
	return err
}
