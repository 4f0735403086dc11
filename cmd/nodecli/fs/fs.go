// Package fs implements `nodecli fs`, a small toolkit of file-system
// operations resolved against a root directory.
package fs

import (
	"fmt"
	"io"
	"strconv"

	perrors "github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"

	"github.com/flarebyte/nodecli/cmd/nodecli/cmdenv"
)

// NewCmd returns the `fs` command group.
func NewCmd(env *cmdenv.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fs",
		Short:         "File-system operations relative to --root",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&env.FSRoot, "root", "", "Base directory for paths (default: config fs.root or .)")

	cmd.AddCommand(
		newAccessCmd(env),
		newOpenCmd(env),
		newStatCmd(env),
		newReadCmd(env),
		newReadDirCmd(env),
		newWriteCmd(env),
		newAppendCmd(env),
		newTruncateCmd(env),
		newChmodCmd(env),
		newCopyCmd(env),
		newRenameCmd(env),
		newUnlinkCmd(env),
		newWatchCmd(env),
	)
	return cmd
}

func leaf(use, short string, args cobra.PositionalArgs, run func(cmd *cobra.Command, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          args,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
}

// exactArgs is cobra.ExactArgs with a coded error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return perrors.Newf(perrors.CodeInvalidInput,
				"%s: accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return perrors.Newf(perrors.CodeInvalidInput,
				"%s: accepts between %d and %d arg(s), received %d", cmd.CommandPath(), lo, hi, len(args))
		}
		return nil
	}
}

func writeLine(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format+"\n", args...)
	return err
}

func parseSize(flag, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, perrors.Newf(perrors.CodeInvalidInput, "--%s must be a non-negative integer, got %q", flag, s)
	}
	return n, nil
}

func invalidMaxEvents(n int) error {
	return perrors.Newf(perrors.CodeInvalidInput, "--max-events must be >= 0, got %d", n)
}
