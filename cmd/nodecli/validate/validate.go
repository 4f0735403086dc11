// Package validate implements `nodecli validate`.
package validate

import (
	"fmt"

	perrors "github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"

	"github.com/flarebyte/nodecli/cmd/nodecli/cmdenv"
	"github.com/flarebyte/nodecli/internal/email"
)

// NewCmd returns the `validate` command group.
func NewCmd(env *cmdenv.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate",
		Short:         "Validate values",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newEmailCmd(env))
	return cmd
}

func newEmailCmd(env *cmdenv.Env) *cobra.Command {
	return &cobra.Command{
		Use:           "email <address>",
		Short:         "Print true if the argument is a plain e-mail address",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return perrors.Newf(perrors.CodeInvalidInput, "validate email: expected one address, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ok := email.IsEmail(args[0])
			env.Logger.Debug("validate email", "valid", ok)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), ok)
			return err
		},
	}
}
