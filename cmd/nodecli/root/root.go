package root

import (
	"context"
	"io"
	"os"

	"github.com/flarebyte/nodecli/cmd/nodecli/cmdenv"
	fscmd "github.com/flarebyte/nodecli/cmd/nodecli/fs"
	"github.com/flarebyte/nodecli/cmd/nodecli/nodes"
	"github.com/flarebyte/nodecli/cmd/nodecli/validate"
	"github.com/flarebyte/nodecli/cmd/nodecli/version"
	"github.com/flarebyte/nodecli/internal/command"
	"github.com/flarebyte/nodecli/internal/invocation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd creates the root command for nodecli.
func NewRootCmd(env *cmdenv.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodecli",
		Short: "CLI: add, remove and list nodes, plus a small file-system toolkit",
		// Anything that is not a known subcommand lands here and is ignored.
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.Setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// cobra stops at "--" and reads "--key add" as a flag value;
			// the invocation still names the command in both cases.
			if n, ok := command.Parse(env.Invocation.Command); ok {
				return nodes.Handle(cmd.OutOrStdout(), env.Logger, n, env.Invocation.Options)
			}
			env.Logger.Debug("unrecognized command",
				"command", env.Invocation.Command,
				"hasCommand", env.Invocation.HasCommand,
				"options", env.Invocation.Options)
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&env.ConfigPath, "config", "c", "", "Path to a CUE config file")
	pf.StringVar(&env.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	pf.StringVar(&env.LogFormat, "log-format", "", "Log format: auto, text, json (default auto)")

	// Subcommands
	cmd.AddCommand(nodes.Commands(env)...)
	cmd.AddCommand(fscmd.NewCmd(env))
	cmd.AddCommand(validate.NewCmd(env))
	cmd.AddCommand(version.NewCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	return Run(context.Background(), args, os.Stdout, os.Stderr)
}

// Run executes one invocation with explicit streams.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	env := cmdenv.New()
	cmd := NewRootCmd(env)
	env.Invocation = invocation.Parse(args, valueFlags(cmd.PersistentFlags())...)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// valueFlags lists the global flags that take a separate value token, so
// that "--config file.cue add" still selects add.
func valueFlags(fs *pflag.FlagSet) []string {
	var names []string
	fs.VisitAll(func(f *pflag.Flag) {
		if f.NoOptDefVal != "" {
			return
		}
		names = append(names, f.Name)
		if f.Shorthand != "" {
			names = append(names, f.Shorthand)
		}
	})
	return names
}
