package version

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/flarebyte/nodecli/internal/buildinfo"
	"github.com/flarebyte/nodecli/internal/render"
)

// NewCmd returns the `nodecli version` command.
func NewCmd() *cobra.Command {
	var short, asJSON bool
	cmd := &cobra.Command{
		Use:           "version",
		Short:         "Print the CLI version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short || !asJSON {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "nodecli %s\n", buildinfo.Summary())
				return err
			}

			// Detailed object on stdout, human line on stderr.
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "nodecli version: %s\n", buildinfo.Summary())
			return render.Write(cmd.OutOrStdout(), render.FormatJSON, details(time.Now()))
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version string")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print detailed JSON version info")
	return cmd
}

func details(now time.Time) map[string]any {
	return map[string]any{
		"version":   buildinfo.Version,
		"commit":    buildinfo.Commit,
		"date":      buildinfo.Date,
		"built_by":  buildinfo.BuiltBy,
		"go":        runtime.Version(),
		"go_os":     runtime.GOOS,
		"go_arch":   runtime.GOARCH,
		"timestamp": now.UTC().Format(time.RFC3339Nano),
	}
}
