package fs

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flarebyte/nodecli/cmd/nodecli/cmdenv"
	"github.com/flarebyte/nodecli/internal/fsops"
	"github.com/flarebyte/nodecli/internal/gitinfo"
	"github.com/flarebyte/nodecli/internal/render"
)

func newAccessCmd(env *cmdenv.Env) *cobra.Command {
	var read, write bool
	cmd := leaf("access <file>", "Report whether a file exists (and is readable/writable)", exactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			mode := fsops.Exists
			if read {
				mode |= fsops.Readable
			}
			if write {
				mode |= fsops.Writable
			}
			ok, err := env.FS().Access(args[0], mode)
			if err != nil {
				env.Logger.Warn("access check failed", "path", args[0], "error", err)
			}
			if ok {
				return writeLine(cmd.OutOrStdout(), "%s exists", args[0])
			}
			return writeLine(cmd.OutOrStdout(), "%s does not exist", args[0])
		})
	cmd.Flags().BoolVar(&read, "read", false, "Also require the owner read bit")
	cmd.Flags().BoolVar(&write, "write", false, "Also require the owner write bit")
	return cmd
}

func newOpenCmd(env *cmdenv.Env) *cobra.Command {
	return leaf("open <file>", "Open a file read-only and close it", exactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			if err := env.FS().OpenClose(args[0]); err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), "%s opened and closed", args[0])
		})
}

func newStatCmd(env *cmdenv.Env) *cobra.Command {
	var withGit bool
	var format string
	cmd := leaf("stat <file>", "Print file metadata as YAML or JSON", exactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			fsys := env.FS()
			fi, err := fsys.Stat(args[0])
			if err != nil {
				return err
			}
			out := fi.Map()
			if withGit {
				p, ok := fsys.OSPath(args[0])
				if !ok {
					p = args[0]
				}
				info, err := gitinfo.Lookup(p)
				if err != nil {
					return err
				}
				out["git"] = info.Map()
			}
			return render.Write(cmd.OutOrStdout(), format, out)
		})
	cmd.Flags().BoolVar(&withGit, "git", false, "Add git tracked/ignored/status fields")
	cmd.Flags().StringVar(&format, "format", render.FormatYAML, "Output format: yaml or json")
	return cmd
}

func newReadCmd(env *cmdenv.Env) *cobra.Command {
	var start, end string
	cmd := leaf("read <file>", "Print a file, or an inclusive byte range of it", exactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			fsys := env.FS()
			if start == "" && end == "" {
				_, err := fsys.ReadFile(args[0], cmd.OutOrStdout())
				return err
			}
			s, e := int64(0), int64(-1)
			var err error
			if start != "" {
				if s, err = parseSize("start", start); err != nil {
					return err
				}
			}
			if end != "" {
				if e, err = parseSize("end", end); err != nil {
					return err
				}
			} else {
				fi, err := fsys.Stat(args[0])
				if err != nil {
					return err
				}
				if fi.Size <= s {
					return nil
				}
				e = fi.Size - 1
			}
			_, err = fsys.ReadRange(args[0], s, e, cmd.OutOrStdout())
			return err
		})
	cmd.Flags().StringVar(&start, "start", "", "First byte offset (inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "Last byte offset (inclusive)")
	return cmd
}

func newReadDirCmd(env *cmdenv.Env) *cobra.Command {
	var useGitignore bool
	cmd := leaf("readdir [dir]", "List directory entries, one per line", rangeArgs(0, 1),
		func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			fsys := env.FS()
			var skip func(string, bool) bool
			if useGitignore {
				ig, err := gitinfo.NewIgnorer(fsys.Filesystem())
				if err != nil {
					return err
				}
				skip = ig.Ignored
			}
			names, err := fsys.ReadDir(dir, skip)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, n := range names {
				if err := writeLine(w, "%s", n); err != nil {
					return err
				}
			}
			env.Logger.Debug("readdir", "dir", filepath.ToSlash(dir), "entries", len(names))
			return nil
		})
	cmd.Flags().BoolVar(&useGitignore, "gitignore", false, "Hide entries matched by .gitignore files")
	return cmd
}
