package fs

import (
	"github.com/spf13/cobra"

	"github.com/flarebyte/nodecli/cmd/nodecli/cmdenv"
	"github.com/flarebyte/nodecli/internal/fsops"
)

func newWriteCmd(env *cmdenv.Env) *cobra.Command {
	return leaf("write <file> <data>", "Create or replace a file", exactArgs(2),
		func(cmd *cobra.Command, args []string) error {
			if err := env.FS().WriteFile(args[0], []byte(args[1])); err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), "The file has been saved!")
		})
}

func newAppendCmd(env *cmdenv.Env) *cobra.Command {
	return leaf("append <file> <data>", "Append data to a file, creating it if missing", exactArgs(2),
		func(cmd *cobra.Command, args []string) error {
			if err := env.FS().AppendFile(args[0], []byte(args[1])); err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), "data appended to %s", args[0])
		})
}

func newTruncateCmd(env *cmdenv.Env) *cobra.Command {
	var size string
	cmd := leaf("truncate <file>", "Truncate a file to --size bytes", exactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			n, err := parseSize("size", size)
			if err != nil {
				return err
			}
			if err := env.FS().Truncate(args[0], n); err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), "%s truncated to %d bytes", args[0], n)
		})
	cmd.Flags().StringVar(&size, "size", "0", "Target size in bytes")
	return cmd
}

func newChmodCmd(env *cmdenv.Env) *cobra.Command {
	return leaf("chmod <file> <mode>", "Change permissions (octal mode, e.g. 644)", exactArgs(2),
		func(cmd *cobra.Command, args []string) error {
			mode, err := fsops.ParseMode(args[1])
			if err != nil {
				return err
			}
			if err := env.FS().Chmod(args[0], mode); err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), "The permissions for file %q have been changed!", args[0])
		})
}

func newCopyCmd(env *cmdenv.Env) *cobra.Command {
	var excl bool
	cmd := leaf("copy <src> <dst>", "Copy a file", exactArgs(2),
		func(cmd *cobra.Command, args []string) error {
			if err := env.FS().Copy(args[0], args[1], excl); err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), "%s was copied to %s", args[0], args[1])
		})
	cmd.Flags().BoolVar(&excl, "excl", false, "Fail if the destination already exists")
	return cmd
}

func newRenameCmd(env *cmdenv.Env) *cobra.Command {
	return leaf("rename <old> <new>", "Rename a file, replacing a file at the new path", exactArgs(2),
		func(cmd *cobra.Command, args []string) error {
			if err := env.FS().Rename(args[0], args[1]); err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), "Rename complete!")
		})
}

func newUnlinkCmd(env *cmdenv.Env) *cobra.Command {
	return leaf("unlink <file>", "Remove a file or symlink", exactArgs(1),
		func(cmd *cobra.Command, args []string) error {
			if err := env.FS().Unlink(args[0]); err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), "%s was deleted", args[0])
		})
}
