package main

import (
	"github.com/spf13/cobra"
)

// annotationNoShell marks commands that run without opening a shell.
const annotationNoShell = "shellfs/no-shell"

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "shellfs",
		Short: "Filesystem access through ls/dir shell commands",
		Long: `shellfs inspects and changes files by running ls/dir-style commands in a
shell and parsing their output. The shell can be local, reached over SSH,
or inside a Docker container.

Configuration is read from ~/.config/shellfs/config.json (or --config),
then SHELLFS_* environment variables, then flags.

Exit Codes:
  0  - Success
  1  - Error
  2  - exists/isfile/isdir answered false`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "Path to a config file (default ~/.config/shellfs/config.json)")
	flags.StringVar(&a.opts.backend, "backend", "", "Where commands run: local, ssh or docker")
	flags.StringVar(&a.opts.platform, "platform", "", "Local platform name (default: this OS)")
	flags.StringVar(&a.opts.dialect, "dialect", "", "Command dialect for ssh/docker: unix or windows")
	flags.StringVar(&a.opts.host, "host", "", "SSH host")
	flags.StringVar(&a.opts.user, "user", "", "SSH user")
	flags.StringVar(&a.opts.container, "container", "", "Docker container name or ID")
	flags.StringVar(&a.opts.workDir, "workdir", "", "Working directory of local commands")
	flags.DurationVar(&a.opts.timeout, "timeout", 0, "Per-command timeout (e.g. 10s)")
	flags.StringVarP(&a.opts.output, "output", "o", "table", "Output format: table, json, yaml, markdown or names")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newInfoCmd(a),
		newLsCmd(a),
		newPredicateCmd("exists", "Report whether a path exists", a.exists),
		newPredicateCmd("isfile", "Report whether a path is a regular file", a.isFile),
		newPredicateCmd("isdir", "Report whether a path is a directory", a.isDir),
		newMkdirCmd(a),
		newTouchCmd(a),
		newRmCmd(a),
		newCpCmd(a),
		newFindCmd(a),
		newBrowseCmd(a),
		newShowCmd(a),
		newPlatformsCmd(a),
	)

	return root
}
