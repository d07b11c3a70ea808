package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cyclone1070/shellfs/internal/adapter"
	"github.com/Cyclone1070/shellfs/internal/models"
	"github.com/Cyclone1070/shellfs/internal/render"
	"github.com/Cyclone1070/shellfs/internal/ui"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>...",
		Short: "Show metadata for paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]models.PathEntry, 0, len(args))
			for _, path := range args {
				entry, err := a.fs.Info(cmd.Context(), path)
				if err != nil {
					return err
				}
				entry.Name = path
				entries = append(entries, entry)
			}
			return a.renderer.Render(cmd.OutOrStdout(), entries)
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	var offset, limit int
	cmd := &cobra.Command{
		Use:   "ls [path]...",
		Short: "List directories",
		Long: `List the children of each directory argument. A path that is not a
directory lists as itself. With no arguments the current directory is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			var entries []models.PathEntry
			for _, path := range args {
				page, err := a.fs.LsPage(cmd.Context(), path, offset, limit)
				if err != nil {
					return err
				}
				if page.Truncated {
					a.logger.Info("listing truncated",
						zap.String("path", path),
						zap.Int("shown", len(page.Entries)),
						zap.Int("total", page.TotalCount))
				}
				entries = append(entries, page.Entries...)
			}
			return a.renderer.Render(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "Skip this many entries of each listing")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many entries of each listing (0: all)")
	return cmd
}

type predicate func(ctx context.Context, path string) (bool, error)

func (a *app) exists(ctx context.Context, path string) (bool, error) {
	return a.fs.Exists(ctx, path)
}

func (a *app) isFile(ctx context.Context, path string) (bool, error) {
	return a.fs.IsFile(ctx, path)
}

func (a *app) isDir(ctx context.Context, path string) (bool, error) {
	return a.fs.IsDir(ctx, path)
}

// newPredicateCmd prints true or false and exits 2 on false.
func newPredicateCmd(name, short string, check predicate) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <path>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := check(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			if !ok {
				return errAnsweredFalse
			}
			return nil
		},
	}
}

func newMkdirCmd(a *app) *cobra.Command {
	var parents bool
	cmd := &cobra.Command{
		Use:   "mkdir <path>...",
		Short: "Create directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				var err error
				if parents {
					err = a.fs.Makedirs(cmd.Context(), path, true)
				} else {
					err = a.fs.Mkdir(cmd.Context(), path, false)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "Create parent directories as needed; existing directories are fine")
	return cmd
}

func newTouchCmd(a *app) *cobra.Command {
	var truncate bool
	cmd := &cobra.Command{
		Use:   "touch <path>...",
		Short: "Create files or update their timestamps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := a.fs.Touch(cmd.Context(), path, truncate); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&truncate, "truncate", false, "Empty existing files")
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	var recursive bool
	cmd := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Remove files, or directory trees with -r",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				var err error
				if recursive {
					err = a.fs.Rmdir(cmd.Context(), path)
				} else {
					err = a.fs.RmFile(cmd.Context(), path)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Remove a directory and everything below it")
	return cmd
}

func newCpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cp <src> <dst>",
		Short: "Copy a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fs.CpFile(cmd.Context(), args[0], args[1])
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	var (
		opts        adapter.WalkOptions
		excludeFrom []string
	)
	cmd := &cobra.Command{
		Use:   "find <root>",
		Short: "List everything below a directory",
		Long: `Walk root depth-first and print every entry below it. Exclude patterns use
gitignore syntax relative to root. Symlinks are listed but not followed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, file := range excludeFrom {
				patterns, err := adapter.ReadIgnoreFile(file)
				if err != nil {
					return err
				}
				opts.Exclude = append(opts.Exclude, patterns...)
			}

			result, err := a.fs.Find(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if result.Truncated {
				a.logger.Warn("result limit reached, output truncated",
					zap.String("root", args[0]),
					zap.Int("entries", len(result.Entries)))
			}
			return a.renderer.Render(cmd.OutOrStdout(), result.Entries)
		},
	}
	cmd.Flags().StringArrayVar(&opts.Exclude, "exclude", nil, "Gitignore-style pattern to skip (repeatable)")
	cmd.Flags().StringArrayVar(&excludeFrom, "exclude-from", nil, "File of gitignore-style patterns (repeatable)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "Maximum depth below root (0: configured default)")
	cmd.Flags().IntVar(&opts.MaxResults, "max-results", 0, "Maximum entries (0: configured default)")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Only print entries of this type: file, directory or symlink")
	return cmd
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [path]",
		Short: "Browse directories interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "."
			if len(args) == 1 {
				start = args[0]
			}
			return ui.NewBrowser(cmd.Context(), a.fs, start, ui.DefaultSpinner).Start()
		},
	}
}

func newPlatformsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "platforms",
		Short:       "List platform names with a registered local shell",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoShell: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range a.deps.Registry.Platforms() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Re-render a saved json or yaml listing",
		Long: `Read entries written by -o json or -o yaml from file (or stdin) and print
them in the format chosen with -o. No shell is opened.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationNoShell: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			entries, err := render.Decode(in)
			if err != nil {
				return err
			}
			return a.renderer.Render(cmd.OutOrStdout(), entries)
		},
	}
}
