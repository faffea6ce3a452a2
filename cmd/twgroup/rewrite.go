package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/twgroup/core/errors"
	"github.com/aledsdavies/twgroup/runtime/rewrite"
	"github.com/aledsdavies/twgroup/runtime/watch"
)

func (a *app) newRewriteCmd() *cobra.Command {
	var (
		write bool
		check bool
	)

	cmd := &cobra.Command{
		Use:   "rewrite [files or dirs...]",
		Short: "Expand grouped class attributes in source files",
		Long: `Rewrite expands className="...", tw` + "`...`" + ` and class="..." values that
contain groups. Without --write or --check a single file is printed to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && check {
				return &CLIError{Message: "--write and --check are mutually exclusive", Code: ExitInvalidArgs}
			}

			rw, err := a.rewriter()
			if err != nil {
				return err
			}
			files, err := collectFiles(rw, args)
			if err != nil {
				return err
			}
			if !write && !check && len(files) != 1 {
				return &CLIError{
					Message: fmt.Sprintf("%d files matched but output goes to stdout", len(files)),
					Hint:    "pass a single file, or use --write / --check",
					Code:    ExitInvalidArgs,
				}
			}

			useColor := ShouldUseColor(a.flags.noColor, a.stderr)
			var pending []string
			for _, path := range files {
				res, err := rw.RewriteFile(path)
				if err != nil {
					return err
				}
				for _, f := range res.Report.Failures {
					_, _ = fmt.Fprintf(a.stderr, "%s%s: %v\n", Colorize("Warning: ", ColorYellow, useColor), path, f)
				}

				switch {
				case check:
					if res.Changed() {
						pending = append(pending, path)
						a.printf("%s\n", path)
					}
				case write:
					if !res.Changed() {
						continue
					}
					if err := writeInPlace(path, res.Output); err != nil {
						return err
					}
					a.printf("%s %s (%d expanded)\n", Colorize("rewrote", ColorGreen, ShouldUseColor(a.flags.noColor, a.stdout)), path, res.Report.Expanded)
				default:
					a.printf("%s", res.Output)
				}
			}

			if len(pending) > 0 {
				return &CLIError{
					Message: fmt.Sprintf("%d file(s) contain unexpanded groups", len(pending)),
					Hint:    "run twgroup rewrite --write",
					Code:    ExitRewriteRequired,
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite files in place")
	cmd.Flags().BoolVar(&check, "check", false, "List files that would change and exit non-zero if any")
	return cmd
}

// collectFiles expands directory arguments into supported files. Explicit
// file arguments must be supported.
func collectFiles(rw *rewrite.Rewriter, args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.NewInputError(fmt.Sprintf("cannot access %s", arg), err)
		}
		if !info.IsDir() {
			if !rw.Supports(arg) {
				return nil, errors.New(errors.ErrUnsupportedFile, fmt.Sprintf("%s is not a supported file type", arg)).
					WithContext("path", arg)
			}
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && watch.IgnoredDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if rw.Supports(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.NewInputError(fmt.Sprintf("failed to walk %s", arg), err)
		}
	}
	return files, nil
}

func writeInPlace(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.NewInputError(fmt.Sprintf("failed to stat %s", path), err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
