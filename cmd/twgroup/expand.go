package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/twgroup"
	"github.com/aledsdavies/twgroup/core/ast"
	"github.com/aledsdavies/twgroup/core/errors"
)

func (a *app) newExpandCmd() *cobra.Command {
	var showAST bool

	cmd := &cobra.Command{
		Use:   "expand [classes...]",
		Short: "Expand a class string given as arguments or on stdin",
		Example: `  twgroup expand 'hover:(bg-red-500 md:(pl-3 pt-2))'
  echo 'sm:(m-1 p-2)' | twgroup expand`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(a.stdin)
				if err != nil {
					return errors.NewInputError("failed to read stdin", err)
				}
				input = string(data)
			}

			opts := twgroup.Options{}
			if a.flags.debug {
				opts.Logger = a.logger()
			}

			if showAST {
				root, err := twgroup.Parse(input, opts)
				if err != nil {
					return err
				}
				return ast.Fprint(a.stdout, root)
			}

			out, err := twgroup.ExpandWithOptions(input, opts)
			if err != nil {
				return err
			}
			a.printf("%s\n", out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAST, "ast", false, "Print the parsed group tree instead of the expansion")
	return cmd
}
