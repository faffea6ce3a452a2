package main

import (
	"github.com/spf13/cobra"

	"github.com/aledsdavies/twgroup/runtime/rewrite"
	"github.com/aledsdavies/twgroup/runtime/watch"
)

func (a *app) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Rewrite supported files in place whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}

			rw, err := a.rewriter()
			if err != nil {
				return err
			}

			logger := a.logger()
			w, err := watch.New(rw,
				watch.WithLogger(logger),
				watch.WithResultHandler(func(res *rewrite.FileResult, err error) {
					if err != nil || !res.Changed() {
						return
					}
					a.printf("rewrote %s (%d expanded)\n", res.Path, res.Report.Expanded)
				}),
			)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			for _, dir := range args {
				if err := w.Add(dir); err != nil {
					return err
				}
			}
			logger.Info("watching for changes", "dirs", args)
			return w.Run(cmd.Context())
		},
	}
}
