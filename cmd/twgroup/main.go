package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/twgroup/runtime/config"
	"github.com/aledsdavies/twgroup/runtime/rewrite"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	debug      bool
	noColor    bool
}

// app bundles the streams so commands can be exercised in tests
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	flags  globalFlags
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	code := a.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the exit code
func (a *app) run(ctx context.Context, args []string) int {
	rootCmd := a.newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		FormatError(a.stderr, err, ShouldUseColor(a.flags.noColor, a.stderr))
	}
	return exitCode(err)
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "twgroup",
		Short: "Expand grouped utility-class notation like md:(pl-3 pt-2)",
		// Errors are formatted by run.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&a.flags.configPath, "config", "c", "", "Path to config file (default ./"+config.DefaultFileName+" if present)")
	rootCmd.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(a.newExpandCmd(), a.newRewriteCmd(), a.newWatchCmd())
	return rootCmd
}

// logger builds the stderr logger, with time and level stripped for cleaner output
func (a *app) logger() *slog.Logger {
	logLevel := slog.LevelInfo
	if a.flags.debug {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey || attr.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return attr
		},
	}))
}

// rewriter loads the config and builds a Rewriter from it
func (a *app) rewriter() (*rewrite.Rewriter, error) {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return nil, err
	}
	opts := append(cfg.RewriteOptions(), rewrite.WithLogger(a.logger()))
	return rewrite.New(opts...)
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stdout, format, args...)
}
