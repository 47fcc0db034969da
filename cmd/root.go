// Package cmd wires the bls command line to the listing and rendering packages.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mordilloSan/go_logger/logger"
	"github.com/spf13/cobra"

	"github.com/mordilloSan/bls/internal/version"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitMinor   = 1 // a detailed row was dropped
	ExitTrouble = 2 // bad path, flags or configuration
)

// usageError marks a command line that could not be parsed.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

// NewRootCommand builds the bls command. The exit code of the last run is
// stored in *code.
func NewRootCommand(stdout, stderr io.Writer, code *int) *cobra.Command {
	var opts Options

	root := &cobra.Command{
		Use:           "bls [flags] [path...]",
		Short:         "List directory contents with icons and colors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init("production", opts.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Version {
				_, err := fmt.Fprintln(stdout, version.String())
				return err
			}

			app, err := NewApp(opts, stdout, stderr)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			*code = app.Run(args)
			if !opts.Watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := app.Watch(ctx, args); err != nil {
				*code = ExitTrouble
				return err
			}
			logger.Debugf("watch stopped")
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := root.Flags()
	f.SortFlags = false
	f.BoolVarP(&opts.All, "all", "a", false, "show entries starting with . including . and ..")
	f.BoolVarP(&opts.AlmostAll, "almost-all", "A", false, "show entries starting with . except . and ..")
	f.BoolVarP(&opts.Long, "long", "l", false, "use a long listing format")
	f.BoolVarP(&opts.LongNoOwner, "long-no-owner", "g", false, "like -l, but do not list owner")
	f.BoolVarP(&opts.LongNoGroup, "long-no-group", "o", false, "like -l, but do not list group")
	f.BoolVarP(&opts.NoGroup, "no-group", "G", false, "in a long listing, don't print group names")
	f.BoolVarP(&opts.DirectoriesOnly, "directory", "d", false, "list directories only")
	f.BoolVarP(&opts.FilesOnly, "files", "f", false, "list regular files only")
	f.BoolVarP(&opts.HumanReadable, "human-readable", "h", false, "with -l, print sizes like 1.5 KiB")
	f.BoolVar(&opts.Dark, "dark", false, "use the dark color theme")
	f.StringVar(&opts.Color, "color", "auto", "colorize output: auto, always or never")
	f.StringVar(&opts.ConfigDir, "config-dir", "", "directory with folders.yml, files.yml or colors.yml overrides (env "+ConfigDirEnv+")")
	f.BoolVar(&opts.Watch, "watch", false, "list again whenever a listed directory changes")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	f.BoolVar(&opts.Version, "version", false, "print version and exit")
	f.Bool("help", false, "show this help")

	return root
}

// Execute runs bls with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	code := ExitOK
	root := NewRootCommand(stdout, stderr, &code)
	root.SetArgs(args)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "bls: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, "Try 'bls --help' for more information.")
		}
		return ExitTrouble
	}
	return code
}
