package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mordilloSan/go_logger/logger"

	"github.com/mordilloSan/bls/config"
	"github.com/mordilloSan/bls/entry"
	"github.com/mordilloSan/bls/icons"
	"github.com/mordilloSan/bls/internal/users"
	"github.com/mordilloSan/bls/listing"
	"github.com/mordilloSan/bls/render"
)

// App lists paths with one set of tables, theme and render settings.
type App struct {
	stdout   io.Writer
	stderr   io.Writer
	terminal bool
	lister   *listing.Lister
	renderer *render.Renderer
	listOpts listing.Options
	viewCfg  render.Config
}

// NewApp loads the icon and color tables and prepares everything a run
// shares. A table, theme or --color problem is returned as an error.
func NewApp(opts Options, stdout, stderr io.Writer) (*App, error) {
	colorMode, err := render.ParseColorMode(opts.Color)
	if err != nil {
		return nil, err
	}

	tables, err := config.LoadWithOverrides(opts.ConfigDirectory())
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}
	scheme, err := tables.Scheme(opts.Theme())
	if err != nil {
		return nil, err
	}

	terminal := isTerminal(stdout)
	sep := "\n"
	if terminal {
		sep = " "
	}

	builder := entry.NewBuilder(icons.NewClassifier(tables), scheme)
	painter := render.NewPainter(stdout, colorMode)
	renderer := render.NewRenderer(painter, scheme, users.New()).WithInlineSeparator(sep)

	logger.Debugf("theme=%s color=%s terminal=%t", opts.Theme(), colorMode, terminal)
	return &App{
		stdout:   stdout,
		stderr:   stderr,
		terminal: terminal,
		lister:   listing.NewLister(builder),
		renderer: renderer,
		listOpts: opts.ListOptions(),
		viewCfg:  opts.RenderConfig(),
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run lists every path in order and returns the exit code. A failing path
// is reported on stderr and does not stop the others.
func (a *App) Run(paths []string) int {
	code := ExitOK
	printed := false

	for _, p := range paths {
		entries, err := a.collect(p)
		if err != nil {
			a.report(p, err)
			code = max(code, ExitTrouble)
			continue
		}

		if len(paths) > 1 {
			if printed {
				fmt.Fprintln(a.stdout)
			}
			fmt.Fprintf(a.stdout, "%s:\n", p)
		}
		printed = true

		if err := a.renderer.Render(a.stdout, entries, a.viewCfg); err != nil {
			code = max(code, a.reportRender(err))
		}
	}
	return code
}

// collect resolves p to its canonical path and lists it.
func (a *App) collect(p string) ([]*entry.Entry, error) {
	target, err := canonical(p)
	if err != nil {
		return nil, entry.NewError("resolve", p, err)
	}
	logger.Debugf("listing %s as %s", p, target)
	return a.lister.List(target, a.listOpts)
}

func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func (a *App) report(p string, err error) {
	fmt.Fprintf(a.stderr, "bls: %s: %s\n", p, reason(err))
}

// reason is the user-facing part of err: the kind for the known kinds and
// the cause otherwise.
func reason(err error) string {
	var e *entry.Error
	switch {
	case errors.Is(err, entry.ErrNotFound):
		return entry.ErrNotFound.Error()
	case errors.Is(err, entry.ErrUnauthorized):
		return entry.ErrUnauthorized.Error()
	case errors.As(err, &e) && e.Err != nil:
		return e.Err.Error()
	default:
		return err.Error()
	}
}

// reportRender prints dropped rows and returns the exit code they imply.
func (a *App) reportRender(err error) int {
	code := ExitOK
	for _, err := range unjoin(err) {
		var row *render.RowError
		if errors.As(err, &row) {
			fmt.Fprintf(a.stderr, "bls: %s: %v\n", row.Path, row.Err)
			code = max(code, ExitMinor)
			continue
		}
		fmt.Fprintf(a.stderr, "bls: write error: %v\n", err)
		code = ExitTrouble
	}
	return code
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
