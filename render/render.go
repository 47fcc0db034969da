// Package render formats arranged entries as inline tokens or detailed rows.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mordilloSan/bls/config"
	"github.com/mordilloSan/bls/entry"
)

// NameResolver turns numeric ids into user and group names. Lookups may fail.
type NameResolver interface {
	UserName(uid uint32) (string, error)
	GroupName(gid uint32) (string, error)
}

// ErrNoOwnership is returned when the platform reported no uid/gid for an entry.
var ErrNoOwnership = errors.New("no ownership data")

// RowError reports a detailed row that was left out because its owner or
// group could not be resolved.
type RowError struct {
	Path string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

const (
	iconGap          = "  "
	columnSep        = "\t"
	defaultInlineSep = " "
)

// Renderer writes entries with one painter, scheme and name resolver.
type Renderer struct {
	painter   *Painter
	scheme    config.ColorScheme
	names     NameResolver
	inlineSep string
}

// NewRenderer returns a renderer separating inline tokens with a space.
func NewRenderer(painter *Painter, scheme config.ColorScheme, names NameResolver) *Renderer {
	return &Renderer{
		painter:   painter,
		scheme:    scheme,
		names:     names,
		inlineSep: defaultInlineSep,
	}
}

// WithInlineSeparator returns a copy using sep between inline tokens.
func (r *Renderer) WithInlineSeparator(sep string) *Renderer {
	cp := *r
	cp.inlineSep = sep
	return &cp
}

// Render writes entries in order. In detailed mode rows whose owner or
// group cannot be resolved are skipped and reported together as
// *RowError values; write failures abort immediately.
func (r *Renderer) Render(w io.Writer, entries []*entry.Entry, cfg Config) error {
	switch cfg.Mode() {
	case Inline:
		return r.renderInline(w, entries)
	case Detailed:
		return r.renderDetailed(w, entries, cfg.Columns())
	default:
		return fmt.Errorf("unknown render mode %s", cfg.Mode())
	}
}

func (r *Renderer) renderInline(w io.Writer, entries []*entry.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tokens := make([]string, len(entries))
	for i, e := range entries {
		tokens[i] = r.name(e)
	}
	_, err := io.WriteString(w, strings.Join(tokens, r.inlineSep)+"\n")
	return err
}

func (r *Renderer) renderDetailed(w io.Writer, entries []*entry.Entry, cols Columns) error {
	var rowErrs []error
	for _, e := range entries {
		row, err := r.row(e, cols)
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Path: e.Path(), Err: err})
			continue
		}
		if _, err := io.WriteString(w, row+"\n"); err != nil {
			return err
		}
	}
	return errors.Join(rowErrs...)
}

func (r *Renderer) row(e *entry.Entry, cols Columns) (string, error) {
	details := e.Details()
	fields := make([]string, 0, 7)

	if cols.Permissions {
		fields = append(fields, FormatPermissions(r.painter, e.Mode(), r.scheme))
	}
	if cols.LinkCount {
		fields = append(fields, strconv.FormatUint(details.Nlink, 10))
	}
	if cols.Owner {
		if !details.Valid {
			return "", fmt.Errorf("owner: %w", ErrNoOwnership)
		}
		owner, err := r.names.UserName(details.Uid)
		if err != nil {
			return "", fmt.Errorf("owner: %w", err)
		}
		fields = append(fields, owner)
	}
	if cols.Group {
		if !details.Valid {
			return "", fmt.Errorf("group: %w", ErrNoOwnership)
		}
		group, err := r.names.GroupName(details.Gid)
		if err != nil {
			return "", fmt.Errorf("group: %w", err)
		}
		fields = append(fields, group)
	}
	if cols.Size {
		fields = append(fields, FormatSize(e.Size(), cols.HumanSize))
	}
	if cols.ModifiedDate {
		fields = append(fields, FormatDate(e.ModTime()))
	}
	fields = append(fields, r.name(e))

	return strings.Join(fields, columnSep), nil
}

// name renders the icon+name column; directories get a trailing slash.
func (r *Renderer) name(e *entry.Entry) string {
	label := e.Name()
	if e.IsDir() {
		label += "/"
	}
	return r.painter.Paint(e.Icon(), e.Color()) + iconGap + r.painter.Paint(label, e.Color())
}
