// Package entry builds the classified, colorized representation of one
// listed filesystem item.
package entry

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mordilloSan/bls/config"
	"github.com/mordilloSan/bls/icons"
)

// Details carries the ownership and link data that fs.FileInfo does not
// expose portably.
type Details struct {
	Nlink uint64
	Uid   uint32
	Gid   uint32
	Valid bool // false when the platform gave no stat data
}

// Entry is one listed item. Icon and color are fixed when it is built.
type Entry struct {
	name    string
	path    string
	info    fs.FileInfo
	details Details
	kind    icons.Kind
	icon    string
	color   config.RGB
}

func (e *Entry) Name() string       { return e.name }
func (e *Entry) Path() string       { return e.path }
func (e *Entry) Details() Details   { return e.details }
func (e *Entry) Kind() icons.Kind   { return e.kind }
func (e *Entry) Icon() string       { return e.icon }
func (e *Entry) Color() config.RGB  { return e.color }
func (e *Entry) Mode() fs.FileMode  { return e.info.Mode() }
func (e *Entry) Size() int64        { return e.info.Size() }
func (e *Entry) ModTime() time.Time { return e.info.ModTime() }
func (e *Entry) IsDir() bool        { return e.kind == icons.Directory }
func (e *Entry) IsRegular() bool    { return e.kind == icons.File }

// Hidden reports whether the display name starts with a dot.
func (e *Entry) Hidden() bool {
	return strings.HasPrefix(e.name, ".")
}

// Builder assembles entries with one classifier and one color scheme.
type Builder struct {
	classifier *icons.Classifier
	scheme     config.ColorScheme
	lstat      func(string) (fs.FileInfo, error)
}

// NewBuilder returns a Builder reading metadata with os.Lstat, so
// symlinks are listed as themselves.
func NewBuilder(classifier *icons.Classifier, scheme config.ColorScheme) *Builder {
	return &Builder{
		classifier: classifier,
		scheme:     scheme,
		lstat:      os.Lstat,
	}
}

// Scheme returns the color scheme entries are painted with.
func (b *Builder) Scheme() config.ColorScheme {
	return b.scheme
}

// Build reads path's metadata and returns its entry. A non-empty name
// replaces the base name as display name.
func (b *Builder) Build(path, name string) (*Entry, error) {
	info, err := b.lstat(path)
	if err != nil {
		return nil, NewError("stat", path, err)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	return b.FromInfo(path, name, info), nil
}

// FromInfo classifies already read metadata.
func (b *Builder) FromInfo(path, name string, info fs.FileInfo) *Entry {
	kind := icons.KindOf(info.Mode())
	icon := b.classifier.ClassifyName(kind, name)
	return &Entry{
		name:    name,
		path:    path,
		info:    info,
		details: detailsOf(info),
		kind:    kind,
		icon:    icon,
		color:   icons.ResolveColor(kind, info.Mode().Perm(), icon, b.classifier.DefaultFileIcon(), b.scheme),
	}
}

// BuildAncestor builds the pseudo-entry levels directories above path,
// labelled with levels+1 dots ("." for path itself, ".." for its parent).
// Walking past the filesystem root stays at the root.
func (b *Builder) BuildAncestor(path string, levels int) (*Entry, error) {
	if levels < 0 {
		levels = 0
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewError("resolve", path, err)
	}
	target := abs
	for i := 0; i < levels; i++ {
		target = ParentPath(target)
	}
	return b.Build(target, strings.Repeat(".", levels+1))
}

// ParentPath returns the parent directory of an absolute path; the root is
// its own parent.
func ParentPath(path string) string {
	cleaned := filepath.Clean(path)
	parent := filepath.Dir(cleaned)
	if parent == "" {
		return string(filepath.Separator)
	}
	return parent
}
