// Package listing reads a target path and produces the ordered entries to render.
package listing

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mordilloSan/go_logger/logger"

	"github.com/mordilloSan/bls/entry"
)

// Options selects which entries of a directory are listed.
type Options struct {
	All             bool // show dot-files and add "." and ".."
	AlmostAll       bool // show dot-files without "." and ".."
	DirectoriesOnly bool
	FilesOnly       bool
}

// ShowDotFiles reports whether names starting with '.' are kept.
func (o Options) ShowDotFiles() bool {
	return o.All || o.AlmostAll
}

// Lister turns target paths into arranged entries.
type Lister struct {
	builder *entry.Builder
	readDir func(string) ([]fs.DirEntry, error)
}

func NewLister(builder *entry.Builder) *Lister {
	return &Lister{builder: builder, readDir: os.ReadDir}
}

// List returns the entries to render for path. A directory yields its
// arranged children; anything else yields a single entry for itself. The
// first entry that cannot be assembled aborts the listing of path.
func (l *Lister) List(path string, opts Options) ([]*entry.Entry, error) {
	target, err := l.builder.Build(path, "")
	if err != nil {
		return nil, err
	}
	if !target.IsDir() {
		return []*entry.Entry{target}, nil
	}

	children, err := l.readDir(path)
	if err != nil {
		return nil, entry.NewError("read", path, err)
	}

	raw := make([]*entry.Entry, 0, len(children))
	for _, child := range children {
		e, err := l.builder.Build(filepath.Join(path, child.Name()), child.Name())
		if err != nil {
			return nil, err
		}
		raw = append(raw, e)
	}

	var pseudo []*entry.Entry
	if opts.All {
		pseudo, err = l.pseudoEntries(path)
		if err != nil {
			return nil, err
		}
	}

	arranged := Arrange(raw, pseudo, opts)
	logger.Debugf("listed %s: %d read, %d shown", path, len(raw), len(arranged))
	return arranged, nil
}

func (l *Lister) pseudoEntries(path string) ([]*entry.Entry, error) {
	self, err := l.builder.BuildAncestor(path, 0)
	if err != nil {
		return nil, err
	}
	parent, err := l.builder.BuildAncestor(path, 1)
	if err != nil {
		return nil, err
	}
	return []*entry.Entry{self, parent}, nil
}

// Arrange filters and sorts raw entries:
//  1. keep only directories, or only regular files, when asked to;
//  2. append pseudo when opts.All is set;
//  3. drop dot-named entries unless dot-files are shown;
//  4. sort by name, byte order, stable.
//
// Step 3 runs after step 2, so pseudo-entries are subject to it as well.
func Arrange(raw, pseudo []*entry.Entry, opts Options) []*entry.Entry {
	kept := make([]*entry.Entry, 0, len(raw)+len(pseudo))
	for _, e := range raw {
		switch {
		case opts.DirectoriesOnly:
			if !e.IsDir() {
				continue
			}
		case opts.FilesOnly:
			if !e.IsRegular() {
				continue
			}
		}
		kept = append(kept, e)
	}

	if opts.All {
		kept = append(kept, pseudo...)
	}

	if !opts.ShowDotFiles() {
		visible := kept[:0]
		for _, e := range kept {
			if !e.Hidden() {
				visible = append(visible, e)
			}
		}
		kept = visible
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Name() < kept[j].Name()
	})
	return kept
}
