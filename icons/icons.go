// Package icons derives the display icon and color of a filesystem entry.
package icons

import (
	"io/fs"
	"strings"

	"github.com/mordilloSan/bls/config"
)

// Kind is the coarse type of an entry as far as classification cares.
type Kind int

const (
	Other Kind = iota
	Directory
	File
	Symlink
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	case Symlink:
		return "symlink"
	default:
		return "other"
	}
}

// KindOf maps file mode type bits to a Kind.
func KindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsDir():
		return Directory
	case mode.IsRegular():
		return File
	case mode&fs.ModeSymlink != 0:
		return Symlink
	default:
		return Other
	}
}

// Pseudo-names looked up in the file table for entries without a useful name.
const (
	symlinkKey = "symlink"
	unknownKey = "unknown"
)

// Classifier resolves icons from the directory and file tables.
type Classifier struct {
	folders         config.IconMapping
	files           config.IconMapping
	defaultDirIcon  string
	defaultFileIcon string
}

// NewClassifier builds a classifier over already validated tables.
func NewClassifier(tables *config.Tables) *Classifier {
	return &Classifier{
		folders:         tables.Folders,
		files:           tables.Files,
		defaultDirIcon:  config.DefaultDirIcon,
		defaultFileIcon: config.DefaultFileIcon,
	}
}

// DefaultFileIcon is the icon given to unrecognized files.
func (c *Classifier) DefaultFileIcon() string {
	return c.defaultFileIcon
}

// Classify returns the icon for an entry. name must already be lowercased.
func (c *Classifier) Classify(kind Kind, name string) string {
	switch kind {
	case Directory:
		return c.directoryIcon(name)
	case File:
		return c.fileIcon(name)
	case Symlink:
		return c.fileIcon(symlinkKey)
	default:
		return c.fileIcon(unknownKey)
	}
}

// ClassifyName lowercases name and classifies it.
func (c *Classifier) ClassifyName(kind Kind, name string) string {
	return c.Classify(kind, strings.ToLower(name))
}

func (c *Classifier) directoryIcon(name string) string {
	if icon, ok := c.folders.Icon(name); ok {
		return icon
	}
	if icon, ok := c.folders.Alias(name); ok {
		return icon
	}
	return c.defaultDirIcon
}

// fileIcon tries, in order: full name, extension, alias of the full name,
// alias of the extension.
func (c *Classifier) fileIcon(name string) string {
	ext := Extension(name)

	if icon, ok := c.files.Icon(name); ok {
		return icon
	}
	if icon, ok := c.files.Icon(ext); ok {
		return icon
	}
	if icon, ok := c.files.Alias(name); ok {
		return icon
	}
	if icon, ok := c.files.Alias(ext); ok {
		return icon
	}
	return c.defaultFileIcon
}

// Extension returns the text after the last '.', or the whole name when it
// has no dot.
func Extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
