package icons

import (
	"io/fs"

	"github.com/mordilloSan/bls/config"
)

const ownerExec fs.FileMode = 0o100

// ResolveColor picks the color of an entry. The first matching rule wins:
// directories, then executable regular files, then recognized or
// unrecognized regular files; everything else is unrecognized.
func ResolveColor(kind Kind, perm fs.FileMode, icon, defaultFileIcon string, scheme config.ColorScheme) config.RGB {
	switch {
	case kind == Directory:
		return scheme.Dir
	case kind == File && perm&ownerExec != 0:
		return scheme.ExecutableFile
	case kind == File && icon == defaultFileIcon:
		return scheme.UnrecognizedFile
	case kind == File:
		return scheme.RecognizedFile
	default:
		return scheme.UnrecognizedFile
	}
}
