// Package config loads the icon lookup tables and color schemes from YAML,
// embedded in the binary or overridden from a directory.
package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mordilloSan/go_logger/logger"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDirIcon is used for directories no table entry recognizes.
	DefaultDirIcon = "\uf07b"
	// DefaultFileIcon is used for files no table entry recognizes.
	DefaultFileIcon = "\uf15b"

	foldersFile = "folders.yml"
	filesFile   = "files.yml"
	colorsFile  = "colors.yml"
)

//go:embed data/*.yml
var embedded embed.FS

var (
	// ErrUnknownTheme is returned when no color scheme exists for a theme.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrDanglingAlias is returned when an alias points to a missing icon key.
	ErrDanglingAlias = errors.New("alias points to missing icon")
	// ErrDuplicateKey is returned when two table keys differ only by case.
	ErrDuplicateKey = errors.New("keys differ only by case")
)

// IconMapping maps canonical keys (names or extensions) to icons, plus
// alternate keys to canonical ones.
type IconMapping struct {
	Icons   map[string]string `yaml:"icons"`
	Aliases map[string]string `yaml:"aliases"`
}

// Icon looks key up in Icons only.
func (m IconMapping) Icon(key string) (string, bool) {
	icon, ok := m.Icons[key]
	return icon, ok
}

// Alias resolves key through Aliases and returns the canonical icon.
func (m IconMapping) Alias(key string) (string, bool) {
	canonical, ok := m.Aliases[key]
	if !ok {
		return "", false
	}
	icon, ok := m.Icons[canonical]
	return icon, ok
}

// normalize lowercases keys (and alias targets). Keys that collide once
// lowercased are rejected.
func (m *IconMapping) normalize(table string) error {
	icons, err := lowerKeys(m.Icons, nil)
	if err != nil {
		return fmt.Errorf("%s icons: %w", table, err)
	}
	aliases, err := lowerKeys(m.Aliases, strings.ToLower)
	if err != nil {
		return fmt.Errorf("%s aliases: %w", table, err)
	}
	m.Icons, m.Aliases = icons, aliases
	return nil
}

// lowerKeys lowercases the keys of in, passing each value through fix
// when it is non-nil.
func lowerKeys[V any](in map[string]V, fix func(V) V) (map[string]V, error) {
	out := make(map[string]V, len(in))
	origin := make(map[string]string, len(in))
	var clashes []string
	for k, v := range in {
		if fix != nil {
			v = fix(v)
		}
		lower := strings.ToLower(k)
		if prev, ok := origin[lower]; ok {
			pair := []string{prev, k}
			sort.Strings(pair)
			clashes = append(clashes, pair[0]+" and "+pair[1])
			continue
		}
		origin[lower] = k
		out[lower] = v
	}
	if len(clashes) > 0 {
		sort.Strings(clashes)
		return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, strings.Join(clashes, ", "))
	}
	return out, nil
}

func (m IconMapping) validate(table string) error {
	var dangling []string
	for alias, canonical := range m.Aliases {
		if _, ok := m.Icons[canonical]; !ok {
			dangling = append(dangling, fmt.Sprintf("%s -> %s", alias, canonical))
		}
	}
	if len(dangling) == 0 {
		return nil
	}
	sort.Strings(dangling)
	return fmt.Errorf("%s: %w: %s", table, ErrDanglingAlias, strings.Join(dangling, ", "))
}

// Tables holds every lookup table the classifier and color resolver need.
// It is built once at startup and only read afterwards.
type Tables struct {
	Folders IconMapping
	Files   IconMapping
	Themes  map[string]ColorScheme
}

// Scheme returns the color scheme registered for theme.
func (t *Tables) Scheme(theme string) (ColorScheme, error) {
	scheme, ok := t.Themes[strings.ToLower(theme)]
	if !ok {
		return ColorScheme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	return scheme, nil
}

// Validate checks that every alias resolves to an icon.
func (t *Tables) Validate() error {
	return errors.Join(
		t.Folders.validate(foldersFile),
		t.Files.validate(filesFile),
	)
}

// Default loads the tables embedded in the binary.
func Default() (*Tables, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load decodes folders.yml, files.yml and colors.yml from fsys and
// validates the result.
func Load(fsys fs.FS) (*Tables, error) {
	t := &Tables{}
	if err := decodeFile(fsys, foldersFile, &t.Folders); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, filesFile, &t.Files); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, colorsFile, &t.Themes); err != nil {
		return nil, err
	}
	if err := t.Folders.normalize(foldersFile); err != nil {
		return nil, err
	}
	if err := t.Files.normalize(filesFile); err != nil {
		return nil, err
	}
	themes, err := lowerThemes(t.Themes)
	if err != nil {
		return nil, err
	}
	t.Themes = themes

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadWithOverrides starts from the embedded tables and replaces each table
// found in dir. An empty dir returns the embedded tables.
func LoadWithOverrides(dir string) (*Tables, error) {
	t, err := Default()
	if err != nil {
		return nil, fmt.Errorf("embedded tables: %w", err)
	}
	if dir == "" {
		return t, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("config dir %s is not a directory", dir)
	}

	overrides := os.DirFS(dir)
	if exists(overrides, foldersFile) {
		var m IconMapping
		if err := decodeFile(overrides, foldersFile, &m); err != nil {
			return nil, err
		}
		if err := m.normalize(foldersFile); err != nil {
			return nil, err
		}
		t.Folders = m
		logger.Debugf("using folder icons from %s", filepath.Join(dir, foldersFile))
	}
	if exists(overrides, filesFile) {
		var m IconMapping
		if err := decodeFile(overrides, filesFile, &m); err != nil {
			return nil, err
		}
		if err := m.normalize(filesFile); err != nil {
			return nil, err
		}
		t.Files = m
		logger.Debugf("using file icons from %s", filepath.Join(dir, filesFile))
	}
	if exists(overrides, colorsFile) {
		var themes map[string]ColorScheme
		if err := decodeFile(overrides, colorsFile, &themes); err != nil {
			return nil, err
		}
		lowered, err := lowerThemes(themes)
		if err != nil {
			return nil, err
		}
		for name, scheme := range lowered {
			t.Themes[name] = scheme
		}
		logger.Debugf("using colors from %s", filepath.Join(dir, colorsFile))
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("cannot stat %s: %v", name, err)
	}
	return err == nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func lowerThemes(in map[string]ColorScheme) (map[string]ColorScheme, error) {
	out, err := lowerKeys(in, nil)
	if err != nil {
		return nil, fmt.Errorf("%s themes: %w", colorsFile, err)
	}
	return out, nil
}
