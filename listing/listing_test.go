package listing

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mordilloSan/bls/config"
	"github.com/mordilloSan/bls/entry"
	"github.com/mordilloSan/bls/icons"
	"github.com/mordilloSan/bls/internal/testfs"
)

type fakeInfo struct {
	name string
	mode fs.FileMode
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() any           { return nil }

func newTestBuilder(t *testing.T) *entry.Builder {
	t.Helper()
	tables, err := config.Default()
	if err != nil {
		t.Fatalf("Failed to load tables: %v", err)
	}
	scheme, err := tables.Scheme(config.ThemeLight)
	if err != nil {
		t.Fatalf("Failed to load scheme: %v", err)
	}
	return entry.NewBuilder(icons.NewClassifier(tables), scheme)
}

func fakeEntries(b *entry.Builder, specs map[string]fs.FileMode) []*entry.Entry {
	var out []*entry.Entry
	for name, mode := range specs {
		out = append(out, b.FromInfo("/fake/"+name, name, fakeInfo{name: name, mode: mode}))
	}
	return out
}

func names(entries []*entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

func assertNames(t *testing.T, got []*entry.Entry, expected ...string) {
	t.Helper()
	gotNames := names(got)
	if len(gotNames) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, gotNames)
	}
	for i := range expected {
		if gotNames[i] != expected[i] {
			t.Fatalf("Expected %v, got %v", expected, gotNames)
		}
	}
}

func TestArrangeDotFiles(t *testing.T) {
	b := newTestBuilder(t)
	raw := fakeEntries(b, map[string]fs.FileMode{"a": 0o644, ".b": 0o644, "c": 0o644})

	assertNames(t, Arrange(raw, nil, Options{}), "a", "c")
	assertNames(t, Arrange(raw, nil, Options{AlmostAll: true}), ".b", "a", "c")
}

func TestArrangePseudoEntries(t *testing.T) {
	b := newTestBuilder(t)
	raw := fakeEntries(b, map[string]fs.FileMode{"z": 0o644, ".hidden": 0o644})
	pseudo := fakeEntries(b, map[string]fs.FileMode{".": fs.ModeDir | 0o755, "..": fs.ModeDir | 0o755})

	tests := []struct {
		name     string
		opts     Options
		expected []string
	}{
		{name: "all", opts: Options{All: true}, expected: []string{".", "..", ".hidden", "z"}},
		{name: "almost all ignores pseudo", opts: Options{AlmostAll: true}, expected: []string{".hidden", "z"}},
		{name: "default", opts: Options{}, expected: []string{"z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNames(t, Arrange(raw, pseudo, tt.opts), tt.expected...)
		})
	}
}

func TestArrangeKindFilters(t *testing.T) {
	b := newTestBuilder(t)
	raw := fakeEntries(b, map[string]fs.FileMode{
		"dir":   fs.ModeDir | 0o755,
		"file":  0o644,
		"link":  fs.ModeSymlink | 0o777,
		"pipe":  fs.ModeNamedPipe | 0o600,
		"other": fs.ModeDir | 0o700,
	})

	assertNames(t, Arrange(raw, nil, Options{DirectoriesOnly: true}), "dir", "other")
	assertNames(t, Arrange(raw, nil, Options{FilesOnly: true}), "file")
	// directories-only wins when both are set
	assertNames(t, Arrange(raw, nil, Options{DirectoriesOnly: true, FilesOnly: true}), "dir", "other")
	assertNames(t, Arrange(raw, nil, Options{}), "dir", "file", "link", "other", "pipe")
}

func TestArrangeSortsByBytes(t *testing.T) {
	b := newTestBuilder(t)
	raw := fakeEntries(b, map[string]fs.FileMode{"b": 0o644, "B": 0o644, "a": 0o644, "Z": 0o644, "é": 0o644})

	assertNames(t, Arrange(raw, nil, Options{}), "B", "Z", "a", "b", "é")
}

func TestArrangeKeepsInputOrderForEqualNames(t *testing.T) {
	b := newTestBuilder(t)
	file := fakeInfo{name: "same", mode: 0o644}

	tests := []struct {
		name  string
		paths []string
	}{
		{"ascending paths", []string{"/one/same", "/two/same", "/three/same"}},
		{"descending paths", []string{"/c/same", "/b/same", "/a/same"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []*entry.Entry{b.FromInfo("/z/zeta", "zeta", fakeInfo{name: "zeta", mode: 0o644})}
			for _, p := range tt.paths {
				raw = append(raw, b.FromInfo(p, "same", file))
			}
			raw = append(raw, b.FromInfo("/a/alpha", "alpha", fakeInfo{name: "alpha", mode: 0o644}))

			got := Arrange(raw, nil, Options{})
			assertNames(t, got, "alpha", "same", "same", "same", "zeta")
			for i, p := range tt.paths {
				if got[i+1].Path() != p {
					t.Errorf("Position %d: expected %s, got %s", i+1, p, got[i+1].Path())
				}
			}
		})
	}
}

func TestListDirectory(t *testing.T) {
	tree := testfs.New(t)
	tree.Standard()
	l := NewLister(newTestBuilder(t))

	got, err := l.List(tree.Root, Options{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	assertNames(t, got, "Dockerfile", "README.md", "docs", "notes.xyz", "package-lock.json", "readme-link", "run.sh", "src")

	got, err = l.List(tree.Root, Options{All: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	assertNames(t, got, ".", "..", ".env", ".git", "Dockerfile", "README.md", "docs", "notes.xyz", "package-lock.json", "readme-link", "run.sh", "src")

	if got[0].Path() != tree.Root {
		t.Errorf("Expected . to point at %s, got %s", tree.Root, got[0].Path())
	}
	if got[1].Path() != filepath.Dir(tree.Root) {
		t.Errorf("Expected .. to point at %s, got %s", filepath.Dir(tree.Root), got[1].Path())
	}
}

func TestListFilters(t *testing.T) {
	tree := testfs.New(t)
	tree.Standard()
	l := NewLister(newTestBuilder(t))

	dirs, err := l.List(tree.Root, Options{DirectoriesOnly: true, AlmostAll: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	assertNames(t, dirs, ".git", "docs", "src")

	files, err := l.List(tree.Root, Options{FilesOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	assertNames(t, files, "Dockerfile", "README.md", "notes.xyz", "package-lock.json", "run.sh")
}

func TestListFileTarget(t *testing.T) {
	tree := testfs.New(t)
	path := tree.File("single.go", "package x\n", 0644)

	got, err := NewLister(newTestBuilder(t)).List(path, Options{DirectoriesOnly: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	assertNames(t, got, "single.go")
}

func TestListMissingTarget(t *testing.T) {
	_, err := NewLister(newTestBuilder(t)).List(filepath.Join(t.TempDir(), "nope"), Options{})
	if !errors.Is(err, entry.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	tree := testfs.New(t)
	locked := tree.Dir("locked")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	defer func() { _ = os.Chmod(locked, 0755) }()

	_, err := NewLister(newTestBuilder(t)).List(locked, Options{})
	if !errors.Is(err, entry.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestListVanishedChild(t *testing.T) {
	tree := testfs.New(t)
	tree.File("keep.txt", "x", 0644)

	l := NewLister(newTestBuilder(t))
	l.readDir = func(path string) ([]fs.DirEntry, error) {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		// report a child that no longer exists
		if err := os.Remove(filepath.Join(path, "keep.txt")); err != nil {
			return nil, err
		}
		return entries, nil
	}

	_, err := l.List(tree.Root, Options{})
	if !errors.Is(err, entry.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a vanished child, got %v", err)
	}
}
