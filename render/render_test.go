package render

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mordilloSan/bls/config"
	"github.com/mordilloSan/bls/entry"
	"github.com/mordilloSan/bls/icons"
	"github.com/mordilloSan/bls/internal/testfs"
)

type stubNames struct {
	userErr  error
	groupErr error
}

func (s stubNames) UserName(uint32) (string, error) {
	if s.userErr != nil {
		return "", s.userErr
	}
	return "alice", nil
}

func (s stubNames) GroupName(uint32) (string, error) {
	if s.groupErr != nil {
		return "", s.groupErr
	}
	return "staff", nil
}

func loadScheme(t *testing.T) (*config.Tables, config.ColorScheme) {
	t.Helper()
	tables, err := config.Default()
	if err != nil {
		t.Fatalf("Failed to load tables: %v", err)
	}
	scheme, err := tables.Scheme(config.ThemeLight)
	if err != nil {
		t.Fatalf("Failed to load scheme: %v", err)
	}
	return tables, scheme
}

func buildEntries(t *testing.T, tree *testfs.Tree, rels ...string) []*entry.Entry {
	t.Helper()
	tables, scheme := loadScheme(t)
	b := entry.NewBuilder(icons.NewClassifier(tables), scheme)
	out := make([]*entry.Entry, 0, len(rels))
	for _, rel := range rels {
		e, err := b.Build(tree.Path(rel), "")
		if err != nil {
			t.Fatalf("Build %s failed: %v", rel, err)
		}
		out = append(out, e)
	}
	return out
}

func TestRenderInline(t *testing.T) {
	tree := testfs.New(t)
	tree.Standard()
	entries := buildEntries(t, tree, "README.md", "src", "notes.xyz")
	_, scheme := loadScheme(t)

	var buf bytes.Buffer
	r := NewRenderer(NewPainter(&buf, ColorNever), scheme, stubNames{})
	if err := r.Render(&buf, entries, InlineConfig()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := entries[0].Icon() + "  README.md " +
		entries[1].Icon() + "  src/ " +
		config.DefaultFileIcon + "  notes.xyz\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestRenderInlineSeparator(t *testing.T) {
	tree := testfs.New(t)
	tree.Standard()
	entries := buildEntries(t, tree, "docs", "run.sh")
	_, scheme := loadScheme(t)

	var buf bytes.Buffer
	r := NewRenderer(NewPainter(&buf, ColorNever), scheme, stubNames{}).WithInlineSeparator("\n")
	if err := r.Render(&buf, entries, InlineConfig()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", buf.String())
	}
	if !strings.HasSuffix(lines[0], "  docs/") || !strings.HasSuffix(lines[1], "  run.sh") {
		t.Errorf("Unexpected lines %q", lines)
	}
}

func TestRenderInlineEmpty(t *testing.T) {
	_, scheme := loadScheme(t)
	var buf bytes.Buffer
	r := NewRenderer(NewPainter(&buf, ColorNever), scheme, stubNames{})
	if err := r.Render(&buf, nil, InlineConfig()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}

func TestRenderDetailed(t *testing.T) {
	tree := testfs.New(t)
	path := tree.File("main.go", "package main\n", 0644)
	modified := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)
	if err := os.Chtimes(path, modified, modified); err != nil {
		t.Fatalf("Failed to set times: %v", err)
	}
	entries := buildEntries(t, tree, "main.go")
	if !entries[0].Details().Valid {
		t.Skip("no stat data on this platform")
	}
	_, scheme := loadScheme(t)

	tests := []struct {
		name     string
		cols     Columns
		expected []string
	}{
		{
			name:     "all columns",
			cols:     AllColumns(),
			expected: []string{"rw-r--r--", "1", "alice", "staff", "13", "Tue Mar  5 14:07:09 2024", entries[0].Icon() + "  main.go"},
		},
		{
			name:     "no owner",
			cols:     Columns{Permissions: true, LinkCount: true, Group: true, Size: true, ModifiedDate: true},
			expected: []string{"rw-r--r--", "1", "staff", "13", "Tue Mar  5 14:07:09 2024", entries[0].Icon() + "  main.go"},
		},
		{
			name:     "name only",
			cols:     Columns{},
			expected: []string{entries[0].Icon() + "  main.go"},
		},
		{
			name:     "human size",
			cols:     Columns{Size: true, HumanSize: true},
			expected: []string{"13 B", entries[0].Icon() + "  main.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewRenderer(NewPainter(&buf, ColorNever), scheme, stubNames{})
			if err := r.Render(&buf, entries, DetailedConfig(tt.cols)); err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			expected := strings.Join(tt.expected, "\t") + "\n"
			if buf.String() != expected {
				t.Errorf("Expected %q, got %q", expected, buf.String())
			}
		})
	}
}

func TestRenderDetailedLookupFailure(t *testing.T) {
	tree := testfs.New(t)
	tree.Standard()
	entries := buildEntries(t, tree, "README.md", "src")
	if !entries[0].Details().Valid {
		t.Skip("no stat data on this platform")
	}
	_, scheme := loadScheme(t)
	lookupErr := errors.New("unknown group id")

	var buf bytes.Buffer
	r := NewRenderer(NewPainter(&buf, ColorNever), scheme, stubNames{groupErr: lookupErr})
	err := r.Render(&buf, entries, DetailedConfig(AllColumns()))
	if err == nil {
		t.Fatal("Expected lookup error, got nil")
	}
	if !errors.Is(err, lookupErr) {
		t.Errorf("Expected the lookup error to be wrapped, got %v", err)
	}
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Errorf("Expected a *RowError, got %T", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected failing rows to be skipped, got %q", buf.String())
	}

	// the failing lookup is never consulted when its column is off
	buf.Reset()
	cols := AllColumns()
	cols.Group = false
	if err := r.Render(&buf, entries, DetailedConfig(cols)); err != nil {
		t.Errorf("Expected no error without group column, got %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("Expected 2 rows, got %q", buf.String())
	}
}

func TestInlineConfigHasNoColumns(t *testing.T) {
	cfg := InlineConfig()
	if cfg.Mode() != Inline {
		t.Errorf("Expected inline mode, got %s", cfg.Mode())
	}
	if cfg.Columns() != (Columns{}) {
		t.Errorf("Expected no columns, got %+v", cfg.Columns())
	}
	if DetailedConfig(AllColumns()).Mode() != Detailed {
		t.Error("Expected detailed mode")
	}
}

func TestRenderColoredName(t *testing.T) {
	tree := testfs.New(t)
	tree.Standard()
	entries := buildEntries(t, tree, "run.sh")
	_, scheme := loadScheme(t)

	var buf bytes.Buffer
	p := NewPainter(&buf, ColorAlways)
	if err := NewRenderer(p, scheme, stubNames{}).Render(&buf, entries, InlineConfig()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), p.Paint("run.sh", scheme.ExecutableFile)) {
		t.Errorf("Expected name painted with the executable color, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("Expected escape sequences, got %q", buf.String())
	}
}
