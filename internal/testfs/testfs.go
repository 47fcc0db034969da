// Package testfs builds throwaway directory trees for tests.
package testfs

import (
	"os"
	"path/filepath"
	"testing"
)

// Tree is a temporary directory that tests populate with fixtures.
type Tree struct {
	Root string
	t    testing.TB
}

// New creates an empty tree which is removed when the test ends. Root is
// resolved through symlinks so it compares equal to canonicalized paths.
func New(t testing.TB) *Tree {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	return &Tree{Root: root, t: t}
}

// Path joins rel onto the tree root.
func (m *Tree) Path(rel string) string {
	return filepath.Join(m.Root, rel)
}

// Dir creates a directory and its parents.
func (m *Tree) Dir(rel string) string {
	m.t.Helper()
	full := m.Path(rel)
	if err := os.MkdirAll(full, 0755); err != nil {
		m.t.Fatalf("Failed to create directory %s: %v", rel, err)
	}
	return full
}

// File creates a file with the given content and permissions.
func (m *Tree) File(rel, content string, perm os.FileMode) string {
	m.t.Helper()
	full := m.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		m.t.Fatalf("Failed to create parent dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), perm); err != nil {
		m.t.Fatalf("Failed to create file %s: %v", rel, err)
	}
	// WriteFile is subject to umask
	if err := os.Chmod(full, perm); err != nil {
		m.t.Fatalf("Failed to chmod %s: %v", rel, err)
	}
	return full
}

// Symlink creates linkRel pointing at the absolute path of targetRel.
func (m *Tree) Symlink(targetRel, linkRel string) string {
	m.t.Helper()
	full := m.Path(linkRel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		m.t.Fatalf("Failed to create parent dir for symlink %s: %v", linkRel, err)
	}
	if err := os.Symlink(m.Path(targetRel), full); err != nil {
		m.t.Fatalf("Failed to create symlink %s -> %s: %v", linkRel, targetRel, err)
	}
	return full
}

// Standard lays out a small project: visible and hidden files, a few
// directories, an executable and a symlink.
func (m *Tree) Standard() {
	m.Dir("src")
	m.Dir("docs")
	m.Dir(".git")
	m.File("src/main.go", "package main\n", 0644)
	m.File("README.md", "# demo\n", 0644)
	m.File("package-lock.json", "{}\n", 0644)
	m.File("Dockerfile", "FROM scratch\n", 0644)
	m.File("notes.xyz", "?", 0644)
	m.File("run.sh", "#!/bin/sh\n", 0755)
	m.File(".env", "KEY=value\n", 0600)
	m.Symlink("README.md", "readme-link")
}
