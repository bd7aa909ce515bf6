// Package scheme reads and writes electron documents in the .esch format, a
// nested s-expression file with one (element …) or (wire …) node per tree
// node.
package scheme

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/sexp"
)

const (
	// FormatVersion is the (version N) this package writes and accepts
	FormatVersion = 1
	// Generator is written into (generator "…")
	Generator = "ote"
	// Extension is the conventional file suffix
	Extension = ".esch"
)

// Scheme is the file-backed electron.Scheme
type Scheme struct{}

var _ electron.Scheme = (*Scheme)(nil)

// New returns a Scheme
func New() *Scheme {
	return &Scheme{}
}

// NewScheme returns an empty document
func (s *Scheme) NewScheme() *electron.Tree {
	return electron.NewTree()
}

// LoadFromFile reads the document at path
func (s *Scheme) LoadFromFile(path string) (*electron.Tree, error) {
	return ParseFile(path)
}

// SaveToFile writes t to path
func (s *Scheme) SaveToFile(path string, t *electron.Tree) error {
	return WriteFile(path, t)
}

// ParseFile reads and parses a scheme file
func ParseFile(filename string) (*electron.Tree, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	t, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// WriteFile writes t to filename. The file is written next to its target
// and renamed into place so a failed save leaves the old file intact. An
// existing file keeps its permissions; a new one gets 0644.
func WriteFile(filename string, t *electron.Tree) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(filename); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), ".ote-*"+Extension)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(tmp, t); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}

// Write serializes t to w
func Write(w io.Writer, t *electron.Tree) error {
	if err := sexp.NewWriter(w).Write(Encode(t)); err != nil {
		return fmt.Errorf("failed to write scheme: %w", err)
	}
	return nil
}
