// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// defaultArchiveMode is used for archives that did not exist before Save.
const defaultArchiveMode fs.FileMode = 0o644

// Save widens the boundary when needed and writes doc to path.
// Output goes to a temporary file renamed over path, so the previous archive
// stays intact when any step fails. Errors wrap ErrCreate or ErrWrite.
func Save(doc *Document, path string) error {
	EnsureBoundary(doc)

	mode := defaultArchiveMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCreate, path, err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := doc.Serialize(tmp); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", ErrWrite, path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrWrite, path, err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", ErrWrite, path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", ErrWrite, path, err)
	}

	committed = true
	return nil
}

// EnsureBoundary grows boundary length one step at a time until no content
// collides with it, commits the value and returns it.
func EnsureBoundary(doc *Document) int {
	if doc.ValidateContent() == nil {
		return doc.BoundaryLength()
	}

	n := doc.BoundaryLength() + 1
	for doc.SetBoundaryLength(n) != nil {
		n++
	}

	return n
}

// fileExists reports whether path names an existing file.
func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}
