// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Load reads and parses archive at path.
// Errors wrap ErrOpen, ErrRead, ErrDecode or ErrBadArchive.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	doc, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return doc, nil
}

// LoadReader reads and parses archive text from r.
// A leading UTF-8 byte order mark is ignored.
func LoadReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	text, err := decodeArchiveText(data)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadArchive, err)
	}

	return doc, nil
}

// IsArchive reports whether path holds a parseable HRX archive with at least one entry.
func IsArchive(path string) bool {
	doc, err := Load(path)
	return err == nil && doc.Len() > 0
}

// readTextFile reads a whole source file that must be valid UTF-8.
// Content is returned verbatim, including any byte order mark.
func readTextFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s", ErrDecode, path)
	}

	return string(data), nil
}

// decodeArchiveText validates UTF-8 and strips optional BOM.
func decodeArchiveText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrDecode
	}

	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return string(out), nil
}
