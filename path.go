// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"fmt"
	"os"
	"strings"
)

// ToArchivePath converts host separators ("\" and the OS separator) to "/".
// No cleaning is done; ParsePath decides whether the result is storable.
func ToArchivePath(hostPath string) string {
	if os.PathSeparator != '/' && os.PathSeparator != '\\' {
		hostPath = strings.ReplaceAll(hostPath, string(os.PathSeparator), "/")
	}

	return strings.ReplaceAll(hostPath, `\`, "/")
}

// ToHostPath converts archive path to OS separators.
func ToHostPath(archivePath string) string {
	if os.PathSeparator == '/' {
		return archivePath
	}

	return strings.ReplaceAll(archivePath, "/", string(os.PathSeparator))
}

// ToBackslashPath converts archive path to "\" separators used by archiver hosts.
func ToBackslashPath(archivePath string) string {
	return strings.ReplaceAll(archivePath, "/", `\`)
}

// ParsePath validates s as a storable entry path and returns it.
// Violations wrap ErrUnknownFormat.
func ParsePath(s string) (string, error) {
	if err := validateEntryPath(s); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}

	return s, nil
}

// BaseName returns content after the last "/".
func BaseName(archivePath string) string {
	if idx := strings.LastIndexByte(archivePath, '/'); idx >= 0 {
		return archivePath[idx+1:]
	}

	return archivePath
}

// JoinPath joins archive path segments with "/".
func JoinPath(parts ...string) string {
	return strings.Join(parts, "/")
}

// validateEntryPath checks HRX path grammar: "/"-separated components that are
// neither empty, "." nor "..", and contain no control chars, ":" or "\".
func validateEntryPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidEntryPath)
	}

	for _, component := range strings.Split(path, "/") {
		switch component {
		case "":
			return fmt.Errorf("%w: empty component in %q", ErrInvalidEntryPath, path)
		case ".", "..":
			return fmt.Errorf("%w: %q component in %q", ErrInvalidEntryPath, component, path)
		}

		for _, r := range component {
			if !isPathRune(r) {
				return fmt.Errorf("%w: character %U in %q", ErrInvalidEntryPath, r, path)
			}
		}
	}

	return nil
}

// isPathRune reports whether r may appear in a path component.
func isPathRune(r rune) bool {
	switch {
	case r <= 0x1f, r == 0x7f:
		return false
	case r == '/', r == ':', r == '\\':
		return false
	default:
		return true
	}
}
