// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractFilePerm is permission for newly created output files.
const extractFilePerm = 0o644

// ExtractFileMode controls output file open behavior in ExtractAll.
type ExtractFileMode string

// Output file creation policies.
const (
	// ExtractFileModeTruncate opens existing files with truncate and creates missing files.
	ExtractFileModeTruncate ExtractFileMode = "truncate"
	// ExtractFileModeCreateOnly creates files only when absent and fails on existing files.
	ExtractFileModeCreateOnly ExtractFileMode = "create_only"
)

// ExtractOptions configures ExtractAll.
type ExtractOptions struct {
	// OnEntryDone is called after one entry is written.
	OnEntryDone func(header Header, outputPath string) `json:"-" yaml:"-"`
	// FileMode controls output file creation policy; default truncate.
	FileMode ExtractFileMode `json:"file_mode,omitempty" yaml:"file_mode,omitempty"`
}

// Extract writes content of the current entry to destName, joined under
// destDir when destDir is not empty. Directory entries and bodiless files
// produce an empty file. destName is required.
func (s *Session) Extract(destDir string, destName string) error {
	if s.closed {
		return ErrClosed
	}

	path, entry, ok := s.current()
	if !ok {
		return ErrEndArchive
	}

	if destName == "" {
		return fmt.Errorf("%w: extraction without destination name", ErrNotSupported)
	}

	outPath := destName
	if destDir != "" {
		outPath = filepath.Join(destDir, destName)
	}

	written, err := writeExtractFile(outPath, entry.Content(), ExtractFileModeTruncate)
	if err != nil {
		return err
	}

	s.logger.Debug("entry extracted", "entry", path, "output", outPath, "bytes", written)

	if !reportScoped(s.progress, s.global, path, written) {
		return fmt.Errorf("%w: after %s", ErrAborted, path)
	}

	return nil
}

// ExtractAll walks the remaining entries and writes them below dstDir,
// creating directories for directory entries and parent paths.
func (s *Session) ExtractAll(ctx context.Context, dstDir string, opts ExtractOptions) error {
	if s.closed {
		return ErrClosed
	}

	fileMode := opts.FileMode
	if fileMode == "" {
		fileMode = ExtractFileModeTruncate
	}

	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}

	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return fmt.Errorf("%w: output dir %s: %w", ErrCreate, dstRootAbs, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrAborted, err)
		}

		header, err := s.Next()
		if errors.Is(err, ErrEndArchive) {
			return nil
		}
		if err != nil {
			return err
		}

		relPath, err := normalizeExtractEntryPath(header.Path)
		if err != nil {
			return fmt.Errorf("normalize entry path %s: %w", header.Path, err)
		}

		outPath := filepath.Join(dstRootAbs, filepath.FromSlash(relPath))
		if header.Dir {
			if err := os.MkdirAll(outPath, 0o750); err != nil {
				return fmt.Errorf("%w: directory %s: %w", ErrCreate, outPath, err)
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
				return fmt.Errorf("%w: directory %s: %w", ErrCreate, filepath.Dir(outPath), err)
			}

			written, err := writeExtractFile(outPath, header.Entry.Content(), fileMode)
			if err != nil {
				return err
			}

			if !reportScoped(s.progress, s.global, header.Path, written) {
				return fmt.Errorf("%w: after %s", ErrAborted, header.Path)
			}
		}

		if opts.OnEntryDone != nil {
			opts.OnEntryDone(header, outPath)
		}
	}
}

// writeExtractFile writes content to path according to file mode.
func writeExtractFile(path string, content string, mode ExtractFileMode) (int64, error) {
	file, err := openExtractFile(path, mode)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrCreate, path, err)
	}

	n, writeErr := io.WriteString(file, content)
	closeErr := file.Close()
	if writeErr != nil {
		return int64(n), fmt.Errorf("%w: %s: %w", ErrWrite, path, writeErr)
	}

	if closeErr != nil {
		return int64(n), fmt.Errorf("%w: close %s: %w", ErrWrite, path, closeErr)
	}

	return int64(n), nil
}

// openExtractFile opens output path according to selected extract file mode.
func openExtractFile(path string, mode ExtractFileMode) (*os.File, error) {
	switch mode {
	case ExtractFileModeTruncate:
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, extractFilePerm)
	case ExtractFileModeCreateOnly:
		return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, extractFilePerm)
	default:
		return nil, fmt.Errorf("unknown extract file mode %q", mode)
	}
}

// normalizeExtractEntryPath normalizes entry path and rejects absolute/traversal inputs.
func normalizeExtractEntryPath(entryPath string) (string, error) {
	raw := strings.TrimSpace(entryPath)
	if raw == "" {
		return "", ErrInvalidEntryPath
	}
	if strings.ContainsRune(raw, 0) {
		return "", ErrInvalidEntryPath
	}
	if strings.HasPrefix(raw, `/`) || strings.HasPrefix(raw, `\`) {
		return "", ErrInvalidEntryPath
	}

	raw = strings.ReplaceAll(raw, `\`, `/`)
	if hasWindowsAbsDrivePrefix(raw) {
		return "", ErrInvalidEntryPath
	}

	parts := strings.Split(raw, `/`)
	cleanParts := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", ErrInvalidEntryPath
		default:
			cleanParts = append(cleanParts, part)
		}
	}
	if len(cleanParts) == 0 {
		return "", ErrInvalidEntryPath
	}

	return strings.Join(cleanParts, `/`), nil
}

// hasWindowsAbsDrivePrefix reports whether path starts with drive-root prefix like C:/.
func hasWindowsAbsDrivePrefix(path string) bool {
	if len(path) < 3 {
		return false
	}

	return isASCIIAlpha(path[0]) && path[1] == ':' && path[2] == '/'
}

// isASCIIAlpha reports whether byte is ASCII latin letter.
func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
