// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"context"
	"fmt"
	"strings"
)

// dirContentSuffix marks a host request to delete a directory with all its content.
const dirContentSuffix = "/*.*"

// Remove deletes entries named in deleteList from archive at archivePath.
// Items are exact archive paths in host or archive separators; an item ending
// with "\*.*" removes the directory entry and everything below it, unless an
// entry with that exact path exists.
// A missing item fails with ErrNoFiles. Nothing is written on any error.
func Remove(ctx context.Context, archivePath string, deleteList []string, opts RemoveOptions) (*RemoveResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts.applyDefaults()

	doc, err := Load(archivePath)
	if err != nil {
		return nil, err
	}

	res := &RemoveResult{}
	for _, item := range deleteList {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAborted, err)
		}

		target := ToArchivePath(item)
		removed, err := removeItem(doc, target)
		if err != nil {
			return nil, err
		}

		var size int64
		for _, n := range removed {
			size += n
		}
		res.Removed += len(removed)
		res.Bytes += size

		opts.Logger.Debug("entry removed", "entry", target, "entries", len(removed), "bytes", size)

		if !opts.Progress.Report(target, size) {
			return nil, fmt.Errorf("%w: after %s", ErrAborted, target)
		}
	}

	if err := Save(doc, archivePath); err != nil {
		return nil, err
	}

	res.BoundaryLength = doc.BoundaryLength()
	opts.Logger.Info("archive modified", "archive", archivePath, "removed", res.Removed)

	return res, nil
}

// removeItem deletes exact path or directory subtree and returns removed sizes.
// An entry named exactly target wins over the directory content suffix.
func removeItem(doc *Document, target string) ([]int64, error) {
	if entry, ok := doc.Delete(target); ok {
		return []int64{entry.Size()}, nil
	}

	if prefix, ok := strings.CutSuffix(target, dirContentSuffix); ok {
		return removeDir(doc, prefix)
	}

	return nil, fmt.Errorf("%w: %q", ErrNoFiles, target)
}

// removeDir deletes prefix entry and every entry below prefix.
func removeDir(doc *Document, prefix string) ([]int64, error) {
	var matched []string
	doc.Walk(func(path string, _ *Entry) bool {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			matched = append(matched, path)
		}

		return true
	})

	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoFiles, prefix)
	}

	sizes := make([]int64, 0, len(matched))
	for _, path := range matched {
		entry, _ := doc.Delete(path)
		sizes = append(sizes, entry.Size())
	}

	return sizes, nil
}
