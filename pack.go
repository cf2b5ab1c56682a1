// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// packedItem stores one add-list item resolved to an archive entry.
type packedItem struct {
	sourcePath string
	entryPath  string
	size       int64
	replaced   bool
}

// Pack adds or replaces text files from opts.SourceRoot in the archive at
// archivePath, creating the archive when it does not exist. Items are handled
// in order; progress is reported once per item through opts.Progress.
// Nothing is written when any item fails or progress asks to stop.
// With FlagMoveFiles, sources are removed after the archive was saved.
func Pack(ctx context.Context, archivePath string, addList []string, opts PackOptions) (*PackResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	if opts.Flags.Has(FlagEncrypt) {
		return nil, fmt.Errorf("%w: encryption", ErrNotSupported)
	}

	opts.applyDefaults()
	moveOriginals := opts.Flags.Has(FlagMoveFiles)

	filter, err := newPackFilter(opts.Filter, opts.FilterMatcherOptions)
	if err != nil {
		return nil, err
	}

	doc, err := loadOrCreate(archivePath)
	if err != nil {
		return nil, err
	}

	res := &PackResult{}
	packed := make([]packedItem, 0, len(addList))
	for _, item := range addList {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAborted, err)
		}

		if !filter.Accept(item) {
			opts.Logger.Debug("item skipped by filter", "item", item)
			res.Skipped++
			continue
		}

		done, err := packItem(doc, item, opts)
		if err != nil {
			return nil, err
		}

		if done.replaced {
			res.Replaced++
		} else {
			res.Added++
		}
		res.Bytes += done.size
		packed = append(packed, done)

		opts.Logger.Debug("entry packed", "entry", done.entryPath, "bytes", done.size, "replaced", done.replaced)

		if !opts.Progress.Report(done.entryPath, done.size) {
			return nil, fmt.Errorf("%w: after %s", ErrAborted, done.entryPath)
		}
	}

	if err := Save(doc, archivePath); err != nil {
		return nil, err
	}

	if moveOriginals {
		for _, done := range packed {
			if err := os.Remove(done.sourcePath); err != nil {
				return nil, fmt.Errorf("%w: remove source %s: %w", ErrOpen, done.sourcePath, err)
			}
		}
	}

	res.BoundaryLength = doc.BoundaryLength()
	res.Duration = time.Since(start)
	opts.Logger.Info("archive packed",
		"archive", archivePath,
		"added", res.Added,
		"replaced", res.Replaced,
		"skipped", res.Skipped,
		"boundary", res.BoundaryLength,
	)

	return res, nil
}

// packItem reads one source and installs it as a file entry.
func packItem(doc *Document, item string, opts PackOptions) (packedItem, error) {
	sourcePath := filepath.Join(opts.SourceRoot, ToHostPath(ToArchivePath(item)))
	content, err := readTextFile(sourcePath)
	if err != nil {
		return packedItem{}, err
	}

	entryPath, err := packEntryPath(item, opts.SubPath, opts.Flags.Has(FlagSavePaths))
	if err != nil {
		return packedItem{}, err
	}

	replaced, err := doc.PutFile(entryPath, content)
	if err != nil {
		return packedItem{}, fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}

	return packedItem{
		sourcePath: sourcePath,
		entryPath:  entryPath,
		size:       int64(len(content)),
		replaced:   replaced,
	}, nil
}

// packEntryPath derives archive path for add-list item.
// savePaths set keeps only the final segment; subPath prefixes the result.
func packEntryPath(item string, subPath string, savePaths bool) (string, error) {
	entryPath := ToArchivePath(item)
	if savePaths {
		entryPath = BaseName(entryPath)
	}

	if subPath != "" {
		entryPath = JoinPath(ToArchivePath(subPath), entryPath)
	}

	return ParsePath(entryPath)
}

// loadOrCreate loads archive or returns new empty document when path is absent.
func loadOrCreate(archivePath string) (*Document, error) {
	exists, err := fileExists(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, archivePath, err)
	}

	if !exists {
		return NewDocument(DefaultBoundaryLength), nil
	}

	return Load(archivePath)
}
