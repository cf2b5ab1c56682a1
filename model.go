// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/woozymasta/pathrules"
)

// PackFlags select pack behavior; values match archiver host PK_PACK_* bits.
type PackFlags uint32

// Pack flag bits.
const (
	// FlagMoveFiles deletes each source file after it was added.
	FlagMoveFiles PackFlags = 1 << iota
	// FlagSavePaths is the host "save paths" bit. When set, entry paths are
	// reduced to their final segment.
	FlagSavePaths
	// FlagEncrypt requests encryption and is always rejected.
	FlagEncrypt
)

// Has reports whether all bits of flag are set.
func (f PackFlags) Has(flag PackFlags) bool {
	return f&flag == flag
}

// Operation is a per-entry action requested by the host after Next.
type Operation int

// Entry operations; values match archiver host PK_SKIP/PK_TEST/PK_EXTRACT.
const (
	OpSkip Operation = iota
	OpTest
	OpExtract
)

// Header describes the entry last returned by Session.Next.
type Header struct {
	// ModTime is the archive modification time; HRX has no per-entry times.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	// Entry is the underlying archive entry; owned by the session document.
	Entry *Entry `json:"-" yaml:"-"`
	// Path is the archive path with "/" separators.
	Path string `json:"path" yaml:"path"`
	// Size is body length in bytes; zero for directories and bodiless files.
	Size int64 `json:"size" yaml:"size"`
	// Dir reports a directory entry.
	Dir bool `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// SessionOptions configures Open.
type SessionOptions struct {
	// Progress is the process-wide registry consulted when the session has
	// no own callback. Nil means none.
	Progress *Progress `json:"-" yaml:"-"`
	// Logger receives debug events; nil disables logging.
	Logger *log.Logger `json:"-" yaml:"-"`
}

// PackOptions configures Pack.
type PackOptions struct {
	// Progress is the process-wide registry used for per-entry reports.
	// Nil behaves as an empty registry with default policy.
	Progress *Progress `json:"-" yaml:"-"`
	// Logger receives debug events; nil disables logging.
	Logger *log.Logger `json:"-" yaml:"-"`
	// SubPath is prefixed to every entry path; empty means archive root.
	SubPath string `json:"sub_path,omitempty" yaml:"sub_path,omitempty"`
	// SourceRoot is joined with every add-list item to locate source files.
	SourceRoot string `json:"source_root,omitempty" yaml:"source_root,omitempty"`
	// Filter holds ordered include/exclude rules evaluated on add-list items.
	// Empty rule set accepts every item.
	Filter []pathrules.Rule `json:"filter,omitempty" yaml:"filter,omitempty"`
	// FilterMatcherOptions control filter rule matching.
	FilterMatcherOptions pathrules.MatcherOptions `json:"filter_matcher_options,omitzero" yaml:"filter_matcher_options,omitzero"`
	// Flags select move/save-paths/encrypt behavior.
	Flags PackFlags `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// PackResult contains pack statistics.
type PackResult struct {
	// Added is number of new entries appended to archive.
	Added int `json:"added" yaml:"added"`
	// Replaced is number of existing entries overwritten in place.
	Replaced int `json:"replaced" yaml:"replaced"`
	// Skipped is number of add-list items rejected by Filter.
	Skipped int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	// Bytes is total content length added.
	Bytes int64 `json:"bytes" yaml:"bytes"`
	// BoundaryLength is the boundary length of the written archive.
	BoundaryLength int `json:"boundary_length" yaml:"boundary_length"`
	// Duration is end-to-end pack duration.
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// RemoveOptions configures Remove.
type RemoveOptions struct {
	// Progress is the process-wide registry used for per-entry reports.
	Progress *Progress `json:"-" yaml:"-"`
	// Logger receives debug events; nil disables logging.
	Logger *log.Logger `json:"-" yaml:"-"`
}

// RemoveResult contains remove statistics.
type RemoveResult struct {
	// Removed is number of deleted entries.
	Removed int `json:"removed" yaml:"removed"`
	// Bytes is total content length removed.
	Bytes int64 `json:"bytes" yaml:"bytes"`
	// BoundaryLength is the boundary length of the written archive.
	BoundaryLength int `json:"boundary_length" yaml:"boundary_length"`
}

// applyDefaults fills zero-valued session options with defaults.
func (opts *SessionOptions) applyDefaults() {
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
}

// applyDefaults fills zero-valued pack options with defaults.
func (opts *PackOptions) applyDefaults() {
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	if opts.Progress == nil {
		opts.Progress = NewProgress(ProgressOptions{})
	}

	if opts.FilterMatcherOptions == (pathrules.MatcherOptions{}) {
		opts.FilterMatcherOptions = pathrules.MatcherOptions{
			DefaultAction: pathrules.ActionInclude,
		}
	}

	if opts.FilterMatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.FilterMatcherOptions.DefaultAction = pathrules.ActionInclude
	}
}

// applyDefaults fills zero-valued remove options with defaults.
func (opts *RemoveOptions) applyDefaults() {
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	if opts.Progress == nil {
		opts.Progress = NewProgress(ProgressOptions{})
	}
}

// discardLogger returns logger writing nowhere.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
