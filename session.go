// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Session is one opened archive: its document, modification time, instance
// progress callbacks and a forward-only entry cursor.
// A Session is not safe for concurrent use; callers serialize calls.
type Session struct {
	// modTime is archive mtime captured at open, used as every entry time.
	modTime time.Time
	// doc is the parsed archive owned by this session.
	doc *Document
	// cursor is created on first Next.
	cursor *cursor
	// progress holds instance-scoped callbacks.
	progress *Progress
	// global is the process-wide fallback registry.
	global *Progress
	logger *log.Logger
	path   string
	closed bool
}

// Open loads archive at path into a new session.
func Open(path string) (*Session, error) {
	return OpenWithOptions(path, SessionOptions{})
}

// OpenWithOptions loads archive at path into a new session using explicit options.
func OpenWithOptions(path string, opts SessionOptions) (*Session, error) {
	opts.applyDefaults()

	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	modTime := time.Now()
	if info, err := os.Stat(path); err == nil {
		modTime = info.ModTime()
	}

	opts.Logger.Debug("archive opened", "path", path, "entries", doc.Len(), "boundary", doc.BoundaryLength())

	return &Session{
		doc:      doc,
		modTime:  modTime,
		progress: NewProgress(ProgressOptions{}),
		global:   opts.Progress,
		logger:   opts.Logger,
		path:     path,
	}, nil
}

// Path returns archive path the session was opened from.
func (s *Session) Path() string {
	return s.path
}

// ModTime returns archive modification time captured at open.
func (s *Session) ModTime() time.Time {
	return s.modTime
}

// Document returns the session document, or nil after Close.
func (s *Session) Document() *Document {
	return s.doc
}

// SetProgress registers instance callback in slot kind.
func (s *Session) SetProgress(kind CallbackKind, fn ProgressFunc) error {
	if s.closed {
		return ErrClosed
	}

	return s.progress.Set(kind, fn)
}

// Next advances to the next entry in document order. After the last entry it
// returns ErrEndArchive, and keeps returning it.
func (s *Session) Next() (Header, error) {
	if s.closed {
		return Header{}, ErrClosed
	}

	if s.cursor == nil {
		s.cursor = newCursor(s.doc)
	}

	path, entry, ok := s.cursor.next()
	if !ok {
		return Header{}, ErrEndArchive
	}

	return Header{
		Path:    path,
		Entry:   entry,
		Size:    entry.Size(),
		ModTime: s.modTime,
		Dir:     entry.IsDir(),
	}, nil
}

// Current returns header of the entry selected by the last Next call.
func (s *Session) Current() (Header, error) {
	if s.closed {
		return Header{}, ErrClosed
	}

	path, entry, ok := s.current()
	if !ok {
		return Header{}, ErrEndArchive
	}

	return Header{
		Path:    path,
		Entry:   entry,
		Size:    entry.Size(),
		ModTime: s.modTime,
		Dir:     entry.IsDir(),
	}, nil
}

// Process applies host operation to the current entry. Skip and test succeed
// without touching storage.
func (s *Session) Process(op Operation, destDir string, destName string) error {
	if s.closed {
		return ErrClosed
	}

	switch op {
	case OpSkip, OpTest:
		return nil
	case OpExtract:
		return s.Extract(destDir, destName)
	default:
		return fmt.Errorf("%w: operation %d", ErrNotSupported, op)
	}
}

// Close releases document and cursor. Further calls return ErrClosed.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.doc = nil
	s.cursor = nil
	s.logger.Debug("archive closed", "path", s.path)
	return nil
}

// current returns cursor selection.
func (s *Session) current() (string, *Entry, bool) {
	if s.cursor == nil {
		return "", nil, false
	}

	return s.cursor.current()
}
