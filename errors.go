// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import "errors"

// Sentinel errors for HRX operations. Use errors.Is in callers.
// Each kind maps to exactly one host error code (see package wcx).
var (
	// ErrOpen means a storage object could not be opened or removed.
	ErrOpen = errors.New("cannot open file")
	// ErrRead means reading a storage object failed.
	ErrRead = errors.New("cannot read file")
	// ErrCreate means a destination file could not be created.
	ErrCreate = errors.New("cannot create file")
	// ErrWrite means writing a destination file failed.
	ErrWrite = errors.New("cannot write file")
	// ErrDecode means content is not valid UTF-8 text.
	ErrDecode = errors.New("content is not valid UTF-8 text")
	// ErrBadArchive means archive text does not follow HRX grammar.
	ErrBadArchive = errors.New("malformed HRX archive")
	// ErrUnknownFormat means a path cannot be stored as an HRX entry path.
	ErrUnknownFormat = errors.New("path is not a valid HRX entry path")
	// ErrNotSupported means the requested operation is not implemented.
	ErrNotSupported = errors.New("operation not supported")
	// ErrEndArchive means iteration is exhausted or no entry is selected.
	ErrEndArchive = errors.New("end of archive")
	// ErrNoFiles means a deletion target does not exist in archive.
	ErrNoFiles = errors.New("no such entry in archive")
	// ErrAborted means progress callback or context stopped the operation.
	ErrAborted = errors.New("operation aborted")
	// ErrClosed means the session was already closed.
	ErrClosed = errors.New("session already closed")
	// ErrBoundaryCollision means entry content collides with the boundary at current length.
	ErrBoundaryCollision = errors.New("content collides with archive boundary")
	// ErrInvalidEntryPath means a path violates HRX path rules.
	ErrInvalidEntryPath = errors.New("invalid entry path")
	// ErrDuplicateEntryPath means two entries share one path.
	ErrDuplicateEntryPath = errors.New("duplicate entry path")
	// ErrInvalidFilter means one or more pack filter rules are invalid.
	ErrInvalidFilter = errors.New("invalid pack filter rules")
)
