// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import orderedmap "github.com/wk8/go-ordered-map/v2"

// cursor is a forward-only walk over document entries.
// It holds list positions only for the lifetime of the owning session.
type cursor struct {
	doc  *Document
	pos  *orderedmap.Pair[string, *Entry]
	done bool
}

// newCursor returns cursor placed before the first entry.
func newCursor(doc *Document) *cursor {
	return &cursor{doc: doc}
}

// next moves to following entry; false once exhausted, permanently.
func (c *cursor) next() (string, *Entry, bool) {
	if c.done {
		return "", nil, false
	}

	if c.pos == nil {
		c.pos = c.doc.first()
	} else {
		c.pos = c.pos.Next()
	}

	if c.pos == nil {
		c.done = true
		return "", nil, false
	}

	return c.pos.Key, c.pos.Value, true
}

// current returns entry selected by last successful next.
func (c *cursor) current() (string, *Entry, bool) {
	if c.done || c.pos == nil {
		return "", nil, false
	}

	return c.pos.Key, c.pos.Value, true
}
