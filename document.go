// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultBoundaryLength is the number of "=" used by newly created archives.
const DefaultBoundaryLength = 3

// EntryKind is the HRX entry type tag.
type EntryKind uint8

// HRX entry kinds.
const (
	// KindFile marks a file entry with optional body.
	KindFile EntryKind = iota + 1
	// KindDirectory marks an explicit directory entry.
	KindDirectory
)

// String returns lower-case kind name.
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText encodes kind as its name.
func (k EntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one archive node.
type Entry struct {
	// Body is file content; nil means no body was recorded (distinct from "").
	// Always nil for directories.
	Body *string `json:"body,omitempty" yaml:"body,omitempty"`
	// Comment is optional free text preceding the entry.
	Comment *string `json:"comment,omitempty" yaml:"comment,omitempty"`
	// Kind is file or directory.
	Kind EntryKind `json:"kind" yaml:"kind"`
}

// NewFile returns file entry holding body.
func NewFile(body string) *Entry {
	return &Entry{Kind: KindFile, Body: &body}
}

// NewEmptyFile returns file entry without body.
func NewEmptyFile() *Entry {
	return &Entry{Kind: KindFile}
}

// NewDirectory returns directory entry.
func NewDirectory() *Entry {
	return &Entry{Kind: KindDirectory}
}

// IsDir reports whether entry is a directory.
func (e *Entry) IsDir() bool {
	return e != nil && e.Kind == KindDirectory
}

// Content returns file body, or "" for directories and bodiless files.
func (e *Entry) Content() string {
	if e == nil || e.Kind != KindFile || e.Body == nil {
		return ""
	}

	return *e.Body
}

// Size returns content length in bytes.
func (e *Entry) Size() int64 {
	return int64(len(e.Content()))
}

// clone returns deep copy of entry.
func (e *Entry) clone() *Entry {
	out := &Entry{Kind: e.Kind}
	if e.Body != nil {
		body := *e.Body
		out.Body = &body
	}
	if e.Comment != nil {
		comment := *e.Comment
		out.Comment = &comment
	}

	return out
}

// Document is an in-memory HRX archive: ordered unique paths plus boundary length.
// Paths are stored without the trailing "/" that marks directories in text form.
type Document struct {
	entries        *orderedmap.OrderedMap[string, *Entry]
	comment        *string
	boundaryLength int
}

// NewDocument returns empty document. Lengths below 1 fall back to DefaultBoundaryLength.
func NewDocument(boundaryLength int) *Document {
	if boundaryLength < 1 {
		boundaryLength = DefaultBoundaryLength
	}

	return &Document{
		entries:        orderedmap.New[string, *Entry](),
		boundaryLength: boundaryLength,
	}
}

// Len returns number of entries.
func (d *Document) Len() int {
	return d.entries.Len()
}

// BoundaryLength returns the number of "=" in the archive boundary.
func (d *Document) BoundaryLength() int {
	return d.boundaryLength
}

// Boundary returns the boundary marker, e.g. "<===>".
func (d *Document) Boundary() string {
	return boundaryString(d.boundaryLength)
}

// Comment returns the trailing archive comment, if any.
func (d *Document) Comment() (string, bool) {
	if d.comment == nil {
		return "", false
	}

	return *d.comment, true
}

// SetComment sets the trailing archive comment; nil removes it.
func (d *Document) SetComment(comment *string) {
	d.comment = comment
}

// Get returns entry stored at path.
func (d *Document) Get(path string) (*Entry, bool) {
	return d.entries.Get(path)
}

// Put stores entry at path. Existing paths keep their position in order;
// new paths are appended. Reports whether an existing entry was replaced.
func (d *Document) Put(path string, entry *Entry) (bool, error) {
	if entry == nil {
		return false, fmt.Errorf("%w: nil entry for %q", ErrInvalidEntryPath, path)
	}
	if err := validateEntryPath(path); err != nil {
		return false, err
	}

	_, replaced := d.entries.Set(path, entry)
	return replaced, nil
}

// PutFile installs file body at path. An existing entry is turned into a file
// in place and keeps its comment; a missing path is appended.
func (d *Document) PutFile(path string, body string) (bool, error) {
	if existing, ok := d.entries.Get(path); ok {
		existing.Kind = KindFile
		existing.Body = &body
		return true, nil
	}

	return d.Put(path, NewFile(body))
}

// Delete removes entry at exact path and returns it.
func (d *Document) Delete(path string) (*Entry, bool) {
	return d.entries.Delete(path)
}

// Paths returns entry paths in document order.
func (d *Document) Paths() []string {
	out := make([]string, 0, d.entries.Len())
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}

	return out
}

// Walk calls fn for every entry in order until fn returns false.
func (d *Document) Walk(fn func(path string, entry *Entry) bool) {
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a deep copy of document.
func (d *Document) Clone() *Document {
	out := NewDocument(d.boundaryLength)
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		out.entries.Set(pair.Key, pair.Value.clone())
	}
	if d.comment != nil {
		comment := *d.comment
		out.comment = &comment
	}

	return out
}

// ValidateContent checks that no body or comment collides with current boundary.
func (d *Document) ValidateContent() error {
	return d.checkBoundary(d.boundaryLength)
}

// SetBoundaryLength changes boundary length when it is safe for current content.
func (d *Document) SetBoundaryLength(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: boundary length %d", ErrBoundaryCollision, n)
	}
	if err := d.checkBoundary(n); err != nil {
		return err
	}

	d.boundaryLength = n
	return nil
}

// checkBoundary reports first content colliding with boundary of length n.
func (d *Document) checkBoundary(n int) error {
	boundary := boundaryString(n)
	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		entry := pair.Value
		if entry.Comment != nil && contentCollides(*entry.Comment, boundary) {
			return fmt.Errorf("%w: comment of %q with %s", ErrBoundaryCollision, pair.Key, boundary)
		}
		if entry.Body != nil && contentCollides(*entry.Body, boundary) {
			return fmt.Errorf("%w: body of %q with %s", ErrBoundaryCollision, pair.Key, boundary)
		}
	}

	if d.comment != nil && contentCollides(*d.comment, boundary) {
		return fmt.Errorf("%w: archive comment with %s", ErrBoundaryCollision, boundary)
	}

	return nil
}

// first returns first ordered pair for cursor traversal.
func (d *Document) first() *orderedmap.Pair[string, *Entry] {
	return d.entries.Oldest()
}

// boundaryString builds "<" + n*"=" + ">".
func boundaryString(n int) string {
	return "<" + strings.Repeat("=", n) + ">"
}

// contentCollides reports whether text starts with boundary or has it at a line start.
func contentCollides(text string, boundary string) bool {
	return strings.HasPrefix(text, boundary) || strings.Contains(text, "\n"+boundary)
}
