// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxError describes a grammar violation in archive text.
type SyntaxError struct {
	Msg  string
	Line int
}

// Error implements error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap makes every syntax error match ErrBadArchive.
func (e *SyntaxError) Unwrap() error {
	return ErrBadArchive
}

// parser holds scan state over one archive text.
type parser struct {
	text     string
	boundary string
	pos      int
	line     int
}

// Parse decodes HRX archive text into a Document.
// Empty text yields an empty document with DefaultBoundaryLength.
func Parse(text string) (*Document, error) {
	if text == "" {
		return NewDocument(DefaultBoundaryLength), nil
	}

	n := leadingBoundaryLength(text)
	if n == 0 {
		return nil, &SyntaxError{Line: 1, Msg: "archive must begin with a boundary"}
	}

	p := &parser{
		text:     text,
		boundary: boundaryString(n),
		line:     1,
	}

	doc := NewDocument(n)
	var pending *string
	for p.pos < len(p.text) {
		if !strings.HasPrefix(p.rest(), p.boundary) {
			return nil, p.errorf("expected boundary %s", p.boundary)
		}
		p.advance(len(p.boundary))

		rest := p.rest()
		switch {
		case rest == "":
			return nil, p.errorf("boundary must be followed by a newline or a space")
		case rest[0] == '\n':
			if pending != nil {
				return nil, p.errorf("two comments in a row")
			}

			p.advance(1)
			comment := p.readBody()
			pending = &comment
		case rest[0] == ' ':
			p.advance(1)
			if err := p.parseEntry(doc, pending); err != nil {
				return nil, err
			}

			pending = nil
		default:
			return nil, p.errorf("boundary must be followed by a newline or a space")
		}
	}

	doc.comment = pending
	return doc, nil
}

// parseEntry reads one file or directory header and its body.
func (p *parser) parseEntry(doc *Document, comment *string) error {
	line := p.line
	header := p.readLine()

	entry := &Entry{Kind: KindFile, Comment: comment}
	path := header
	if strings.HasSuffix(header, "/") {
		entry.Kind = KindDirectory
		path = strings.TrimSuffix(header, "/")
	}

	if err := validateEntryPath(path); err != nil {
		return &SyntaxError{Line: line, Msg: err.Error()}
	}
	if _, exists := doc.entries.Get(path); exists {
		return &SyntaxError{Line: line, Msg: fmt.Sprintf("%v: %q", ErrDuplicateEntryPath, path)}
	}

	switch entry.Kind {
	case KindDirectory:
		for strings.HasPrefix(p.rest(), "\n") {
			p.advance(1)
		}
		if p.pos < len(p.text) && !strings.HasPrefix(p.rest(), p.boundary) {
			return p.errorf("directory %q must not have contents", path)
		}
	default:
		if p.pos < len(p.text) && !strings.HasPrefix(p.rest(), p.boundary) {
			body := p.readBody()
			entry.Body = &body
		}
	}

	doc.entries.Set(path, entry)
	return nil
}

// readLine consumes text up to and including next newline and returns it without newline.
func (p *parser) readLine() string {
	rest := p.rest()
	idx := strings.IndexByte(rest, '\n')
	if idx < 0 {
		p.advance(len(rest))
		return rest
	}

	p.advance(idx + 1)
	return rest[:idx]
}

// readBody consumes contents up to the newline preceding next boundary, or to EOF.
// The separator newline is consumed but not returned; at EOF one trailing newline is stripped.
func (p *parser) readBody() string {
	rest := p.rest()
	if strings.HasPrefix(rest, p.boundary) {
		return ""
	}

	idx := strings.Index(rest, "\n"+p.boundary)
	if idx >= 0 {
		p.advance(idx + 1)
		return rest[:idx]
	}

	p.advance(len(rest))
	return strings.TrimSuffix(rest, "\n")
}

// rest returns unconsumed text.
func (p *parser) rest() string {
	return p.text[p.pos:]
}

// advance consumes n bytes and tracks line numbers.
func (p *parser) advance(n int) {
	p.line += strings.Count(p.text[p.pos:p.pos+n], "\n")
	p.pos += n
}

// errorf builds SyntaxError at current line.
func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// leadingBoundaryLength returns "=" count of boundary at text start, or zero.
func leadingBoundaryLength(text string) int {
	if !strings.HasPrefix(text, "<") {
		return 0
	}

	n := 0
	for n+1 < len(text) && text[n+1] == '=' {
		n++
	}
	if n == 0 || n+1 >= len(text) || text[n+1] != '>' {
		return 0
	}

	return n
}

// IsSyntaxError reports whether err carries grammar position details.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
