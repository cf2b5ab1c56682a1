// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Serialize writes document as HRX text. It fails with ErrBoundaryCollision
// when content is unsafe for the current boundary; Save widens the boundary first.
func (d *Document) Serialize(w io.Writer) error {
	if err := d.ValidateContent(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	boundary := d.Boundary()

	for pair := d.entries.Oldest(); pair != nil; pair = pair.Next() {
		entry := pair.Value
		if entry.Comment != nil {
			writeSerialized(bw, boundary, "\n", *entry.Comment, "\n")
		}

		switch entry.Kind {
		case KindDirectory:
			writeSerialized(bw, boundary, " ", pair.Key, "/\n")
		default:
			writeSerialized(bw, boundary, " ", pair.Key, "\n")
			if entry.Body != nil {
				writeSerialized(bw, *entry.Body, "\n")
			}
		}
	}

	if d.comment != nil {
		writeSerialized(bw, boundary, "\n", *d.comment, "\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush archive text: %w", err)
	}

	return nil
}

// String returns HRX text, or "" when content collides with boundary.
func (d *Document) String() string {
	var sb strings.Builder
	if err := d.Serialize(&sb); err != nil {
		return ""
	}

	return sb.String()
}

// writeSerialized writes parts to buffered writer; errors surface on Flush.
func writeSerialized(bw *bufio.Writer, parts ...string) {
	for _, part := range parts {
		_, _ = bw.WriteString(part)
	}
}
