// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package wcx

import (
	"strings"
	"unicode/utf16"
)

// SplitList splits a host name list: items separated by NUL, list ended by
// an empty item (double NUL). Text after the terminator is ignored.
func SplitList(list string) []string {
	var out []string
	for list != "" {
		item, rest, _ := strings.Cut(list, "\x00")
		if item == "" {
			break
		}

		out = append(out, item)
		list = rest
	}

	return out
}

// SplitListW is SplitList for UTF-16 lists.
func SplitListW(list []uint16) []string {
	var out []string
	start := 0
	for i, c := range list {
		if c != 0 {
			continue
		}
		if i == start {
			break
		}

		out = append(out, string(utf16.Decode(list[start:i])))
		start = i + 1
	}

	return out
}

// JoinList builds NUL-separated, double-NUL-terminated host list.
func JoinList(items ...string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(item)
		sb.WriteByte(0)
	}
	sb.WriteByte(0)

	return sb.String()
}
