// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/woozymasta/hrx/wcx"
)

// capNames lists PK_CAPS_* bits in host order.
var capNames = []struct {
	name string
	bit  int
}{
	{"new", wcx.PK_CAPS_NEW},
	{"modify", wcx.PK_CAPS_MODIFY},
	{"multiple", wcx.PK_CAPS_MULTIPLE},
	{"delete", wcx.PK_CAPS_DELETE},
	{"options", wcx.PK_CAPS_OPTIONS},
	{"mempack", wcx.PK_CAPS_MEMPACK},
	{"by_content", wcx.PK_CAPS_BY_CONTENT},
	{"searchtext", wcx.PK_CAPS_SEARCHTEXT},
	{"hide", wcx.PK_CAPS_HIDE},
	{"encrypt", wcx.PK_CAPS_ENCRYPT},
}

func newCapsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "caps",
		Short: "Print archiver plugin capabilities",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(a.out, "caps: %s (%d)\n", strings.Join(capsList(wcx.Capabilities()), ","), wcx.Capabilities())
			_, _ = fmt.Fprintf(a.out, "background: %d\n", wcx.BackgroundFlags())
			return nil
		},
	}
}

// capsList names set bits of caps.
func capsList(caps int) []string {
	var out []string
	for _, c := range capNames {
		if caps&c.bit != 0 {
			out = append(out, c.name)
		}
	}

	return out
}
