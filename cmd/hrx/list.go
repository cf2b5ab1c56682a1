// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/hrx"
	"github.com/woozymasta/hrx/internal/config"
)

// listItem is one listing row.
type listItem struct {
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
	Path    string    `json:"path" yaml:"path"`
	Kind    string    `json:"kind" yaml:"kind"`
	Digest  string    `json:"blake3,omitempty" yaml:"blake3,omitempty"`
	Size    int64     `json:"size" yaml:"size"`
}

// listing is full list command output.
type listing struct {
	Archive        string     `json:"archive" yaml:"archive"`
	Entries        []listItem `json:"entries" yaml:"entries"`
	BoundaryLength int        `json:"boundary_length" yaml:"boundary_length"`
}

func newListCmd(a *app) *cobra.Command {
	var digest bool

	cmd := &cobra.Command{
		Use:     "list <archive>",
		Aliases: []string{"ls"},
		Short:   "List archive entries",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := buildListing(args[0], digest)
			if err != nil {
				return exitError(err)
			}

			return writeListing(a.out, a.cfg.Output, out)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output format: text, json, yaml")
	cmd.Flags().BoolVar(&digest, "digest", false, "add BLAKE3 digest of every file body")

	return cmd
}

// buildListing walks archive once through a session.
func buildListing(path string, digest bool) (*listing, error) {
	s, err := hrx.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	out := &listing{
		Archive:        path,
		BoundaryLength: s.Document().BoundaryLength(),
	}

	for {
		h, err := s.Next()
		if errors.Is(err, hrx.ErrEndArchive) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		item := listItem{
			Path:    h.Path,
			Kind:    h.Entry.Kind.String(),
			Size:    h.Size,
			ModTime: h.ModTime,
		}
		if digest && !h.Dir {
			sum := blake3.Sum256([]byte(h.Entry.Content()))
			item.Digest = hex.EncodeToString(sum[:])
		}

		out.Entries = append(out.Entries, item)
	}
}

// writeListing renders listing in requested format.
func writeListing(w io.Writer, format string, out *listing) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()

	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, item := range out.Entries {
			path := item.Path
			if item.Kind == hrx.KindDirectory.String() {
				path += "/"
			}
			if item.Digest != "" {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", item.Size, item.Digest, path)
				continue
			}
			_, _ = fmt.Fprintf(tw, "%d\t%s\n", item.Size, path)
		}
		return tw.Flush()
	}
}
