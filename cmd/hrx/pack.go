// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package main

import (
	"github.com/spf13/cobra"

	"github.com/woozymasta/hrx"
)

func newPackCmd(a *app) *cobra.Command {
	var (
		root string
		sub  string
		move bool
		flat bool
	)

	cmd := &cobra.Command{
		Use:   "pack <archive> <file...>",
		Short: "Add or replace text files in an archive",
		Long: `Pack reads each file relative to --root and stores it in the archive.
Existing entries keep their position; new entries are appended.
The archive is created when missing.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var flags hrx.PackFlags
			if move {
				flags |= hrx.FlagMoveFiles
			}
			if flat {
				flags |= hrx.FlagSavePaths
			}

			res, err := hrx.Pack(cmd.Context(), args[0], args[1:], hrx.PackOptions{
				Progress:             a.progress(cmd),
				Logger:               a.logger,
				SubPath:              sub,
				SourceRoot:           root,
				Filter:               a.cfg.Pack.Rules(),
				FilterMatcherOptions: a.cfg.Pack.MatcherOptions(),
				Flags:                flags,
			})
			if err != nil {
				return exitError(err)
			}

			a.logger.Info("packed",
				"archive", args[0],
				"added", res.Added,
				"replaced", res.Replaced,
				"skipped", res.Skipped,
				"bytes", res.Bytes,
				"duration", res.Duration,
			)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&root, "root", "C", "", "directory add-list items are relative to")
	f.StringVar(&sub, "sub", "", "archive directory to store entries under")
	f.BoolVar(&move, "move", false, "delete source files after the archive was written")
	f.BoolVar(&flat, "flat", false, "store only file names, dropping directories")
	f.StringSlice("include", nil, "only pack items matching pattern (repeatable)")
	f.StringSlice("exclude", nil, "skip items matching pattern (repeatable)")
	f.Bool("ignore-case", false, "match include/exclude patterns case-insensitively")

	return cmd
}
