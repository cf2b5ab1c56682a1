// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package main

import (
	"github.com/spf13/cobra"

	"github.com/woozymasta/hrx"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <archive> <entry...>",
		Aliases: []string{"rm"},
		Short:   "Delete entries from an archive",
		Long: `Delete removes the named entries. A name ending with "/*.*" removes the
directory and everything below it. Nothing is written if any name is missing.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := hrx.Remove(cmd.Context(), args[0], args[1:], hrx.RemoveOptions{
				Progress: a.progress(cmd),
				Logger:   a.logger,
			})
			if err != nil {
				return exitError(err)
			}

			a.logger.Info("deleted", "archive", args[0], "entries", res.Removed, "bytes", res.Bytes)
			return nil
		},
	}
}
