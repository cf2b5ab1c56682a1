// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woozymasta/hrx"
)

func newTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "test <archive...>",
		Aliases: []string{"check"},
		Short:   "Verify archives parse",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var firstErr error
			for _, path := range args {
				doc, err := hrx.Load(path)
				if err != nil {
					a.logger.Error("invalid archive", "archive", path, "err", err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}

				_, _ = fmt.Fprintf(a.out, "%s: ok, %d entries, boundary %d\n", path, doc.Len(), doc.BoundaryLength())
			}

			return exitError(firstErr)
		},
	}
}
