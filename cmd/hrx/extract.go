// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/woozymasta/hrx"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		dest       string
		createOnly bool
	)

	cmd := &cobra.Command{
		Use:   "extract <archive> [entry...]",
		Short: "Extract all or selected entries",
		Long: `Extract writes archive entries below the destination directory.
Without entry arguments the whole archive is extracted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := hrx.OpenWithOptions(args[0], hrx.SessionOptions{Logger: a.logger})
			if err != nil {
				return exitError(err)
			}
			defer func() { _ = s.Close() }()

			_ = s.SetProgress(hrx.CallbackText, func(name string, size int64) bool {
				a.logger.Info(name, "bytes", size)
				return cmd.Context().Err() == nil
			})

			if len(args) == 1 {
				mode := hrx.ExtractFileModeTruncate
				if createOnly {
					mode = hrx.ExtractFileModeCreateOnly
				}
				return exitError(s.ExtractAll(cmd.Context(), dest, hrx.ExtractOptions{FileMode: mode}))
			}

			return exitError(extractSelected(s, dest, args[1:]))
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", ".", "destination directory")
	cmd.Flags().BoolVar(&createOnly, "no-overwrite", false, "fail instead of overwriting existing files")

	return cmd
}

// extractSelected walks archive once and extracts entries named in want.
func extractSelected(s *hrx.Session, dest string, want []string) error {
	pending := make(map[string]struct{}, len(want))
	for _, name := range want {
		pending[hrx.ToArchivePath(name)] = struct{}{}
	}

	for len(pending) > 0 {
		h, err := s.Next()
		if errors.Is(err, hrx.ErrEndArchive) {
			break
		}
		if err != nil {
			return err
		}

		if _, ok := pending[h.Path]; !ok {
			if err := s.Process(hrx.OpSkip, "", ""); err != nil {
				return err
			}
			continue
		}
		delete(pending, h.Path)

		name := hrx.ToHostPath(h.Path)
		if h.Dir {
			if err := os.MkdirAll(filepath.Join(dest, name), 0o750); err != nil {
				return fmt.Errorf("%w: %w", hrx.ErrCreate, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(filepath.Join(dest, name)), 0o750); err != nil {
			return fmt.Errorf("%w: %w", hrx.ErrCreate, err)
		}
		if err := s.Process(hrx.OpExtract, dest, name); err != nil {
			return err
		}
	}

	for _, name := range want {
		if _, ok := pending[hrx.ToArchivePath(name)]; ok {
			return fmt.Errorf("%w: %q", hrx.ErrNoFiles, name)
		}
	}

	return nil
}
