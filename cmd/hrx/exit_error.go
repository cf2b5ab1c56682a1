// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package main

import (
	"fmt"

	"github.com/woozymasta/hrx/wcx"
)

// ExitError carries process exit code chosen from the archiver code table.
type ExitError struct {
	Err  error
	Code int
}

// Error returns the wrapped error message.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitError wraps err with its wcx code; nil stays nil.
func exitError(err error) error {
	if err == nil {
		return nil
	}

	return &ExitError{Err: err, Code: wcx.Code(err)}
}
