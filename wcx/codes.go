// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package wcx

import (
	"errors"

	"github.com/woozymasta/hrx"
)

//nolint:revive // names follow the host header for grep-ability
const (
	E_END_ARCHIVE    = 10 // no more files in archive
	E_NO_MEMORY      = 11 // not enough memory
	E_BAD_DATA       = 12 // data is bad
	E_BAD_ARCHIVE    = 13 // CRC error in archive data
	E_UNKNOWN_FORMAT = 14 // archive format unknown
	E_EOPEN          = 15 // cannot open existing file
	E_ECREATE        = 16 // cannot create file
	E_ECLOSE         = 17 // error closing file
	E_EREAD          = 18 // error reading from file
	E_EWRITE         = 19 // error writing to file
	E_SMALL_BUF      = 20 // buffer too small
	E_EABORTED       = 21 // function aborted by user
	E_NO_FILES       = 22 // no files found
	E_TOO_MANY_FILES = 23 // too many files to pack
	E_NOT_SUPPORTED  = 24 // function not supported
)

//nolint:revive // names follow the host header
const (
	PK_OM_LIST    = 0
	PK_OM_EXTRACT = 1

	PK_SKIP    = 0
	PK_TEST    = 1
	PK_EXTRACT = 2

	PK_PACK_MOVE_FILES = 1
	PK_PACK_SAVE_PATHS = 2
	PK_PACK_ENCRYPT    = 4

	PK_CAPS_NEW        = 1
	PK_CAPS_MODIFY     = 2
	PK_CAPS_MULTIPLE   = 4
	PK_CAPS_DELETE     = 8
	PK_CAPS_OPTIONS    = 16
	PK_CAPS_MEMPACK    = 32
	PK_CAPS_BY_CONTENT = 64
	PK_CAPS_SEARCHTEXT = 128
	PK_CAPS_HIDE       = 256
	PK_CAPS_ENCRYPT    = 512

	BACKGROUND_UNPACK  = 1
	BACKGROUND_PACK    = 2
	BACKGROUND_MEMPACK = 4
)

// FileAttrDirectory is the FileAttr bit for directory entries.
const FileAttrDirectory = 0x10

// codeTable maps core error kinds to host codes; first match wins.
var codeTable = []struct {
	err  error
	code int
}{
	{hrx.ErrAborted, E_EABORTED},
	{hrx.ErrEndArchive, E_END_ARCHIVE},
	{hrx.ErrNoFiles, E_NO_FILES},
	{hrx.ErrNotSupported, E_NOT_SUPPORTED},
	{hrx.ErrOpen, E_EOPEN},
	{hrx.ErrRead, E_EREAD},
	{hrx.ErrCreate, E_ECREATE},
	{hrx.ErrWrite, E_EWRITE},
	{hrx.ErrDecode, E_BAD_DATA},
	{hrx.ErrBadArchive, E_BAD_ARCHIVE},
	{hrx.ErrUnknownFormat, E_UNKNOWN_FORMAT},
	{hrx.ErrClosed, E_ECLOSE},
}

// Code returns host error code for err; nil yields 0.
// Errors outside the hrx taxonomy report E_NOT_SUPPORTED.
func Code(err error) int {
	if err == nil {
		return 0
	}

	for _, item := range codeTable {
		if errors.Is(err, item.err) {
			return item.code
		}
	}

	return E_NOT_SUPPORTED
}

// PackFlags converts host PK_PACK_* bits to hrx flags.
func PackFlags(flags int) hrx.PackFlags {
	var out hrx.PackFlags
	if flags&PK_PACK_MOVE_FILES != 0 {
		out |= hrx.FlagMoveFiles
	}
	if flags&PK_PACK_SAVE_PATHS != 0 {
		out |= hrx.FlagSavePaths
	}
	if flags&PK_PACK_ENCRYPT != 0 {
		out |= hrx.FlagEncrypt
	}

	return out
}

// Capabilities returns PK_CAPS_* bits supported by the plugin.
// Multi-volume, memory packing, and encryption are not offered.
func Capabilities() int {
	return PK_CAPS_NEW | PK_CAPS_MODIFY | PK_CAPS_MULTIPLE | PK_CAPS_DELETE | PK_CAPS_BY_CONTENT | PK_CAPS_SEARCHTEXT
}

// BackgroundFlags returns BACKGROUND_* bits: unpack and pack may run in
// background threads.
func BackgroundFlags() int {
	return BACKGROUND_UNPACK | BACKGROUND_PACK
}
