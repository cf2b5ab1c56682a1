// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package wcx

import (
	"math"
	"time"
	"unicode/utf16"

	"github.com/woozymasta/hrx"
)

// Host name buffer sizes, including NUL terminator.
const (
	headerNameSize   = 260
	headerExNameSize = 1024
	headerExReserved = 1024
	sizeWordMask     = 0xFFFFFF
)

// HeaderData is the legacy header record with 32-bit sizes.
type HeaderData struct {
	ArcName  [headerNameSize]byte
	FileName [headerNameSize]byte
	Flags    int32
	PackSize int32
	UnpSize  int32
	HostOS   int32
	FileCRC  int32
	FileTime int32
	UnpVer   int32
	Method   int32
	FileAttr int32
}

// HeaderDataEx is the extended header record with split 64-bit sizes.
type HeaderDataEx struct {
	ArcName      [headerExNameSize]byte
	FileName     [headerExNameSize]byte
	Reserved     [headerExReserved]byte
	Flags        int32
	PackSize     uint32
	PackSizeHigh uint32
	UnpSize      uint32
	UnpSizeHigh  uint32
	HostOS       int32
	FileCRC      int32
	FileTime     int32
	UnpVer       int32
	Method       int32
	FileAttr     int32
}

// HeaderDataExW is HeaderDataEx with UTF-16 names.
type HeaderDataExW struct {
	ArcName      [headerExNameSize]uint16
	FileName     [headerExNameSize]uint16
	Reserved     [headerExReserved]byte
	Flags        int32
	PackSize     uint32
	PackSizeHigh uint32
	UnpSize      uint32
	UnpSizeHigh  uint32
	HostOS       int32
	FileCRC      int32
	FileTime     int32
	UnpVer       int32
	Method       int32
	FileAttr     int32
}

// fill writes header values into legacy record.
func (hd *HeaderData) fill(h hrx.Header) {
	*hd = HeaderData{}
	hd.PackSize = clampInt32(h.Size)
	hd.UnpSize = hd.PackSize
	hd.FileTime = DOSTime(h.ModTime)
	hd.FileAttr = fileAttr(h)
	putName(hd.FileName[:], hostName(h.Path))
}

// fill writes header values into extended record.
func (hd *HeaderDataEx) fill(h hrx.Header) {
	*hd = HeaderDataEx{}
	hd.PackSize, hd.PackSizeHigh = SplitSize(h.Size)
	hd.UnpSize, hd.UnpSizeHigh = hd.PackSize, hd.PackSizeHigh
	hd.FileTime = DOSTime(h.ModTime)
	hd.FileAttr = fileAttr(h)
	putName(hd.FileName[:], hostName(h.Path))
}

// fill writes header values into extended wide record.
func (hd *HeaderDataExW) fill(h hrx.Header) {
	*hd = HeaderDataExW{}
	hd.PackSize, hd.PackSizeHigh = SplitSize(h.Size)
	hd.UnpSize, hd.UnpSizeHigh = hd.PackSize, hd.PackSizeHigh
	hd.FileTime = DOSTime(h.ModTime)
	hd.FileAttr = fileAttr(h)
	putNameW(hd.FileName[:], hostName(h.Path))
}

// Name returns FileName up to first NUL.
func (hd *HeaderDataEx) Name() string {
	return cString(hd.FileName[:])
}

// Name returns FileName up to first NUL.
func (hd *HeaderData) Name() string {
	return cString(hd.FileName[:])
}

// Name returns FileName up to first NUL.
func (hd *HeaderDataExW) Name() string {
	n := 0
	for n < len(hd.FileName) && hd.FileName[n] != 0 {
		n++
	}

	return string(utf16.Decode(hd.FileName[:n]))
}

// Size joins split size words back into byte count.
func (hd *HeaderDataEx) Size() int64 {
	return JoinSize(hd.UnpSize, hd.UnpSizeHigh)
}

// SplitSize splits byte count into low and high words, each masked to 24
// bits as the legacy record layout expects.
func SplitSize(size int64) (low uint32, high uint32) {
	if size < 0 {
		return 0, 0
	}

	u := uint64(size)
	return uint32(u & sizeWordMask), uint32((u >> 32) & sizeWordMask)
}

// JoinSize reverses SplitSize for sizes that fit the masked words.
func JoinSize(low uint32, high uint32) int64 {
	return int64(uint64(high)<<32 | uint64(low))
}

// DOSTime packs t (local time) into the FAT date-time layout used by hosts.
// Years outside 1980..2100 are clamped.
func DOSTime(t time.Time) int32 {
	t = t.Local()

	year := min(max(t.Year(), 1980), 2100)
	v := uint32(year-1980)<<25 |
		uint32(t.Month())<<21 |
		uint32(t.Day())<<16 |
		uint32(t.Hour())<<11 |
		uint32(t.Minute())<<5 |
		uint32(t.Second()/2)

	return int32(v) //nolint:gosec // host field is signed, bit pattern is kept
}

// FromDOSTime unpacks DOSTime value in local time zone.
func FromDOSTime(v int32) time.Time {
	u := uint32(v) //nolint:gosec // bit pattern
	return time.Date(
		int(u>>25)+1980,
		time.Month((u>>21)&0x0F),
		int((u>>16)&0x1F),
		int((u>>11)&0x1F),
		int((u>>5)&0x3F),
		int(u&0x1F)*2,
		0,
		time.Local,
	)
}

// fileAttr returns FileAttr bits for header.
func fileAttr(h hrx.Header) int32 {
	if h.Dir {
		return FileAttrDirectory
	}

	return 0
}

// hostName converts archive path to host "\" separators.
func hostName(path string) string {
	return hrx.ToBackslashPath(path)
}

// clampInt32 limits n to int32 range used by legacy fields.
func clampInt32(n int64) int32 {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < 0:
		return 0
	default:
		return int32(n)
	}
}

// putName copies name into NUL-terminated buffer, truncating to fit.
func putName(dst []byte, name string) {
	if len(dst) == 0 {
		return
	}

	n := copy(dst[:len(dst)-1], name)
	clear(dst[n:])
}

// putNameW copies UTF-16 name into NUL-terminated buffer, truncating to fit.
func putNameW(dst []uint16, name string) {
	if len(dst) == 0 {
		return
	}

	n := copy(dst[:len(dst)-1], utf16.Encode([]rune(name)))
	clear(dst[n:])
}

// cString returns bytes up to first NUL as string.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}

	return string(b)
}
