// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

/*
Package wcx adapts package hrx to the packer-plugin interface of archiver
hosts (the WCX protocol): numeric error codes, fixed-size header records,
DOS timestamps, NUL-separated name lists, capability flags, and handle-based
sessions with per-handle or process-wide progress callbacks.

The package does not export C symbols. A thin cgo or syscall binding owns
string and pointer marshalling and forwards every call to a Plugin:

	p := wcx.NewPlugin(wcx.PluginOptions{})
	data := wcx.OpenArchiveData{ArcName: "site.hrx", OpenMode: wcx.PK_OM_LIST}
	h := p.OpenArchive(&data)
	if h == 0 {
	    return data.OpenResult
	}
	defer p.CloseArchive(h)

	var hd wcx.HeaderDataEx
	for p.ReadHeaderEx(h, &hd) == 0 {
	    _ = p.ProcessFile(h, wcx.PK_SKIP, "", "")
	}
*/
package wcx
