// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

/*
Package hrx provides list, extract, pack, and delete operations for HRX
(human readable archive) files. An HRX archive is a single UTF-8 text file
where every entry starts with a boundary line such as "<===> path/to/file".
The boundary length (number of "=") is chosen so that no entry content can be
mistaken for a boundary; Save widens it automatically when new content
collides with the current one.

# Reading

Open an archive and walk its entries once, in archive order:

	s, err := hrx.Open("site.hrx")
	if err != nil {
	    return err
	}
	defer s.Close()
	for {
	    h, err := s.Next()
	    if errors.Is(err, hrx.ErrEndArchive) {
	        break
	    }
	    if err != nil {
	        return err
	    }
	    if h.Path == "index.html" {
	        if err := s.Extract("out", "index.html"); err != nil {
	            return err
	        }
	    }
	}

HRX has no per-entry timestamps; every Header carries the archive
modification time captured by Open.

# Packing

Pack adds text files, replacing entries in place and appending new ones:

	progress := hrx.NewProgress(hrx.ProgressOptions{})
	_ = progress.Set(hrx.CallbackText, func(name string, size int64) bool {
	    return true // false stops the operation, nothing is written
	})
	res, err := hrx.Pack(ctx, "site.hrx", []string{"index.html", `css\main.css`}, hrx.PackOptions{
	    SourceRoot: "src",
	    Progress:   progress,
	    Filter: []pathrules.Rule{
	        {Action: pathrules.ActionExclude, Pattern: "*.min.css"},
	    },
	})
	_ = res.Added

Progress registries are shared by the host and operations. Pack and Remove
ask the registry after every item; an empty registry answers "stop" unless it
was created with ProgressOptions.AllowUnregistered.

# Deleting

	_, err := hrx.Remove(ctx, "site.hrx", []string{"index.html", `css\*.*`}, hrx.RemoveOptions{
	    Progress: progress,
	})

A missing path fails with ErrNoFiles and leaves the archive untouched.
*/
package hrx
