// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package wcx

import (
	"context"
	"fmt"
	"io"
	"sync"
	"unicode/utf16"

	"github.com/charmbracelet/log"
	"github.com/woozymasta/hrx"
)

// Handle identifies an open archive. Zero and all-ones are never issued and
// address the process-wide callback slots.
type Handle uintptr

// invalidHandle is the host "-1" handle.
const invalidHandle = ^Handle(0)

// ProcessDataProc is the host text progress callback; zero return aborts.
type ProcessDataProc func(fileName string, size int32) int32

// ProcessDataProcW is the host wide-text progress callback; fileName is
// NUL-terminated UTF-16. Zero return aborts.
type ProcessDataProcW func(fileName []uint16, size int32) int32

// OpenArchiveData mirrors the host open request.
type OpenArchiveData struct {
	// ArcName is archive path.
	ArcName string
	// OpenMode is PK_OM_LIST or PK_OM_EXTRACT.
	OpenMode int
	// OpenResult receives error code on failure.
	OpenResult int
}

// PluginOptions configures NewPlugin.
type PluginOptions struct {
	// Logger receives adapter events; nil disables logging.
	Logger *log.Logger
	// AllowUnregistered lets pack and delete continue without a registered
	// process-wide callback.
	AllowUnregistered bool
}

// Plugin keeps open sessions and the process-wide progress registry.
type Plugin struct {
	progress *hrx.Progress
	logger   *log.Logger
	sessions map[Handle]*hrx.Session
	mu       sync.Mutex
	next     Handle
}

// NewPlugin returns plugin with empty handle table.
func NewPlugin(opts PluginOptions) *Plugin {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Plugin{
		progress: hrx.NewProgress(hrx.ProgressOptions{AllowUnregistered: opts.AllowUnregistered}),
		logger:   logger,
		sessions: make(map[Handle]*hrx.Session),
	}
}

// Progress returns the process-wide registry.
func (p *Plugin) Progress() *hrx.Progress {
	return p.progress
}

// OpenArchive opens data.ArcName and returns its handle. On failure it
// returns zero and stores the error code in data.OpenResult.
func (p *Plugin) OpenArchive(data *OpenArchiveData) Handle {
	s, err := hrx.OpenWithOptions(data.ArcName, hrx.SessionOptions{
		Progress: p.progress,
		Logger:   p.logger,
	})
	if err != nil {
		data.OpenResult = Code(err)
		p.logger.Debug("open failed", "archive", data.ArcName, "code", data.OpenResult, "err", err)
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.next++
	if p.next == invalidHandle {
		p.next = 1
	}
	h := p.next
	p.sessions[h] = s
	data.OpenResult = 0

	return h
}

// OpenArchiveW is OpenArchive for a NUL-terminated UTF-16 archive name.
func (p *Plugin) OpenArchiveW(arcName []uint16, openMode int) (Handle, int) {
	data := OpenArchiveData{ArcName: decodeW(arcName), OpenMode: openMode}
	h := p.OpenArchive(&data)
	return h, data.OpenResult
}

// ReadHeader advances h to the next entry and fills hd.
func (p *Plugin) ReadHeader(h Handle, hd *HeaderData) int {
	header, code := p.readNext(h)
	if code != 0 {
		return code
	}

	hd.fill(header)
	return 0
}

// ReadHeaderEx advances h to the next entry and fills hd.
func (p *Plugin) ReadHeaderEx(h Handle, hd *HeaderDataEx) int {
	header, code := p.readNext(h)
	if code != 0 {
		return code
	}

	hd.fill(header)
	return 0
}

// ReadHeaderExW advances h to the next entry and fills hd.
func (p *Plugin) ReadHeaderExW(h Handle, hd *HeaderDataExW) int {
	header, code := p.readNext(h)
	if code != 0 {
		return code
	}

	hd.fill(header)
	return 0
}

// ProcessFile applies PK_SKIP, PK_TEST or PK_EXTRACT to the current entry.
func (p *Plugin) ProcessFile(h Handle, operation int, destPath string, destName string) int {
	s, ok := p.session(h)
	if !ok {
		return E_NOT_SUPPORTED
	}

	return Code(s.Process(hrx.Operation(operation), destPath, destName))
}

// ProcessFileW is ProcessFile with NUL-terminated UTF-16 destinations.
func (p *Plugin) ProcessFileW(h Handle, operation int, destPath []uint16, destName []uint16) int {
	return p.ProcessFile(h, operation, decodeW(destPath), decodeW(destName))
}

// CloseArchive releases h.
func (p *Plugin) CloseArchive(h Handle) int {
	p.mu.Lock()
	s, ok := p.sessions[h]
	delete(p.sessions, h)
	p.mu.Unlock()

	if !ok {
		return E_ECLOSE
	}

	return Code(s.Close())
}

// SetChangeVolProc accepts and ignores volume callbacks; multi-volume
// archives are not supported.
func (p *Plugin) SetChangeVolProc(Handle, any) {}

// SetProcessDataProc registers text callback for h, or process-wide for
// handle 0 and -1. Nil fn clears the slot.
func (p *Plugin) SetProcessDataProc(h Handle, fn ProcessDataProc) {
	var cb hrx.ProgressFunc
	if fn != nil {
		cb = func(name string, size int64) bool {
			return fn(hostName(name), clampInt32(size)) != 0
		}
	}

	p.setProgress(h, hrx.CallbackText, cb)
}

// SetProcessDataProcW registers wide callback for h, or process-wide for
// handle 0 and -1. Nil fn clears the slot.
func (p *Plugin) SetProcessDataProcW(h Handle, fn ProcessDataProcW) {
	var cb hrx.ProgressFunc
	if fn != nil {
		cb = func(name string, size int64) bool {
			return fn(encodeW(hostName(name)), clampInt32(size)) != 0
		}
	}

	p.setProgress(h, hrx.CallbackWide, cb)
}

// PackFiles adds files named in addList (NUL-separated, double-NUL ended,
// relative to srcPath) to packedFile below subPath.
func (p *Plugin) PackFiles(packedFile string, subPath string, srcPath string, addList string, flags int) int {
	_, err := hrx.Pack(context.Background(), packedFile, SplitList(addList), hrx.PackOptions{
		Progress:   p.progress,
		Logger:     p.logger,
		SubPath:    subPath,
		SourceRoot: srcPath,
		Flags:      PackFlags(flags),
	})
	if err != nil {
		p.logger.Debug("pack failed", "archive", packedFile, "err", err)
	}

	return Code(err)
}

// PackFilesW is PackFiles for UTF-16 arguments.
func (p *Plugin) PackFilesW(packedFile []uint16, subPath []uint16, srcPath []uint16, addList []uint16, flags int) int {
	return p.PackFiles(decodeW(packedFile), decodeW(subPath), decodeW(srcPath), JoinList(SplitListW(addList)...), flags)
}

// DeleteFiles removes entries named in deleteList (NUL-separated,
// double-NUL ended) from packedFile.
func (p *Plugin) DeleteFiles(packedFile string, deleteList string) int {
	_, err := hrx.Remove(context.Background(), packedFile, SplitList(deleteList), hrx.RemoveOptions{
		Progress: p.progress,
		Logger:   p.logger,
	})
	if err != nil {
		p.logger.Debug("delete failed", "archive", packedFile, "err", err)
	}

	return Code(err)
}

// DeleteFilesW is DeleteFiles for UTF-16 arguments.
func (p *Plugin) DeleteFilesW(packedFile []uint16, deleteList []uint16) int {
	return p.DeleteFiles(decodeW(packedFile), JoinList(SplitListW(deleteList)...))
}

// GetPackerCaps returns supported PK_CAPS_* bits.
func (p *Plugin) GetPackerCaps() int {
	return Capabilities()
}

// GetBackgroundFlags returns supported BACKGROUND_* bits.
func (p *Plugin) GetBackgroundFlags() int {
	return BackgroundFlags()
}

// CanYouHandleThisFile reports whether fileName parses as a non-empty archive.
func (p *Plugin) CanYouHandleThisFile(fileName string) bool {
	return hrx.IsArchive(fileName)
}

// CanYouHandleThisFileW is CanYouHandleThisFile for UTF-16 names.
func (p *Plugin) CanYouHandleThisFileW(fileName []uint16) bool {
	return p.CanYouHandleThisFile(decodeW(fileName))
}

// Open reports number of live handles.
func (p *Plugin) Open() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.sessions)
}

// readNext advances session h and returns header or host code.
func (p *Plugin) readNext(h Handle) (hrx.Header, int) {
	s, ok := p.session(h)
	if !ok {
		return hrx.Header{}, E_NOT_SUPPORTED
	}

	header, err := s.Next()
	if err != nil {
		return hrx.Header{}, Code(err)
	}

	return header, 0
}

// session returns live session for h.
func (p *Plugin) session(h Handle) (*hrx.Session, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[h]
	return s, ok
}

// setProgress routes registration to session or process-wide registry.
func (p *Plugin) setProgress(h Handle, kind hrx.CallbackKind, fn hrx.ProgressFunc) {
	if h == 0 || h == invalidHandle {
		_ = p.progress.Set(kind, fn)
		return
	}

	s, ok := p.session(h)
	if !ok {
		p.logger.Warn("callback for unknown handle", "handle", fmt.Sprintf("%#x", uintptr(h)))
		return
	}

	_ = s.SetProgress(kind, fn)
}

// decodeW converts NUL-terminated UTF-16 to string.
func decodeW(s []uint16) string {
	for i, c := range s {
		if c == 0 {
			s = s[:i]
			break
		}
	}

	return string(utf16.Decode(s))
}

// encodeW converts string to NUL-terminated UTF-16.
func encodeW(s string) []uint16 {
	return append(utf16.Encode([]rune(s)), 0)
}
