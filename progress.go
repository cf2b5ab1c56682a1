// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"fmt"
	"sync"
)

// ProgressFunc receives the entry name and byte count processed since the
// previous call. Returning false asks the operation to stop.
type ProgressFunc func(name string, size int64) bool

// CallbackKind selects one of two registration slots. Hosts register either
// a text or a wide-text callback; both carry the same Go signature.
type CallbackKind uint8

// Callback slots. KindWide takes precedence when both are set.
const (
	CallbackText CallbackKind = iota + 1
	CallbackWide
)

// ProgressOptions configures a Progress registry.
type ProgressOptions struct {
	// AllowUnregistered makes pack and remove continue when no callback is
	// registered. By default an empty registry answers "stop", so those
	// operations only make progress once the host registered a callback.
	AllowUnregistered bool `json:"allow_unregistered,omitempty" yaml:"allow_unregistered,omitempty"`
}

// Progress is a callback registry shared between an archiver host and the
// operations it invokes. It is safe for concurrent use.
type Progress struct {
	text              ProgressFunc
	wide              ProgressFunc
	mu                sync.RWMutex
	allowUnregistered bool
}

// NewProgress returns empty registry.
func NewProgress(opts ProgressOptions) *Progress {
	return &Progress{allowUnregistered: opts.AllowUnregistered}
}

// Set registers fn in slot kind; nil fn clears the slot.
func (p *Progress) Set(kind CallbackKind, fn ProgressFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch kind {
	case CallbackText:
		p.text = fn
	case CallbackWide:
		p.wide = fn
	default:
		return fmt.Errorf("%w: callback kind %d", ErrNotSupported, kind)
	}

	return nil
}

// Clear empties slot kind.
func (p *Progress) Clear(kind CallbackKind) error {
	return p.Set(kind, nil)
}

// Registered reports whether any slot holds a callback.
func (p *Progress) Registered() bool {
	if p == nil {
		return false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.text != nil || p.wide != nil
}

// resolve returns callback to invoke; wide slot wins.
func (p *Progress) resolve() ProgressFunc {
	if p == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.wide != nil {
		return p.wide
	}

	return p.text
}

// Report invokes the resolved callback for the add/delete path and reports
// whether the caller may continue. With no callback, the registry policy
// decides (stop unless AllowUnregistered).
func (p *Progress) Report(name string, size int64) bool {
	fn := p.resolve()
	if fn == nil {
		return p != nil && p.allowUnregistered
	}

	return fn(name, size)
}

// reportScoped resolves instance slot first, then process-wide slot.
// Without any callback the operation continues.
func reportScoped(instance *Progress, global *Progress, name string, size int64) bool {
	fn := instance.resolve()
	if fn == nil {
		fn = global.resolve()
	}
	if fn == nil {
		return true
	}

	return fn(name, size)
}
