// Package diag collects non-fatal pipeline diagnostics.
//
// Components report warnings into a Collector passed down by the caller
// instead of printing them; the caller decides how to surface them.
package diag

import (
	"fmt"
	"sort"
	"sync"
)

// Kind identifies the condition a diagnostic reports.
type Kind string

const (
	// KindNonSquare reports a drawing whose nominal width and height differ.
	KindNonSquare Kind = "non-square"
	// KindMultiPath reports an icon with more than one top-level sub-path.
	KindMultiPath Kind = "multi-path"
)

// Diagnostic is a single warning attached to an icon.
type Diagnostic struct {
	Icon    string
	Kind    Kind
	Message string

	seq int
}

// String formats the diagnostic for log output.
func (d Diagnostic) String() string {
	if d.Icon == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Icon, d.Kind, d.Message)
}

// Collector accumulates diagnostics. It is safe for concurrent use; the zero
// value is ready to use.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

// Warn records a warning for icon.
func (c *Collector) Warn(icon string, kind Kind, format string, args ...any) {
	c.record(Diagnostic{Icon: icon, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (c *Collector) record(d Diagnostic) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	d.seq = len(c.items)
	c.items = append(c.items, d)
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Diagnostics returns the recorded diagnostics ordered by icon identifier,
// then by the order they were reported for that icon.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	c.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Icon != out[j].Icon {
			return out[i].Icon < out[j].Icon
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// Scope binds a collector to a single icon. The zero value discards
// everything reported to it.
type Scope struct {
	collector *Collector
	icon      string
	observe   func(Diagnostic)
}

// For returns a Scope that reports diagnostics for icon.
func (c *Collector) For(icon string) Scope {
	return Scope{collector: c, icon: icon}
}

// Observe returns a copy of s that also hands every reported diagnostic to
// fn, e.g. to mirror it as a trace event.
func (s Scope) Observe(fn func(Diagnostic)) Scope {
	s.observe = fn
	return s
}

// Warn records a warning for the scoped icon.
func (s Scope) Warn(kind Kind, format string, args ...any) {
	d := Diagnostic{Icon: s.icon, Kind: kind, Message: fmt.Sprintf(format, args...)}
	s.collector.record(d)
	if s.observe != nil {
		s.observe(d)
	}
}
