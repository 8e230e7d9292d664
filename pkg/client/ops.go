package client

import "sync"

// OpTracker records which operations are in flight and the message of the
// most recent failure. Operations that pass an opKey get their own flag;
// unkeyed calls share a single global flag that gates a global spinner.
type OpTracker struct {
	mu      sync.Mutex
	flags   map[string]bool
	global  bool
	lastErr string
}

func NewOpTracker() *OpTracker {
	return &OpTracker{flags: make(map[string]bool)}
}

func (t *OpTracker) begin(opKey string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if opKey == "" {
		t.global = true
	} else {
		t.flags[opKey] = true
	}
	t.lastErr = ""
}

func (t *OpTracker) end(opKey string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if opKey == "" {
		t.global = false
	} else {
		t.flags[opKey] = false
	}
}

func (t *OpTracker) fail(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastErr = message
}

// InFlight reports whether the operation with the given key is running.
func (t *OpTracker) InFlight(opKey string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flags[opKey]
}

// Loading reports whether any unkeyed operation is running.
func (t *OpTracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.global
}

// LastError returns the message of the most recent failed request, or the
// empty string when the latest dispatch has not failed.
func (t *OpTracker) LastError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}
