// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package history records the recommendation requests made during a
// browsing session. A Log is append-only; the Registry hands out one Log
// per session id and evicts the least recently used session when full.
package history

import (
	"sync"
	"time"
)

// Entry is one recommendation request.
type Entry struct {
	Time        time.Time `json:"time"`
	Mode        string    `json:"mode"`
	Seeds       []string  `json:"seeds"`
	Mood        string    `json:"mood,omitempty"`
	TopN        int       `json:"top_n"`
	ResultCount int       `json:"result_count"`
}

// Log is an append-only, concurrency-safe list of entries.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds e to the end of the log. A zero Time is stamped with now.
func (l *Log) Append(e Entry) {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	e.Seeds = append([]string(nil), e.Seeds...)

	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()
}

// Entries returns a copy of the log in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		e.Seeds = append([]string(nil), e.Seeds...)
		out[i] = e
	}
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
