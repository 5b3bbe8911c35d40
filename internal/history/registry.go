// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package history

import (
	"sync"
	"time"

	"github.com/tomtom215/cinematch/internal/metrics"
)

// Registry defaults.
const (
	DefaultMaxSessions = 10000
	DefaultIdleTTL     = 24 * time.Hour
)

type sessionEntry struct {
	id       string
	log      *Log
	lastSeen time.Time
	prev     *sessionEntry
	next     *sessionEntry
}

// Registry maps session ids to logs.
//
// Sessions are kept in a doubly-linked list ordered by last access, so
// lookup, insertion and eviction are all O(1). Sessions idle longer than
// the TTL are dropped lazily on access.
type Registry struct {
	mu sync.Mutex

	maxSessions int
	ttl         time.Duration
	now         func() time.Time

	sessions map[string]*sessionEntry

	// head.next is the most recently used, tail.prev the least.
	head *sessionEntry
	tail *sessionEntry
}

// NewRegistry creates a registry holding at most maxSessions logs.
// Non-positive arguments select the defaults.
func NewRegistry(maxSessions int, ttl time.Duration) *Registry {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}

	r := &Registry{
		maxSessions: maxSessions,
		ttl:         ttl,
		now:         time.Now,
		sessions:    make(map[string]*sessionEntry),
		head:        &sessionEntry{},
		tail:        &sessionEntry{},
	}
	r.head.next = r.tail
	r.tail.prev = r.head
	return r
}

// Session returns the log for id, creating it if needed.
func (r *Registry) Session(id string) *Log {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.sessions[id]; ok {
		if now.Sub(e.lastSeen) <= r.ttl {
			e.lastSeen = now
			r.moveToFront(e)
			return e.log
		}
		r.remove(e)
	}

	e := &sessionEntry{id: id, log: NewLog(), lastSeen: now}
	r.addToFront(e)
	r.sessions[id] = e
	for len(r.sessions) > r.maxSessions {
		r.remove(r.tail.prev)
	}
	metrics.HistorySessions.Set(float64(len(r.sessions)))
	return e.log
}

// Lookup returns the log for id without creating one.
func (r *Registry) Lookup(id string) (*Log, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if r.now().Sub(e.lastSeen) > r.ttl {
		r.remove(e)
		metrics.HistorySessions.Set(float64(len(r.sessions)))
		return nil, false
	}
	return e.log, true
}

// Len returns the number of retained sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) addToFront(e *sessionEntry) {
	e.prev = r.head
	e.next = r.head.next
	r.head.next.prev = e
	r.head.next = e
}

func (r *Registry) moveToFront(e *sessionEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	r.addToFront(e)
}

func (r *Registry) remove(e *sessionEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(r.sessions, e.id)
}
