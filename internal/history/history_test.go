// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLogAppendOnly(t *testing.T) {
	t.Parallel()

	l := NewLog()
	seeds := []string{"Avatar"}
	l.Append(Entry{Mode: "content", Seeds: seeds, TopN: 5, ResultCount: 5})
	l.Append(Entry{Mode: "hybrid", Seeds: []string{"Avatar", "Titanic"}, TopN: 10, ResultCount: 8})

	seeds[0] = "mutated"
	snapshot := l.Entries()
	snapshot[1].Seeds[0] = "mutated"

	got := l.Entries()
	if len(got) != 2 || l.Len() != 2 {
		t.Fatalf("Len() = %d, entries = %d, want 2", l.Len(), len(got))
	}
	if diff := cmp.Diff([]string{"Avatar"}, got[0].Seeds); diff != "" {
		t.Errorf("first entry seeds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Avatar", "Titanic"}, got[1].Seeds); diff != "" {
		t.Errorf("second entry seeds mismatch (-want +got):\n%s", diff)
	}
	if got[0].Mode != "content" || got[1].Mode != "hybrid" {
		t.Errorf("entries out of order: %q, %q", got[0].Mode, got[1].Mode)
	}
	if got[0].Time.IsZero() {
		t.Error("Append should stamp a zero time")
	}
}

func TestLogConcurrentAppend(t *testing.T) {
	t.Parallel()

	l := NewLog()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Append(Entry{Mode: "content", TopN: i})
		}(i)
	}
	wg.Wait()

	if l.Len() != 50 {
		t.Errorf("Len() = %d, want 50", l.Len())
	}
}

func TestRegistrySession(t *testing.T) {
	t.Parallel()

	r := NewRegistry(10, time.Hour)
	a := r.Session("a")
	a.Append(Entry{Mode: "content"})

	if got := r.Session("a"); got != a {
		t.Error("Session should return the same log for the same id")
	}
	if got, ok := r.Lookup("a"); !ok || got.Len() != 1 {
		t.Errorf("Lookup(a) = %v, %v", got, ok)
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup should not create sessions")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	r := NewRegistry(3, time.Hour)
	for i := 0; i < 3; i++ {
		r.Session(fmt.Sprintf("s%d", i))
	}
	r.Session("s0") // s1 becomes the oldest
	r.Session("s3")

	if _, ok := r.Lookup("s1"); ok {
		t.Error("s1 should have been evicted")
	}
	for _, id := range []string{"s0", "s2", "s3"} {
		if _, ok := r.Lookup(id); !ok {
			t.Errorf("%s should be retained", id)
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestRegistryIdleExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(10, time.Minute)
	r.now = func() time.Time { return now }

	r.Session("a").Append(Entry{Mode: "content"})
	now = now.Add(2 * time.Minute)

	if _, ok := r.Lookup("a"); ok {
		t.Error("idle session should have expired")
	}
	if got := r.Session("a"); got.Len() != 0 {
		t.Errorf("expired session should restart empty, got %d entries", got.Len())
	}
}

func TestNewRegistryDefaults(t *testing.T) {
	t.Parallel()

	r := NewRegistry(0, 0)
	if r.maxSessions != DefaultMaxSessions || r.ttl != DefaultIdleTTL {
		t.Errorf("defaults = %d, %s", r.maxSessions, r.ttl)
	}
}
