// CineMatch - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("hybrid", "ok"))
	droppedBefore := testutil.ToFloat64(RecommendDroppedSeeds)

	RecordRecommendation("hybrid", "ok", time.Millisecond, 2)

	if got := testutil.ToFloat64(RecommendRequestsTotal.WithLabelValues("hybrid", "ok")); got != before+1 {
		t.Errorf("recommend_requests_total = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(RecommendDroppedSeeds); got != droppedBefore+2 {
		t.Errorf("recommend_dropped_seeds_total = %v, want %v", got, droppedBefore+2)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/health", "200"))
	RecordAPIRequest("GET", "/health", "200", 5*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/health", "200")); got != before+1 {
		t.Errorf("api_requests_total = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordPosterLookup(t *testing.T) {
	before := testutil.ToFloat64(PosterLookupsTotal.WithLabelValues("placeholder"))
	RecordPosterLookup("placeholder")
	if got := testutil.ToFloat64(PosterLookupsTotal.WithLabelValues("placeholder")); got != before+1 {
		t.Errorf("poster_lookups_total = %v, want %v", got, before+1)
	}
}
