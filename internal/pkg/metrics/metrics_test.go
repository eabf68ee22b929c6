package metrics

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
)

func family(t *testing.T, r *Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not registered", name)
	return nil
}

func labels(m *dto.Metric) map[string]string {
	out := map[string]string{}
	for _, l := range m.GetLabel() {
		out[l.GetName()] = l.GetValue()
	}
	return out
}

func TestObserveCountsByOutcome(t *testing.T) {
	t.Parallel()

	r := New()
	r.ObserveExtraction(nil)
	r.ObserveExtraction(nil)
	r.ObserveExtraction(apperrors.NewNoTextError("scan.pdf"))
	r.ObserveExtraction(errors.New("boom"))

	got := map[string]float64{}
	for _, m := range family(t, r, "canvasstudy_extractions_total").GetMetric() {
		got[labels(m)["outcome"]] = m.GetCounter().GetValue()
	}
	want := map[string]float64{"ok": 2, "no_extractable_text": 1, "unknown": 1}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("extractions{outcome=%q} = %v, want %v (all %v)", k, got[k], v, got)
		}
	}

	r.ObserveCompletion("notes", 1500*time.Millisecond, nil)
	r.ObserveCompletion("answer", time.Second, apperrors.NewGenerationError(429, nil, "rate limited"))
	for _, m := range family(t, r, "canvasstudy_llm_completion_duration_seconds").GetMetric() {
		l := labels(m)
		if l["operation"] == "notes" && (l["outcome"] != "ok" || m.GetHistogram().GetSampleSum() != 1.5) {
			t.Fatalf("notes histogram = %v %v", l, m.GetHistogram().GetSampleSum())
		}
		if l["operation"] == "answer" && l["outcome"] != "generation_error" {
			t.Fatalf("answer labels = %v", l)
		}
	}
}

func TestTrackNotesReadsCountAtScrape(t *testing.T) {
	t.Parallel()

	r := New()
	n := int64(3)
	var fail bool
	if err := r.TrackNotes(func(context.Context) (int64, error) {
		if fail {
			return 0, errors.New("database down")
		}
		return n, nil
	}); err != nil {
		t.Fatalf("TrackNotes: %v", err)
	}

	if v := family(t, r, "canvasstudy_archived_notes").GetMetric()[0].GetGauge().GetValue(); v != 3 {
		t.Fatalf("archived_notes = %v, want 3", v)
	}
	n = 5
	if v := family(t, r, "canvasstudy_archived_notes").GetMetric()[0].GetGauge().GetValue(); v != 5 {
		t.Fatalf("archived_notes = %v, want 5", v)
	}
	fail = true
	if v := family(t, r, "canvasstudy_archived_notes").GetMetric()[0].GetGauge().GetValue(); !math.IsNaN(v) {
		t.Fatalf("archived_notes = %v, want NaN on count failure", v)
	}

	if err := r.TrackNotes(func(context.Context) (int64, error) { return 0, nil }); err == nil {
		t.Fatalf("second TrackNotes should be rejected as a duplicate")
	}
}

func TestHandlerServesExposition(t *testing.T) {
	t.Parallel()

	r := New()
	r.ObserveRequest(http.MethodGet, "/courses", http.StatusForbidden, 20*time.Millisecond)
	New().ObserveRequest(http.MethodGet, "/other", http.StatusOK, time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	text := string(body)

	if !strings.Contains(text, `canvasstudy_http_requests_total{method="GET",route="/courses",status="403"} 1`) {
		t.Fatalf("request counter missing from exposition:\n%s", text)
	}
	if strings.Contains(text, `route="/other"`) {
		t.Fatalf("registries leaked into each other")
	}
	if !strings.Contains(text, "go_goroutines") {
		t.Fatalf("runtime collector missing")
	}
}
