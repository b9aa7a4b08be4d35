// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package metrics

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount reads the number of observations of a histogram.
func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - base; got != 2 {
		t.Errorf("active delta = %v, want 2", got)
	}
	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("active = %v, want %v", got, base)
	}
}

func TestRecordRecommendation(t *testing.T) {
	c := RecommendationsTotal.WithLabelValues("current", "bundled")
	before := testutil.ToFloat64(c)
	RecordRecommendation("current", "bundled")
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}

	u := UnrecognizedAnswersTotal.WithLabelValues("kids", "option")
	before = testutil.ToFloat64(u)
	RecordUnrecognizedAnswer("kids", "option")
	if got := testutil.ToFloat64(u) - before; got != 1 {
		t.Errorf("unrecognized delta = %v, want 1", got)
	}
}

func TestRecordWebhookDelivery(t *testing.T) {
	observed := histogramCount(t, WebhookDeliveryDuration)
	defer func() {
		if got := histogramCount(t, WebhookDeliveryDuration) - observed; got != 2 {
			t.Errorf("webhook_delivery_duration_seconds observations = %d, want 2 (rejected attempts are not timed)", got)
		}
	}()

	tests := []struct {
		outcome string
	}{
		{OutcomeDelivered},
		{OutcomeFailed},
		{OutcomeRejected},
	}
	for _, tt := range tests {
		t.Run(tt.outcome, func(t *testing.T) {
			c := WebhookDeliveries.WithLabelValues(tt.outcome)
			before := testutil.ToFloat64(c)
			RecordWebhookDelivery(tt.outcome, 20*time.Millisecond)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordEventPublish(t *testing.T) {
	ok := EventsPublished.WithLabelValues("quiz.completed")
	failed := EventsFailed.WithLabelValues("quiz.completed")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordEventPublish("quiz.completed", nil)
	RecordEventPublish("quiz.completed", errors.New("closed"))

	if testutil.ToFloat64(ok)-okBefore != 1 || testutil.ToFloat64(failed)-failedBefore != 1 {
		t.Error("publish counters not updated")
	}
}

func TestOutboxMetrics(t *testing.T) {
	SetOutboxPending(7)
	if got := testutil.ToFloat64(OutboxPending); got != 7 {
		t.Errorf("outbox_pending_entries = %v, want 7", got)
	}

	c := OutboxRetries.WithLabelValues("dropped")
	before := testutil.ToFloat64(c)
	RecordOutboxRetry("dropped")
	if testutil.ToFloat64(c)-before != 1 {
		t.Error("outbox_retries_total not incremented")
	}
}

func TestStartUptimeTracker(t *testing.T) {
	stop := make(chan struct{})
	StartUptimeTracker(time.Now().Add(-time.Minute), 5*time.Millisecond, stop)
	defer close(stop)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if testutil.ToFloat64(AppUptime) >= 60 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("app_uptime_seconds was not updated")
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.2.3")

	var m io_prometheus_client.Metric
	if err := AppInfo.WithLabelValues("1.2.3", runtime.Version()).Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if m.GetGauge().GetValue() != 1 {
		t.Errorf("app_info = %v, want 1", m.GetGauge().GetValue())
	}
	labels := map[string]string{}
	for _, lp := range m.GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	if labels["version"] != "1.2.3" {
		t.Errorf("labels = %v", labels)
	}
}
