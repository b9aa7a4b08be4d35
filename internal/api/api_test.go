// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/quizfunnel/internal/models"
	"github.com/tomtom215/quizfunnel/internal/payment"
	"github.com/tomtom215/quizfunnel/internal/quiz"
	"github.com/tomtom215/quizfunnel/internal/recommend"
	"github.com/tomtom215/quizfunnel/internal/token"
	"github.com/tomtom215/quizfunnel/internal/webhook"
)

type fakePublisher struct {
	mu       sync.Mutex
	err      error
	payloads []*webhook.Payload
	urls     []string
}

func (p *fakePublisher) PublishCompleted(_ context.Context, payload *webhook.Payload, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	p.urls = append(p.urls, url)
	return nil
}

type fakeDeliverer bool

func (d fakeDeliverer) CanDeliver(string) bool { return bool(d) }

type fakeOutbox struct {
	n   int
	err error
}

func (o fakeOutbox) Count(context.Context) (int, error) { return o.n, o.err }

type testEnvelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
	Meta   map[string]any   `json:"metadata"`
}

func newTestDeps(t *testing.T) Deps {
	t.Helper()
	reg, err := recommend.NewRegistry(zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	tokens, err := token.NewManager(strings.Repeat("k", 32), time.Hour)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return Deps{
		Registry:  reg,
		Catalog:   quiz.NewCatalog(),
		Payments:  payment.NewTable(),
		Tokens:    tokens,
		Publisher: &fakePublisher{},
		Deliverer: fakeDeliverer(true),
		Outbox:    fakeOutbox{n: 2},
		Version:   "test",
		Logger:    zerolog.Nop(),
	}
}

func newTestServer(t *testing.T, deps Deps, cfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	h, err := NewHandler(deps)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if cfg == nil {
		cfg = DefaultChiMiddlewareConfig()
		cfg.RateLimitDisabled = true
	}
	return NewRouter(h, cfg).Setup()
}

func do(t *testing.T, srv http.Handler, method, target, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v (body %q)", method, target, err, rec.Body.String())
	}
	return rec, env
}

func decodeData(t *testing.T, env testEnvelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

const bundledAnswers = `[
	{"questionId": "q3", "type": "mcq", "value": "experience_mix"},
	{"questionId": "q4", "type": "mcq", "value": "time_5_6"}
]`

func TestNewHandler_MissingDependency(t *testing.T) {
	deps := newTestDeps(t)
	deps.Registry = nil
	if _, err := NewHandler(deps); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("NewHandler() error = %v, want ErrMissingDependency", err)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name        string
		outbox      PendingCounter
		deliverer   Deliverer
		wantStatus  string
		wantPending int
		wantWebhook bool
	}{
		{"healthy", fakeOutbox{n: 2}, fakeDeliverer(true), "healthy", 2, true},
		{"outbox error", fakeOutbox{err: errors.New("closed")}, fakeDeliverer(true), "degraded", 0, true},
		{"no webhook", nil, nil, "healthy", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t)
			deps.Outbox = tt.outbox
			deps.Deliverer = tt.deliverer
			srv := newTestServer(t, deps, nil)

			rec, env := do(t, srv, http.MethodGet, "/api/v1/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var got models.HealthResponse
			decodeData(t, env, &got)
			if got.Status != tt.wantStatus || got.OutboxPending != tt.wantPending || got.WebhookEnabled != tt.wantWebhook {
				t.Errorf("health = %+v", got)
			}
			if got.Variants != 3 || got.DefaultVariant != recommend.DefaultVariantID || got.Version != "test" {
				t.Errorf("health = %+v", got)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("security headers not set")
			}
		})
	}
}

func TestVariants(t *testing.T) {
	srv := newTestServer(t, newTestDeps(t), nil)

	_, env := do(t, srv, http.MethodGet, "/api/v1/variants", "")
	var list []models.VariantSummary
	decodeData(t, env, &list)
	if len(list) != 3 {
		t.Fatalf("got %d variants, want 3", len(list))
	}
	defaults := 0
	for _, v := range list {
		if v.Default {
			defaults++
			if v.ID != recommend.DefaultVariantID {
				t.Errorf("default variant = %q", v.ID)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("%d variants marked default, want 1", defaults)
	}

	rec, env := do(t, srv, http.MethodGet, "/api/v1/variants/kids", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /variants/kids status = %d", rec.Code)
	}
	var v recommend.Variant
	decodeData(t, env, &v)
	if v.ID != recommend.VariantKids || !v.SupportsKids || len(v.Questions) == 0 {
		t.Errorf("variant = %+v", v)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/variants/nope", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != CodeNotFound {
		t.Errorf("unknown variant: status %d, error %+v", rec.Code, env.Error)
	}
}

func TestQuiz(t *testing.T) {
	deps := newTestDeps(t)
	def := quiz.DefaultDefinition()
	def.ID = "hooked"
	def.WebhookURL = "https://hooks.example.com/secret"
	if err := deps.Catalog.Put(def); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	srv := newTestServer(t, deps, nil)

	for _, id := range []string{"default", quiz.DefaultDefinitionID, "hooked"} {
		rec, env := do(t, srv, http.MethodGet, "/api/v1/quizzes/"+id, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /quizzes/%s status = %d", id, rec.Code)
		}
		var got quiz.Definition
		decodeData(t, env, &got)
		if got.WebhookURL != "" {
			t.Errorf("%s: webhook url exposed: %q", id, got.WebhookURL)
		}
		if len(got.Questions) == 0 {
			t.Errorf("%s: no questions", id)
		}
	}

	rec, _ := do(t, srv, http.MethodGet, "/api/v1/quizzes/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing quiz status = %d, want 404", rec.Code)
	}
}

func TestRecommend(t *testing.T) {
	srv := newTestServer(t, newTestDeps(t), nil)

	tests := []struct {
		name      string
		body      string
		wantTrack recommend.Track
		wantKids  bool
	}{
		{"bundled near tie", `{"answers": ` + bundledAnswers + `}`, recommend.TrackBundled, false},
		{"empty answers default to group", `{"answers": []}`, recommend.TrackGroup, false},
		{"kids override on kids variant", `{"variant": "kids", "answers": [], "is_kids_override": true}`, recommend.TrackKids, true},
		{"unrecognized ids score zero", `{"answers": [{"questionId": "q99", "value": "whatever"}]}`, recommend.TrackGroup, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, srv, http.MethodPost, "/api/v1/recommendations", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var got models.RecommendationResponse
			decodeData(t, env, &got)
			if got.RecommendedTrack != tt.wantTrack || got.IsKidsOverride != tt.wantKids {
				t.Errorf("track = %q kids = %v, want %q %v", got.RecommendedTrack, got.IsKidsOverride, tt.wantTrack, tt.wantKids)
			}
			if got.Content == nil || got.Content.Track != tt.wantTrack {
				t.Errorf("content = %+v", got.Content)
			}
			if got.Token == "" {
				t.Error("token not issued")
			}
			if got.Reasons == nil {
				t.Error("reasons = nil, want empty list")
			}
			for _, alt := range got.Alternates {
				if alt.Track == tt.wantTrack {
					t.Errorf("alternates include the recommended track %q", alt.Track)
				}
			}
		})
	}
}

func TestRecommend_Invalid(t *testing.T) {
	srv := newTestServer(t, newTestDeps(t), nil)

	many := make([]string, models.MaxAnswers+1)
	for i := range many {
		many[i] = `{"questionId": "q1", "value": "reason_work"}`
	}

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"empty body", "", http.StatusBadRequest, CodeInvalidJSON},
		{"malformed", `{"answers": [`, http.StatusBadRequest, CodeInvalidJSON},
		{"unknown variant", `{"variant": "nope", "answers": []}`, http.StatusBadRequest, CodeValidation},
		{"bad variant slug", `{"variant": "No Way", "answers": []}`, http.StatusBadRequest, CodeValidation},
		{"too many answers", `{"answers": [` + strings.Join(many, ",") + `]}`, http.StatusBadRequest, CodeValidation},
		{"bad answer type", `{"answers": [{"questionId": "q1", "type": "slider", "value": "x"}]}`, http.StatusBadRequest, CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var env testEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Status != models.StatusError || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

const submissionBody = `{
	"answers": ` + bundledAnswers + `,
	"participant": {"name": "Ana", "email": "ana@example.com"}
}`

func TestSubmit(t *testing.T) {
	deps := newTestDeps(t)
	pub := &fakePublisher{}
	deps.Publisher = pub
	srv := newTestServer(t, deps, nil)

	rec, env := do(t, srv, http.MethodPost, "/api/v1/submissions", submissionBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var got models.SubmissionResponse
	decodeData(t, env, &got)
	if got.Delivery != models.DeliveryQueued {
		t.Errorf("delivery = %q, want queued", got.Delivery)
	}
	if got.QuizID != quiz.DefaultDefinitionID || got.Variant != recommend.VariantCurrent {
		t.Errorf("quiz = %q variant = %q", got.QuizID, got.Variant)
	}
	if got.RecommendedTrack != recommend.TrackBundled {
		t.Errorf("track = %q, want bundled", got.RecommendedTrack)
	}
	if got.Template.ID == "" {
		t.Error("template not selected")
	}

	if len(pub.payloads) != 1 {
		t.Fatalf("published %d payloads, want 1", len(pub.payloads))
	}
	p := pub.payloads[0]
	if p.Participant.Email != "ana@example.com" || p.Recommendation.Track != recommend.TrackBundled {
		t.Errorf("payload = %+v", p)
	}
	if len(p.Answers) != 2 || p.EventType != webhook.EventQuizCompleted {
		t.Errorf("payload answers = %d, event = %q", len(p.Answers), p.EventType)
	}
}

func TestSubmit_DeliveryStates(t *testing.T) {
	tests := []struct {
		name      string
		publisher Publisher
		deliverer Deliverer
		want      string
	}{
		{"webhook disabled", &fakePublisher{}, fakeDeliverer(false), models.DeliveryDisabled},
		{"no publisher", nil, fakeDeliverer(true), models.DeliveryDisabled},
		{"publish fails", &fakePublisher{err: errors.New("bus closed")}, fakeDeliverer(true), models.DeliveryFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t)
			deps.Publisher = tt.publisher
			deps.Deliverer = tt.deliverer
			srv := newTestServer(t, deps, nil)

			rec, env := do(t, srv, http.MethodPost, "/api/v1/submissions", submissionBody)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d; a delivery problem must not fail the submission", rec.Code)
			}
			var got models.SubmissionResponse
			decodeData(t, env, &got)
			if got.Delivery != tt.want {
				t.Errorf("delivery = %q, want %q", got.Delivery, tt.want)
			}
		})
	}
}

func TestSubmit_Invalid(t *testing.T) {
	srv := newTestServer(t, newTestDeps(t), nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing email", `{"answers": ` + bundledAnswers + `, "participant": {"name": "Ana"}}`, http.StatusBadRequest},
		{"bad email", `{"answers": ` + bundledAnswers + `, "participant": {"email": "not-an-email"}}`, http.StatusBadRequest},
		{"no answers", `{"answers": [], "participant": {"email": "ana@example.com"}}`, http.StatusBadRequest},
		{"unknown quiz", `{"quiz_id": "nope", "answers": ` + bundledAnswers + `, "participant": {"email": "ana@example.com"}}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, srv, http.MethodPost, "/api/v1/submissions", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env.Error == nil {
				t.Error("error envelope missing")
			}
		})
	}
}

func TestOffer(t *testing.T) {
	srv := newTestServer(t, newTestDeps(t), nil)

	tests := []struct {
		name         string
		target       string
		wantTerm     string
		wantAcademy  bool
		wantAdjusted float64
		wantLink     string
	}{
		{"group monthly", "/api/v1/offers/group", "monthly", false, 74.5, "punchpass.com"},
		{"group quarterly with academy", "/api/v1/offers/group?term=quarterly&academy=true", "quarterly", true, 223.5, "buy.stripe.com"},
		{"private falls back to monthly", "/api/v1/offers/private?term=quarterly", "monthly", false, 0, "buy.stripe.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var got models.OfferResponse
			decodeData(t, env, &got)
			if string(got.Term) != tt.wantTerm || got.IncludeAcademy != tt.wantAcademy {
				t.Errorf("term = %q academy = %v", got.Term, got.IncludeAcademy)
			}
			if tt.wantAdjusted != 0 && got.AdjustedPrice != tt.wantAdjusted {
				t.Errorf("adjusted = %v, want %v", got.AdjustedPrice, tt.wantAdjusted)
			}
			if !strings.Contains(got.PaymentLink, tt.wantLink) {
				t.Errorf("link = %q, want host %q", got.PaymentLink, tt.wantLink)
			}
			if got.AcademyFee != 49 {
				t.Errorf("academy fee = %v, want 49", got.AcademyFee)
			}
		})
	}
}

func TestOffer_Errors(t *testing.T) {
	srv := newTestServer(t, newTestDeps(t), nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"kids is not purchasable", "/api/v1/offers/kids", http.StatusNotFound, CodeNotPurchasable},
		{"unknown track", "/api/v1/offers/premium", http.StatusNotFound, CodeNotFound},
		{"bad term", "/api/v1/offers/group?term=weekly", http.StatusBadRequest, CodeValidation},
		{"bad academy", "/api/v1/offers/group?academy=maybe", http.StatusBadRequest, CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantStatus || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("status = %d error = %+v, want %d %s", rec.Code, env.Error, tt.wantStatus, tt.wantCode)
			}
		})
	}
}

func TestResult(t *testing.T) {
	srv := newTestServer(t, newTestDeps(t), nil)

	_, env := do(t, srv, http.MethodPost, "/api/v1/recommendations", `{"answers": `+bundledAnswers+`}`)
	var rec models.RecommendationResponse
	decodeData(t, env, &rec)

	resp, env := do(t, srv, http.MethodGet, "/api/v1/results/"+rec.Token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var got models.ResultResponse
	decodeData(t, env, &got)
	if got.RecommendedTrack != rec.RecommendedTrack || got.GroupScore != rec.GroupScore || got.PrivateScore != rec.PrivateScore {
		t.Errorf("result = %+v, want %+v", got, rec)
	}
	if got.Variant != recommend.VariantCurrent || got.ExpiresAt.IsZero() {
		t.Errorf("variant = %q expires = %v", got.Variant, got.ExpiresAt)
	}

	resp, env = do(t, srv, http.MethodGet, "/api/v1/results/garbage", "")
	if resp.Code != http.StatusUnauthorized || env.Error.Code != CodeInvalidToken {
		t.Errorf("garbage token: status %d error %+v", resp.Code, env.Error)
	}
}

func TestResult_TokensDisabled(t *testing.T) {
	deps := newTestDeps(t)
	deps.Tokens = nil
	srv := newTestServer(t, deps, nil)

	_, env := do(t, srv, http.MethodPost, "/api/v1/recommendations", `{"answers": []}`)
	var rec models.RecommendationResponse
	decodeData(t, env, &rec)
	if rec.Token != "" {
		t.Errorf("token = %q, want none", rec.Token)
	}

	resp, env := do(t, srv, http.MethodGet, "/api/v1/results/anything", "")
	if resp.Code != http.StatusNotFound || env.Error.Code != CodeTokensDisabled {
		t.Errorf("status %d error %+v", resp.Code, env.Error)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	srv := newTestServer(t, newTestDeps(t), nil)

	rec, env := do(t, srv, http.MethodGet, "/api/v1/nothing-here", "")
	if rec.Code != http.StatusNotFound || env.Error.Code != CodeNotFound {
		t.Errorf("not found: %d %+v", rec.Code, env.Error)
	}

	rec, env = do(t, srv, http.MethodDelete, "/api/v1/variants", "")
	if rec.Code != http.StatusMethodNotAllowed || env.Error.Code != CodeMethodNotAllowed {
		t.Errorf("method not allowed: %d %+v", rec.Code, env.Error)
	}
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	srv := newTestServer(t, newTestDeps(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestRouter_SubmissionRateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.SubmissionLimit = RateLimitConfig{Requests: 2, Window: time.Minute}
	srv := newTestServer(t, newTestDeps(t), cfg)

	var last *httptest.ResponseRecorder
	var env testEnvelope
	for i := 0; i < 3; i++ {
		last, env = do(t, srv, http.MethodPost, "/api/v1/submissions", submissionBody)
	}
	if last.Code != http.StatusTooManyRequests || env.Error == nil || env.Error.Code != CodeRateLimited {
		t.Errorf("third submission: status %d error %+v, want 429", last.Code, env.Error)
	}

	// Scoring is not held to the submission budget.
	rec, _ := do(t, srv, http.MethodPost, "/api/v1/recommendations", `{"answers": []}`)
	if rec.Code != http.StatusOK {
		t.Errorf("recommendations status = %d, want 200", rec.Code)
	}
}

func TestParseBoolParam(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"", true, true},
		{"true", true, true},
		{"1", true, true},
		{"off", false, true},
		{"No", false, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		got, ok := parseBoolParam(tt.in, true)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseBoolParam(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\rc\x00d"); got != "abcd" {
		t.Errorf("sanitizeLogValue() = %q, want abcd", got)
	}
	long := strings.Repeat("x", 300)
	if got := sanitizeLogValue(long); len(got) != 203 {
		t.Errorf("len = %d, want 203", len(got))
	}
}
