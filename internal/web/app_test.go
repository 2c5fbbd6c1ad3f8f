package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"DealBoard/internal/auth"
	"DealBoard/internal/catalog"
	"DealBoard/internal/mailing"
	"DealBoard/internal/review"
	"DealBoard/internal/track"
	"DealBoard/internal/web"
	"DealBoard/pkg/kit"
)

const jwtSecret = "test-secret-test-secret-test-secret"

type fakeFetcher struct {
	cards []catalog.Card
	err   error
}

func (f *fakeFetcher) FetchCards(ctx context.Context) ([]catalog.Card, error) {
	return f.cards, f.err
}

func newTS(t *testing.T, fetcher catalog.Fetcher, reviewsDir string) *httptest.Server {
	t.Helper()

	if reviewsDir == "" {
		reviewsDir = t.TempDir()
	}

	deps := web.Deps{
		Catalog: &catalog.Server{Store: catalog.NewStore(fetcher, zap.NewNop()), Log: zap.NewNop()},
		Reviews: &review.Server{Store: review.NewStore(review.DirProvider{Dir: reviewsDir}), Log: zap.NewNop()},
		Mailing: &mailing.Server{Store: mailing.NewMemStore(), Log: zap.NewNop()},
		Track:   &track.Server{Sink: track.NewSink(zap.NewNop(), nil)},
		Auth: &auth.Server{
			Log:   zap.NewNop(),
			Store: auth.NewMemStore(),
			JWT:   auth.NewTokenMaker(jwtSecret),
		},
		SubscribeLimiter: kit.NewIPRateLimiter(100, time.Minute),
	}

	h := web.NewHandler(deps, web.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "dealboard",
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func login(t *testing.T, baseURL string) string {
	t.Helper()

	creds := map[string]any{
		"email":    "pub@example.com",
		"password": "password123",
	}

	resp, raw := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", creds, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, http.MethodPost, baseURL+"/api/auth/login", creds, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status=%d body=%s", resp.StatusCode, string(raw))
	}

	var lr struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &lr); err != nil {
		t.Fatalf("decode login: %v body=%s", err, string(raw))
	}
	if lr.AccessToken == "" {
		t.Fatalf("empty access_token")
	}
	return lr.AccessToken
}

func TestCards_SeedSetServedWhenSheetUnavailable(t *testing.T) {
	ts := newTS(t, &fakeFetcher{err: context.DeadlineExceeded}, "")

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/api/cards", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}

	var cards []catalog.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(raw))
	}
	if len(cards) != 6 {
		t.Fatalf("len=%d want=6 (seed set)", len(cards))
	}
}

func TestCards_FetchedBatchReplacesSeed(t *testing.T) {
	fetched := []catalog.Card{
		{ID: "sheet-card-0-1", ServiceName: "Hulu", Category: "Affiliate", Offer: "o", Type: "link", Value: "v", Slug: "hulu"},
		{ID: "sheet-card-1-1", ServiceName: "Max", Category: "Code", Offer: "o", Type: "code", Value: "v", Slug: "max"},
	}
	ts := newTS(t, &fakeFetcher{cards: fetched}, "")

	_, raw := doJSON(t, http.MethodGet, ts.URL+"/api/cards", nil, nil)

	var cards []catalog.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("len=%d want=2", len(cards))
	}

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/api/cards/category/Code", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("category status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &cards); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cards) != 1 || cards[0].Slug != "max" {
		t.Fatalf("category filter wrong: %+v", cards)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/cards/hulu", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get by slug status=%d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/cards/amazon-prime", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("seed slug should be shadowed, status=%d", resp.StatusCode)
	}
}

func TestCards_CreateRequiresAuth(t *testing.T) {
	ts := newTS(t, &fakeFetcher{}, "")

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/cards", map[string]any{
		"serviceName": "Hulu", "offer": "o", "value": "v",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d want=401", resp.StatusCode)
	}
}

func TestCards_CreateAndValidation(t *testing.T) {
	ts := newTS(t, &fakeFetcher{}, "")
	token := login(t, ts.URL)
	authz := map[string]string{"Authorization": "Bearer " + token}

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/api/cards", map[string]any{
		"serviceName": "Hulu", "offer": "1 month free", "value": "https://hulu.com",
	}, authz)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", resp.StatusCode, string(raw))
	}

	var created catalog.Card
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Slug != "hulu" || created.ID == "" {
		t.Fatalf("created=%+v", created)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/cards/hulu", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("created card not visible, status=%d", resp.StatusCode)
	}

	resp, raw = doJSON(t, http.MethodPost, ts.URL+"/api/cards", map[string]any{
		"serviceName": "", "offer": "o", "value": "v",
	}, authz)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid create status=%d body=%s", resp.StatusCode, string(raw))
	}
}

func TestSheetsWebhook_SkipsInvalidRows(t *testing.T) {
	ts := newTS(t, &fakeFetcher{}, "")
	token := login(t, ts.URL)

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/api/sheets-webhook", map[string]any{
		"cards": []map[string]any{
			{"serviceName": "Hulu", "offer": "o", "value": "v"},
			{"serviceName": "", "offer": "o", "value": "v"},
			{"serviceName": "Max", "offer": "o", "value": "v"},
		},
	}, map[string]string{"Authorization": "Bearer " + token})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("webhook status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out struct {
		Accepted int `json:"accepted"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Accepted != 2 {
		t.Fatalf("accepted=%d want=2", out.Accepted)
	}
}

func TestReviews_LazyMaterialization(t *testing.T) {
	dir := t.TempDir()
	content := "---\ntitle: Amazon Prime Review\n---\nGood value."
	if err := os.WriteFile(filepath.Join(dir, "amazon-prime.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ts := newTS(t, &fakeFetcher{}, dir)

	resp, raw := doJSON(t, http.MethodGet, ts.URL+"/api/reviews/amazon-prime", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, string(raw))
	}

	var rev review.Review
	if err := json.Unmarshal(raw, &rev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rev.Title != "Amazon Prime Review" {
		t.Fatalf("title=%q", rev.Title)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/reviews/no-such-slug", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing review status=%d want=404", resp.StatusCode)
	}
}

func TestMailingList_DuplicateRejected(t *testing.T) {
	ts := newTS(t, &fakeFetcher{}, "")

	resp, raw := doJSON(t, http.MethodPost, ts.URL+"/api/mailing-list", map[string]any{
		"email": "reader@example.com",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("subscribe status=%d body=%s", resp.StatusCode, string(raw))
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/mailing-list", map[string]any{
		"email": "reader@example.com",
	}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate status=%d want=409", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/mailing-list", map[string]any{
		"email": "not-an-email",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid email status=%d want=400", resp.StatusCode)
	}
}

func TestTrack_AcceptsEvents(t *testing.T) {
	ts := newTS(t, &fakeFetcher{}, "")

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/track", map[string]any{
		"event": "card_click",
		"data":  map[string]any{"slug": "amazon-prime"},
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	// A well-formed body always succeeds, even with a blank event name.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/track", map[string]any{"event": ""}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("empty event status=%d want=200", resp.StatusCode)
	}

	// Malformed JSON is the only client error.
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/track", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	raw, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	raw.Body.Close()
	if raw.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad json status=%d want=400", raw.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTS(t, &fakeFetcher{}, "")

	resp, _ := doJSON(t, http.MethodGet, ts.URL+"/healthz", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status=%d", resp.StatusCode)
	}

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/readyz", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("readyz status=%d", resp.StatusCode)
	}
}
