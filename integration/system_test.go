//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:5000")

func TestSystem_E2E(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var cards []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/api/cards", nil, &cards, 200)
	if len(cards) == 0 {
		t.Fatalf("expected non-empty catalog")
	}

	slug, _ := cards[0]["slug"].(string)
	if slug == "" {
		t.Fatalf("slug missing in card: %#v", cards[0])
	}

	var card map[string]any
	doJSON(t, http.MethodGet, baseURL+"/api/cards/"+slug, nil, &card, 200)
	if card["slug"] != slug {
		t.Fatalf("slug=%v want=%v", card["slug"], slug)
	}

	doJSON(t, http.MethodGet, baseURL+"/api/cards/definitely-not-a-slug", nil, nil, 404)

	email := fmt.Sprintf("reader_%d_%d@example.com", time.Now().Unix(), rand.Intn(100000))
	doJSON(t, http.MethodPost, baseURL+"/api/mailing-list", map[string]any{"email": email}, nil, 201)
	doJSON(t, http.MethodPost, baseURL+"/api/mailing-list", map[string]any{"email": email}, nil, 409)

	doJSON(t, http.MethodPost, baseURL+"/api/track", map[string]any{
		"event": "e2e_probe",
		"data":  map[string]any{"source": "integration"},
	}, nil, 200)

	doJSON(t, http.MethodPost, baseURL+"/api/cards", map[string]any{
		"serviceName": "E2E", "offer": "o", "value": "v",
	}, nil, 401)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("service never became ready: %v", ctx.Err())
		default:
		}

		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func doJSON(t *testing.T, method, url string, body, out any, wantStatus int) {
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

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s status=%d want=%d body=%s", method, url, resp.StatusCode, wantStatus, string(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("decode %s %s: %v body=%s", method, url, err, string(raw))
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
