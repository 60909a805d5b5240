package apphttp_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// burst login attempts return 429
func TestLoginRateLimit(t *testing.T) {
	app, _ := newTestApp(t)
	tok := csrfToken(t, app)

	var last int
	entries := captureLogs(t, func() {
		for i := 0; i < 6; i++ {
			resp, _ := post(t, app, "/login", tok, "", url.Values{"email": {"x@y.z"}, "password": {"short"}})
			if i < 5 && resp.StatusCode == http.StatusTooManyRequests {
				t.Fatalf("hit rate limit too early at %d", i)
			}
			last = resp.StatusCode
		}
	})
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", last)
	}
	if _, ok := findLog(entries, "rate.login.hit"); !ok {
		t.Fatal("rate.login.hit log not found")
	}
}

func TestAPIRateLimit(t *testing.T) {
	app, _ := newTestApp(t)
	for i := 0; i < 31; i++ {
		resp, _ := get(t, app, "/api/v1/calendar?month=2026-10", "")
		if i < 30 && resp.StatusCode == http.StatusTooManyRequests {
			t.Fatalf("api limit too early at %d", i)
		}
		if i == 30 && resp.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after api limit, got %d", resp.StatusCode)
		}
	}
}

// oversized POST rejected with 413
func TestBodySizeLimit(t *testing.T) {
	app, _ := newTestApp(t)
	tok := csrfToken(t, app)

	oversize := bytes.Repeat([]byte("A"), (1<<20)+10)
	req := httptest.NewRequest("POST", "/booking", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp, err := app.Test(req, -1)
	// Fiber may return an error instead of a response when the body is too large
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 413 for oversize, got %d body=%s", resp.StatusCode, string(body))
	}
}
