package apphttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"muciocar/internal/config"
	apphttp "muciocar/internal/http"
	applog "muciocar/internal/log"
	"muciocar/internal/repos"
)

// Thursday 2026-10-15 10:30 UTC.
var clock = time.Date(2026, 10, 15, 10, 30, 0, 0, time.UTC)

const adminPass = "Passw0rd!"

func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	cfg := config.Config{
		DBDSN:          ":memory:",
		TemplatesDir:   "../../web/templates",
		StaticDir:      "../../web/static",
		BusinessName:   "Mucio Car",
		WhatsAppNumber: "5516996434531",
		BusinessTZ:     "UTC",
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := repos.EnsureAdmin(db, "u-admin", "admin@muciocar.test", "Admin", adminPass); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	app := apphttp.New(apphttp.Options{
		Config: cfg,
		DB:     db,
		Now:    func() time.Time { return clock },
	})
	return app, db
}

// adminSID binds a session for the seeded admin.
func adminSID(t *testing.T, db *sqlx.DB) string {
	t.Helper()
	if err := repos.NewUserRepo(db).BindSession(context.Background(), "sid-admin", "u-admin"); err != nil {
		t.Fatalf("bind admin session: %v", err)
	}
	return "sid-admin"
}

func cookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	tok := cookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

func get(t *testing.T, app *fiber.App, path, sid string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func post(t *testing.T, app *fiber.App, path, tok, sid string, form url.Values) (*http.Response, string) {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", tok)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func bookingForm() url.Values {
	return url.Values{
		"name":         {"Ana Souza"},
		"phone":        {"(16) 99643-4531"},
		"email":        {"ana@example.com"},
		"vehicle":      {"Honda Civic"},
		"year":         {"2020"},
		"plate":        {"ABC-1234"},
		"service":      {"polimento-especializado"},
		"professional": {"bruno-mucio"},
		"date":         {"2026-10-20"},
		"time":         {"09:00"},
		"marketing":    {"1"},
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Kind   string         `json:"kind"`
	Action string         `json:"action"`
	ReqID  string         `json:"req_id"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// captureLogs redirects the event log while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	applog.SetOutput(&lockedWriter{w: &buf})
	defer applog.SetOutput(os.Stdout)

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
