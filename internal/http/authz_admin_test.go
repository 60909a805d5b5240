package apphttp_test

import (
	"net/http"
	"strings"
	"testing"
)

// /admin requires an ADMIN session
func TestAdminGuardRequiresAdmin(t *testing.T) {
	app, db := newTestApp(t)

	// Anonymous -> redirect to login
	resp, _ := get(t, app, "/admin", "")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}

	// Unknown session -> 403 and a security log
	var status int
	entries := captureLogs(t, func() {
		r, _ := get(t, app, "/admin/appointments", "sid-ghost")
		status = r.StatusCode
	})
	if status != http.StatusForbidden {
		t.Fatalf("expected forbidden for unknown session, got %d", status)
	}
	if _, ok := findLog(entries, "access.denied.admin"); !ok {
		t.Fatal("access.denied.admin log not found")
	}

	// Admin -> 200 on every section
	sid := adminSID(t, db)
	for _, p := range []string{"/admin", "/admin/appointments", "/admin/professionals", "/admin/professionals/new", "/admin/testimonials"} {
		resp, body := get(t, app, p, sid)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: admin expected 200, got %d body=%s", p, resp.StatusCode, body)
		}
	}
}

func TestAdminDashboardShowsStats(t *testing.T) {
	app, db := newTestApp(t)
	tok := csrfToken(t, app)
	if resp, body := post(t, app, "/booking", tok, "", bookingForm()); resp.StatusCode != http.StatusOK {
		t.Fatalf("booking failed: %d %s", resp.StatusCode, body)
	}

	_, body := get(t, app, "/admin", adminSID(t, db))
	if !strings.Contains(body, "Bruno Mucio") || !strings.Contains(body, "100.0%") {
		t.Fatalf("per-professional stats missing; body=%s", body)
	}
}

// malformed ids never reach the admin handlers
func TestAdminRejectsMalformedID(t *testing.T) {
	app, db := newTestApp(t)
	sid := adminSID(t, db)
	tok := csrfToken(t, app)

	var getStatus, postStatus int
	entries := captureLogs(t, func() {
		r, _ := get(t, app, "/admin/appointments/a%27b", sid)
		getStatus = r.StatusCode
		r, _ = post(t, app, "/admin/professionals/a%27b/delete", tok, sid, nil)
		postStatus = r.StatusCode
	})
	if getStatus != http.StatusNotFound || postStatus != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed ids, got %d and %d", getStatus, postStatus)
	}
	if _, ok := findLog(entries, "request.bad_id"); !ok {
		t.Fatal("request.bad_id log not found")
	}

	// well-formed ids still pass through
	if r, _ := get(t, app, "/admin/professionals/bruno-mucio/edit", sid); r.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for a valid id, got %d", r.StatusCode)
	}
}
