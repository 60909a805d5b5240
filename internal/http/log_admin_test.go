package apphttp_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

// admin writes are audit-logged
func TestAdminAppointmentWritesAreAudited(t *testing.T) {
	app, db := newTestApp(t)
	tok := csrfToken(t, app)
	sid := adminSID(t, db)

	if resp, body := post(t, app, "/booking", tok, "", bookingForm()); resp.StatusCode != http.StatusOK {
		t.Fatalf("booking failed: %d %s", resp.StatusCode, body)
	}
	var id string
	if err := db.Get(&id, `SELECT id FROM appointments`); err != nil {
		t.Fatal(err)
	}

	// filters
	_, body := get(t, app, "/admin/appointments?vehicle=abc-12&professional=BRUNO", sid)
	if !strings.Contains(body, "/admin/appointments/"+id) {
		t.Fatalf("filtered list missing appointment; body=%s", body)
	}
	_, body = get(t, app, "/admin/appointments?client=ninguem", sid)
	if strings.Contains(body, "/admin/appointments/"+id) {
		t.Fatal("client filter should exclude the appointment")
	}

	entries := captureLogs(t, func() {
		resp, body := post(t, app, "/admin/appointments/"+id, tok, sid, url.Values{
			"time": {"14:00"}, "service": {"lavagem-completa"}, "professional": {"andre-santos"},
		})
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("update: expected redirect, got %d body=%s", resp.StatusCode, body)
		}
		resp, _ = post(t, app, "/admin/appointments/"+id+"/cancel", tok, sid, nil)
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("cancel: expected redirect, got %d", resp.StatusCode)
		}
	})

	e, ok := findLog(entries, "admin.appointment.update")
	if !ok {
		t.Fatal("admin.appointment.update log not found")
	}
	if e.Kind != "audit" || e.Fields["professional_id"] != "andre-santos" || e.Fields["time"] != "14:00" {
		t.Fatalf("unexpected update audit entry: %+v", e)
	}
	if _, ok := findLog(entries, "admin.appointment.cancel"); !ok {
		t.Fatal("admin.appointment.cancel log not found")
	}

	resp, _ := get(t, app, "/admin/appointments/"+id, sid)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cancelled appointment should be gone, got %d", resp.StatusCode)
	}
}

func TestAdminProfessionalLifecycle(t *testing.T) {
	app, db := newTestApp(t)
	tok := csrfToken(t, app)
	sid := adminSID(t, db)

	// invalid photo url re-renders the form
	resp, body := post(t, app, "/admin/professionals", tok, sid, url.Values{
		"name": {"Lia Rocha"}, "specialty": {"Vitrificação"}, "photo_url": {"javascript:alert(1)"},
	})
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "URL da foto inválida") {
		t.Fatalf("expected 400 with message, got %d", resp.StatusCode)
	}

	var entries []logEntry
	entries = captureLogs(t, func() {
		resp, _ = post(t, app, "/admin/professionals", tok, sid, url.Values{
			"name": {"Lia Rocha"}, "specialty": {"Vitrificação"}, "active": {"1"},
		})
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("create: expected redirect, got %d", resp.StatusCode)
	}
	if _, ok := findLog(entries, "admin.professionals.create"); !ok {
		t.Fatal("admin.professionals.create log not found")
	}

	var id string
	if err := db.Get(&id, `SELECT id FROM professionals WHERE name = 'Lia Rocha'`); err != nil {
		t.Fatal(err)
	}
	if resp, _ := get(t, app, "/admin/professionals/"+id+"/edit", sid); resp.StatusCode != http.StatusOK {
		t.Fatalf("edit page: %d", resp.StatusCode)
	}
	if resp, _ := post(t, app, "/admin/professionals/"+id+"/toggle", tok, sid, nil); resp.StatusCode != http.StatusFound {
		t.Fatalf("toggle: %d", resp.StatusCode)
	}
	_, body = get(t, app, "/booking", "")
	if strings.Contains(body, "Lia Rocha") {
		t.Fatal("inactive professional offered for booking")
	}

	// a professional with appointments cannot be deleted
	if resp, body := post(t, app, "/booking", tok, "", bookingForm()); resp.StatusCode != http.StatusOK {
		t.Fatalf("booking failed: %d %s", resp.StatusCode, body)
	}
	resp, body = post(t, app, "/admin/professionals/bruno-mucio/delete", tok, sid, nil)
	if resp.StatusCode != http.StatusConflict || !strings.Contains(body, "possui agendamentos") {
		t.Fatalf("expected 409 for professional in use, got %d", resp.StatusCode)
	}
	if resp, _ := post(t, app, "/admin/professionals/"+id+"/delete", tok, sid, nil); resp.StatusCode != http.StatusFound {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
}

func TestAdminTestimonialReplyRequiresText(t *testing.T) {
	app, db := newTestApp(t)
	tok := csrfToken(t, app)
	sid := adminSID(t, db)

	resp, body := post(t, app, "/admin/testimonials/t-seed-1/reply", tok, sid, url.Values{"response": {"  "}})
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "Por favor, digite uma resposta antes de enviar.") {
		t.Fatalf("expected 400 with message, got %d", resp.StatusCode)
	}

	entries := captureLogs(t, func() {
		resp, _ = post(t, app, "/admin/testimonials/t-seed-1/reply", tok, sid, url.Values{"response": {"Obrigado, Fernanda!"}})
	})
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("reply: expected redirect, got %d", resp.StatusCode)
	}
	if _, ok := findLog(entries, "admin.testimonials.reply"); !ok {
		t.Fatal("admin.testimonials.reply log not found")
	}
	_, body = get(t, app, "/", "")
	if !strings.Contains(body, "Obrigado, Fernanda!") {
		t.Fatal("reply not shown on home")
	}

	if resp, _ := post(t, app, "/admin/testimonials/t-seed-1/delete", tok, sid, nil); resp.StatusCode != http.StatusFound {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	if resp, _ := post(t, app, "/admin/testimonials/t-seed-1/delete", tok, sid, nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete should 404, got %d", resp.StatusCode)
	}
}
