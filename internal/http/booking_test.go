package apphttp_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestBookingFormPreselectsService(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := get(t, app, "/booking?service=cristalizacao-pintura", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `value="cristalizacao-pintura" selected`) {
		t.Fatalf("service not preselected; body=%s", body)
	}
	if !strings.Contains(body, `min="2026-10-15"`) {
		t.Fatalf("date input should start today; body=%s", body)
	}
}

func TestBookingSuccessRendersHandoff(t *testing.T) {
	app, _ := newTestApp(t)
	tok := csrfToken(t, app)

	var status int
	var body string
	entries := captureLogs(t, func() {
		resp, b := post(t, app, "/booking", tok, "", bookingForm())
		status, body = resp.StatusCode, b
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", status, body)
	}
	for _, want := range []string{
		"Agendamento realizado com sucesso!",
		"https://wa.me/5516996434531?text=",
		"Polimento Especializado",
		"Honda Civic (2020) - ABC-1234",
		"*Data:* 20/10/2026",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("confirmation missing %q; body=%s", want, body)
		}
	}
	e, ok := findLog(entries, "booking.create")
	if !ok {
		t.Fatal("booking.create log not found")
	}
	if _, ok := e.Fields["appointment_id"]; !ok {
		t.Fatal("booking.create missing appointment_id")
	}
	if _, ok := findLog(entries, "event.publish"); !ok {
		t.Fatal("appointment.booked event not published")
	}
}

func TestBookingDoubleBookingConflict(t *testing.T) {
	app, _ := newTestApp(t)
	tok := csrfToken(t, app)

	if resp, body := post(t, app, "/booking", tok, "", bookingForm()); resp.StatusCode != http.StatusOK {
		t.Fatalf("first booking failed: %d %s", resp.StatusCode, body)
	}
	resp, body := post(t, app, "/booking", tok, "", bookingForm())
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for a taken slot, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Este horário já está ocupado") {
		t.Fatalf("conflict message missing; body=%s", body)
	}
	// the form keeps what the client typed
	if !strings.Contains(body, `value="Ana Souza"`) {
		t.Fatalf("form values not kept; body=%s", body)
	}

	other := bookingForm()
	other.Set("professional", "carlos-oliveira")
	if resp, body := post(t, app, "/booking", tok, "", other); resp.StatusCode != http.StatusOK {
		t.Fatalf("other professional should be free: %d %s", resp.StatusCode, body)
	}
}

func TestBookingValidationMessages(t *testing.T) {
	cases := map[string]struct {
		field, value, msg string
	}{
		"missing":     {"vehicle", "", "Todos os campos são obrigatórios"},
		"email":       {"email", "ana.example.com", "Por favor, insira um email válido"},
		"phone":       {"phone", "99643", "Por favor, insira um telefone válido com DDD"},
		"sunday":      {"date", "2026-10-18", "Não realizamos agendamentos aos domingos"},
		"past":        {"date", "2026-10-01", "Não é possível agendar para uma data passada"},
		"unknownSlot": {"time", "12:00", "Horário inválido"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app, _ := newTestApp(t)
			tok := csrfToken(t, app)
			form := bookingForm()
			form.Set(tc.field, tc.value)
			resp, body := post(t, app, "/booking", tok, "", form)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			if !strings.Contains(body, tc.msg) {
				t.Fatalf("message %q missing; body=%s", tc.msg, body)
			}
		})
	}
}
