package handoff

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muciocar/internal/domain"
)

func sample() (domain.Appointment, domain.Service) {
	a := domain.Appointment{
		Date: "2026-10-20", Time: "09:00", ClientName: "Ana Souza", Phone: "(16) 99643-4531",
		Email: "ana@example.com", Vehicle: "Honda Civic", VehicleYear: "2020", Plate: "ABC-1234",
		ProfessionalName: "Bruno Mucio", MarketingOptIn: true,
	}
	s := domain.Service{ID: "lavagem-completa", Title: "Lavagem Completa", Price: "A partir de R$ 120,00"}
	return a, s
}

func TestComposeHasEveryField(t *testing.T) {
	a, s := sample()
	msg := Compose("Mucio Car", a, s, true)

	for _, want := range []string{
		"*Novo Agendamento - Mucio Car*",
		"*Nome:* Ana Souza",
		"*Telefone:* (16) 99643-4531",
		"*Email:* ana@example.com",
		"*Veículo:* Honda Civic (2020)",
		"*Placa:* ABC-1234",
		"*Serviço:* Lavagem Completa (A partir de R$ 120,00)",
		"*Profissional:* Bruno Mucio",
		"*Data:* 20/10/2026",
		"*Horário:* 09:00",
		"*Aceita receber promoções:* Sim",
		"Obrigado por agendar conosco!",
	} {
		assert.Contains(t, msg, want)
	}
	assert.Contains(t, Compose("Mucio Car", a, s, false), "promoções:* Não")
}

func TestLinkEscapesText(t *testing.T) {
	link := Link("+55 (16) 99643-4531", "a&b c\n*d*")
	require.True(t, strings.HasPrefix(link, "https://wa.me/5516996434531?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "a&b c\n*d*", u.Query().Get("text"))
	assert.NotContains(t, link, " ")
}

func TestNewUsesOptIn(t *testing.T) {
	a, s := sample()
	a.MarketingOptIn = false
	m := New("Mucio Car", "5516996434531", a, s)
	assert.Contains(t, m.Text, "promoções:* Não")
	assert.Contains(t, m.Link, "wa.me/5516996434531")
}
