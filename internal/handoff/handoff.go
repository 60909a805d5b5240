// Package handoff builds the booking summary sent to the business over
// WhatsApp and the deep link that opens it.
package handoff

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"muciocar/internal/domain"
	"muciocar/internal/validate"
)

type Message struct {
	Text string
	Link string
}

// Compose renders the booking summary. Date is shown as dd/mm/yyyy.
func Compose(business string, a domain.Appointment, svc domain.Service, marketing bool) string {
	date := a.Date
	if t, err := time.Parse(domain.DateLayout, a.Date); err == nil {
		date = t.Format("02/01/2006")
	}
	optIn := "Não"
	if marketing {
		optIn = "Sim"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Novo Agendamento - %s*\n\n", business)
	fmt.Fprintf(&b, "*Nome:* %s\n", a.ClientName)
	fmt.Fprintf(&b, "*Telefone:* %s\n", a.Phone)
	fmt.Fprintf(&b, "*Email:* %s\n", a.Email)
	fmt.Fprintf(&b, "*Veículo:* %s (%s)\n", a.Vehicle, a.VehicleYear)
	fmt.Fprintf(&b, "*Placa:* %s\n", a.Plate)
	fmt.Fprintf(&b, "*Serviço:* %s (%s)\n", svc.Title, svc.Price)
	fmt.Fprintf(&b, "*Profissional:* %s\n", a.ProfessionalName)
	fmt.Fprintf(&b, "*Data:* %s\n", date)
	fmt.Fprintf(&b, "*Horário:* %s\n", a.Time)
	fmt.Fprintf(&b, "*Aceita receber promoções:* %s\n\n", optIn)
	b.WriteString("Obrigado por agendar conosco!")
	return b.String()
}

// Link returns a wa.me deep link for number with text prefilled.
func Link(number, text string) string {
	return "https://wa.me/" + validate.Digits(number) + "?text=" + url.QueryEscape(text)
}

// New composes the message and its link in one step.
func New(business, number string, a domain.Appointment, svc domain.Service) Message {
	text := Compose(business, a, svc, a.MarketingOptIn)
	return Message{Text: text, Link: Link(number, text)}
}
