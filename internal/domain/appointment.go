package domain

import "fmt"

const DateLayout = "2006-01-02"

type Appointment struct {
	ID               string `db:"id" json:"id"`
	Date             string `db:"date" json:"date"` // YYYY-MM-DD, business-local
	Time             string `db:"time" json:"time"` // HH:MM
	ServiceID        string `db:"service_id" json:"serviceId"`
	ServiceName      string `db:"service_name" json:"service"`
	ProfessionalID   string `db:"professional_id" json:"professionalId"`
	ProfessionalName string `db:"professional_name" json:"professional"`
	ClientName       string `db:"client_name" json:"client"`
	Phone            string `db:"phone" json:"phone"`
	Email            string `db:"email" json:"email"`
	Vehicle          string `db:"vehicle" json:"vehicle"`
	VehicleYear      string `db:"vehicle_year" json:"vehicleYear"`
	Plate            string `db:"plate" json:"plate"`
	MarketingOptIn   bool   `db:"marketing_opt_in" json:"marketingOptIn"`
	CreatedAt        string `db:"created_at" json:"createdAt"`
	UpdatedAt        string `db:"updated_at" json:"updatedAt,omitempty"`
}

// VehicleDescription renders "Civic (2020) - ABC-1234".
func (a Appointment) VehicleDescription() string {
	return fmt.Sprintf("%s (%s) - %s", a.Vehicle, a.VehicleYear, a.Plate)
}

// Slot is one bookable start time of a day.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type BookedDay struct {
	Date  string `db:"date" json:"date"`
	Count int    `db:"n" json:"count"`
}

type ProfessionalCount struct {
	Name    string
	Count   int
	Percent float64
}

type DashboardStats struct {
	Total           int
	Today           int
	Week            int
	PerProfessional []ProfessionalCount
}
