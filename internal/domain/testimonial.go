package domain

type Testimonial struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Rating       int    `db:"rating" json:"rating"`
	Comment      string `db:"comment" json:"comment"`
	VehicleModel string `db:"vehicle_model" json:"vehicleModel,omitempty"`
	ServiceName  string `db:"service_name" json:"service,omitempty"`
	Approved     bool   `db:"approved" json:"approved"`
	Response     string `db:"response" json:"response,omitempty"`
	ResponseDate string `db:"response_date" json:"responseDate,omitempty"`
	CreatedAt    string `db:"created_at" json:"date"`
}

// IsPositive reports a rating of three stars or more.
func (t Testimonial) IsPositive() bool { return t.Rating >= 3 }
