package domain

// Service is a detailing service from the catalog.
type Service struct {
	ID               string   `yaml:"id" json:"id"`
	Title            string   `yaml:"title" json:"title"`
	Description      string   `yaml:"description" json:"description"`
	Price            string   `yaml:"price" json:"price"`
	PriceFrom        float64  `yaml:"price_from" json:"priceFrom"`
	Duration         string   `yaml:"duration" json:"duration"`
	Image            string   `yaml:"image" json:"image"`
	TechnicalDetails []Detail `yaml:"technical_details" json:"technicalDetails"`
	Process          []Detail `yaml:"process" json:"process"`
	Products         []Detail `yaml:"products" json:"products"`
	Benefits         []string `yaml:"benefits" json:"benefits"`
	Recommendation   string   `yaml:"recommendation" json:"recommendation"`
}

type Detail struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}
