package domain

type Professional struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Specialty string `db:"specialty" json:"specialty"`
	PhotoURL  string `db:"photo_url" json:"photoUrl"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt string `db:"created_at" json:"-"`
	UpdatedAt string `db:"updated_at" json:"-"`
}
