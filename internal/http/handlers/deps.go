package handlers

import (
	"time"

	"muciocar/internal/catalog"
	"muciocar/internal/config"
	"muciocar/internal/events"
	"muciocar/internal/repos"
	"muciocar/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	Site    *SiteHandler
	Booking *BookingHandler
	API     *APIHandler
	AuthH   *AuthHandler
	Admin   *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, pub events.Publisher, now func() time.Time) *Deps {
	if now == nil {
		now = time.Now
	}
	loc := cfg.Location()
	cat := catalog.Default()

	apptRepo := repos.NewAppointmentRepo(db)
	proRepo := repos.NewProfessionalRepo(db)
	testRepo := repos.NewTestimonialRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(cat)
	bookingSvc := services.NewBookingService(cat, apptRepo, proRepo, pub, cfg.BusinessName, cfg.WhatsAppNumber, loc)
	bookingSvc.Now = now
	apptSvc := services.NewAppointmentService(apptRepo, bookingSvc, pub)
	proSvc := services.NewProfessionalService(proRepo)
	testSvc := services.NewTestimonialService(testRepo, pub)
	testSvc.Now = now
	authSvc := services.NewAuthService(userRepo)

	return &Deps{
		Auth:    authSvc,
		Site:    &SiteHandler{Catalog: catalogSvc, Testimonials: testSvc},
		Booking: &BookingHandler{Booking: bookingSvc, Catalog: catalogSvc, Now: now, Loc: loc},
		API:     &APIHandler{Booking: bookingSvc, TestimonialSvc: testSvc},
		AuthH:   &AuthHandler{Auth: authSvc, SecureCookie: cfg.CookieSecure},
		Admin: &AdminHandler{
			Appts: apptSvc, Pros: proSvc, TestimonialSvc: testSvc, Catalog: catalogSvc,
			Now: now, Loc: loc,
		},
	}
}
