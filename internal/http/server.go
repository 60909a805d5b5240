// Package apphttp assembles the Fiber application: views, middleware and routes.
package apphttp

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"muciocar/internal/config"
	"muciocar/internal/events"
	"muciocar/internal/http/handlers"
	applog "muciocar/internal/log"
)

const genericError = "Algo deu errado. Por favor, tente novamente."

// Options carries what New needs besides the config. Events and Storage are
// optional: nil means log-only events and in-memory limiter counters.
type Options struct {
	Config  config.Config
	DB      *sqlx.DB
	Events  events.Publisher
	Storage fiber.Storage
	Now     func() time.Time
	// AccessLog toggles the fiber logger middleware; tests keep it off.
	AccessLog bool
}

// ErrorHandler logs the error and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fe, ok := err.(*fiber.Error); ok && fe.Code < 500 {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, nil)
	msg := genericError
	if code == fiber.StatusNotFound {
		msg = "Página não encontrada"
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

func New(o Options) *fiber.App {
	cfg := o.Config
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = "./web/templates"
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = "./web/static"
	}
	if cfg.BusinessName == "" {
		cfg.BusinessName = "Mucio Car"
	}
	if o.Events == nil {
		o.Events = events.NewLogPublisher()
	}
	if o.Now == nil {
		o.Now = time.Now
	}

	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(cfg.TemplateReload)
	engine.AddFuncMap(viewFuncs(cfg.Location()))

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
	})

	deps := handlers.NewDeps(o.DB, cfg, o.Events, o.Now)

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	if o.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${ip} ${status} ${method} ${path} ${latency} ${locals:requestid}\n",
			Output: accessWriter{},
		}))
	}
	app.Use(helmet.New())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("business", cfg.BusinessName)
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := deps.Auth.CurrentUser(c.UserContext(), sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Storage:    o.Storage,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Muitas requisições. Tente novamente em instantes.")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Falha na verificação de segurança. Atualize a página e tente novamente."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", cfg.StaticDir)

	// ---------- Public pages ----------
	app.Get("/", deps.Site.Home)
	app.Get("/services/:id", deps.Site.ServiceDetail)
	app.Post("/testimonials", limiter.New(limiter.Config{
		Max:          5,
		Expiration:   10 * time.Minute,
		Storage:      o.Storage,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() + "|testimonial" },
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.testimonial.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("notfound", fiber.Map{"Message": "Muitas avaliações enviadas. Tente novamente mais tarde."})
		},
	}), deps.Site.SubmitTestimonial)

	app.Get("/booking", deps.Booking.Form)
	app.Post("/booking", limiter.New(limiter.Config{
		Max:          10,
		Expiration:   10 * time.Minute,
		Storage:      o.Storage,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() + "|booking" },
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.booking.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("notfound", fiber.Map{"Message": "Muitas tentativas de agendamento. Tente novamente mais tarde."})
		},
	}), deps.Booking.Submit)

	// ---------- API ----------
	api := app.Group("/api/v1")
	apiLimiter := limiter.New(limiter.Config{
		Max:          30,
		Expiration:   30 * time.Second,
		Storage:      o.Storage,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() + "|api" },
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.api.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
	api.Get("/availability", apiLimiter, deps.API.Availability)
	api.Get("/calendar", apiLimiter, deps.API.Calendar)
	api.Get("/testimonials", apiLimiter, deps.API.Testimonials)

	// ---------- Auth (login throttled) ----------
	app.Get("/login", deps.AuthH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:          5,
		Expiration:   10 * time.Minute,
		Storage:      o.Storage,
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() + "|login" },
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Muitas tentativas. Tente novamente mais tarde."})
		},
	}), deps.AuthH.Login)
	app.Post("/logout", deps.AuthH.Logout)

	// ---------- Admin ----------
	admin := app.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/", deps.Admin.Dashboard)
	admin.Get("/appointments", deps.Admin.Appointments)
	admin.Get("/appointments/:id", handlers.ValidID, deps.Admin.Appointment)
	admin.Post("/appointments/:id", handlers.ValidID, deps.Admin.UpdateAppointment)
	admin.Post("/appointments/:id/cancel", handlers.ValidID, deps.Admin.CancelAppointment)

	admin.Get("/professionals", deps.Admin.Professionals)
	admin.Get("/professionals/new", deps.Admin.NewProfessional)
	admin.Post("/professionals", deps.Admin.CreateProfessional)
	admin.Get("/professionals/:id/edit", handlers.ValidID, deps.Admin.EditProfessional)
	admin.Post("/professionals/:id", handlers.ValidID, deps.Admin.UpdateProfessional)
	admin.Post("/professionals/:id/toggle", handlers.ValidID, deps.Admin.ToggleProfessional)
	admin.Post("/professionals/:id/delete", handlers.ValidID, deps.Admin.DeleteProfessional)

	admin.Get("/testimonials", deps.Admin.Testimonials)
	admin.Post("/testimonials/:id/approve", handlers.ValidID, deps.Admin.ApproveTestimonial)
	admin.Post("/testimonials/:id/reply", handlers.ValidID, deps.Admin.ReplyTestimonial)
	admin.Post("/testimonials/:id/delete", handlers.ValidID, deps.Admin.DeleteTestimonial)

	// ---------- Health & 404 ----------
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Página não encontrada"})
	})

	return app
}

// accessWriter sends fiber access lines to the process log sink.
type accessWriter struct{}

func (accessWriter) Write(p []byte) (int, error) {
	applog.L().Info("http.access", zap.String("line", strings.TrimSpace(string(p))))
	return len(p), nil
}
