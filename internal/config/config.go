package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DBDSN        string `envconfig:"DB_DSN" default:"muciocar.db"` // sqlite file in project root
	TemplatesDir string `envconfig:"TEMPLATES_DIR" default:"./web/templates"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"./web/static"`
	LogFile      string `envconfig:"LOG_FILE" default:"./muciocar.log"`

	BusinessName   string `envconfig:"BUSINESS_NAME" default:"Mucio Car"`
	WhatsAppNumber string `envconfig:"WHATSAPP_NUMBER" default:"5516996434531"`
	BusinessTZ     string `envconfig:"BUSINESS_TZ" default:"America/Sao_Paulo"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@muciocar.test"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// Events go to RabbitMQ when set, otherwise to the log.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"muciocar.events"`

	// Rate limiter counters live in Redis when set, otherwise in memory.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	CookieSecure   bool `envconfig:"COOKIE_SECURE" default:"false"`
	TemplateReload bool `envconfig:"TEMPLATE_RELOAD" default:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// Location resolves BusinessTZ, falling back to UTC when the zone is unknown.
func (c Config) Location() *time.Location {
	if c.BusinessTZ == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.BusinessTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}
