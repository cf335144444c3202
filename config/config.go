package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	SiteURL     string `envconfig:"SITE_URL" default:"http://localhost:8080"`
	UploadsDir  string `envconfig:"UPLOADS_DIR" default:"./uploads"`

	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	AdminAPIKey string `envconfig:"ADMIN_API_KEY" required:"true"`

	Currency string `envconfig:"CURRENCY" default:"GHS"`

	PaystackSecretKey string        `envconfig:"PAYSTACK_SECRET_KEY" required:"true"`
	PaystackBaseURL   string        `envconfig:"PAYSTACK_BASE_URL" default:"https://api.paystack.co"`
	PaystackTimeout   time.Duration `envconfig:"PAYSTACK_TIMEOUT" default:"15s"`

	ResendAPIKey    string        `envconfig:"RESEND_API_KEY"`
	ResendBaseURL   string        `envconfig:"RESEND_BASE_URL" default:"https://api.resend.com"`
	EmailTimeout    time.Duration `envconfig:"EMAIL_TIMEOUT" default:"10s"`
	FromEmail       string        `envconfig:"FROM_EMAIL"`
	StoreOwnerEmail string        `envconfig:"STORE_OWNER_EMAIL"`
	StoreName       string        `envconfig:"STORE_NAME" default:"The Real Gem Shop"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
