package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting the server needs. Values come from the
// environment (optionally a .env file in development).
type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret    string
	JWTExpiresIn time.Duration

	PaystackSecretKey string
	PaystackBaseURL   string

	FrontendURL string

	RateLimitRPS   float64
	RateLimitBurst int

	UploadDir string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=inventory port=5432 sslmode=disable")
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("PAYSTACK_BASE_URL", "https://api.paystack.co")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 30)
	v.SetDefault("UPLOAD_DIR", "./uploads")

	expiry, err := time.ParseDuration(v.GetString("JWT_EXPIRES_IN"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:              v.GetString("PORT"),
		Env:               v.GetString("APP_ENV"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTExpiresIn:      expiry,
		PaystackSecretKey: v.GetString("PAYSTACK_SECRET_KEY"),
		PaystackBaseURL:   v.GetString("PAYSTACK_BASE_URL"),
		FrontendURL:       v.GetString("FRONTEND_URL"),
		RateLimitRPS:      v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:    v.GetInt("RATE_LIMIT_BURST"),
		UploadDir:         v.GetString("UPLOAD_DIR"),
	}, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
