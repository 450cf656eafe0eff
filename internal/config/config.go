package config

import (
	"os"
	"strconv"
)

// Config collects every environment-derived setting in one place so that
// gateway clients, the mailer and the redis OTP store can be constructed
// once at startup instead of lazily from scattered os.Getenv calls.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	AdminEmail    string
	AdminPassword string

	Currency    string
	DeliveryFee float64
	FrontendURL string

	StripeSecretKey   string
	RazorpayKeyID     string
	RazorpayKeySecret string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string

	RedisAddr     string
	RedisPassword string
}

func Load() Config {
	return Config{
		Addr:        getenv("FOREVER_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		Currency:    getenv("CURRENCY", "inr"),
		DeliveryFee: getenvFloat("DELIVERY_FEE", 10),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),

		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		SMTPHost:  getenv("SMTP_HOST", "localhost"),
		SMTPPort:  getenvInt("SMTP_PORT", 587),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		FromEmail: getenv("FROM_EMAIL", "noreply@forever.com"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
