package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

const AppName = "tenanttrack-api"

type Config struct {
	Env     string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// Payment gateway
	StripeSecretKey string

	// Notifications. Optional: when the keys are absent the notifier
	// logs and skips instead of sending.
	SendGridAPIKey    string
	SendGridFromEmail string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFromPhone   string

	// Auth. Tokens are minted by the identity service; this API only
	// verifies, so it carries the public key alone.
	RSAPublicKey *rsa.PublicKey

	SeedDbWithTestData bool
}

func LoadConfig() *Config {
	env := os.Getenv("ENV")
	if env == "" {
		utils.Logger.Fatal("ENV env var is missing")
	}
	if env == "dev" {
		if err := godotenv.Load(); err != nil {
			utils.Logger.WithError(err).Warn("No .env file loaded")
		}
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		utils.Logger.Fatal("STRIPE_SECRET_KEY env var is missing")
	}

	pubB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	sgFrom := os.Getenv("SENDGRID_FROM_EMAIL")
	if sgFrom == "" {
		sgFrom = "no-reply@tenanttrack.app"
	}

	return &Config{
		Env:                env,
		AppPort:            appPort,
		AppUrl:             appUrl,
		DBUrl:              dbURL,
		StripeSecretKey:    stripeKey,
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail:  sgFrom,
		TwilioAccountSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:    os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromPhone:    os.Getenv("TWILIO_FROM_PHONE"),
		RSAPublicKey:       pubKey,
		SeedDbWithTestData: os.Getenv("SEED_DB_WITH_TEST_DATA") == "true",
	}
}
