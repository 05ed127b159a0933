package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceCMS   = "cms"
	SourceFiles = "files"
)

// Config holds everything the server and CLI need. It is loaded once and
// passed down explicitly; nothing below this package reads the environment.
type Config struct {
	ListenAddr string

	// Content service
	CMSURL        string
	CMSToken      string
	ContentSource string
	ContentDir    string
	Revalidate    time.Duration
	LookupTTL     time.Duration

	// Sessions / preview mode
	SessionSecret string
	PreviewSecret string

	// Contact form
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPass          string
	ContactEmailTo    string
	ContactEmailFrom  string
	RecaptchaSecret   string
	HcaptchaSecret    string
	SubmissionsDB     string
	ContactRatePerMin int

	Verbose bool
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	// A missing .env is the normal case in production.
	_ = godotenv.Load()

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return fallback
	}

	cfg := &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		CMSURL:        getEnv("CMS_URL", "http://localhost:1337"),
		CMSToken:      os.Getenv("CMS_API_TOKEN"),
		ContentSource: getEnv("CONTENT_SOURCE", SourceCMS),
		ContentDir:    getEnv("CONTENT_DIR", "./content"),
		Revalidate:    time.Duration(getInt("CONTENT_REVALIDATE", 300)) * time.Second,
		LookupTTL:     time.Duration(getInt("CONTENT_LOOKUP_REVALIDATE", 60)) * time.Second,

		SessionSecret: os.Getenv("SESSION_SECRET"),
		PreviewSecret: os.Getenv("PREVIEW_SECRET"),

		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getInt("SMTP_PORT", 0),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPass:          os.Getenv("SMTP_PASS"),
		ContactEmailTo:    os.Getenv("CONTACT_EMAIL_TO"),
		ContactEmailFrom:  os.Getenv("CONTACT_EMAIL_FROM"),
		RecaptchaSecret:   os.Getenv("RECAPTCHA_SECRET"),
		HcaptchaSecret:    os.Getenv("HCAPTCHA_SECRET"),
		SubmissionsDB:     os.Getenv("SUBMISSIONS_DB"),
		ContactRatePerMin: getInt("CONTACT_RATE_PER_MIN", 5),
	}

	if v, err := strconv.ParseBool(os.Getenv("VERBOSE")); err == nil {
		cfg.Verbose = v
	}
	return cfg
}

// SMTPConfigured reports whether every setting needed to send mail is present.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPPort != 0 && c.SMTPUser != "" && c.SMTPPass != "" && c.ContactEmailTo != ""
}

// EnsureSessionSecret fills in a random session key when SESSION_SECRET is
// unset and reports whether it did. Sessions signed with a generated key do
// not survive a restart.
func (c *Config) EnsureSessionSecret() (bool, error) {
	if c.SessionSecret != "" {
		return false, nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return false, fmt.Errorf("generating session secret: %w", err)
	}
	c.SessionSecret = hex.EncodeToString(key)
	return true, nil
}
