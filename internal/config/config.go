package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const minJWTSecretLength = 32

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Auth      AuthConfig
	Reporting ReportingConfig
	AI        AIConfig
	Sheets    SheetsConfig
	WhatsApp  WhatsAppConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds the owner password hash and session token settings.
type AuthConfig struct {
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

// ReportingConfig holds calendar, cost and scheduler settings.
type ReportingConfig struct {
	Timezone     string
	CostPolicy   string
	CronSchedule string
}

// AI providers for the sales narrative.
const (
	AIProviderAnthropic = "anthropic"
	AIProviderOpenAI    = "openai"
)

// AIConfig holds settings for the narrative model. An empty key for the
// selected provider disables insights. An empty model uses the provider default.
type AIConfig struct {
	Provider     string
	AnthropicKey string
	OpenAIKey    string
	Model        string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
// Both fields empty disables the export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API used to
// notify the shop owner. An empty token disables notifications.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	OwnerNumber   string
	BaseURL       string
	APIVersion    string
}

// Enabled reports whether the sheets export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" || c.SpreadsheetID != ""
}

// APIKey returns the key of the selected provider.
func (c AIConfig) APIKey() string {
	if c.Provider == AIProviderOpenAI {
		return c.OpenAIKey
	}
	return c.AnthropicKey
}

// Enabled reports whether sales insights can be generated.
func (c AIConfig) Enabled() bool {
	return c.APIKey() != ""
}

// Enabled reports whether owner notifications are configured.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != ""
}

// Location resolves the configured timezone.
func (c ReportingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when the environment is set directly.
		_ = godotenv.Load()
	}

	ttl, err := time.ParseDuration(getenvWithDefault("AUTH_TOKEN_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "aquashop"),
		},
		Auth: AuthConfig{
			PasswordHash: os.Getenv("AUTH_PASSWORD_HASH"),
			JWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
			TokenTTL:     ttl,
		},
		Reporting: ReportingConfig{
			Timezone:     getenvWithDefault("TIMEZONE", "America/Sao_Paulo"),
			CostPolicy:   getenvWithDefault("REPORT_COST_POLICY", "current"),
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 6 1 * *"),
		},
		AI: AIConfig{
			Provider:     getenvWithDefault("AI_PROVIDER", AIProviderAnthropic),
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
			OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
			Model:        os.Getenv("AI_MODEL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			OwnerNumber:   os.Getenv("WHATSAPP_OWNER_NUMBER"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	switch {
	case c.Auth.PasswordHash == "":
		return errors.New("AUTH_PASSWORD_HASH must be provided")
	case len(c.Auth.JWTSecret) < minJWTSecretLength:
		return fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", minJWTSecretLength)
	case c.Auth.TokenTTL <= 0:
		return errors.New("AUTH_TOKEN_TTL must be positive")
	}

	if _, err := c.Reporting.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}

	switch c.Reporting.CostPolicy {
	case "current", "snapshot":
	default:
		return fmt.Errorf("REPORT_COST_POLICY must be current or snapshot, got %q", c.Reporting.CostPolicy)
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	switch c.AI.Provider {
	case AIProviderAnthropic, AIProviderOpenAI:
	default:
		return fmt.Errorf("AI_PROVIDER must be anthropic or openai, got %q", c.AI.Provider)
	}

	if c.Sheets.Enabled() {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided with GOOGLE_SHEET_DATABASE_ID")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided with GOOGLE_SHEETS_CREDENTIALS_PATH")
		}
	}

	if c.WhatsApp.Enabled() {
		switch {
		case c.WhatsApp.PhoneNumberID == "":
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided")
		case c.WhatsApp.OwnerNumber == "":
			return errors.New("WHATSAPP_OWNER_NUMBER must be provided")
		case c.WhatsApp.BaseURL == "":
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		case c.WhatsApp.APIVersion == "":
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
