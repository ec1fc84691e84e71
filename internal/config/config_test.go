package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	t.Setenv("AUTH_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("AUTH_JWT_SECRET", testSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "aquashop", cfg.MongoDB.DBName)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "America/Sao_Paulo", cfg.Reporting.Timezone)
	assert.Equal(t, "current", cfg.Reporting.CostPolicy)
	assert.Equal(t, "0 6 1 * *", cfg.Reporting.CronSchedule)
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.Equal(t, AIProviderAnthropic, cfg.AI.Provider)
}

func TestLoad_FromEnvFile(t *testing.T) {
	setRequiredEnv(t)
	// godotenv never overrides variables that are already set; register the
	// restore with t.Setenv and then clear them so the file wins.
	for _, key := range []string{"APP_PORT", "REPORT_COST_POLICY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\nREPORT_COST_POLICY=snapshot\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "snapshot", cfg.Reporting.CostPolicy)
}

func TestLoad_InvalidTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTH_TOKEN_TTL", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "AUTH_TOKEN_TTL")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8080"},
			MongoDB: MongoDBConfig{URI: "mongodb://localhost", DBName: "aquashop"},
			Auth:    AuthConfig{PasswordHash: "hash", JWTSecret: testSecret, TokenTTL: time.Hour},
			Reporting: ReportingConfig{
				Timezone:     "America/Sao_Paulo",
				CostPolicy:   "current",
				CronSchedule: "0 6 1 * *",
			},
			AI:       AIConfig{Provider: AIProviderAnthropic},
			WhatsApp: WhatsAppConfig{BaseURL: "https://graph.facebook.com", APIVersion: "v20.0"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing mongo uri", mutate: func(c *Config) { c.MongoDB.URI = "" }, wantErr: "MONGODB_URI"},
		{name: "missing password hash", mutate: func(c *Config) { c.Auth.PasswordHash = "" }, wantErr: "AUTH_PASSWORD_HASH"},
		{name: "short secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: "AUTH_JWT_SECRET"},
		{name: "bad timezone", mutate: func(c *Config) { c.Reporting.Timezone = "Mars/Olympus" }, wantErr: "TIMEZONE"},
		{name: "bad cost policy", mutate: func(c *Config) { c.Reporting.CostPolicy = "fifo" }, wantErr: "REPORT_COST_POLICY"},
		{name: "unknown ai provider", mutate: func(c *Config) { c.AI.Provider = "gemini" }, wantErr: "AI_PROVIDER"},
		{name: "half sheets config", mutate: func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }, wantErr: "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{name: "whatsapp without owner", mutate: func(c *Config) {
			c.WhatsApp.AccessToken = "token"
			c.WhatsApp.PhoneNumberID = "123"
		}, wantErr: "WHATSAPP_OWNER_NUMBER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestAIConfig_APIKey(t *testing.T) {
	cfg := AIConfig{Provider: AIProviderAnthropic, AnthropicKey: "sk-ant", OpenAIKey: "sk-oai"}
	assert.Equal(t, "sk-ant", cfg.APIKey())

	cfg.Provider = AIProviderOpenAI
	assert.Equal(t, "sk-oai", cfg.APIKey())
	assert.True(t, cfg.Enabled())

	cfg.OpenAIKey = ""
	assert.False(t, cfg.Enabled())
}
