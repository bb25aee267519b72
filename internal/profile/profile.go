package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory (qa_dataset.json, employees.json, bad_words.json live here)
	Data string
	// DSN points to where the assistant stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// OrgName is the organization name used in responses and generated documents
	OrgName string
	// Secret signs session tokens issued after OTP verification
	Secret string
	// AuthDisabled skips OTP authentication entirely (dev/demo only)
	AuthDisabled bool

	// AI configuration
	AIEnabled        bool   // HRASSIST_AI_ENABLED
	AIBaseURL        string // HRASSIST_AI_BASE_URL (default: https://api.openai.com/v1)
	AIAPIKey         string // HRASSIST_AI_API_KEY
	AIEmbeddingModel string // HRASSIST_AI_EMBEDDING_MODEL (default: text-embedding-3-small)
	AIChatModel      string // HRASSIST_AI_CHAT_MODEL (default: gpt-4o-mini)

	// Email OTP delivery configuration
	EmailSMTPHost string // HRASSIST_EMAIL_SMTP_HOST
	EmailSMTPPort int    // HRASSIST_EMAIL_SMTP_PORT (default: 587)
	EmailUser     string // HRASSIST_EMAIL_USER
	EmailPassword string // HRASSIST_EMAIL_PASSWORD
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if AI is enabled and an API key is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.AIEnabled && p.AIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from HRASSIST_* environment variables.
func (p *Profile) FromEnv() {
	p.OrgName = getEnvOrDefault("HRASSIST_ORG_NAME", "Reliance Jio Infotech Solutions")
	p.AuthDisabled = os.Getenv("HRASSIST_DISABLE_AUTH") == "true"

	p.AIEnabled = os.Getenv("HRASSIST_AI_ENABLED") == "true"
	p.AIBaseURL = getEnvOrDefault("HRASSIST_AI_BASE_URL", "https://api.openai.com/v1")
	p.AIAPIKey = os.Getenv("HRASSIST_AI_API_KEY")
	p.AIEmbeddingModel = getEnvOrDefault("HRASSIST_AI_EMBEDDING_MODEL", "text-embedding-3-small")
	p.AIChatModel = getEnvOrDefault("HRASSIST_AI_CHAT_MODEL", "gpt-4o-mini")

	p.EmailSMTPHost = getEnvOrDefault("HRASSIST_EMAIL_SMTP_HOST", "smtp.gmail.com")
	if p.EmailSMTPPort == 0 {
		p.EmailSMTPPort = 587
	}
	p.EmailUser = os.Getenv("HRASSIST_EMAIL_USER")
	p.EmailPassword = os.Getenv("HRASSIST_EMAIL_PASSWORD")

	if secret := os.Getenv("HRASSIST_SECRET"); secret != "" {
		p.Secret = secret
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "hrassist")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/hrassist"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("hrassist_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	return nil
}
