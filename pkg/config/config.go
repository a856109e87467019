package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Contact archive backends.
const (
	ArchiveNone     = ""
	ArchivePostgres = "postgres"
	ArchiveDynamoDB = "dynamodb"
)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region        string `envconfig:"DDB_REGION"`
		Endpoint      string `envconfig:"DDB_ENDPOINT"`
		AccessKey     string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey     string `envconfig:"DDB_SECRET_KEY"`
		SessionToken  string `envconfig:"DDB_SESSION_TOKEN"`
		ContactsTable string `envconfig:"DDB_CONTACTS_TABLE" default:"contact_messages"`
	}
	Auth struct {
		JWTSecret  string `envconfig:"AUTH_JWT_SECRET"`
		TokenTTL   int    `envconfig:"AUTH_TOKEN_TTL" default:"900"`
		RefreshTTL int    `envconfig:"AUTH_REFRESH_TTL" default:"604800"`
	}
	SMTP struct {
		Host     string `envconfig:"SMTP_HOST" default:"localhost"`
		Port     int    `envconfig:"SMTP_PORT" default:"1025"`
		User     string `envconfig:"SMTP_USER"`
		Pass     string `envconfig:"SMTP_PASS"`
		From     string `envconfig:"SMTP_FROM" default:"noreply@merchex.xyz"`
		Timeout  int    `envconfig:"SMTP_TIMEOUT" default:"10"`
		Insecure bool   `envconfig:"SMTP_INSECURE"`
	}
	Contact struct {
		Recipient string `envconfig:"CONTACT_RECIPIENT" default:"admin@merchex.xyz"`
		Archive   string `envconfig:"CONTACT_ARCHIVE"`
	}
}

// Origins splits ALLOW_ORIGINS on commas. It is nil when nothing is configured.
func (c *Config) Origins() []string {
	if strings.TrimSpace(c.AllowOrigins) == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	switch cfg.Contact.Archive {
	case ArchiveNone, ArchivePostgres, ArchiveDynamoDB:
	default:
		return nil, fmt.Errorf("load config error: unknown CONTACT_ARCHIVE %q", cfg.Contact.Archive)
	}

	return cfg, nil
}
