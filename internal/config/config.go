package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Generic profile access policies
const (
	ProfileAccessOpen        = "open"
	ProfileAccessSelfOrAdmin = "self_or_admin"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"SERVER_PORT" env-default:"5000"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE" env-default:"development"`
		StoragePath    string   `yaml:"storage_path" env:"SERVER_STORAGE_PATH" env-default:"uploads"`
		MaxUploadSize  int64    `yaml:"max_upload_size" env:"SERVER_MAX_UPLOAD_SIZE" env-default:"16777216"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
		Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
		Port            string `yaml:"port" env:"DB_PORT" env-default:"5432"`
		User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
		Password        string `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
		DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"alumnilink"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"2"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"10"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
		MigrationsPath  string `yaml:"migrations_path" env:"DB_MIGRATIONS_PATH" env-default:"migrations"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION" env-default:"24h"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER" env-default:"alumnilink"`
	} `yaml:"jwt"`

	Logging struct {
		Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format     string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
		File       string `yaml:"file" env:"LOG_FILE"`
		MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"50"`
		MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"3"`
		MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" env-default:"28"`
		Compress   bool   `yaml:"compress" env:"LOG_COMPRESS"`
	} `yaml:"logging"`

	Security struct {
		ProfileAccess      string `yaml:"profile_access" env:"SECURITY_PROFILE_ACCESS" env-default:"open"`
		DisableAdminSignup bool   `yaml:"disable_admin_signup" env:"SECURITY_DISABLE_ADMIN_SIGNUP"`
		BcryptCost         int    `yaml:"bcrypt_cost" env:"SECURITY_BCRYPT_COST" env-default:"10"`
	} `yaml:"security"`

	Seed struct {
		Skip          bool   `yaml:"skip" env:"SEED_SKIP"`
		AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL" env-default:"admin@alumni.com"`
		AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD" env-default:"admin123"`
		AccountsFile  string `yaml:"accounts_file" env:"SEED_ACCOUNTS_FILE"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from an optional .env file, a YAML file
// and environment variables, in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to load from environment: %w", err)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection max lifetime: %w", err)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	switch config.Security.ProfileAccess {
	case ProfileAccessOpen, ProfileAccessSelfOrAdmin:
	default:
		return fmt.Errorf("invalid profile access policy %q", config.Security.ProfileAccess)
	}

	if config.Server.StoragePath == "" {
		return fmt.Errorf("storage path is required")
	}

	for _, origin := range config.Server.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid allowed origin %q: must be * or start with http:// or https://", origin)
		}
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
