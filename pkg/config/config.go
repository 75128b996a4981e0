package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. LAUNCHPAD_SERVER_PORT.
const EnvPrefix = "LAUNCHPAD_"

// Metadata backends.
const (
	BackendUploadcare = "uploadcare"
	BackendGCS        = "gcs"
)

// Config represents the launchpad service configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"     envPrefix:"SERVER_"`
	Database   DatabaseConfig   `yaml:"database"   envPrefix:"DATABASE_"`
	Solana     SolanaConfig     `yaml:"solana"     envPrefix:"SOLANA_"`
	Payer      PayerConfig      `yaml:"payer"      envPrefix:"PAYER_"`
	Metadata   MetadataConfig   `yaml:"metadata"   envPrefix:"METADATA_"`
	Issuance   IssuanceConfig   `yaml:"issuance"   envPrefix:"ISSUANCE_"`
	Auth       AuthConfig       `yaml:"auth"       envPrefix:"AUTH_"`
	Logging    LoggingConfig    `yaml:"logging"    envPrefix:"LOGGING_"`
	Monitoring MonitoringConfig `yaml:"monitoring" envPrefix:"MONITORING_"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"             default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"             default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"READ_TIMEOUT"     default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"WRITE_TIMEOUT"    default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"IDLE_TIMEOUT"     default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"     env:"HOST"     default:"localhost" validate:"required"`
	Port     int    `yaml:"port"     env:"PORT"     default:"5432"`
	User     string `yaml:"user"     env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	Database string `yaml:"database" env:"NAME"     default:"launchpad"`
	SSLMode  string `yaml:"ssl_mode" env:"SSL_MODE" default:"disable"`
}

// SolanaConfig contains ledger client settings
type SolanaConfig struct {
	RPCURL         string        `yaml:"rpc_url"         env:"RPC_URL"         validate:"required,url"`
	Commitment     string        `yaml:"commitment"      env:"COMMITMENT"      default:"finalized" validate:"oneof=processed confirmed finalized"`
	PollInterval   time.Duration `yaml:"poll_interval"   env:"POLL_INTERVAL"   default:"2s"  validate:"gt=0"`
	ConfirmTimeout time.Duration `yaml:"confirm_timeout" env:"CONFIRM_TIMEOUT" default:"90s" validate:"gt=0"`
	ExplorerURL    string        `yaml:"explorer_url"    env:"EXPLORER_URL"    default:"https://explorer.solana.com" validate:"url"`
	Cluster        string        `yaml:"cluster"         env:"CLUSTER"         default:"devnet" validate:"oneof=mainnet-beta devnet testnet localnet"`
	RentCacheSize  int64         `yaml:"rent_cache_size" env:"RENT_CACHE_SIZE" default:"64"`
}

// PayerConfig locates the fee payer keypair
type PayerConfig struct {
	// Source is "file" or "secretmanager".
	Source          string `yaml:"source"           env:"SOURCE"           default:"file" validate:"oneof=file secretmanager"`
	Path            string `yaml:"path"             env:"PATH"             validate:"required"`
	Encrypted       bool   `yaml:"encrypted"        env:"ENCRYPTED"`
	MasterKeyEnv    string `yaml:"master_key_env"   env:"MASTER_KEY_ENV"   default:"LAUNCHPAD_MASTER_KEY"`
	CredentialsFile string `yaml:"credentials_file" env:"CREDENTIALS_FILE"`
}

// MetadataConfig selects and configures the metadata storage backend
type MetadataConfig struct {
	Backend    string           `yaml:"backend"    env:"BACKEND" default:"uploadcare" validate:"oneof=uploadcare gcs"`
	Uploadcare UploadcareConfig `yaml:"uploadcare" envPrefix:"UPLOADCARE_"`
	GCS        GCSConfig        `yaml:"gcs"        envPrefix:"GCS_"`
}

// UploadcareConfig contains Uploadcare upload API settings
type UploadcareConfig struct {
	PublicKey string        `yaml:"public_key" env:"PUBLIC_KEY"`
	SecretKey string        `yaml:"secret_key" env:"SECRET_KEY"`
	UploadURL string        `yaml:"upload_url" env:"UPLOAD_URL" default:"https://upload.uploadcare.com"`
	CDNURL    string        `yaml:"cdn_url"    env:"CDN_URL"    default:"https://ucarecdn.com"`
	Store     string        `yaml:"store"      env:"STORE"      default:"1" validate:"oneof=auto 0 1"`
	Timeout   time.Duration `yaml:"timeout"    env:"TIMEOUT"    default:"30s"`
}

// GCSConfig contains Cloud Storage settings
type GCSConfig struct {
	Bucket          string `yaml:"bucket"           env:"BUCKET"`
	Prefix          string `yaml:"prefix"           env:"PREFIX" default:"metadata"`
	PublicBaseURL   string `yaml:"public_base_url"  env:"PUBLIC_BASE_URL" default:"https://storage.googleapis.com"`
	CredentialsFile string `yaml:"credentials_file" env:"CREDENTIALS_FILE"`
}

// IssuanceConfig bounds the orchestrator's external calls
type IssuanceConfig struct {
	PublishTimeout time.Duration `yaml:"publish_timeout" env:"PUBLISH_TIMEOUT" default:"30s" validate:"gt=0"`
	SubmitTimeout  time.Duration `yaml:"submit_timeout"  env:"SUBMIT_TIMEOUT"  default:"2m"  validate:"gt=0"`
}

// AuthConfig contains JWKS settings for bearer token validation
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"  env:"ENABLED"`
	JWKSURL string `yaml:"jwks_url" env:"JWKS_URL"`
	Issuer  string `yaml:"issuer"   env:"ISSUER"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level"       env:"LEVEL"       default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format"      env:"FORMAT"      default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" env:"OUTPUT_PATH" default:"stdout"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled     bool   `yaml:"enabled"      env:"ENABLED"      default:"true"`
	MetricsPath string `yaml:"metrics_path" env:"METRICS_PATH" default:"/metrics"`
}

// Load loads configuration from the YAML file at configPath, then applies
// LAUNCHPAD_* environment overrides. An empty path skips the file.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	switch cfg.Metadata.Backend {
	case BackendUploadcare:
		if cfg.Metadata.Uploadcare.PublicKey == "" {
			return errors.New("metadata.uploadcare.public_key is required")
		}
		if cfg.Metadata.Uploadcare.SecretKey == "" {
			return errors.New("metadata.uploadcare.secret_key is required")
		}
	case BackendGCS:
		if cfg.Metadata.GCS.Bucket == "" {
			return errors.New("metadata.gcs.bucket is required")
		}
	}

	if cfg.Auth.Enabled && cfg.Auth.JWKSURL == "" {
		return errors.New("auth.jwks_url is required when auth is enabled")
	}
	if cfg.Payer.Encrypted && cfg.Payer.MasterKeyEnv == "" {
		return errors.New("payer.master_key_env is required for encrypted keys")
	}
	return nil
}

// GetConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
