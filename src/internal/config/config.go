package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/LeoTiTo/DuduApp-sub000/src/internal/logging"
	"gopkg.in/yaml.v3"
)

// 存儲後端
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
)

// Config 服務設定
//
// 優先順序：預設值 → YAML 檔案 → 環境變數 → 命令列參數。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig HTTP 服務
type ServerConfig struct {
	Address         string        `yaml:"address"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig 存儲後端選擇
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URI    string `yaml:"uri"`
}

// DynamoDBConfig driver 為 dynamodb 時使用
type DynamoDBConfig struct {
	Region         string `yaml:"region"`
	Endpoint       string `yaml:"endpoint"`
	DonationsTable string `yaml:"donations_table"`
	GoalsTable     string `yaml:"goals_table"`
	UsersTable     string `yaml:"users_table"`
}

// AuthConfig JWT 驗證
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// LogConfig 日誌
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var (
	ErrAddressEmpty      = errors.New("server address is an empty string")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	ErrDatabaseURIEmpty  = errors.New("database uri is an empty string")
	ErrRegionEmpty       = errors.New("dynamodb region is an empty string")
	ErrJWTSecretEmpty    = errors.New("jwt secret is an empty string")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidLogFormat  = errors.New("invalid log format")
)

// Default 預設設定
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         ":8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			URI:    "donations.db",
		},
		DynamoDB: DynamoDBConfig{
			Region:         "us-east-1",
			DonationsTable: "donations",
			GoalsTable:     "goals",
			UsersTable:     "users",
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatJSON,
		},
	}
}

// Load 解析設定
//
// args 不含程式名稱；getenv 通常為 os.Getenv。
func Load(args []string, getenv func(string) string) (*Config, error) {
	fs := flag.NewFlagSet("donation-ledger", flag.ContinueOnError)
	configPath := fs.String("c", "", "Path to YAML config file")
	address := fs.String("a", "", "Service address and port")
	databaseURI := fs.String("d", "", "Database connection string")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()

	path := *configPath
	if path == "" {
		path = getenv("CONFIG_PATH")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv(getenv)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.Server.Address = *address
		case "d":
			cfg.Database.URI = *databaseURI
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) applyEnv(getenv func(string) string) {
	overrides := []struct {
		key    string
		target *string
	}{
		{"RUN_ADDRESS", &cfg.Server.Address},
		{"DATABASE_DRIVER", &cfg.Database.Driver},
		{"DATABASE_URI", &cfg.Database.URI},
		{"JWT_SECRET", &cfg.Auth.JWTSecret},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"LOG_FORMAT", &cfg.Log.Format},
		{"DYNAMODB_ENDPOINT", &cfg.DynamoDB.Endpoint},
		{"AWS_REGION", &cfg.DynamoDB.Region},
	}
	for _, o := range overrides {
		if v := getenv(o.key); v != "" {
			*o.target = v
		}
	}
}

// Validate 一次返回所有設定錯誤
func (cfg *Config) Validate() error {
	var errs []error

	if cfg.Server.Address == "" {
		errs = append(errs, ErrAddressEmpty)
	}

	switch cfg.Database.Driver {
	case DriverSQLite, DriverPostgres:
		if cfg.Database.URI == "" {
			errs = append(errs, ErrDatabaseURIEmpty)
		}
	case DriverDynamoDB:
		if cfg.DynamoDB.Region == "" {
			errs = append(errs, ErrRegionEmpty)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Database.Driver))
	}

	if cfg.Auth.JWTSecret == "" {
		errs = append(errs, ErrJWTSecretEmpty)
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level))
	}
	if cfg.Log.Format != logging.FormatJSON && cfg.Log.Format != logging.FormatConsole {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogFormat, cfg.Log.Format))
	}

	return errors.Join(errs...)
}
