package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Keys    KeysConfig    `mapstructure:"keys"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"`
}

type StorageConfig struct {
	Driver       string        `mapstructure:"driver"`
	Path         string        `mapstructure:"path"`
	DSN          string        `mapstructure:"dsn"`
	MaxOpenConns int           `mapstructure:"maxOpenConns"`
	MongoURI     string        `mapstructure:"mongoURI"`
	Database     string        `mapstructure:"database"`
	Collection   string        `mapstructure:"collection"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// KeysConfig names the storage key of each persisted collection.
type KeysConfig struct {
	Cart     string `mapstructure:"cart"`
	Orders   string `mapstructure:"orders"`
	Products string `mapstructure:"products"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Storage drivers
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", "./data")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.maxOpenConns", 10)
	v.SetDefault("storage.mongoURI", "")
	v.SetDefault("storage.database", "storefront")
	v.SetDefault("storage.collection", "storage_entries")
	v.SetDefault("storage.timeout", 10*time.Second)

	v.SetDefault("keys.cart", "cart")
	v.SetDefault("keys.orders", "orders")
	v.SetDefault("keys.products", "products")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfigFile loads configuration from a config file and environment
// variables. An empty path searches for config.yaml in ./deploy/, ./,
// $HOME/.storefront/ and /etc/storefront/; a missing file is then not an
// error, since defaults and STOREFRONT_ variables are enough to run against
// the file backend. An explicit path must exist.
func LoadConfigFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("./")
		v.AddConfigPath("$HOME/.storefront/")
		v.AddConfigPath("/etc/storefront/")
	}

	// Enable environment variable override with STOREFRONT_ prefix
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that the selected storage driver has what it needs.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s driver", DriverFile)
		}
	case DriverMySQL:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s driver", DriverMySQL)
		}
	case DriverMongo:
		if c.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongoURI is required for the %s driver", DriverMongo)
		}
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.Storage.Driver)
	}

	if c.Keys.Cart == "" || c.Keys.Orders == "" || c.Keys.Products == "" {
		return errors.New("keys.cart, keys.orders and keys.products must not be empty")
	}
	if c.Keys.Cart == c.Keys.Orders || c.Keys.Cart == c.Keys.Products || c.Keys.Orders == c.Keys.Products {
		return errors.New("storage keys must be distinct")
	}

	return nil
}
