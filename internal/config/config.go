package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"

	StorageDriverFile  = "file"
	StorageDriverMongo = "mongo"
)

type Config struct {
	Mode     string         `mapstructure:"mode"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Exchange ExchangeConfig `mapstructure:"exchange"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type StorageConfig struct {
	Driver  string `mapstructure:"driver"`
	BaseDir string `mapstructure:"base_dir"`
}

type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type NATSConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

type ExchangeConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// Load reads configuration from config.yaml (when present), a .env file and
// LISTING_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.SetDefault("mode", ModeDevelopment)
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("storage.driver", StorageDriverFile)
	viper.SetDefault("storage.base_dir", ".")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "listing_service")
	viper.SetDefault("mongo.connect_timeout", "10s")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("nats.enabled", false)
	viper.SetDefault("nats.url", "nats://localhost:4222")
	viper.SetDefault("exchange.base_url", "https://openexchangerates.org/api")

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LISTING")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// The original deployment provided the feed credential under this name.
	_ = viper.BindEnv("exchange.api_key", "LISTING_EXCHANGE_API_KEY", "OPEN_EXCHANGE_API")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Missing feed credentials are a fatal configuration error, but only
	// where the live feed would actually be called.
	if cfg.Mode == ModeProduction && cfg.Exchange.APIKey == "" {
		return nil, errors.New("config: exchange.api_key is required in production mode")
	}
	return &cfg, nil
}
