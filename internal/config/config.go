// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	CloudDB DatabaseConfig
	LocalDB DatabaseConfig
	Auth    AuthConfig
	Cache   CacheConfig
	Archive ArchiveConfig
}

type ServerConfig struct {
	Port                string
	Mode                string
	ReadTimeout         int
	WriteTimeout        int
	AllowedOrigins      []string
	StatementTimeoutSec int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type AuthConfig struct {
	JWTSecret  string
	BcryptCost int
	TokenTTLHr int
}

type CacheConfig struct {
	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	CatalogTTLSeconds int
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "4000")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"http://localhost:5173"})
		viper.SetDefault("STATEMENT_TIMEOUT_SECONDS", 10)
		viper.SetDefault("CLOUD_DB_HOST", "localhost")
		viper.SetDefault("CLOUD_DB_PORT", "3306")
		viper.SetDefault("CLOUD_DB_USER", "root")
		viper.SetDefault("CLOUD_DB_PASS", "")
		viper.SetDefault("CLOUD_DB_NAME", "warehouse_cloud")
		viper.SetDefault("LOCAL_DB_HOST", "localhost")
		viper.SetDefault("LOCAL_DB_PORT", "3306")
		viper.SetDefault("LOCAL_DB_USER", "root")
		viper.SetDefault("LOCAL_DB_PASS", "")
		viper.SetDefault("LOCAL_DB_NAME", "warehouse_local")
		viper.SetDefault("SECRET_KEY", "DISPATCH123")
		viper.SetDefault("BCRYPT_COST", 10)
		viper.SetDefault("TOKEN_TTL_HOURS", 24)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_CATALOG_TTL_SECONDS", 60)
		viper.SetDefault("ARCHIVE_ENABLED", false)
		viper.SetDefault("ARCHIVE_ENDPOINT", "")
		viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
		viper.SetDefault("ARCHIVE_SECRET_KEY", "")
		viper.SetDefault("ARCHIVE_BUCKET", "grn-archive")
		viper.SetDefault("ARCHIVE_REGION", "us-east-1")
		viper.SetDefault("ARCHIVE_USE_SSL", true)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:                viper.GetString("SERVER_PORT"),
				Mode:                viper.GetString("SERVER_MODE"),
				ReadTimeout:         viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:        viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins:      viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
				StatementTimeoutSec: viper.GetInt("STATEMENT_TIMEOUT_SECONDS"),
			},
			CloudDB: DatabaseConfig{
				Host:     viper.GetString("CLOUD_DB_HOST"),
				Port:     viper.GetString("CLOUD_DB_PORT"),
				User:     viper.GetString("CLOUD_DB_USER"),
				Password: viper.GetString("CLOUD_DB_PASS"),
				DBName:   viper.GetString("CLOUD_DB_NAME"),
			},
			LocalDB: DatabaseConfig{
				Host:     viper.GetString("LOCAL_DB_HOST"),
				Port:     viper.GetString("LOCAL_DB_PORT"),
				User:     viper.GetString("LOCAL_DB_USER"),
				Password: viper.GetString("LOCAL_DB_PASS"),
				DBName:   viper.GetString("LOCAL_DB_NAME"),
			},
			Auth: AuthConfig{
				JWTSecret:  viper.GetString("SECRET_KEY"),
				BcryptCost: viper.GetInt("BCRYPT_COST"),
				TokenTTLHr: viper.GetInt("TOKEN_TTL_HOURS"),
			},
			Cache: CacheConfig{
				Enabled:           viper.GetBool("CACHE_ENABLED"),
				RedisURL:          viper.GetString("REDIS_URL"),
				RedisHost:         viper.GetString("REDIS_HOST"),
				RedisPort:         viper.GetString("REDIS_PORT"),
				RedisPassword:     viper.GetString("REDIS_PASSWORD"),
				RedisDB:           viper.GetInt("REDIS_DB"),
				CatalogTTLSeconds: viper.GetInt("CACHE_CATALOG_TTL_SECONDS"),
			},
			Archive: ArchiveConfig{
				Enabled:   viper.GetBool("ARCHIVE_ENABLED"),
				Endpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
				AccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
				SecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
				Bucket:    viper.GetString("ARCHIVE_BUCKET"),
				Region:    viper.GetString("ARCHIVE_REGION"),
				UseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
			},
		}
	})

	return instance
}
