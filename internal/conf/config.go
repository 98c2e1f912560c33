package conf

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	YouTube  YouTubeConfig
	Scanner  ScannerConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// YouTubeConfig configures the YouTube Data API v3 client.
// APIKey may hold several comma-separated keys; the provider rotates to
// the next key when a quota error comes back.
type YouTubeConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	APIHost    string        `mapstructure:"api_host"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxResults int64         `mapstructure:"max_results"`
	RegionCode string        `mapstructure:"region_code"`
}

type ScannerConfig struct {
	QueryConfigPath string `mapstructure:"query_config_path"`
	MaxItemsPerScan int    `mapstructure:"max_items_per_scan"`
	MaxQueries      int    `mapstructure:"max_queries"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaults(&config)

	return &config, nil
}

func setDefaults(c *Config) {
	if c.YouTube.Timeout == 0 {
		c.YouTube.Timeout = 30 * time.Second
	}
	if c.YouTube.MaxResults == 0 {
		c.YouTube.MaxResults = 25
	}
	if c.Scanner.MaxItemsPerScan == 0 {
		c.Scanner.MaxItemsPerScan = 250
	}
	if c.Scanner.MaxQueries == 0 {
		c.Scanner.MaxQueries = 10
	}
	if c.Redis.CacheTTL == 0 {
		c.Redis.CacheTTL = 30 * time.Second
	}
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
