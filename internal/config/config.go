package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	State         StateConfig `mapstructure:"state"`
	Redis         RedisConfig
	Cache         CacheConfig        `mapstructure:"cache"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig
	Tracing       TracingConfig   `mapstructure:"tracing"`
	CORS          CORSConfig      `mapstructure:"cors"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// StateConfig 设备状态键值存储配置 type: redis / file / memory
type StateConfig struct {
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig 离线缓存配置 Version 即当前缓存代（如 v1.0.1）
type CacheConfig struct {
	Version       string        `mapstructure:"version"`
	OriginURL     string        `mapstructure:"origin_url"`
	StaticAssets  []string      `mapstructure:"static_assets"`
	DynamicRoutes []string      `mapstructure:"dynamic_routes"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout_seconds"`
}

// NotificationConfig Web Push 推送配置
type NotificationConfig struct {
	VAPIDPublicKey  string `mapstructure:"vapid_public_key"`
	VAPIDPrivateKey string `mapstructure:"vapid_private_key"`
	Subscriber      string `mapstructure:"subscriber"`
	IconPath        string `mapstructure:"icon_path"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("REBIRTH")
	viper.AutomaticEnv()

	// State
	viper.BindEnv("state.type", "STATE_TYPE")
	viper.BindEnv("state.path", "STATE_PATH")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("server.port", "SERVER_PORT")

	// Cache
	viper.BindEnv("cache.version", "CACHE_VERSION")
	viper.BindEnv("cache.origin_url", "CACHE_ORIGIN_URL")

	// Web Push
	viper.BindEnv("notifications.vapid_public_key", "VAPID_PUBLIC_KEY")
	viper.BindEnv("notifications.vapid_private_key", "VAPID_PRIVATE_KEY")
	viper.BindEnv("notifications.subscriber", "VAPID_SUBSCRIBER")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Cache.Version == "" {
		return nil, fmt.Errorf("cache.version must be set (current cache generation, e.g. v1.0.1)")
	}
	if cfg.Cache.FetchTimeout <= 0 {
		cfg.Cache.FetchTimeout = 10
	}
	cfg.Cache.FetchTimeout = cfg.Cache.FetchTimeout * time.Second

	if len(cfg.Cache.StaticAssets) == 0 {
		cfg.Cache.StaticAssets = []string{"/", "/index.html", "/manifest.json", "/Rebirth_icon.png", "/favicon.ico"}
	}
	if len(cfg.Cache.DynamicRoutes) == 0 {
		cfg.Cache.DynamicRoutes = []string{"/", "/home", "/achievements", "/goals", "/profile"}
	}

	if cfg.RateLimit.MaxRequests <= 0 {
		cfg.RateLimit.MaxRequests = 100000
	}
	if cfg.RateLimit.WindowMinutes <= 0 {
		cfg.RateLimit.WindowMinutes = 1
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
