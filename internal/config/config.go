package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ==================== 配置结构 ====================

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Tasks     TasksConfig     `mapstructure:"tasks"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres | mysql | sqlite
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"` // silent | error | warn | info
}

// JWTConfig 身份令牌配置
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// StorageConfig 对象存储配置
type StorageConfig struct {
	Provider      string `mapstructure:"provider"` // s3 | cloudinary | local
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Endpoint      string `mapstructure:"endpoint"`
	CDNDomain     string `mapstructure:"cdn_domain"`
	BasePath      string `mapstructure:"base_path"`
	CloudinaryURL string `mapstructure:"cloudinary_url"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
}

// TasksConfig 定时任务配置
type TasksConfig struct {
	CleanupEnabled     bool          `mapstructure:"cleanup_enabled"`
	CleanupSpec        string        `mapstructure:"cleanup_spec"`
	CleanupGracePeriod time.Duration `mapstructure:"cleanup_grace_period"`
	CleanupConcurrency int           `mapstructure:"cleanup_concurrency"`
	CleanupBatchSize   int           `mapstructure:"cleanup_batch_size"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	UploadsPerMinute int `mapstructure:"uploads_per_minute"`
	UploadBurst      int `mapstructure:"upload_burst"`
}

// ==================== 加载 ====================

// setDefaults 默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=store_admin port=5432 sslmode=disable TimeZone=UTC")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "store-admin")
	v.SetDefault("jwt.ttl", 2*time.Hour)

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.cdn_domain", "")
	v.SetDefault("storage.cloudinary_url", "")
	// local 存储为空时使用 ./uploads 与 http://localhost:8080/uploads
	v.SetDefault("storage.base_path", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.max_upload_size", 10<<20)

	v.SetDefault("tasks.cleanup_enabled", true)
	v.SetDefault("tasks.cleanup_spec", "0 0 * * * *")
	v.SetDefault("tasks.cleanup_grace_period", 24*time.Hour)
	v.SetDefault("tasks.cleanup_concurrency", 4)
	v.SetDefault("tasks.cleanup_batch_size", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("ratelimit.uploads_per_minute", 30)
	v.SetDefault("ratelimit.upload_burst", 5)
}

// Load 加载配置
// 优先级: 环境变量(APP_ 前缀) > 配置文件 > 默认值
// configFile 为空时在 . 和 ./config 下查找 config.yaml，找不到不算错误
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验必填项
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("不支持的运行模式: %s", c.Server.Mode)
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn 不能为空")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret 不能为空 (APP_JWT_SECRET)")
	}
	switch c.Storage.Provider {
	case "s3":
		if c.Storage.Bucket == "" || c.Storage.Region == "" {
			return errors.New("s3 存储需要 bucket 和 region")
		}
	case "cloudinary":
		if c.Storage.CloudinaryURL == "" {
			return errors.New("cloudinary 存储需要 cloudinary_url")
		}
	case "local":
	default:
		return fmt.Errorf("不支持的存储提供者: %s", c.Storage.Provider)
	}
	return nil
}
