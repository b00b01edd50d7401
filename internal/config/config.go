package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/charging-platform/ochp-roaming/internal/cache"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
)

// EnvPrefix 环境变量前缀，例如 OCHP_CLIENT_URL
const EnvPrefix = "OCHP"

// 存储后端
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config 应用配置
type Config struct {
	NodeID        string              `mapstructure:"node_id"`
	ClearingHouse ClearingHouseConfig `mapstructure:"clearing_house"`
	Direct        DirectConfig        `mapstructure:"direct"` // CPO侧 OCHPdirect 服务监听
	Client        ClientConfig        `mapstructure:"client"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Kafka         KafkaConfig         `mapstructure:"kafka"`
	StatusCache   cache.Config        `mapstructure:"status_cache"` // 运营商侧EVSE状态表
	Log           logger.Config       `mapstructure:"log"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
}

// ClearingHouseConfig 清算中心/OCHPdirect 服务端配置
type ClearingHouseConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ServicePath  string        `mapstructure:"service_path"`
	DirectPath   string        `mapstructure:"direct_path"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	Store        string        `mapstructure:"store"` // memory 或 redis
}

// DirectConfig OCHPdirect 服务端监听配置，与清算中心分开部署
type DirectConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// ClientConfig SOAP客户端配置
type ClientConfig struct {
	URL            string        `mapstructure:"url"`
	DirectURL      string        `mapstructure:"direct_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	MaxIdleConns   int           `mapstructure:"max_idle_conns"`
}

// RedisConfig Redis连接配置
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Enabled       bool           `mapstructure:"enabled"`
	Brokers       []string       `mapstructure:"brokers"`
	EventTopic    string         `mapstructure:"event_topic"`  // 生命周期与清算中心事件
	StatusTopic   string         `mapstructure:"status_topic"` // EVSE状态输入
	ConsumerGroup string         `mapstructure:"consumer_group"`
	Producer      ProducerConfig `mapstructure:"producer"`
	Consumer      ConsumerConfig `mapstructure:"consumer"`
}

// ProducerConfig 生产者配置
type ProducerConfig struct {
	RetryMax       int           `mapstructure:"retry_max"`
	FlushFrequency time.Duration `mapstructure:"flush_frequency"`
}

// ConsumerConfig 消费者配置
type ConsumerConfig struct {
	OffsetsInitial string `mapstructure:"offsets_initial"` // oldest 或 newest
}

// MetricsConfig 指标服务配置
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// SetDefaults 写入默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("node_id", "ochp-node-1")

	v.SetDefault("clearing_house.host", "0.0.0.0")
	v.SetDefault("clearing_house.port", 8080)
	v.SetDefault("clearing_house.service_path", ochp.ServicePath)
	v.SetDefault("clearing_house.direct_path", ochp.DirectServicePath)
	v.SetDefault("clearing_house.read_timeout", "30s")
	v.SetDefault("clearing_house.write_timeout", "30s")
	v.SetDefault("clearing_house.max_body_bytes", 10<<20)
	v.SetDefault("clearing_house.store", StoreMemory)

	v.SetDefault("direct.host", "0.0.0.0")
	v.SetDefault("direct.port", 8081)

	v.SetDefault("client.url", "http://localhost:8080"+ochp.ServicePath)
	v.SetDefault("client.direct_url", "")
	v.SetDefault("client.request_timeout", "60s")
	v.SetDefault("client.user_agent", "ochp-roaming/"+ochp.Version)
	v.SetDefault("client.max_idle_conns", 16)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.key_prefix", "ochp")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.event_topic", "ochp-events")
	v.SetDefault("kafka.status_topic", "ochp-evse-status")
	v.SetDefault("kafka.consumer_group", "ochp-cpo-bridge")
	v.SetDefault("kafka.producer.retry_max", 5)
	v.SetDefault("kafka.producer.flush_frequency", "500ms")
	v.SetDefault("kafka.consumer.offsets_initial", "newest")

	v.SetDefault("status_cache.max_size", 50000)
	v.SetDefault("status_cache.eviction_batch", 64)
	v.SetDefault("status_cache.default_ttl", "15m")
	v.SetDefault("status_cache.cleanup_interval", "1m")
	v.SetDefault("status_cache.shard_count", 16)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.time_format", time.RFC3339)
	v.SetDefault("log.caller", false)
	v.SetDefault("log.async", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.addr", ":9090")
}

// Load 依次读取默认值、可选配置文件和 OCHP_ 前缀的环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper 从已配置的 viper 实例解析配置
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// 逗号分隔的环境变量
	if len(cfg.Kafka.Brokers) == 1 && strings.Contains(cfg.Kafka.Brokers[0], ",") {
		cfg.Kafka.Brokers = strings.Split(cfg.Kafka.Brokers[0], ",")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	var errs []error
	switch c.ClearingHouse.Store {
	case StoreMemory, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("clearing_house.store must be %q or %q, got %q", StoreMemory, StoreRedis, c.ClearingHouse.Store))
	}
	if c.ClearingHouse.Port <= 0 || c.ClearingHouse.Port > 65535 {
		errs = append(errs, fmt.Errorf("clearing_house.port out of range: %d", c.ClearingHouse.Port))
	}
	if c.Direct.Port <= 0 || c.Direct.Port > 65535 {
		errs = append(errs, fmt.Errorf("direct.port out of range: %d", c.Direct.Port))
	}
	if c.Client.RequestTimeout < 0 {
		errs = append(errs, errors.New("client.request_timeout must not be negative"))
	}
	if c.StatusCache.DefaultTTL < 0 {
		errs = append(errs, errors.New("status_cache.default_ttl must not be negative"))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("kafka.brokers must be set when kafka is enabled"))
	}
	return errors.Join(errs...)
}

// GetServerAddr 服务监听地址
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ClearingHouse.Host, c.ClearingHouse.Port)
}

// GetDirectAddr OCHPdirect 服务监听地址
func (c *Config) GetDirectAddr() string {
	return fmt.Sprintf("%s:%d", c.Direct.Host, c.Direct.Port)
}

// GetMetricsAddr 指标服务地址
func (c *Config) GetMetricsAddr() string {
	return c.Metrics.Addr
}
