package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig          `mapstructure:"server"`
	Database DatabaseConfig        `mapstructure:"database"`
	Redis    RedisConfig           `mapstructure:"redis"`
	JWT      JWTConfig             `mapstructure:"jwt"`
	CORS     CORSConfig            `mapstructure:"cors"`
	Queue    QueueConfig           `mapstructure:"queue"`
	Payment  PaymentConfig         `mapstructure:"payment"`
	Ideas    IdeasConfig           `mapstructure:"ideas"`
	Plans    map[string]PlanConfig `mapstructure:"plans"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type QueueConfig struct {
	PaymentQueue string `mapstructure:"payment_queue"`
	MaxWorkers   int    `mapstructure:"max_workers"`
}

type PaymentConfig struct {
	Mode       string `mapstructure:"mode"`        // demo, live
	GatewayURL string `mapstructure:"gateway_url"` // GCash 网关地址（live 模式）
}

type IdeasConfig struct {
	StrictValidation  bool `mapstructure:"strict_validation"`  // 创建时 description 是否必填
	SearchDescription bool `mapstructure:"search_description"` // 搜索是否同时匹配 description
}

type PlanConfig struct {
	Generations  int     `mapstructure:"generations"`   // 套餐生成次数（unlimited 忽略）
	Price        float64 `mapstructure:"price"`         // 价格（PHP）
	DurationDays int     `mapstructure:"duration_days"` // 有效期天数，0 表示永久
	Unlimited    bool    `mapstructure:"unlimited"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	// 检查 config.local.yaml 是否存在
	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if len(cfg.Plans) == 0 {
		cfg.Plans = DefaultPlans()
	}

	return &cfg, nil
}

// DefaultPlans 套餐默认配置，config.yaml 未配置时使用
func DefaultPlans() map[string]PlanConfig {
	return map[string]PlanConfig{
		"free":      {Generations: 10, Price: 0, DurationDays: 0},
		"starter":   {Generations: 50, Price: 99, DurationDays: 30},
		"pro":       {Generations: 200, Price: 199, DurationDays: 30},
		"unlimited": {Unlimited: true, Price: 399, DurationDays: 30},
	}
}
