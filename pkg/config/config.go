package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Scout    ScoutConfig    `mapstructure:"scout"`
	Engines  EnginesConfig  `mapstructure:"engines"`
	Audit    AuditConfig    `mapstructure:"audit"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig selects the authentication mode: "basic" compares credentials
// in constant time, "jwt" validates bearer tokens.
type AuthConfig struct {
	Mode          string `mapstructure:"mode"`
	BasicUser     string `mapstructure:"basic_user"`
	BasicPassword string `mapstructure:"basic_password"`
	JWTSecret     string `mapstructure:"jwt_secret"`
}

type ScoutConfig struct {
	MaxConcurrentFetches int    `mapstructure:"max_concurrent_fetches"`
	ThrottleSeconds      int    `mapstructure:"throttle_seconds"`
	UserAgent            string `mapstructure:"user_agent"`
}

type EnginesConfig struct {
	Transcriber TranscriberConfig `mapstructure:"transcriber"`
	Brief       BriefConfig       `mapstructure:"brief"`
}

type TranscriberConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type BriefConfig struct {
	Provider       string    `mapstructure:"provider"` // "local" or "bedrock"
	URL            string    `mapstructure:"url"`
	Model          string    `mapstructure:"model"`
	TimeoutSeconds int       `mapstructure:"timeout_seconds"`
	AWS            AWSConfig `mapstructure:"aws"`
}

type AWSConfig struct {
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	RoleARN   string `mapstructure:"role_arn"`
	ModelID   string `mapstructure:"model_id"`
}

type AuditConfig struct {
	KafkaEnabled bool   `mapstructure:"kafka_enabled"`
	KafkaHost    string `mapstructure:"kafka_host"`
	KafkaPort    string `mapstructure:"kafka_port"`
	KafkaTopic   string `mapstructure:"kafka_topic"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}

	setDefaultValues()

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Auth.Mode == "" {
		globalConfig.Auth.Mode = "basic"
	}
	if globalConfig.Scout.MaxConcurrentFetches <= 0 {
		globalConfig.Scout.MaxConcurrentFetches = 4
	}
	if globalConfig.Scout.ThrottleSeconds <= 0 {
		globalConfig.Scout.ThrottleSeconds = 300
	}
	if globalConfig.Scout.UserAgent == "" {
		globalConfig.Scout.UserAgent = "ArbetsytanScout/1.0"
	}
	if globalConfig.Engines.Transcriber.TimeoutSeconds <= 0 {
		globalConfig.Engines.Transcriber.TimeoutSeconds = 120
	}
	if globalConfig.Engines.Brief.Provider == "" {
		globalConfig.Engines.Brief.Provider = "local"
	}
	if globalConfig.Engines.Brief.TimeoutSeconds <= 0 {
		globalConfig.Engines.Brief.TimeoutSeconds = 120
	}
}

func GetConfig() *Config {
	return &globalConfig
}
