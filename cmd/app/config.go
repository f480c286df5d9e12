package main

import (
	"fmt"
	"strings"

	"github.com/mgdevhub/gym-meals/internal/repository"
	"github.com/mgdevhub/gym-meals/internal/service"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`

	Auth      AuthConfig           `yaml:"auth"`
	Vision    service.VisionConfig `yaml:"vision"`
	RateLimit RateLimitConfig      `yaml:"rateLimit"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuthConfig struct {
	AppSecret string `yaml:"appSecret"`
	DebugMode bool   `yaml:"debugMode"`
}

type RateLimitConfig struct {
	AnalysisPerHour int `yaml:"analysisPerHour"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("rateLimit.analysisPerHour", 10)
	viper.SetDefault("logLevel", "info")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
