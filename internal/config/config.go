package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile   string    `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe-client.log"`
	Server    Server    `yaml:"server"`
	Client    Client    `yaml:"client"`
	Redis     Redis     `yaml:"redis"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Server struct {
	Addr  string `yaml:"addr" env:"SERVER_ADDR" env-default:":8000"`
	Store string `yaml:"store" env:"MATCH_STORE" env-default:"memory"`
}

type Client struct {
	ServerURL string `yaml:"server-url" env:"SERVER_URL" env-default:"http://localhost:8000"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Telemetry struct {
	OTLPEndpoint string `yaml:"otlp-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tic-tac-toe"`
}

// Load reads the yaml file at path, then applies environment overrides.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if config.Server.Store != StoreMemory && config.Server.Store != StoreRedis {
		return nil, fmt.Errorf("unknown match store %q", config.Server.Store)
	}
	return config, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
