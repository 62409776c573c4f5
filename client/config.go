package client

import (
	"fmt"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config is built once by the binary and handed to NewSession.
type Config struct {
	ServerAddress   string `env:"CHAT_SERVER_ADDR,default=localhost:8080"`
	LogLevel        string `env:"LOG_LEVEL,default=INFO"`
	HistoryLimit    int    `env:"HISTORY_LIMIT,default=100"`
	EventBufferSize int    `env:"EVENT_BUFFER_SIZE,default=64"`
	ErrorBufferSize int    `env:"ERROR_BUFFER_SIZE,default=16"`
	Colours         bool   `env:"CHAT_COLOURS,default=true"`
}

// LoadConfig reads the environment, after an optional .env file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return config, nil
}
