package main

import (
	"fmt"
	"time"
)

type Config struct {
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	MetricsPort          int           `env:"METRICS_PORT,default=9090"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=64"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=1s"`
	LimitMessages        int           `env:"LIMIT_MESSAGES,default=100"`
	MaxContentLength     int           `env:"MAX_CONTENT_LENGTH,default=500"`
	CensoredWords        string        `env:"CENSORED_WORDS"`
	CensoredWordsDir     string        `env:"CENSORED_WORDS_DIR"`
	CharacterReplacement string        `env:"CHARACTER_REPLACEMENT,default=*"`
}

func characterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("CHARACTER_REPLACEMENT must be a single character, got %q", str)
	}
	return r[0], nil
}
