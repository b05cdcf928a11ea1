package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvTCPPort     = "TORCHLIGHT_TCP_PORT"
	EnvUDPPort     = "TORCHLIGHT_UDP_PORT"
	EnvWSPort      = "TORCHLIGHT_WS_PORT"
	EnvAPIPort     = "TORCHLIGHT_API_PORT"
	EnvDatabaseURL = "TORCHLIGHT_DATABASE_URL"
	EnvLogLevel    = "TORCHLIGHT_LOG_LEVEL"
	EnvTickRate    = "TORCHLIGHT_TICK_RATE"
	EnvServerHost  = "TORCHLIGHT_SERVER_HOST"
)

// Config holds the settings shared by the server and the client.
// Command line flags in cmd/ take precedence over these values.
type Config struct {
	TCPPort     int
	UDPPort     int
	WSPort      int
	APIPort     int
	DatabaseURL string
	LogLevel    string
	TickRate    int
	ServerHost  string
}

func Default() Config {
	return Config{
		TCPPort:     8888,
		UDPPort:     8889,
		WSPort:      8890,
		APIPort:     9090,
		DatabaseURL: "sqlite://torchlight.db",
		LogLevel:    "info",
		TickRate:    20,
		ServerHost:  "localhost",
	}
}

// Load reads the given .env files (".env" when none are given) into the
// environment and builds a Config from it. Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %v", file, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment on top of the defaults.
func FromEnv() (Config, error) {
	cfg := Default()

	ints := []struct {
		key string
		dst *int
	}{
		{EnvTCPPort, &cfg.TCPPort},
		{EnvUDPPort, &cfg.UDPPort},
		{EnvWSPort, &cfg.WSPort},
		{EnvAPIPort, &cfg.APIPort},
		{EnvTickRate, &cfg.TickRate},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %v", v.key, err)
		}
		*v.dst = n
	}
	if cfg.TickRate <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d", EnvTickRate, cfg.TickRate)
	}

	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvServerHost); v != "" {
		cfg.ServerHost = v
	}

	return cfg, nil
}
