package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// MustLoad reads the configuration from the file named by CONFIG_PATH
// (default config/config.yaml) with environment overrides, and exits the
// process when the config is missing or invalid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config %s: %s", configPath, err)
	}

	return &cfg
}
