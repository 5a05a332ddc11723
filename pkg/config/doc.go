// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// the default .env file is read once, the environment is parsed into a
// struct by its `env` tags, and every configuration type is cached after the
// first successful parse.
//
//	type Config struct {
//		MessagePrefix string `env:"VALIDLITE_MESSAGE_PREFIX" envDefault:"validator"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Tests that change the environment use Reload or ResetCache.
package config
