package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"people-monitor-go/pkg/logger"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix  = "PEOPLE_MONITOR_"
	FileEnvVar = EnvPrefix + "CONFIG"
)

var ErrInvalidConfig = errors.New("invalid config")

// Load layers configuration, lowest precedence first:
//  1. Default()
//  2. the YAML file named by PEOPLE_MONITOR_CONFIG, if set
//  3. PEOPLE_MONITOR_* environment variables, after a .env file found in the
//     working directory or a parent has been merged into the environment
func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
		log.Info("config: loaded file", "path", path)
	}

	// PEOPLE_MONITOR_STORE_MAX_OPEN_CONNS -> store.max_open_conns: the first
	// underscore after the prefix separates the section from the key.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if key == "config" {
			return "", nil
		}
		key = strings.Replace(key, "_", ".", 1)
		if _, ok := listKeys[key]; ok {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var listKeys = map[string]struct{}{
	"http.cors_origins": {},
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
