package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Load reads the optional YAML config file at path and overlays environment
// variables. A missing file is not an error; env-default tags fill the gaps.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
