package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

// EnvReader loads Config from the process environment.
type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate env: %w", err)
	}

	return cfg, nil
}

// Describe lists the variables Read understands, with defaults.
func (EnvReader) Describe() string {
	header := "Environment variables:"
	desc, err := cleanenv.GetDescription(new(Config), &header)
	if err != nil {
		return header
	}
	return desc
}
