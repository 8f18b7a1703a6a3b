package config

import (
	"os"

	"github.com/spf13/viper"
)

// Load reads and validates a configuration from a JSON file.
//
// Unknown or malformed shapes are rejected here, before the config can reach
// the plan compiler.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewErrorWithCause(CategoryNotFound, "configuration file not found: "+path, err)
		}
		return nil, NewErrorWithCause(CategoryInvalid, "cannot read configuration file: "+path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, NewErrorWithCause(CategoryInvalid, "invalid JSON in "+path, err)
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, NewErrorWithCause(CategoryInvalid, "unrecognized configuration shape in "+path, err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
