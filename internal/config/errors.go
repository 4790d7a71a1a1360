package config

import (
	"tradecalc/internal/errors"
)

func envError(key string, cause error) error {
	return errors.Config("invalid "+EnvPrefix+key, cause).WithContext("variable", EnvPrefix+key)
}
