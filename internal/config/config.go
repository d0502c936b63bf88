// Package config handles input from etc/*.toml files
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "IORECYCLING"

// ReadConfig reads etc/main.toml from the given directory and applies
// IORECYCLING_* environment overrides (dots become underscores, e.g.
// IORECYCLING_AUTH_CLIENTID).
func ReadConfig(path string) (Config, error) {
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	return c, validate(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "iorecycling")
	v.SetDefault("auth.scopes", []string{"openid", "profile", "email"})
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("callback.addr", "127.0.0.1:8422")
	v.SetDefault("policy.cacheTtl", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.appName", "iorecycling")
	v.SetDefault("log.serviceName", "iorecycling-client")
}

// validate the loaded configuration. Structural checks run through the
// validator tags; the cross-field constraints are checked by hand.
func validate(c Config) error {
	invalidErrMessage := "invalid config"

	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	if len(c.Auth.Scopes) == 0 {
		return errors.Wrap(ErrScopesEmpty, invalidErrMessage)
	}

	if c.Auth.DevFallback && !c.DevMode {
		return errors.Wrap(ErrDevFallbackOutsideDevMode, invalidErrMessage)
	}

	return nil
}
