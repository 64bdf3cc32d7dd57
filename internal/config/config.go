// Package config handles input from etc/*.toml files and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of all automatic environment overrides.
	EnvPrefix = "FOLIO_ADMIN"

	// EnvConfigJSON holds a JSON document merged over the file based config.
	EnvConfigJSON = "FOLIO_ADMIN_CONFIG_JSON"

	// DefaultSessionExpiry is the inactivity window of an admin session.
	DefaultSessionExpiry = time.Hour

	// SessionStorageMemory keeps sessions in process memory.
	SessionStorageMemory = "memory"

	secretMask = "********"
)

// legacyEnv maps config keys to the plain environment variables the portfolio
// server has always honoured.
var legacyEnv = map[string]string{ //nolint:gochecknoglobals
	"webserver.port":          "PORT",
	"webserver.sessionsecret": "SESSION_SECRET",
	"operator.username":       "ADMIN_USER",
	"operator.password":       "ADMIN_PASS",
}

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path + "main.toml")
	v.SetConfigType("toml")

	if err = v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, pkgerrors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		if err = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, pkgerrors.Wrap(err, "failed to bind env "+env)
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, pkgerrors.Wrap(err, "failed to decode config")
	}

	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "folio-admin")
	v.SetDefault("devmode", false)

	v.SetDefault("operator.username", "admin")
	v.SetDefault("operator.password", "admin123")

	v.SetDefault("webserver.port", 3001) //nolint:mnd
	v.SetDefault("webserver.url", "http://localhost:3001")
	v.SetDefault("webserver.shutdowntime", 5) //nolint:mnd
	v.SetDefault("webserver.staticdir", "")
	v.SetDefault("webserver.metricsenabled", true)
	v.SetDefault("webserver.sessionsecret", "dev_secret_key")
	v.SetDefault("webserver.argon2salt", "folio-admin-cookie-salt")
	v.SetDefault("webserver.session.expirytime", DefaultSessionExpiry)
	v.SetDefault("webserver.session.storage", SessionStorageMemory)
	v.SetDefault("webserver.session.table", "sessions")

	v.SetDefault("db.engine", EngineSQLite)
	v.SetDefault("db.path", "data/portfolio.db")
	v.SetDefault("db.seed", true)

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "folio-admin")
	v.SetDefault("log.servicename", "folio-admin")
	v.SetDefault("log.console.enabled", true)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, pkgerrors.Wrap(err, "failed to read json config override")
	}

	return c, nil
}

// DumpConfig config as TOML String. Secrets are masked.
func DumpConfig(c *Config) (string, error) {
	out, err := toml.Marshal(masked(c))
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return string(out), nil
}

// DumpConfigJSON config as JSON String. Secrets are masked.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(masked(c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func masked(c *Config) Config {
	out := *c

	for _, s := range []*string{&out.Operator.Password, &out.DB.Password, &out.Webserver.SessionSecret} {
		if *s != "" {
			*s = secretMask
		}
	}

	return out
}

// validate minimal config settings and fill in defaults that viper could not.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return pkgerrors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return pkgerrors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Operator.Username == "" || c.Operator.Password == "" {
		return pkgerrors.Wrap(ErrEmptyOperator, invalidErrMessage)
	}

	switch c.DB.Engine {
	case EngineSQLite, EngineMySQL, EnginePostgres:
	default:
		return pkgerrors.Wrap(ErrUnknownDBEngine, invalidErrMessage+": "+c.DB.Engine)
	}

	switch c.Webserver.Session.Storage {
	case SessionStorageMemory, EngineMySQL, EnginePostgres:
	default:
		return pkgerrors.Wrap(ErrUnknownSessionStorage, invalidErrMessage+": "+c.Webserver.Session.Storage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.Session.ExpiryTime <= 0 {
		c.Webserver.Session.ExpiryTime = DefaultSessionExpiry
	}

	return nil
}
