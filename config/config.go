package config

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/thrasher-corp/mudrex/common"
	"github.com/thrasher-corp/mudrex/common/convert"
	"github.com/thrasher-corp/mudrex/common/file"
	"github.com/thrasher-corp/mudrex/log"
)

var (
	errConfigIsNil              = errors.New("config is nil")
	errAPISecretEmpty           = errors.New("API secret is required")
	errInvalidTimeout           = errors.New("timeout must be positive")
	errInvalidMaxRetries        = errors.New("max retries must not be negative")
	errInvalidRequestsPerSecond = errors.New("requests per second must not be negative")
	errFailureOpeningConfig     = errors.New("fatal error opening config file")
	errFailureReadingDotEnv     = errors.New("fatal error reading dotenv file")
	errCheckingConfigValues     = errors.New("fatal error checking config values")
)

// New returns a config carrying the supplied secret and default values for
// everything else
func New(apiSecret string) *Config {
	return &Config{
		APISecret:         apiSecret,
		BaseURL:           DefaultBaseURL,
		Timeout:           DefaultTimeout,
		RateLimit:         convert.BoolPtr(true),
		RequestsPerSecond: DefaultRequestsPerSecond,
		MaxRetries:        DefaultMaxRetries,
		UserAgent:         DefaultUserAgent,
		Logging:           log.GenDefaultSettings(),
	}
}

// Load builds a config from defaults, an optional JSON or YAML file, a
// dotenv file and MUDREX_* environment variables, in increasing order of
// precedence. An empty dotEnvPath looks for .env in the working directory
// and tolerates its absence. The resulting config is checked and its logging
// settings applied to the global logger.
func Load(configPath, dotEnvPath string) (*Config, error) {
	if err := loadDotEnv(dotEnvPath); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w %s: %w", errFailureOpeningConfig, configPath, err)
		}
		log.Infof(log.ConfigMgr, "Using config file %s", configPath)
	}

	var c Config
	if err := v.Unmarshal(&c,
		viper.DecodeHook(durationHookFunc()),
		func(dc *mapstructure.DecoderConfig) { dc.TagName = "json" },
	); err != nil {
		return nil, fmt.Errorf("%w: %w", errCheckingConfigValues, err)
	}

	if err := c.CheckConfig(); err != nil {
		return nil, fmt.Errorf("%w: %w", errCheckingConfigValues, err)
	}
	if err := c.SetupLogger(); err != nil {
		return nil, err
	}
	return &c, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		if !file.Exists(DotEnvFile) {
			return nil
		}
		path = DotEnvFile
	}
	// godotenv never overrides variables already present in the environment
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w %s: %w", errFailureReadingDotEnv, path, err)
	}
	log.Debugf(log.ConfigMgr, "Loaded environment variables from %s", path)
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("baseURL", DefaultBaseURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("rateLimit", true)
	v.SetDefault("requestsPerSecond", DefaultRequestsPerSecond)
	v.SetDefault("maxRetries", DefaultMaxRetries)
	v.SetDefault("userAgent", DefaultUserAgent)
	v.SetDefault("verbose", false)
	v.SetDefault("httpDebugging", false)
}

// durationHookFunc decodes bare numbers as seconds and anything else through
// time.ParseDuration, so both "timeout": 30 and "timeout": "30s" work
func durationHookFunc() mapstructure.DecodeHookFuncType {
	return func(_, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch d := data.(type) {
		case string:
			s := strings.TrimSpace(d)
			if secs, err := strconv.ParseFloat(s, 64); err == nil {
				return convert.DurationFromSeconds(secs), nil
			}
			return time.ParseDuration(s)
		case float64:
			return convert.DurationFromSeconds(d), nil
		case float32:
			return convert.DurationFromSeconds(float64(d)), nil
		case int:
			return time.Duration(d) * time.Second, nil
		case int64:
			return time.Duration(d) * time.Second, nil
		}
		return data, nil
	}
}

// CheckConfig fills unset values with their defaults and validates the
// result
func (c *Config) CheckConfig() error {
	if c == nil {
		return errConfigIsNil
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == nil {
		c.RateLimit = convert.BoolPtr(true)
	}
	if c.RequestsPerSecond == 0 && *c.RateLimit {
		log.Warnf(log.ConfigMgr, "Requests per second unset, defaulting to %v", DefaultRequestsPerSecond)
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	c.CheckLoggerConfig()
	return c.Validate()
}

// Validate reports the first invalid value in the config
func (c *Config) Validate() error {
	if c == nil {
		return errConfigIsNil
	}
	if strings.TrimSpace(c.APISecret) == "" {
		return errAPISecretEmpty
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: %s", errInvalidTimeout, c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: %d", errInvalidMaxRetries, c.MaxRetries)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: %v", errInvalidRequestsPerSecond, c.RequestsPerSecond)
	}
	baseURL, err := common.NormaliseBaseURL(c.BaseURL)
	if err != nil {
		return err
	}
	c.BaseURL = baseURL
	return nil
}

// IsRateLimited reports whether local throttling is enabled
func (c *Config) IsRateLimited() bool {
	return c.RateLimit == nil || *c.RateLimit
}

// CheckLoggerConfig checks to see logger values are present and fills any
// missing ones with sane defaults
func (c *Config) CheckLoggerConfig() {
	defaults := log.GenDefaultSettings()
	if c.Logging.Enabled == nil || c.Logging.Output == "" {
		c.Logging = defaults
		return
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Level
	}
	if c.Logging.AdvancedSettings.ShowLogSystemName == nil {
		c.Logging.AdvancedSettings.ShowLogSystemName = convert.BoolPtr(false)
	}
	if c.Logging.AdvancedSettings.Spacer == "" {
		c.Logging.AdvancedSettings.Spacer = defaults.AdvancedSettings.Spacer
	}
	if c.Logging.AdvancedSettings.TimeStampFormat == "" {
		c.Logging.AdvancedSettings.TimeStampFormat = defaults.AdvancedSettings.TimeStampFormat
	}
	h := &c.Logging.AdvancedSettings.Headers
	if h.Info == "" {
		h.Info = defaults.AdvancedSettings.Headers.Info
	}
	if h.Warn == "" {
		h.Warn = defaults.AdvancedSettings.Headers.Warn
	}
	if h.Debug == "" {
		h.Debug = defaults.AdvancedSettings.Headers.Debug
	}
	if h.Error == "" {
		h.Error = defaults.AdvancedSettings.Headers.Error
	}
}

// SetupLogger applies the logging settings to the global logger
func (c *Config) SetupLogger() error {
	if c == nil {
		return errConfigIsNil
	}
	return log.SetupGlobalLogger(&c.Logging)
}
