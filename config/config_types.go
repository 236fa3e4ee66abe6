package config

import (
	"time"

	"github.com/thrasher-corp/mudrex/log"
)

// Constants declared here are filename strings and default values
const (
	File                     = "config.json"
	DotEnvFile               = ".env"
	EnvPrefix                = "MUDREX"
	DefaultBaseURL           = "https://trade.mudrex.com/fapi/v1"
	DefaultTimeout           = time.Second * 30
	DefaultRequestsPerSecond = 2.0
	DefaultMaxRetries        = 3
	DefaultUserAgent         = "mudrex-go-sdk/1.0.0"
)

// Config is the overarching client configuration
type Config struct {
	APISecret         string        `json:"apiSecret"`
	BaseURL           string        `json:"baseURL"`
	Timeout           time.Duration `json:"timeout"`
	RateLimit         *bool         `json:"rateLimit"`
	RequestsPerSecond float64       `json:"requestsPerSecond"`
	MaxRetries        int           `json:"maxRetries"`
	UserAgent         string        `json:"userAgent"`
	Verbose           bool          `json:"verbose"`
	HTTPDebugging     bool          `json:"httpDebugging"`
	Logging           log.Config    `json:"logging"`
}

// envBindings maps config keys to the environment variables that override
// them
var envBindings = map[string]string{
	"apiSecret":         EnvPrefix + "_API_SECRET",
	"baseURL":           EnvPrefix + "_BASE_URL",
	"timeout":           EnvPrefix + "_TIMEOUT",
	"rateLimit":         EnvPrefix + "_RATE_LIMIT",
	"requestsPerSecond": EnvPrefix + "_REQUESTS_PER_SECOND",
	"maxRetries":        EnvPrefix + "_MAX_RETRIES",
	"userAgent":         EnvPrefix + "_USER_AGENT",
	"verbose":           EnvPrefix + "_VERBOSE",
	"httpDebugging":     EnvPrefix + "_HTTP_DEBUGGING",
}
