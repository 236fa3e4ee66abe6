package log

import (
	"io"
	"sync"
)

const (
	timestampFormat = " 02/01/2006 15:04:05 "
	spacer          = " | "
)

var (
	logger = Logger{}
	// globalLogConfig holds global configuration options for logger
	globalLogConfig = GenDefaultSettings()

	// read/write mutex for logger
	mu = &sync.RWMutex{}
)

// Config holds configuration settings loaded from client config
type Config struct {
	Enabled          *bool `json:"enabled"`
	SubLoggerConfig  `json:",squash"`
	AdvancedSettings advancedSettings  `json:"advancedSettings"`
	SubLoggers       []SubLoggerConfig `json:"subloggers,omitempty"`
}

type advancedSettings struct {
	ShowLogSystemName *bool   `json:"showLogSystemName"`
	Spacer            string  `json:"spacer"`
	TimeStampFormat   string  `json:"timeStampFormat"`
	Headers           headers `json:"headers"`
}

type headers struct {
	Info  string `json:"info"`
	Warn  string `json:"warn"`
	Debug string `json:"debug"`
	Error string `json:"error"`
}

// SubLoggerConfig holds sub logger configuration settings loaded from client config
type SubLoggerConfig struct {
	Name   string `json:"name,omitempty"`
	Level  string `json:"level"`
	Output string `json:"output"`
}

// Logger each instance of logger settings
type Logger struct {
	Enabled                                          bool
	ShowLogSystemName                                bool
	TimestampFormat                                  string
	InfoHeader, ErrorHeader, DebugHeader, WarnHeader string
	Spacer                                           string
}

// Levels flags for each sub logger type
type Levels struct {
	Info, Debug, Warn, Error bool
}

type multiWriter struct {
	writers []io.Writer
	mu      sync.RWMutex
}
