package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thrasher-corp/mudrex/common/convert"
)

var (
	errSubloggerConfigIsNil  = errors.New("sublogger config is nil")
	errUnhandledOutputWriter = errors.New("unhandled output writer")
	errSubLoggerNotFound     = errors.New("sub logger not found")
)

func getWriters(s *SubLoggerConfig) (io.Writer, error) {
	if s == nil {
		return nil, errSubloggerConfigIsNil
	}
	mw, err := MultiWriter()
	if err != nil {
		return nil, err
	}
	outputWriters := strings.Split(s.Output, "|")
	for x := range outputWriters {
		var writer io.Writer
		switch strings.ToLower(strings.TrimSpace(outputWriters[x])) {
		case "stdout", "console":
			writer = os.Stdout
		case "stderr":
			writer = os.Stderr
		case "":
			continue
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, outputWriters[x])
		}
		if err = mw.Add(writer); err != nil {
			return nil, err
		}
	}
	return mw, nil
}

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	return Config{
		Enabled: convert.BoolPtr(true),
		SubLoggerConfig: SubLoggerConfig{
			Level:  "INFO|WARN|ERROR",
			Output: "console",
		},
		AdvancedSettings: advancedSettings{
			ShowLogSystemName: convert.BoolPtr(true),
			Spacer:            spacer,
			TimeStampFormat:   timestampFormat,
			Headers: headers{
				Info:  "[INFO]",
				Warn:  "[WARN]",
				Debug: "[DEBUG]",
				Error: "[ERROR]",
			},
		},
	}
}

func newLogger(c *Config) Logger {
	return Logger{
		Enabled:           c.Enabled == nil || *c.Enabled,
		ShowLogSystemName: c.AdvancedSettings.ShowLogSystemName != nil && *c.AdvancedSettings.ShowLogSystemName,
		TimestampFormat:   c.AdvancedSettings.TimeStampFormat,
		Spacer:            c.AdvancedSettings.Spacer,
		InfoHeader:        c.AdvancedSettings.Headers.Info,
		WarnHeader:        c.AdvancedSettings.Headers.Warn,
		DebugHeader:       c.AdvancedSettings.Headers.Debug,
		ErrorHeader:       c.AdvancedSettings.Headers.Error,
	}
}

// SetupGlobalLogger applies the supplied config to the logger and to every
// registered sub logger, then applies any per sub logger overrides
func SetupGlobalLogger(c *Config) error {
	if c == nil {
		return errSubloggerConfigIsNil
	}
	output, err := getWriters(&c.SubLoggerConfig)
	if err != nil {
		return err
	}

	mu.Lock()
	globalLogConfig = *c
	for x := range subLoggers {
		subLoggers[x].levels = splitLevel(c.Level)
		subLoggers[x].output = output
	}
	logger = newLogger(c)
	mu.Unlock()

	return SetupSubLoggers(c.SubLoggers)
}

// SetupSubLoggers configure all sub loggers with provided configuration values
func SetupSubLoggers(s []SubLoggerConfig) error {
	for x := range s {
		output, err := getWriters(&s[x])
		if err != nil {
			return err
		}
		if err = configureSubLogger(s[x].Name, s[x].Level, output); err != nil {
			return err
		}
	}
	return nil
}

func configureSubLogger(subLogger, levels string, output io.Writer) error {
	mu.Lock()
	defer mu.Unlock()
	logPtr, found := subLoggers[strings.ToUpper(subLogger)]
	if !found {
		return fmt.Errorf("%w: %v", errSubLoggerNotFound, subLogger)
	}
	logPtr.output = output
	logPtr.levels = splitLevel(levels)
	return nil
}

// SetOutput redirects a sub logger, used primarily by tests to capture output
func (sl *SubLogger) SetOutput(w io.Writer) {
	mu.Lock()
	sl.output = w
	mu.Unlock()
}

// SetLevels replaces the enabled levels of a sub logger, e.g. "INFO|DEBUG"
func (sl *SubLogger) SetLevels(levels string) {
	mu.Lock()
	sl.levels = splitLevel(levels)
	mu.Unlock()
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch strings.ToUpper(strings.TrimSpace(enabledLevels[x])) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}

func registerNewSubLogger(subLogger string) *SubLogger {
	temp := &SubLogger{
		name:   strings.ToUpper(subLogger),
		output: os.Stdout,
		levels: splitLevel(globalLogConfig.Level),
	}
	subLoggers[temp.name] = temp
	return temp
}

// register all loggers at package init()
func init() {
	logger = newLogger(&globalLogConfig)

	Global = registerNewSubLogger("LOG")
	ConfigMgr = registerNewSubLogger("CONFIG")
	RequestSys = registerNewSubLogger("REQUESTER")
	ExchangeSys = registerNewSubLogger("EXCHANGE")
}
