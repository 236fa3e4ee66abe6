package log

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Info takes a pointer subLogger struct and string sends to the output writer
func Info(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(logger.InfoHeader, data)
}

// Infof takes a pointer subLogger struct, string and interface formats sends to the output writer
func Infof(sl *SubLogger, data string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stagef(logger.InfoHeader, data, v...)
}

// Debug takes a pointer subLogger struct and string sends to the output writer
func Debug(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(logger.DebugHeader, data)
}

// Debugf takes a pointer subLogger struct, string and interface formats sends to the output writer
func Debugf(sl *SubLogger, data string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stagef(logger.DebugHeader, data, v...)
}

// Warn takes a pointer subLogger struct & string and sends to the output writer
func Warn(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(logger.WarnHeader, data)
}

// Warnf takes a pointer subLogger struct, string and interface formats and sends to the output writer
func Warnf(sl *SubLogger, data string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stagef(logger.WarnHeader, data, v...)
}

// Error takes a pointer subLogger struct & string and sends to the output writer
func Error(sl *SubLogger, data string) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stage(logger.ErrorHeader, data)
}

// Errorf takes a pointer subLogger struct, string and interface formats and sends to the output writer
func Errorf(sl *SubLogger, data string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sl.getFields().stagef(logger.ErrorHeader, data, v...)
}

// getFields snapshots the sub logger state under the package read lock.
// Callers must hold mu.
func (sl *SubLogger) getFields() *logFields {
	if sl == nil || !logger.Enabled {
		return nil
	}
	return &logFields{
		info:   sl.levels.Info,
		warn:   sl.levels.Warn,
		debug:  sl.levels.Debug,
		error:  sl.levels.Error,
		name:   sl.name,
		output: sl.output,
		logger: logger,
	}
}

// enabled checks if the log level is enabled
func (l *logFields) enabled(header string) bool {
	switch header {
	case l.logger.InfoHeader:
		return l.info
	case l.logger.WarnHeader:
		return l.warn
	case l.logger.ErrorHeader:
		return l.error
	case l.logger.DebugHeader:
		return l.debug
	}
	return false
}

func (l *logFields) stage(header, data string) {
	if l == nil || !l.enabled(header) {
		return
	}
	if customLogHook != nil && customLogHook(header, l.name, data) {
		return
	}
	l.write(header, data)
}

func (l *logFields) stagef(header, data string, v ...any) {
	if l == nil || !l.enabled(header) {
		return
	}
	if customLogHook != nil && customLogHook(header, l.name, fmt.Sprintf(data, v...)) {
		return
	}
	l.write(header, fmt.Sprintf(data, v...))
}

func (l *logFields) write(header, data string) {
	if l.output == nil {
		return
	}
	var b strings.Builder
	b.WriteString(header)
	if l.logger.ShowLogSystemName {
		b.WriteString(l.logger.Spacer)
		b.WriteString(l.name)
	}
	b.WriteString(l.logger.Spacer)
	b.WriteString(time.Now().Format(l.logger.TimestampFormat))
	b.WriteString(l.logger.Spacer)
	b.WriteString(data)
	if !strings.HasSuffix(data, "\n") {
		b.WriteByte('\n')
	}
	_, err := l.output.Write([]byte(b.String()))
	displayError(err)
}

func displayError(err error) {
	if err != nil {
		log.Printf("Logger write error: %v\n", err)
	}
}
