// Package logging is a small structured logger atop the standard
// library's log.Logger: leveled helpers, JSON or text encoding chosen
// by configuration.
package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"bank-core/internal/config"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger writes leveled, optionally structured log entries to an
// underlying log.Logger.
type Logger struct {
	level  Level
	format string
	logger *log.Logger
}

// LogEntry is one emitted log line in its structured form.
type LogEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

var defaultLogger *Logger

// Init builds the process-wide default logger from cfg. Call it once
// during startup; package-level Debug/Info/Warn/Error calls made before
// Init are dropped.
func Init(cfg *config.Config) {
	defaultLogger = New(cfg)
}

// New builds a standalone Logger from cfg, independent of the
// package-level default — the components container keeps one as
// Container.Logger. The per-request logger in RequestContext writes
// through the package-level default instead.
func New(cfg *config.Config) *Logger {
	return &Logger{
		level:  parseLevel(cfg.Logging.Level),
		format: cfg.Logging.Format,
		logger: log.New(os.Stdout, "", 0),
	}
}

func parseLevel(levelStr string) Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func (l *Logger) log(level Level, message string, fields map[string]interface{}) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Fields:    fields,
	}

	var output string
	if l.format == "json" {
		jsonData, _ := json.Marshal(entry)
		output = string(jsonData)
	} else {
		output = fmt.Sprintf("[%s] %s %s", entry.Timestamp, entry.Level, entry.Message)
		if len(fields) > 0 {
			fieldsStr, _ := json.Marshal(fields)
			output += fmt.Sprintf(" %s", fieldsStr)
		}
	}

	l.logger.Println(output)
}

func (l *Logger) Debug(message string, fields ...map[string]interface{}) {
	l.log(DEBUG, message, firstOrNil(fields))
}

func (l *Logger) Info(message string, fields ...map[string]interface{}) {
	l.log(INFO, message, firstOrNil(fields))
}

func (l *Logger) Warn(message string, fields ...map[string]interface{}) {
	l.log(WARN, message, firstOrNil(fields))
}

func (l *Logger) Error(message string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	l.log(ERROR, message, fields)
}

func firstOrNil(fields []map[string]interface{}) map[string]interface{} {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

// Debug logs at DEBUG level through the package-level default logger.
func Debug(message string, fields ...map[string]interface{}) {
	if defaultLogger != nil {
		defaultLogger.Debug(message, fields...)
	}
}

// Info logs at INFO level through the package-level default logger.
func Info(message string, fields ...map[string]interface{}) {
	if defaultLogger != nil {
		defaultLogger.Info(message, fields...)
	}
}

// Warn logs at WARN level through the package-level default logger.
func Warn(message string, fields ...map[string]interface{}) {
	if defaultLogger != nil {
		defaultLogger.Warn(message, fields...)
	}
}

// Error logs at ERROR level through the package-level default logger.
func Error(message string, err error, fields map[string]interface{}) {
	if defaultLogger != nil {
		defaultLogger.Error(message, err, fields)
	}
}
