// Package logger provides leveled logging helpers for the library.
// The level is taken from the FORMBIND_LOGLEVEL environment variable so
// that host applications can enable tracing without code changes.
package logger

import (
	"fmt"
	"os"
	"reflect"

	"github.com/kr/pretty"
	log "github.com/sirupsen/logrus"
)

// Initialize configures the global logger from the environment.
func Initialize() {
	switch level := os.Getenv("FORMBIND_LOGLEVEL"); level {
	case "trace":
		SetLevel(log.TraceLevel)
	case "debug":
		SetLevel(log.DebugLevel)
	case "info":
		SetLevel(log.InfoLevel)
	default:
		SetLevel(log.ErrorLevel)
	}
}

// SetLevel sets the log level and a full-timestamp text formatter.
func SetLevel(level log.Level) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(level)
}

// TraceMessage logs a formatted message at trace level.
func TraceMessage(format string, v ...any) {
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Trace(fmt.Sprintf(format, preFormatArgs(v)...))
	}
}

// DebugMessage logs a formatted message at debug level.
func DebugMessage(format string, v ...any) {
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debug(fmt.Sprintf(format, preFormatArgs(v)...))
	}
}

// WarnMessage logs a formatted message at warn level.
func WarnMessage(format string, v ...any) {
	if log.IsLevelEnabled(log.WarnLevel) {
		log.Warn(fmt.Sprintf(format, preFormatArgs(v)...))
	}
}

// ErrorMessage logs a formatted message at error level.
func ErrorMessage(format string, v ...any) {
	if log.IsLevelEnabled(log.ErrorLevel) {
		log.Error(fmt.Sprintf(format, preFormatArgs(v)...))
	}
}

// preFormatArgs renders composite arguments with pretty so that nested
// structures are readable in trace output.
func preFormatArgs(v []any) []any {
	vv := make([]any, 0, len(v))
	for _, o := range v {
		if o == nil {
			vv = append(vv, o)
			continue
		}
		switch reflect.ValueOf(o).Kind() {
		case reflect.Struct, reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Array, reflect.Map:
			vv = append(vv, pretty.Formatter(o))
		default:
			vv = append(vv, o)
		}
	}
	return vv
}
