// Package logger is the logging front-end of the module, a thin
// object-prefixed facade over logrus. Hot translation paths gate on
// the level before formatting so disabled trace logging stays free.
package logger

import (
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

// objWidth is the fixed width of the object column.
const objWidth = 20

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		objStr = reflect.TypeOf(obj).Name()
	}
	if len(objStr) > objWidth {
		objStr = objStr[:objWidth]
	}
	return
}

// Init configures the global log level and output format.
func Init(lvl logrus.Level) {
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/02/01 15:04:05",
	})
}

func emit(logFn func(...any), obj any, msg string) {
	logFn(fmt.Sprintf("|%20s|%s", objToString(obj), msg))
}

// Trace logs a message at trace level, prefixed with the object name.
func Trace(object any, message string) {
	if logrus.GetLevel() < logrus.TraceLevel {
		return
	}
	emit(logrus.Trace, object, message)
}

// Tracef logs a formatted message at trace level.
func Tracef(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.TraceLevel {
		return
	}
	emit(logrus.Trace, object, fmt.Sprintf(message, args...))
}

// Debug logs a message at debug level, prefixed with the object name.
func Debug(object any, message string) {
	if logrus.GetLevel() < logrus.DebugLevel {
		return
	}
	emit(logrus.Debug, object, message)
}

// Debugf logs a formatted message at debug level.
func Debugf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.DebugLevel {
		return
	}
	emit(logrus.Debug, object, fmt.Sprintf(message, args...))
}

// Info logs a message at info level, prefixed with the object name.
func Info(object any, message string) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	emit(logrus.Info, object, message)
}

// Infof logs a formatted message at info level.
func Infof(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	emit(logrus.Info, object, fmt.Sprintf(message, args...))
}

// Warning logs a message at warning level, prefixed with the object name.
func Warning(object any, message string) {
	if logrus.GetLevel() < logrus.WarnLevel {
		return
	}
	emit(logrus.Warning, object, message)
}

// Warningf logs a formatted message at warning level.
func Warningf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.WarnLevel {
		return
	}
	emit(logrus.Warning, object, fmt.Sprintf(message, args...))
}

// Error logs a message at error level, prefixed with the object name.
func Error(object any, message string) {
	if logrus.GetLevel() < logrus.ErrorLevel {
		return
	}
	emit(logrus.Error, object, message)
}

// Errorf logs a formatted message at error level.
func Errorf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.ErrorLevel {
		return
	}
	emit(logrus.Error, object, fmt.Sprintf(message, args...))
}
