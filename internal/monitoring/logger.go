package monitoring

import (
	"log"

	"go.uber.org/zap"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Warnf receives recoverable conditions such as a target room with no open
// component. It defaults to log.Printf with a WARNING prefix.
var Warnf func(format string, v ...interface{}) = func(format string, v ...interface{}) {
	log.Printf("WARNING "+format, v...)
}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetWarnLogger replaces the warning logger. Passing nil will set a no-op logger.
func SetWarnLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Warnf = func(string, ...interface{}) {}
		return
	}
	Warnf = f
}

// UseZap routes both hooks through a zap sugared logger.
func UseZap(l *zap.Logger) {
	if l == nil {
		SetLogger(nil)
		SetWarnLogger(nil)
		return
	}
	s := l.Sugar()
	SetLogger(s.Infof)
	SetWarnLogger(s.Warnf)
}

// Mute silences both hooks and returns a function restoring the previous ones.
func Mute() (restore func()) {
	prevLog, prevWarn := Logf, Warnf
	SetLogger(nil)
	SetWarnLogger(nil)
	return func() {
		Logf, Warnf = prevLog, prevWarn
	}
}
