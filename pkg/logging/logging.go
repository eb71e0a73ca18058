package logging

// DebugLogger is the minimal logger most components accept.
type DebugLogger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
}

// Logger is satisfied by *zap.SugaredLogger.
type Logger interface {
	DebugLogger

	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
}
