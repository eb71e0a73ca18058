package logging

import "unsafe"

func Debug(log DebugLogger, args ...interface{}) {
	if !isNilValue(log) {
		log.Debug(args...)
	}
}

func Debugf(log DebugLogger, template string, args ...interface{}) {
	if !isNilValue(log) {
		log.Debugf(template, args...)
	}
}

func Info(log Logger, args ...interface{}) {
	if !isNilValue(log) {
		log.Info(args...)
	}
}

func Infof(log Logger, template string, args ...interface{}) {
	if !isNilValue(log) {
		log.Infof(template, args...)
	}
}

func Errorf(log Logger, template string, args ...interface{}) {
	if !isNilValue(log) {
		log.Errorf(template, args...)
	}
}

// isNilValue reports true for a nil interface and for an interface
// holding a nil pointer.
func isNilValue(i interface{}) bool {
	if i == nil {
		return true
	}
	return (*[2]uintptr)(unsafe.Pointer(&i))[1] == 0
}
