package zap

import "go.uber.org/zap"

func NewLogger() *zap.SugaredLogger {
	logger, _ := zap.NewDevelopment()
	return logger.Sugar()
}

func NewProductionLogger() *zap.SugaredLogger {
	logger, _ := zap.NewProduction()
	return logger.Sugar()
}

// NewNopLogger is used where a component is built without a logger.
func NewNopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
