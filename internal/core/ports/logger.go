package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs diagnostic detail, only shown when tracing is enabled.
	Debug(msg string)
	Info(msg string)
	// Warn logs a recoverable condition.
	Warn(msg string)
	Error(err error)
}
