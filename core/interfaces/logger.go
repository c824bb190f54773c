package interfaces

// Logger defines the interface for logging throughout the application.
// This abstraction allows for different logging implementations (logrus, the standard library, test doubles)
// while maintaining a consistent interface.
//
// Example usage:
//
//	logger.Info("Feed refreshed", map[string]interface{}{
//		"feed_id": feed.ID,
//		"items":   len(items),
//	})
//
//	logger.Warn("Serving stale feed", map[string]interface{}{
//		"feed_id": feed.ID,
//		"error":   err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	// Debug messages are typically used for detailed troubleshooting information.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	// Info messages are used for general informational messages.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Warning messages indicate potential issues that don't prevent operation.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	// Error messages indicate failures that need attention.
	Error(msg string, fields map[string]interface{})
}