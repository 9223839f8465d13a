// Package logging wraps log/slog for the relay.
//
// Loggers emit JSON to stdout. Any string attribute that contains a Discord
// webhook path has its token masked before it is written.
//
// Example usage:
//
//	logger := logging.NewLogger(cfg.LogLevel)
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, slog.Default()).Info("event accepted")
//	}
package logging
