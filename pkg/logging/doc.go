// Package logging provides structured logging configuration for printmock.
//
// It wraps log/slog so every component logs the same way:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatJSON,
//	})
//	logger.Info("server started", "port", 4000)
//
// Open additionally tees records into a log file through MultiHandler.
//
// Components accept a *slog.Logger in their constructor or via a setter and
// default to Nop() when none is given.
package logging
