// Package logger provides structured logging for inspectkit using zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers and a helper for logging classified API failures.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("sync")
//	log.Info("inspection uploaded", logger.Fields("inspection_id", id))
//	log.Failure("upload inspection", apierror.Classify(err))
package logger
