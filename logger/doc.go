// Package logger provides structured logging for vaultkit using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// The SDK itself stays quiet unless the caller hands a Logger to the
// client; the example programs use it for their own output.
//
// # Usage
//
//	log := logger.NewFromEnv("setsecret-example")
//	log.Info("secret stored", logger.Fields(logger.FieldSecret, name))
package logger
