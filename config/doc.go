// Package config provides configuration loading and validation for the
// vaultkit example programs.
//
// It uses Viper to load configuration from files and environment
// variables, godotenv for .env files, and creasty/defaults for
// struct-tag defaults. Environment variables override file values
// using underscore-separated paths (e.g. LOGGING_LEVEL).
//
// # Usage
//
//	settings, err := config.LoadSettings("setsecret-example")
package config
