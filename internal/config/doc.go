// Package config manages usl settings stored at ~/.usl/config.yaml using
// Viper. Environment variables prefixed with USL_ override file values and
// command-line flags bound by the CLI override both.
package config
