package config

import "go.uber.org/zap"

// NewLogger returns a development logger in debug mode and a JSON production
// logger otherwise.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
