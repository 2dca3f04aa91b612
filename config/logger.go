package config

import "go.uber.org/zap"

func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg != nil && cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
