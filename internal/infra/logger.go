// README: zap logger construction.
package infra

import "go.uber.org/zap"

func NewLogger(env string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stdout"}
	return cfg.Build()
}
