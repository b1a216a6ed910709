package observability

import (
	"github.com/ormgarage/facturation/internal/config"
	"github.com/ormgarage/facturation/internal/observability/logger"
	"github.com/ormgarage/facturation/internal/observability/metrics"
	"go.uber.org/fx"
)

// Module wires logging and metrics for the application.
var Module = fx.Module("observability",
	fx.Provide(
		provideLoggerConfig,
		logger.New,
		metrics.NewHTTPMetrics,
	),
)

func provideLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     cfg.AppVersion,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Debug:       cfg.Debug(),
	}
}
