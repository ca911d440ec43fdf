// Package logging bootstraps the process-wide zap logger (§A).
package logging

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"aeoaudit/config"
)

// Init builds a *zap.Logger from cfg, installs it globally via
// zap.ReplaceGlobals, and returns it. Production JSON encoding is the
// default; log.format=console switches to the human-readable development
// encoder. An invalid log.level is reported, never silently defaulted.
func Init(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, eris.Wrap(err, "logging: parse log level")
	}
	zapCfg.Level.SetLevel(parsed)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "logging: build logger")
	}
	zap.ReplaceGlobals(logger)

	return logger, nil
}
