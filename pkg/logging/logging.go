// Package logging configures the zap logger shared by the llmcontext CLI.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance. It is set by Setup and mirrored into
// the zap globals so libraries calling zap.L() see the same configuration.
var Logger *zap.Logger

// Setup builds the application logger. A production JSON configuration is used
// by default; verbose runs get a development console configuration with Debug
// enabled so discovery, rewrite and skip events become visible.
func Setup(verbose bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return Logger, err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return Logger, nil
}
