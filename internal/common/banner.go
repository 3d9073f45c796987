package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and logs the resolved runtime settings
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.Print("Qanda", GetVersion())

	logger.Info().
		Str("version", GetFullVersion()).
		Str("environment", config.Environment).
		Str("oracle_provider", string(config.Oracle.Provider)).
		Bool("history", config.History.Enabled).
		Msg("Qanda starting")
}
