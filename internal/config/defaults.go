package config

const (
	defaultDataDir             = "~/.local/share/ecoacustica/data"
	defaultStagingDir          = "~/.local/share/ecoacustica/staging"
	defaultLogDir              = "~/.local/share/ecoacustica/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultTickIntervalMillis  = 100
	defaultStepPercent         = 2.0
	defaultGeoCacheTTLSeconds  = 3600
	defaultGeolocationEnabled  = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Pipeline: Pipeline{
			TickIntervalMillis: defaultTickIntervalMillis,
			StepPercent:        defaultStepPercent,
		},
		Geolocation: Geolocation{
			Enabled:         defaultGeolocationEnabled,
			CacheTTLSeconds: defaultGeoCacheTTLSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
