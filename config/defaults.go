package config

const (
	defaultBind              = ":8080"
	defaultLogLevel          = "info"
	defaultLogFormat         = "console"
	defaultLastRangeLength   = 100
	defaultFrameStart        = 1
	defaultFrameEnd          = 250
	defaultJournalSize       = 256
	defaultConfigPathPattern = "~/.config/rangepresets/config.toml"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server: Server{
			Bind: defaultBind,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Presets: Presets{
			LastRangeLength:   defaultLastRangeLength,
			DefaultFrameStart: defaultFrameStart,
			DefaultFrameEnd:   defaultFrameEnd,
			JournalSize:       defaultJournalSize,
		},
	}
}
