package config

const (
	defaultPrefix      = "g-tkk-"
	defaultLogDir      = "~/.local/share/tkkunify/logs"
	defaultHistoryPath = "~/.local/share/tkkunify/history.db"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults. Document and
// SVG directory have no default; they come from the config file or flags.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Unify: Unify{
			Prefix: defaultPrefix,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
