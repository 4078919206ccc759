package config

const (
	defaultMediaType            = "everything"
	defaultKeepTag              = "KEEP"
	defaultPageSize             = 100
	defaultRequestTimeout       = 30
	defaultScheduleInterval     = 1440
	defaultHistoryDir           = "~/.local/share/absweep"
	defaultLogDir               = "~/.local/share/absweep/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			VerifySSL:      true,
			RequestTimeout: defaultRequestTimeout,
		},
		Cleanup: Cleanup{
			MediaType:  defaultMediaType,
			KeepTag:    defaultKeepTag,
			HardDelete: true,
			PageSize:   defaultPageSize,
		},
		Schedule: Schedule{
			IntervalMinutes: defaultScheduleInterval,
		},
		History: History{
			Enabled: true,
			Dir:     defaultHistoryDir,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Completed:      true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			LogDir: defaultLogDir,
		},
	}
}
