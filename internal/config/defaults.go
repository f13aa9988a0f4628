package config

const (
	defaultDataDir             = "~/.local/share/reelpipe/data"
	defaultLogDir              = "~/.local/share/reelpipe/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel            = "google/gemini-3-flash-preview"
	defaultLLMReferer          = "https://github.com/reelpipe/reelpipe"
	defaultLLMTitle            = "Reelpipe Script Generator"
	defaultLLMTimeoutSeconds   = 60
	defaultVoiceStylePreset    = "energetic"
	defaultWorkerTickInterval  = 1
	defaultErrorRetryInterval  = 5
	defaultNGramSize           = 4
	defaultScriptThreshold     = 0.35
	defaultTopicThreshold      = 0.5
	defaultClusterThreshold    = 0.3
	defaultMinClusterSize      = 2
	defaultMaxClusterSize      = 10
	defaultProbeTimeout        = 10
	defaultStaleHours          = 72.0
	defaultLatencyWarningMS    = 5000.0
	defaultWarningFailures     = 2
	defaultDeadFailures        = 6
	defaultAutoDisableFailures = 12
	defaultBatchDelayMS        = 500
	defaultNtfyRequestTimeout  = 10
	defaultMinFreeGiB          = 1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Voice: Voice{
			Enabled:     false,
			StylePreset: defaultVoiceStylePreset,
		},
		Worker: Worker{
			TickInterval:       defaultWorkerTickInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
		},
		Similarity: Similarity{
			NGramSize:       defaultNGramSize,
			ScriptThreshold: defaultScriptThreshold,
			TopicThreshold:  defaultTopicThreshold,
		},
		Trends: Trends{
			ClusterThreshold: defaultClusterThreshold,
			MinClusterSize:   defaultMinClusterSize,
			MaxClusterSize:   defaultMaxClusterSize,
		},
		Health: Health{
			ProbeTimeout:        defaultProbeTimeout,
			StaleHours:          defaultStaleHours,
			LatencyWarningMS:    defaultLatencyWarningMS,
			WarningFailures:     defaultWarningFailures,
			DeadFailures:        defaultDeadFailures,
			AutoDisableFailures: defaultAutoDisableFailures,
			BatchDelayMS:        defaultBatchDelayMS,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Preflight: Preflight{
			MinFreeGiB: defaultMinFreeGiB,
		},
	}
}
