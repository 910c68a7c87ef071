package config

const (
	defaultStagingDir           = "~/.local/share/leadmirror/staging"
	defaultLogDir               = "~/.local/share/leadmirror/logs"
	defaultAPIBind              = "127.0.0.1:8643"
	defaultTranscriberBaseURL   = "https://api.openai.com/v1"
	defaultTranscriberModel     = "whisper-1"
	defaultTranscriberLanguage  = "fr"
	defaultTranscriberTimeout   = 120
	defaultTranscriberRetries   = 2
	defaultConfidenceOffset     = 0.3
	defaultConfidenceFloor      = 0.5
	defaultConfidenceDefault    = 0.7
	defaultStagingMaxAgeMinutes = 60
	defaultSweepIntervalMinutes = 15
	defaultMaxUploadMiB         = 30
	defaultLogLevel             = "info"
)

// defaultDomainPrompt biases recognition toward sales and negotiation
// vocabulary during the domain-primed pass.
const defaultDomainPrompt = "Conversation commerciale: prospect, objection, devis, " +
	"budget, closing, relance, proposition, signature, tarif, concurrent."

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
			APIBind:    defaultAPIBind,
		},
		Transcriber: Transcriber{
			BaseURL:        defaultTranscriberBaseURL,
			Model:          defaultTranscriberModel,
			Language:       defaultTranscriberLanguage,
			DomainPrompt:   defaultDomainPrompt,
			TimeoutSeconds: defaultTranscriberTimeout,
			RetryAttempts:  defaultTranscriberRetries,
		},
		Optimizer: Optimizer{
			Enabled: true,
		},
		Scoring: Scoring{
			ConfidenceOffset:  defaultConfidenceOffset,
			ConfidenceFloor:   defaultConfidenceFloor,
			ConfidenceDefault: defaultConfidenceDefault,
		},
		Staging: Staging{
			MaxAgeMinutes:        defaultStagingMaxAgeMinutes,
			SweepIntervalMinutes: defaultSweepIntervalMinutes,
		},
		API: API{
			MaxUploadMiB: defaultMaxUploadMiB,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
