package core

// DefaultSampleRate is the rate a ProcessorConfig starts from.
const DefaultSampleRate = 44100

// ProcessorConfig holds the sample rate a signal generator or analyzer
// works at. Framing belongs to the stretch engine and the pipeline, which
// carry their own block and hop sizes.
type ProcessorConfig struct {
	SampleRate float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns a config at DefaultSampleRate.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: DefaultSampleRate}
}

// WithSampleRate sets the processing sample rate. Non-positive rates are
// ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
