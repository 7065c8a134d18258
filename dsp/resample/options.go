package resample

import (
	"fmt"
	"strings"
)

// Quality controls default anti-aliasing filter settings. The zero value
// is QualityBalanced.
type Quality int

const (
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced Quality = iota
	// QualityFast prioritizes lower CPU usage.
	QualityFast
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

var qualityNames = [...]string{"balanced", "fast", "best"}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

// ParseQuality resolves "fast", "balanced" or "best".
func ParseQuality(s string) (Quality, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range qualityNames {
		if s == name {
			return Quality(i), nil
		}
	}
	return QualityBalanced, fmt.Errorf("resample: unknown quality %q", s)
}

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

// Option configures a Resampler or Fixed converter.
type Option func(*config)

type config struct {
	quality      Quality
	tapsPerPhase int
	cutoffScale  float64
	kaiserBeta   float64
	maxDen       int
}

// WithQuality selects a predefined anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithTapsPerPhase overrides taps per polyphase branch.
func WithTapsPerPhase(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tapsPerPhase = n
		}
	}
}

// WithCutoffScale overrides the normalized cutoff in (0, 1], where 1 is the
// theoretical anti-aliasing cutoff.
func WithCutoffScale(v float64) Option {
	return func(cfg *config) {
		if v > 0 && v <= 1 {
			cfg.cutoffScale = v
		}
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter.
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta > 0 {
			cfg.kaiserBeta = beta
		}
	}
}

// WithMaxDenominator caps the denominator used when a rate pair is
// approximated by a rational ratio.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{quality: QualityBalanced, maxDen: 4096}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := QualityProfile(cfg.quality)
	if cfg.tapsPerPhase <= 0 {
		cfg.tapsPerPhase = p.TapsPerPhase
	}
	if cfg.cutoffScale <= 0 {
		cfg.cutoffScale = p.CutoffScale
	}
	if cfg.kaiserBeta <= 0 {
		cfg.kaiserBeta = p.KaiserBeta
	}
	return cfg
}
