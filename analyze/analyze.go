package analyze

import (
	"context"
	"errors"
	"time"

	"github.com/saurabh-xd/kana-dojo/apierr"
	"github.com/saurabh-xd/kana-dojo/resilience"
)

// Config configures the analyzer.
type Config struct {
	// MaxConcurrent caps tokenizations running at once. Analysis is
	// CPU-bound, so this is effectively a worker ceiling.
	// Default: 8
	MaxConcurrent int

	// QueueWait is how long a call may wait for a free slot before
	// being turned away.
	// Default: 500ms
	QueueWait time.Duration

	// Timeout bounds one tokenization.
	// Default: 5s
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 8
	}
	if c.QueueWait <= 0 {
		c.QueueWait = 500 * time.Millisecond
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	return c
}

// Analyzer tokenizes Japanese text on a lazily built engine, with
// concurrency and latency guards around the dictionary work.
type Analyzer struct {
	loader *Loader
	guard  *resilience.Executor
}

// New creates an analyzer backed by the kagome IPA engine. The
// dictionary is not touched until the first Analyze or Warm call.
func New(cfg Config) *Analyzer {
	return NewWithBuilder(cfg, KagomeBuilder)
}

// NewWithBuilder creates an analyzer with a custom engine builder.
func NewWithBuilder(cfg Config, build BuildFunc) *Analyzer {
	cfg = cfg.withDefaults()
	return &Analyzer{
		loader: NewLoader(build),
		guard: resilience.NewExecutor(
			resilience.WithBulkhead(resilience.NewBulkhead(resilience.BulkheadConfig{
				MaxConcurrent: cfg.MaxConcurrent,
				MaxWait:       cfg.QueueWait,
			})),
			resilience.WithTimeout(cfg.Timeout),
		),
	}
}

// Analyze tokenizes text. The first call pays for engine construction;
// concurrent first calls share one build.
func (a *Analyzer) Analyze(ctx context.Context, text string) ([]Token, error) {
	eng, err := a.loader.Get(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, apierr.Wrap(apierr.CodeInternal, "building analyzer", err)
	}

	var tokens []Token
	err = a.guard.Execute(ctx, func(context.Context) error {
		tokens = eng.Tokenize(text)
		return nil
	})
	switch {
	case err == nil:
		return tokens, nil
	case errors.Is(err, resilience.ErrBulkheadFull), errors.Is(err, resilience.ErrTimeout):
		return nil, apierr.Wrap(apierr.CodeUpstreamUnavailable, "analyzer is busy", err)
	default:
		return nil, err
	}
}

// Ready reports whether the engine has been built.
func (a *Analyzer) Ready() bool { return a.loader.Ready() }

// Warm builds the engine ahead of the first request.
func (a *Analyzer) Warm(ctx context.Context) error {
	return a.loader.Warm(ctx)
}
