package analyze

import (
	"context"
	"sync"

	"github.com/saurabh-xd/kana-dojo/coalesce"
)

// Engine is the tokenizing core behind the Loader.
type Engine interface {
	// Tokenize splits text into morphemes. It never fails; text the
	// dictionary cannot segment comes back as unknown-word tokens.
	Tokenize(text string) []Token
}

// BuildFunc constructs the engine. It runs at most once concurrently
// and is not handed the waiters' contexts: construction that has
// started always runs to completion, even if every waiter gives up.
type BuildFunc func() (Engine, error)

// Loader builds the shared engine on first use.
//
// Contract:
//   - Get returns the cached engine without coordination once one build
//     has succeeded.
//   - Concurrent Gets before that share a single build; each waiter
//     receives the same engine or the same error.
//   - A failed build is not remembered. The next Get starts a fresh
//     build rather than replaying the old error.
//   - A waiter whose context ends returns early with the context error
//     while the build continues for the others.
type Loader struct {
	build BuildFunc
	group coalesce.Group

	mu  sync.RWMutex
	eng Engine
}

// NewLoader creates a loader around build. Nothing is constructed until
// the first Get.
func NewLoader(build BuildFunc) *Loader {
	return &Loader{build: build}
}

// Get returns the engine, building it first if no build has succeeded
// yet.
func (l *Loader) Get(ctx context.Context) (Engine, error) {
	l.mu.RLock()
	eng := l.eng
	l.mu.RUnlock()
	if eng != nil {
		return eng, nil
	}

	v, _, err := l.group.Do(ctx, "engine", func() (any, error) {
		eng, err := l.build()
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.eng = eng
		l.mu.Unlock()
		return eng, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Engine), nil
}

// Ready reports whether a build has succeeded.
func (l *Loader) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.eng != nil
}

// Warm triggers the build without using the engine, so startup can pay
// the construction cost before the first request arrives.
func (l *Loader) Warm(ctx context.Context) error {
	_, err := l.Get(ctx)
	return err
}
