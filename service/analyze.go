package service

import (
	"context"
	"time"

	"github.com/saurabh-xd/kana-dojo/analyze"
	"github.com/saurabh-xd/kana-dojo/apierr"
	"github.com/saurabh-xd/kana-dojo/observe"
)

// AnalyzeRequest is the wire input of the analyze operation.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// Analysis is the analyze response: morphemes in input order.
type Analysis struct {
	Tokens []analyze.Token `json:"tokens"`
}

// Analyze runs the analyze operation: validate, admit, serve from
// cache when fresh, otherwise tokenize once per key and cache the
// token list.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (resp Analysis, err error) {
	ctx, span := s.tracer.StartSpan(ctx, "service.analyze")
	start := time.Now()
	defer func() {
		s.tracer.EndSpan(span, err)
		s.metrics.RecordRequest(ctx, opAnalyze, time.Since(start), err)
	}()

	text, err := s.validateText(req.Text)
	if err != nil {
		return Analysis{}, err
	}

	if err := s.admit(ctx); err != nil {
		return Analysis{}, err
	}

	key := s.keys.Key(opAnalyze, text)
	if v, ok := s.lookup(ctx, opAnalyze, key); ok {
		if tokens, ok := v.([]analyze.Token); ok {
			return Analysis{Tokens: tokens}, nil
		}
	}

	v, shared, err := s.flights.Do(ctx, key, func() (any, error) {
		callCtx, cancel := s.detached(ctx)
		defer cancel()

		tokens, callErr := s.analyzer.Analyze(callCtx, text)
		if callErr != nil {
			return nil, callErr
		}
		s.store.Put(key, tokens)
		return tokens, nil
	})
	s.metrics.RecordCoalesced(ctx, opAnalyze, shared)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error(ctx, "analysis failed", observe.F("error", err.Error()))
		}
		return Analysis{}, err
	}

	tokens, ok := v.([]analyze.Token)
	if !ok {
		return Analysis{}, apierr.Newf(apierr.CodeInternal,
			"unexpected cached value type %T", v)
	}
	return Analysis{Tokens: tokens}, nil
}
