package service

import (
	"context"
	"strings"
	"time"

	"github.com/saurabh-xd/kana-dojo/apierr"
	"github.com/saurabh-xd/kana-dojo/observe"
	"github.com/saurabh-xd/kana-dojo/romaji"
	"github.com/saurabh-xd/kana-dojo/translate"
)

// TranslateRequest is the wire input of the translate operation.
type TranslateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// Translation is the translate response. Cached marks results served
// from the cache; Romanization is present only for Japanese targets
// and only when the analyzer could produce one.
type Translation struct {
	TranslatedText string `json:"translatedText"`
	Romanization   string `json:"romanization,omitempty"`
	Cached         bool   `json:"cached,omitempty"`
}

// Translate runs the translate operation: validate, admit, serve from
// cache when fresh, otherwise make one coalesced provider call and
// cache its result.
func (s *Service) Translate(ctx context.Context, req TranslateRequest) (resp Translation, err error) {
	ctx, span := s.tracer.StartSpan(ctx, "service.translate")
	start := time.Now()
	defer func() {
		s.tracer.EndSpan(span, err)
		s.metrics.RecordRequest(ctx, opTranslate, time.Since(start), err)
	}()

	text, err := s.validateText(req.Text)
	if err != nil {
		return Translation{}, err
	}
	source, ok := translate.ParseLanguage(req.SourceLanguage)
	if !ok {
		return Translation{}, apierr.Newf(apierr.CodeInvalidInput,
			"unsupported source language %q", req.SourceLanguage)
	}
	target, ok := translate.ParseLanguage(req.TargetLanguage)
	if !ok {
		return Translation{}, apierr.Newf(apierr.CodeInvalidInput,
			"unsupported target language %q", req.TargetLanguage)
	}
	if source == target {
		return Translation{}, apierr.New(apierr.CodeInvalidInput,
			"source and target languages must differ")
	}

	if err := s.admit(ctx); err != nil {
		return Translation{}, err
	}

	key := s.keys.Key(opTranslate, text, string(source), string(target))
	if v, ok := s.lookup(ctx, opTranslate, key); ok {
		if cached, ok := v.(Translation); ok {
			cached.Cached = true
			return cached, nil
		}
	}

	v, shared, err := s.flights.Do(ctx, key, func() (any, error) {
		callCtx, cancel := s.detached(ctx)
		defer cancel()

		_, callSpan := s.tracer.StartSpan(callCtx, "translate.upstream")
		res, callErr := s.provider.Translate(callCtx, translate.Request{
			Text:   text,
			Source: source,
			Target: target,
		})
		s.tracer.EndSpan(callSpan, callErr)
		if callErr != nil {
			return nil, callErr
		}

		t := Translation{TranslatedText: res.Text}
		if target == translate.Japanese {
			t.Romanization = s.romanize(callCtx, res.Text)
		}
		s.store.Put(key, t)
		return t, nil
	})
	s.metrics.RecordCoalesced(ctx, opTranslate, shared)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error(ctx, "translation failed", observe.F("error", err.Error()))
		}
		return Translation{}, err
	}

	t, ok := v.(Translation)
	if !ok {
		return Translation{}, apierr.Newf(apierr.CodeInternal,
			"unexpected cached value type %T", v)
	}
	return t, nil
}

// romanize produces a space-joined Hepburn romanization of Japanese
// text. It is best effort: any analyzer failure or unmappable token
// drops the romanization rather than returning a partial one.
func (s *Service) romanize(ctx context.Context, text string) string {
	tokens, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		s.log.Warn(ctx, "romanization unavailable", observe.F("error", err.Error()))
		return ""
	}

	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		kana := tok.Pronunciation
		if kana == "" {
			kana = tok.Reading
		}
		if kana == "" {
			// Unknown to the dictionary: numbers, latin text. The
			// surface itself converts when it is kana or passthrough
			// ASCII.
			kana = tok.Surface
		}
		r, err := romaji.Convert(kana)
		if err != nil {
			return ""
		}
		if r = strings.TrimSpace(r); r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, " ")
}
