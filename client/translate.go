package client

import (
	"context"
	"strings"

	"github.com/saurabh-xd/kana-dojo/apierr"
	"github.com/saurabh-xd/kana-dojo/service"
	"github.com/saurabh-xd/kana-dojo/translate"
)

// Translate requests a translation, serving repeats from the local
// cache and folding concurrent identical calls into one HTTP request.
// Results served locally come back with Cached set, same as hits on
// the server side. Size limits are the server's to enforce; the client
// only rejects what can never succeed.
func (c *Client) Translate(ctx context.Context, req service.TranslateRequest) (service.Translation, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return service.Translation{}, apierr.New(apierr.CodeInvalidInput, "text is required")
	}
	source, ok := translate.ParseLanguage(req.SourceLanguage)
	if !ok {
		return service.Translation{}, apierr.Newf(apierr.CodeInvalidInput,
			"unsupported source language %q", req.SourceLanguage)
	}
	target, ok := translate.ParseLanguage(req.TargetLanguage)
	if !ok {
		return service.Translation{}, apierr.Newf(apierr.CodeInvalidInput,
			"unsupported target language %q", req.TargetLanguage)
	}
	if source == target {
		return service.Translation{}, apierr.New(apierr.CodeInvalidInput,
			"source and target languages must differ")
	}

	key := c.keys.Key(opTranslate, text, string(source), string(target))
	if e, ok := c.store.Get(key); ok && c.fresh(e) {
		if cached, ok := e.Value.(service.Translation); ok {
			cached.Cached = true
			return cached, nil
		}
	}

	v, _, err := c.flights.Do(ctx, key, func() (any, error) {
		var out service.Translation
		err := c.post(c.detached(ctx), "/api/translate", service.TranslateRequest{
			Text:           text,
			SourceLanguage: string(source),
			TargetLanguage: string(target),
		}, &out)
		if err != nil {
			return nil, err
		}
		c.store.Put(key, out)
		return out, nil
	})
	if err != nil {
		return service.Translation{}, err
	}

	t, ok := v.(service.Translation)
	if !ok {
		return service.Translation{}, apierr.Newf(apierr.CodeInternal,
			"unexpected cached value type %T", v)
	}
	return t, nil
}
