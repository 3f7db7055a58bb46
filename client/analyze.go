package client

import (
	"context"
	"strings"

	"github.com/saurabh-xd/kana-dojo/apierr"
	"github.com/saurabh-xd/kana-dojo/service"
)

// Analyze requests a morphological analysis under the same local
// caching and coalescing as Translate.
func (c *Client) Analyze(ctx context.Context, req service.AnalyzeRequest) (service.Analysis, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return service.Analysis{}, apierr.New(apierr.CodeInvalidInput, "text is required")
	}

	key := c.keys.Key(opAnalyze, text)
	if e, ok := c.store.Get(key); ok && c.fresh(e) {
		if cached, ok := e.Value.(service.Analysis); ok {
			return cached, nil
		}
	}

	v, _, err := c.flights.Do(ctx, key, func() (any, error) {
		var out service.Analysis
		err := c.post(c.detached(ctx), "/api/analyze", service.AnalyzeRequest{Text: text}, &out)
		if err != nil {
			return nil, err
		}
		c.store.Put(key, out)
		return out, nil
	})
	if err != nil {
		return service.Analysis{}, err
	}

	a, ok := v.(service.Analysis)
	if !ok {
		return service.Analysis{}, apierr.Newf(apierr.CodeInternal,
			"unexpected cached value type %T", v)
	}
	return a, nil
}
