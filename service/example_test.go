package service_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/saurabh-xd/kana-dojo/admission"
	"github.com/saurabh-xd/kana-dojo/analyze"
	"github.com/saurabh-xd/kana-dojo/cache"
	"github.com/saurabh-xd/kana-dojo/service"
	"github.com/saurabh-xd/kana-dojo/translate"
)

type upperProvider struct{}

func (upperProvider) Translate(_ context.Context, req translate.Request) (translate.Result, error) {
	return translate.Result{Text: strings.ToUpper(req.Text)}, nil
}

type nopEngine struct{}

func (nopEngine) Tokenize(text string) []analyze.Token {
	return []analyze.Token{{Surface: text, Pos: "名詞"}}
}

func ExampleService_Translate() {
	analyzer := analyze.NewWithBuilder(analyze.Config{}, func() (analyze.Engine, error) {
		return nopEngine{}, nil
	})
	svc, err := service.New(service.Config{}, service.Deps{
		Store:    cache.NewMemoryStore(cache.ServerPolicy()),
		Admitter: admission.New(admission.Config{}),
		Provider: upperProvider{},
		Analyzer: analyzer,
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	ctx := context.Background()
	req := service.TranslateRequest{Text: "hello", SourceLanguage: "ja", TargetLanguage: "en"}

	first, _ := svc.Translate(ctx, req)
	second, _ := svc.Translate(ctx, req)

	fmt.Println(first.TranslatedText, first.Cached)
	fmt.Println(second.TranslatedText, second.Cached)
	// Output:
	// HELLO false
	// HELLO true
}
