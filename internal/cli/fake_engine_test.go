package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/computerscienceiscool/llama-cli/internal/engine"
	"github.com/computerscienceiscool/llama-cli/internal/params"
	"github.com/computerscienceiscool/llama-cli/internal/tokenize"
)

const fakeBOS tokenize.Token = 1

// fakeEngine tokenizes one token per byte and echoes what it was asked to do
type fakeEngine struct {
	ctxSize int
	genErr  error

	loaded    bool
	closed    bool
	texts     []string
	prompt    []tokenize.Token
	generated params.Params
}

func (f *fakeEngine) loader() engine.Loader {
	return func(ctx context.Context, p params.Params) (engine.Context, error) {
		f.loaded = true
		return f, nil
	}
}

func (f *fakeEngine) TokenizeInto(text string, buf []tokenize.Token, addBOS bool) int {
	f.texts = append(f.texts, text)

	var tokens []tokenize.Token
	if addBOS {
		tokens = append(tokens, fakeBOS)
	}
	for i := 0; i < len(text); i++ {
		tokens = append(tokens, tokenize.Token(text[i]))
	}
	if len(tokens) > len(buf) {
		return -len(tokens)
	}
	return copy(buf, tokens)
}

func (f *fakeEngine) ContextSize() int {
	return f.ctxSize
}

func (f *fakeEngine) Generate(ctx context.Context, prompt []tokenize.Token, p params.Params, out io.Writer) error {
	f.prompt = prompt
	f.generated = p
	if f.genErr != nil {
		return f.genErr
	}
	_, err := fmt.Fprintf(out, "generated %d tokens\n", p.NPredict)
	return err
}

func (f *fakeEngine) Close() error {
	f.closed = true
	return nil
}
