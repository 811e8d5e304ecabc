// Package engine describes the inference engine the front-end drives. The
// engine itself (weights, forward pass, sampling) lives outside this module.
package engine

import (
	"context"
	"fmt"
	"io"

	apperrors "github.com/computerscienceiscool/llama-cli/internal/errors"
	"github.com/computerscienceiscool/llama-cli/internal/params"
	"github.com/computerscienceiscool/llama-cli/internal/tokenize"
)

// Context is a loaded model ready to tokenize and generate
type Context interface {
	tokenize.Tokenizer

	// ContextSize is the number of tokens the loaded context can hold.
	ContextSize() int

	// Generate continues from prompt and streams text to out.
	Generate(ctx context.Context, prompt []tokenize.Token, p params.Params, out io.Writer) error

	Close() error
}

// Loader loads the model named by p.Model
type Loader func(ctx context.Context, p params.Params) (Context, error)

// Unavailable is the Loader used when no engine is linked into the binary.
func Unavailable(_ context.Context, p params.Params) (Context, error) {
	return nil, fmt.Errorf("%w: cannot load model %s", apperrors.ErrEngineUnavailable, p.Model)
}
