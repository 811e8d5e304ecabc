package cli

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/computerscienceiscool/llama-cli/internal/ctxlog"
	apperrors "github.com/computerscienceiscool/llama-cli/internal/errors"
	"github.com/computerscienceiscool/llama-cli/internal/params"
	"github.com/computerscienceiscool/llama-cli/internal/prompt"
	"github.com/computerscienceiscool/llama-cli/internal/tokenize"
)

const (
	// InstructionPrompt is the reverse prompt instruction mode waits on.
	InstructionPrompt = "### Instruction:\n\n"

	// MaxTrainedContext is the largest context the original models were trained with.
	MaxTrainedContext = 2048

	// contextReserve is kept free after the prompt.
	contextReserve = 4
)

// Prepare applies the adjustments made between argument parsing and model
// loading: it resolves the seed, picks a random prompt when asked, and turns
// on interactive mode when instruction mode or reverse prompts need it.
func Prepare(p *params.Params, now func() time.Time) {
	if p.Seed <= 0 {
		p.Seed = int(now().Unix())
	}

	if p.RandomPrompt {
		rng := rand.New(rand.NewPCG(uint64(p.Seed), 0))
		p.Prompt = prompt.Random(rng)
	}

	if p.Instruct {
		p.InteractiveStart = true
		p.ReversePrompts = append(p.ReversePrompts, InstructionPrompt)
	}

	if len(p.ReversePrompts) > 0 || p.InteractiveStart {
		p.Interactive = true
	}
}

func (r *runner) run(ctx context.Context, p params.Params) error {
	Prepare(&p, r.opts.Now)
	ctx = ctxlog.With(ctx, "model", p.Model)
	logger := ctxlog.FromContext(ctx)

	logger.Info("parameters resolved", "seed", p.Seed, "threads", p.Threads, "interactive", p.Interactive)
	if p.CtxSize > MaxTrainedContext {
		logger.Warn("model does not support context sizes greater than 2048 tokens, expect poor results", "ctx_size", p.CtxSize)
	}

	ectx, err := r.opts.Loader(ctx, p)
	if err != nil {
		logger.Error("failed to load model", "error", err)
		return &apperrors.ExitError{Code: params.ExitFailure, Err: err}
	}
	defer func() {
		if err := ectx.Close(); err != nil {
			logger.Warn("failed to release model", "error", err)
		}
	}()

	// prompts are tokenized with a leading space
	tokens, err := tokenize.Tokenize(ectx, " "+p.Prompt, true)
	if err != nil {
		logger.Error("failed to tokenize prompt", "error", err)
		return &apperrors.ExitError{Code: params.ExitFailure, Err: err}
	}

	nctx := ectx.ContextSize()
	if len(tokens) > nctx-contextReserve {
		err := &apperrors.ResourceError{
			Resource: "prompt_tokens",
			Limit:    nctx - contextReserve,
			Actual:   len(tokens),
			Err:      apperrors.ErrPromptTooLong,
		}
		logger.Error("prompt is too long", "tokens", len(tokens), "max", nctx-contextReserve)
		return &apperrors.ExitError{Code: params.ExitFailure, Err: err}
	}
	p.NPredict = min(p.NPredict, nctx-len(tokens))
	logger.Debug("prompt tokenized", "tokens", len(tokens), "n_predict", p.NPredict)

	if err := ectx.Generate(ctx, tokens, p, r.opts.Stdout); err != nil {
		logger.Error("generation failed", "error", err)
		return &apperrors.ExitError{Code: params.ExitFailure, Err: err}
	}
	return nil
}
