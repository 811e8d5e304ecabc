package params

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	apperrors "github.com/computerscienceiscool/llama-cli/internal/errors"
)

// singleDashAliases maps multi-letter single-dash spellings to long flag names.
var singleDashAliases = map[string]string{
	"ins": "instruct",
}

// newFlagSet binds every recognized flag to a field of p. Defaults are the
// values already in p.
func newFlagSet(prog string, p *Params, fs afero.Fs) *pflag.FlagSet {
	flags := pflag.NewFlagSet(prog, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}

	flags.VarP(newDecimalInt(&p.Seed), "seed", "s", "RNG seed, <= 0 picks one from the clock")
	flags.VarP(newDecimalInt(&p.Threads), "threads", "t", "number of threads to use during computation")
	flags.VarP(&promptValue{prompt: &p.Prompt}, "prompt", "p", "prompt to start generation with")
	flags.VarP(&promptFileValue{prompt: &p.Prompt, fs: fs}, "file", "f", "prompt file to start generation")
	flags.VarP(newDecimalInt(&p.NPredict), "n_predict", "n", "number of tokens to predict")
	flags.Var(newDecimalInt(&p.TopK), "top_k", "top-k sampling")
	flags.VarP(newDecimalInt(&p.CtxSize), "ctx_size", "c", "size of the prompt context")
	flags.BoolVar(&p.MemoryF16, "memory_f16", p.MemoryF16, "use f16 instead of f32 for memory key+value")
	flags.Float32Var(&p.TopP, "top_p", p.TopP, "top-p sampling")
	flags.Float32Var(&p.Temp, "temp", p.Temp, "temperature")
	flags.Var(newDecimalInt(&p.RepeatLastN), "repeat_last_n", "last n tokens to consider for penalize")
	flags.Float32Var(&p.RepeatPenalty, "repeat_penalty", p.RepeatPenalty, "penalize repeat sequence of tokens")
	flags.VarP(newDecimalInt(&p.BatchSize), "batch_size", "b", "batch size for prompt processing")
	flags.StringVarP(&p.Model, "model", "m", p.Model, "model path")
	flags.BoolVarP(&p.Interactive, "interactive", "i", p.Interactive, "run in interactive mode")
	flags.BoolVar(&p.InteractiveStart, "interactive-first", p.InteractiveStart, "run in interactive mode and wait for input right away")
	flags.BoolVar(&p.Instruct, "instruct", p.Instruct, "run in instruction mode")
	flags.BoolVar(&p.UseColor, "color", p.UseColor, "colorise output")
	flags.VarP(&stringListValue{list: &p.ReversePrompts}, "reverse-prompt", "r", "poll user input upon seeing PROMPT")
	flags.BoolVar(&p.Perplexity, "perplexity", p.Perplexity, "compute perplexity over the prompt")
	flags.BoolVar(&p.IgnoreEOS, "ignore-eos", p.IgnoreEOS, "ignore end of stream token and continue generating")
	flags.Var(newDecimalInt(&p.NParts), "n_parts", "number of model parts")
	flags.BoolVar(&p.RandomPrompt, "random-prompt", p.RandomPrompt, "start with a randomized prompt")

	return flags
}

// lookupFlag resolves a single argument to its flag. The returned value is
// only meaningful when attached is true (the --name=value form).
func lookupFlag(flags *pflag.FlagSet, arg string) (*pflag.Flag, string, bool) {
	switch {
	case strings.HasPrefix(arg, "--"):
		name, value, attached := strings.Cut(arg[2:], "=")
		if name == "" {
			return nil, "", false
		}
		return flags.Lookup(name), value, attached
	case strings.HasPrefix(arg, "-") && len(arg) > 1:
		name := arg[1:]
		if long, ok := singleDashAliases[name]; ok {
			return flags.Lookup(long), "", false
		}
		if len(name) == 1 {
			return flags.ShorthandLookup(name), "", false
		}
	}
	return nil, "", false
}

// decimalIntValue is an int flag that only accepts base-10 digits; "010" is ten.
type decimalIntValue struct {
	n *int
}

func newDecimalInt(n *int) *decimalIntValue {
	return &decimalIntValue{n: n}
}

func (v *decimalIntValue) String() string {
	if v.n == nil {
		return "0"
	}
	return strconv.Itoa(*v.n)
}

func (v *decimalIntValue) Set(s string) error {
	n, err := strconv.ParseInt(s, 10, strconv.IntSize)
	if err != nil {
		return err
	}
	*v.n = int(n)
	return nil
}

func (v *decimalIntValue) Type() string { return "int" }

// promptValue replaces the prompt text
type promptValue struct {
	prompt *string
}

func (v *promptValue) String() string {
	if v.prompt == nil {
		return ""
	}
	return *v.prompt
}

func (v *promptValue) Set(s string) error {
	*v.prompt = s
	return nil
}

func (v *promptValue) Type() string { return "string" }

// promptFileValue appends a file's content to the prompt and drops one
// trailing newline from the result.
type promptFileValue struct {
	prompt *string
	fs     afero.Fs
	path   string
}

func (v *promptFileValue) String() string { return v.path }

func (v *promptFileValue) Set(path string) error {
	data, err := afero.ReadFile(v.fs, path)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrPromptFile, err)
	}
	v.path = path

	prompt := *v.prompt + string(data)
	prompt = strings.TrimSuffix(prompt, "\n")
	*v.prompt = prompt
	return nil
}

func (v *promptFileValue) Type() string { return "path" }

// stringListValue appends every occurrence, keeping any list it started with
type stringListValue struct {
	list *[]string
}

func (v *stringListValue) String() string {
	if v.list == nil {
		return "[]"
	}
	return "[" + strings.Join(*v.list, ",") + "]"
}

func (v *stringListValue) Set(s string) error {
	*v.list = append(*v.list, s)
	return nil
}

func (v *stringListValue) Type() string { return "stringList" }
