package params

import (
	"fmt"
	"io"
)

// PrintUsage writes the help text to w, showing the defaults held in p.
func PrintUsage(w io.Writer, prog string, p Params) {
	fmt.Fprintf(w, "usage: %s [options]\n", prog)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "options:\n")
	fmt.Fprintf(w, "  -h, --help            show this help message and exit\n")
	fmt.Fprintf(w, "  -i, --interactive     run in interactive mode\n")
	fmt.Fprintf(w, "  --interactive-first   run in interactive mode and wait for input right away\n")
	fmt.Fprintf(w, "  -ins, --instruct      run in instruction mode (use with Alpaca models)\n")
	fmt.Fprintf(w, "  -r PROMPT, --reverse-prompt PROMPT\n")
	fmt.Fprintf(w, "                        run in interactive mode and poll user input upon seeing PROMPT (can be\n")
	fmt.Fprintf(w, "                        specified more than once for multiple prompts).\n")
	fmt.Fprintf(w, "  --color               colorise output to distinguish prompt and user input from generations\n")
	fmt.Fprintf(w, "  -s SEED, --seed SEED  RNG seed (default: -1, use random seed for <= 0)\n")
	fmt.Fprintf(w, "  -t N, --threads N     number of threads to use during computation (default: %d)\n", p.Threads)
	fmt.Fprintf(w, "  -p PROMPT, --prompt PROMPT\n")
	fmt.Fprintf(w, "                        prompt to start generation with (default: empty)\n")
	fmt.Fprintf(w, "  --random-prompt       start with a randomized prompt.\n")
	fmt.Fprintf(w, "  -f FNAME, --file FNAME\n")
	fmt.Fprintf(w, "                        prompt file to start generation.\n")
	fmt.Fprintf(w, "  -n N, --n_predict N   number of tokens to predict (default: %d)\n", p.NPredict)
	fmt.Fprintf(w, "  --top_k N             top-k sampling (default: %d)\n", p.TopK)
	fmt.Fprintf(w, "  --top_p N             top-p sampling (default: %.1f)\n", p.TopP)
	fmt.Fprintf(w, "  --repeat_last_n N     last n tokens to consider for penalize (default: %d)\n", p.RepeatLastN)
	fmt.Fprintf(w, "  --repeat_penalty N    penalize repeat sequence of tokens (default: %.1f)\n", p.RepeatPenalty)
	fmt.Fprintf(w, "  -c N, --ctx_size N    size of the prompt context (default: %d)\n", p.CtxSize)
	fmt.Fprintf(w, "  --ignore-eos          ignore end of stream token and continue generating\n")
	fmt.Fprintf(w, "  --memory_f16          use f16 instead of f32 for memory key+value\n")
	fmt.Fprintf(w, "  --temp N              temperature (default: %.1f)\n", p.Temp)
	fmt.Fprintf(w, "  --n_parts N           number of model parts (default: -1 = determine from dimensions)\n")
	fmt.Fprintf(w, "  -b N, --batch_size N  batch size for prompt processing (default: %d)\n", p.BatchSize)
	fmt.Fprintf(w, "  --perplexity          compute perplexity over the prompt\n")
	fmt.Fprintf(w, "  -m FNAME, --model FNAME\n")
	fmt.Fprintf(w, "                        model path (default: %s)\n", p.Model)
	fmt.Fprintf(w, "\n")
}
