// Package params holds the run options consumed by the inference engine and
// the command-line scanner that fills them in.
package params

// Default values for a freshly constructed Params
const (
	DefaultSeed          = -1
	DefaultNPredict      = 128
	DefaultTopK          = 40
	DefaultTopP          = 0.95
	DefaultTemp          = 0.80
	DefaultRepeatLastN   = 64
	DefaultRepeatPenalty = 1.10
	DefaultCtxSize       = 512
	DefaultBatchSize     = 8
	DefaultNParts        = -1
	DefaultModel         = "models/lamma-7B/ggml-model.bin"
)

// Params is the configuration record for a generation run
type Params struct {
	Seed      int
	Threads   int
	NPredict  int
	NParts    int
	CtxSize   int
	BatchSize int

	// sampling
	TopK          int
	TopP          float32
	Temp          float32
	RepeatLastN   int
	RepeatPenalty float32

	Model          string
	Prompt         string
	ReversePrompts []string

	MemoryF16        bool
	RandomPrompt     bool
	UseColor         bool
	Interactive      bool
	InteractiveStart bool
	Instruct         bool
	IgnoreEOS        bool
	Perplexity       bool
}

// Default returns a Params populated with the built-in defaults. The thread
// count comes from tc.
func Default(tc ThreadCounter) Params {
	return Params{
		Seed:          DefaultSeed,
		Threads:       tc.Threads(),
		NPredict:      DefaultNPredict,
		NParts:        DefaultNParts,
		CtxSize:       DefaultCtxSize,
		BatchSize:     DefaultBatchSize,
		TopK:          DefaultTopK,
		TopP:          DefaultTopP,
		Temp:          DefaultTemp,
		RepeatLastN:   DefaultRepeatLastN,
		RepeatPenalty: DefaultRepeatPenalty,
		Model:         DefaultModel,
	}
}

// Clone returns a copy of p that does not share the reverse prompt list.
func (p Params) Clone() Params {
	if p.ReversePrompts != nil {
		p.ReversePrompts = append([]string(nil), p.ReversePrompts...)
	}
	return p
}
