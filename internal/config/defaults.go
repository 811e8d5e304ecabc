package config

import (
	"github.com/spf13/viper"

	"github.com/computerscienceiscool/llama-cli/internal/params"
)

const (
	ConfigName       = "llama.config"
	ConfigType       = "yaml"
	EnvPrefix        = "LLAMA"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config keys
const (
	KeyConfig           = "config"
	KeySeed             = "seed"
	KeyThreads          = "threads"
	KeyNPredict         = "n_predict"
	KeyNParts           = "n_parts"
	KeyCtxSize          = "ctx_size"
	KeyBatchSize        = "batch_size"
	KeyTopK             = "top_k"
	KeyTopP             = "top_p"
	KeyTemp             = "temp"
	KeyRepeatLastN      = "repeat_last_n"
	KeyRepeatPenalty    = "repeat_penalty"
	KeyModel            = "model"
	KeyPrompt           = "prompt"
	KeyReversePrompt    = "reverse_prompt"
	KeyMemoryF16        = "memory_f16"
	KeyRandomPrompt     = "random_prompt"
	KeyColor            = "color"
	KeyInteractive      = "interactive"
	KeyInteractiveFirst = "interactive_first"
	KeyInstruct         = "instruct"
	KeyIgnoreEOS        = "ignore_eos"
	KeyPerplexity       = "perplexity"
	KeyLogLevel         = "log_level"
	KeyLogFormat        = "log_format"
	KeyStrictExit       = "strict_exit"
)

// SetViperDefaults registers base and the runtime defaults in v
func SetViperDefaults(v *viper.Viper, base params.Params) {
	v.SetDefault(KeyConfig, "")

	// Run sizing
	v.SetDefault(KeySeed, base.Seed)
	v.SetDefault(KeyThreads, base.Threads)
	v.SetDefault(KeyNPredict, base.NPredict)
	v.SetDefault(KeyNParts, base.NParts)
	v.SetDefault(KeyCtxSize, base.CtxSize)
	v.SetDefault(KeyBatchSize, base.BatchSize)

	// Sampling
	v.SetDefault(KeyTopK, base.TopK)
	v.SetDefault(KeyTopP, base.TopP)
	v.SetDefault(KeyTemp, base.Temp)
	v.SetDefault(KeyRepeatLastN, base.RepeatLastN)
	v.SetDefault(KeyRepeatPenalty, base.RepeatPenalty)

	// Model and prompt
	v.SetDefault(KeyModel, base.Model)
	v.SetDefault(KeyPrompt, base.Prompt)
	v.SetDefault(KeyReversePrompt, base.ReversePrompts)

	// Toggles
	v.SetDefault(KeyMemoryF16, base.MemoryF16)
	v.SetDefault(KeyRandomPrompt, base.RandomPrompt)
	v.SetDefault(KeyColor, base.UseColor)
	v.SetDefault(KeyInteractive, base.Interactive)
	v.SetDefault(KeyInteractiveFirst, base.InteractiveStart)
	v.SetDefault(KeyInstruct, base.Instruct)
	v.SetDefault(KeyIgnoreEOS, base.IgnoreEOS)
	v.SetDefault(KeyPerplexity, base.Perplexity)

	// Runtime
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetDefault(KeyStrictExit, false)
}
