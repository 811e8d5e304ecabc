package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	apperrors "github.com/computerscienceiscool/llama-cli/internal/errors"
	"github.com/computerscienceiscool/llama-cli/internal/params"
)

// NewViper returns a viper instance seeded with base that searches for
// llama.config.yaml in the working directory and $HOME and reads LLAMA_*
// environment variables.
func NewViper(fs afero.Fs, base params.Params) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)

	SetViperDefaults(v, base)

	v.SetConfigName(ConfigName)
	v.SetConfigType(ConfigType)
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return v
}

// ReadInConfig reads the config file named by LLAMA_CONFIG, or the first
// llama.config.yaml on the search path. A missing search-path file is not
// an error; a missing explicit file is.
func ReadInConfig(v *viper.Viper) error {
	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; using defaults and environment
			return nil
		}
		return fmt.Errorf("%w: reading config file: %w", apperrors.ErrInvalidConfig, err)
	}
	return nil
}

// Load builds Settings from the values in v
func Load(v *viper.Viper) (*Settings, error) {
	r := &settingsReader{v: v}
	p := params.Params{
		Seed:      r.getInt(KeySeed),
		Threads:   r.getInt(KeyThreads),
		NPredict:  r.getInt(KeyNPredict),
		NParts:    r.getInt(KeyNParts),
		CtxSize:   r.getInt(KeyCtxSize),
		BatchSize: r.getInt(KeyBatchSize),

		TopK:          r.getInt(KeyTopK),
		TopP:          r.getFloat32(KeyTopP),
		Temp:          r.getFloat32(KeyTemp),
		RepeatLastN:   r.getInt(KeyRepeatLastN),
		RepeatPenalty: r.getFloat32(KeyRepeatPenalty),

		Model:          v.GetString(KeyModel),
		Prompt:         v.GetString(KeyPrompt),
		ReversePrompts: v.GetStringSlice(KeyReversePrompt),

		MemoryF16:        r.getBool(KeyMemoryF16),
		RandomPrompt:     r.getBool(KeyRandomPrompt),
		UseColor:         r.getBool(KeyColor),
		Interactive:      r.getBool(KeyInteractive),
		InteractiveStart: r.getBool(KeyInteractiveFirst),
		Instruct:         r.getBool(KeyInstruct),
		IgnoreEOS:        r.getBool(KeyIgnoreEOS),
		Perplexity:       r.getBool(KeyPerplexity),
	}
	strict := r.getBool(KeyStrictExit)
	if r.err != nil {
		return nil, r.err
	}
	if len(p.ReversePrompts) == 0 {
		p.ReversePrompts = nil
	}

	if p.Threads < 1 {
		return nil, &apperrors.ValidationError{Field: KeyThreads, Value: p.Threads, Err: apperrors.ErrInvalidConfig}
	}

	var level slog.Level
	levelStr := v.GetString(KeyLogLevel)
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return nil, &apperrors.ValidationError{Field: KeyLogLevel, Value: levelStr, Err: apperrors.ErrInvalidConfig}
	}

	format := strings.ToLower(v.GetString(KeyLogFormat))
	if format != "text" && format != "json" {
		return nil, &apperrors.ValidationError{Field: KeyLogFormat, Value: format, Err: apperrors.ErrInvalidConfig}
	}

	return &Settings{
		Params:     p,
		LogLevel:   level,
		LogFormat:  format,
		StrictExit: strict,
		ConfigFile: v.ConfigFileUsed(),
	}, nil
}

// settingsReader converts raw viper values and keeps the first failure.
// Environment strings go through the same base-10 rule as the command line.
type settingsReader struct {
	v   *viper.Viper
	err error
}

func (r *settingsReader) fail(key string, raw interface{}) {
	if r.err == nil {
		r.err = &apperrors.ValidationError{Field: key, Value: raw, Err: apperrors.ErrInvalidConfig}
	}
}

func (r *settingsReader) getInt(key string) int {
	raw := r.v.Get(key)
	if s, ok := raw.(string); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, strconv.IntSize)
		if err != nil {
			r.fail(key, raw)
			return 0
		}
		return int(n)
	}

	n, err := cast.ToIntE(raw)
	if err != nil {
		r.fail(key, raw)
		return 0
	}
	return n
}

func (r *settingsReader) getFloat32(key string) float32 {
	raw := r.v.Get(key)
	val := raw
	if s, ok := raw.(string); ok {
		val = strings.TrimSpace(s)
	}

	f, err := cast.ToFloat32E(val)
	if err != nil {
		r.fail(key, raw)
		return 0
	}
	return f
}

func (r *settingsReader) getBool(key string) bool {
	raw := r.v.Get(key)
	b, err := cast.ToBoolE(raw)
	if err != nil {
		r.fail(key, raw)
		return false
	}
	return b
}
