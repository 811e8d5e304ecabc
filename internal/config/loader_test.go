package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/computerscienceiscool/llama-cli/internal/errors"
	"github.com/computerscienceiscool/llama-cli/internal/params"
)

func baseParams() params.Params {
	return params.Default(params.FixedThreads(4))
}

func loadFrom(t *testing.T, fs afero.Fs) (*Settings, error) {
	t.Helper()
	v := NewViper(fs, baseParams())
	if err := ReadInConfig(v); err != nil {
		return nil, err
	}
	return Load(v)
}

// TestLoad_Defaults tests that an empty environment yields the base params
func TestLoad_Defaults(t *testing.T) {
	settings, err := loadFrom(t, afero.NewMemMapFs())
	require.NoError(t, err)

	if diff := cmp.Diff(baseParams(), settings.Params); diff != "" {
		t.Errorf("Params mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, slog.LevelInfo, settings.LogLevel)
	assert.Equal(t, "text", settings.LogFormat)
	assert.False(t, settings.StrictExit)
	assert.Empty(t, settings.ConfigFile)
}

// TestLoad_Environment tests LLAMA_* overrides
func TestLoad_Environment(t *testing.T) {
	t.Setenv("LLAMA_THREADS", "8")
	t.Setenv("LLAMA_TEMP", "0.5")
	t.Setenv("LLAMA_N_PREDICT", "32")
	t.Setenv("LLAMA_MODEL", "/models/7B/ggml-model-q4_0.bin")
	t.Setenv("LLAMA_MEMORY_F16", "true")
	t.Setenv("LLAMA_STRICT_EXIT", "true")
	t.Setenv("LLAMA_LOG_FORMAT", "JSON")
	t.Setenv("LLAMA_LOG_LEVEL", "debug")

	settings, err := loadFrom(t, afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, 8, settings.Params.Threads)
	assert.Equal(t, float32(0.5), settings.Params.Temp)
	assert.Equal(t, 32, settings.Params.NPredict)
	assert.Equal(t, "/models/7B/ggml-model-q4_0.bin", settings.Params.Model)
	assert.True(t, settings.Params.MemoryF16)
	assert.True(t, settings.StrictExit)
	assert.Equal(t, "json", settings.LogFormat)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
}

const sampleConfig = `
threads: 6
ctx_size: 2048
top_k: 20
top_p: 0.9
repeat_penalty: 1.3
model: models/13B/ggml-model.bin
reverse_prompt:
  - "User:"
  - "### Instruction:"
color: true
log_level: warn
`

// TestReadInConfig_ExplicitFile tests LLAMA_CONFIG pointing at a file
func TestReadInConfig_ExplicitFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/etc/llama/custom.yaml"
	require.NoError(t, afero.WriteFile(fs, path, []byte(sampleConfig), 0o644))
	t.Setenv("LLAMA_CONFIG", path)

	settings, err := loadFrom(t, fs)
	require.NoError(t, err)

	p := settings.Params
	assert.Equal(t, 6, p.Threads)
	assert.Equal(t, 2048, p.CtxSize)
	assert.Equal(t, 20, p.TopK)
	assert.Equal(t, float32(0.9), p.TopP)
	assert.Equal(t, float32(1.3), p.RepeatPenalty)
	assert.Equal(t, "models/13B/ggml-model.bin", p.Model)
	assert.Equal(t, []string{"User:", "### Instruction:"}, p.ReversePrompts)
	assert.True(t, p.UseColor)
	assert.Equal(t, params.DefaultNPredict, p.NPredict)
	assert.Equal(t, slog.LevelWarn, settings.LogLevel)
	assert.Equal(t, path, settings.ConfigFile)
}

// TestReadInConfig_SearchPath tests llama.config.yaml in the working directory
func TestReadInConfig_SearchPath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	path := filepath.Join(cwd, ConfigName+"."+ConfigType)
	require.NoError(t, afero.WriteFile(fs, path, []byte("n_predict: 64\n"), 0o644))

	settings, err := loadFrom(t, fs)
	require.NoError(t, err)

	assert.Equal(t, 64, settings.Params.NPredict)
	assert.Equal(t, path, settings.ConfigFile)
}

// TestReadInConfig_EnvBeatsFile tests precedence between file and environment
func TestReadInConfig_EnvBeatsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("threads: 6\n"), 0o644))
	t.Setenv("LLAMA_CONFIG", "/cfg.yaml")
	t.Setenv("LLAMA_THREADS", "2")

	settings, err := loadFrom(t, fs)
	require.NoError(t, err)
	assert.Equal(t, 2, settings.Params.Threads)
}

// TestReadInConfig_Errors tests broken or missing explicit config files
func TestReadInConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing explicit file"},
		{name: "malformed yaml", content: ptr("threads: [6\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			path := "/etc/llama/llama.config.yaml"
			if tt.content != nil {
				require.NoError(t, afero.WriteFile(fs, path, []byte(*tt.content), 0o644))
			}
			t.Setenv("LLAMA_CONFIG", path)

			err := ReadInConfig(NewViper(fs, baseParams()))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
		})
	}
}

// TestLoad_InvalidValues tests validation of runtime settings
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		env   string
		value string
		field string
	}{
		{env: "LLAMA_LOG_LEVEL", value: "loud", field: KeyLogLevel},
		{env: "LLAMA_LOG_FORMAT", value: "xml", field: KeyLogFormat},
		{env: "LLAMA_THREADS", value: "0", field: KeyThreads},
		{env: "LLAMA_N_PREDICT", value: "abc", field: KeyNPredict},
		{env: "LLAMA_CTX_SIZE", value: "0x200", field: KeyCtxSize},
		{env: "LLAMA_SEED", value: "12abc", field: KeySeed},
		{env: "LLAMA_TEMP", value: "hot", field: KeyTemp},
		{env: "LLAMA_COLOR", value: "maybe", field: KeyColor},
		{env: "LLAMA_STRICT_EXIT", value: "sometimes", field: KeyStrictExit},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := loadFrom(t, afero.NewMemMapFs())
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))

			var valErr *apperrors.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}

// TestLoad_DecimalStrings tests that string values are read as base-10
func TestLoad_DecimalStrings(t *testing.T) {
	t.Setenv("LLAMA_N_PREDICT", "010")
	t.Setenv("LLAMA_CTX_SIZE", " 0512 ")
	t.Setenv("LLAMA_REPEAT_PENALTY", "1.5")

	settings, err := loadFrom(t, afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, 10, settings.Params.NPredict)
	assert.Equal(t, 512, settings.Params.CtxSize)
	assert.Equal(t, float32(1.5), settings.Params.RepeatPenalty)
}

// TestLoad_InvalidFileValue tests a non-numeric value in the config file
func TestLoad_InvalidFileValue(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg.yaml", []byte("n_predict: lots\n"), 0o644))
	t.Setenv("LLAMA_CONFIG", "/cfg.yaml")

	_, err := loadFrom(t, fs)
	require.Error(t, err)

	var valErr *apperrors.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, KeyNPredict, valErr.Field)
	assert.Equal(t, "lots", valErr.Value)
}

func ptr(s string) *string {
	return &s
}
