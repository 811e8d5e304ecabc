package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/computerscienceiscool/llama-cli/internal/config"
	"github.com/computerscienceiscool/llama-cli/internal/ctxlog"
	"github.com/computerscienceiscool/llama-cli/internal/engine"
	apperrors "github.com/computerscienceiscool/llama-cli/internal/errors"
	"github.com/computerscienceiscool/llama-cli/internal/params"
)

// Options wires the command to its environment. Zero fields get the
// process defaults.
type Options struct {
	Program string
	Stdout  io.Writer
	Stderr  io.Writer
	Fs      afero.Fs
	Threads params.ThreadCounter
	Loader  engine.Loader
	Now     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Program == "" {
		o.Program = os.Args[0]
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Threads == nil {
		o.Threads = params.CPUInfoThreads{Fs: o.Fs, Path: params.CPUInfoPath}
	}
	if o.Loader == nil {
		o.Loader = engine.Unavailable
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// NewRootCommand builds the llama command. Cobra's flag parsing is disabled;
// argv is handed to params.Parse so the historical flag spellings keep working.
func NewRootCommand(opts Options) *cobra.Command {
	r := &runner{opts: opts.withDefaults()}

	cmd := &cobra.Command{
		Use:   "llama [options]",
		Short: "Generate text with a LLaMA model",
		Long: `llama loads a LLaMA model and continues a prompt given on the command line,
read from a file, or picked at random. Defaults can be set in llama.config.yaml
or through LLAMA_* environment variables.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE:               r.runRoot,
	}
	cmd.SetOut(r.opts.Stdout)
	cmd.SetErr(r.opts.Stderr)

	return cmd
}

// Execute runs the llama command with args (without the program name) and
// returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	opts = opts.withDefaults()
	if args == nil {
		args = []string{}
	}

	cmd := NewRootCommand(opts)
	cmd.SetArgs(args)

	return exitCode(cmd.ExecuteContext(ctx), opts.Stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return params.ExitOK
	}

	var exitErr *apperrors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintf(stderr, "error: %v\n", err)
	return params.ExitFailure
}

type runner struct {
	opts Options
}

func (r *runner) runRoot(cmd *cobra.Command, args []string) error {
	settings, err := r.loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	ctx := ctxlog.WithLogger(cmd.Context(), newLogger(r.opts.Stderr, settings))
	logger := ctxlog.FromContext(ctx)
	if settings.ConfigFile != "" {
		logger.Debug("config file loaded", "path", settings.ConfigFile)
	}

	p := settings.Params
	outcome := params.Parse(args, &p,
		params.WithOutput(r.opts.Stderr),
		params.WithProgram(r.opts.Program),
		params.WithFs(r.opts.Fs),
		params.WithStrictExit(settings.StrictExit),
	)
	if outcome.Terminate() {
		logger.Debug("stopping after argument scan", "action", outcome.Action, "exit_code", outcome.ExitCode)
		return &apperrors.ExitError{Code: outcome.ExitCode, Err: outcome.Err}
	}

	return r.run(ctx, p)
}

// loadSettings layers config file and environment over the built-in defaults
func (r *runner) loadSettings() (*config.Settings, error) {
	v := config.NewViper(r.opts.Fs, params.Default(r.opts.Threads))
	if err := config.ReadInConfig(v); err != nil {
		return nil, err
	}
	return config.Load(v)
}
