package params

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	apperrors "github.com/computerscienceiscool/llama-cli/internal/errors"
)

// Process exit codes reported by Parse
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Action tells the caller what to do after parsing
type Action int

const (
	// ActionRun means the record is populated and the program should proceed.
	ActionRun Action = iota
	// ActionHelp means usage was printed on request.
	ActionHelp
	// ActionUsage means the arguments were rejected and the program should stop.
	ActionUsage
)

func (a Action) String() string {
	switch a {
	case ActionRun:
		return "run"
	case ActionHelp:
		return "help"
	case ActionUsage:
		return "usage"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Outcome is the result of scanning the command line
type Outcome struct {
	Action   Action
	ExitCode int
	Err      error
}

// Terminate reports whether the program should exit instead of running.
func (o Outcome) Terminate() bool {
	return o.Action != ActionRun
}

type parser struct {
	out    io.Writer
	prog   string
	fs     afero.Fs
	strict bool
}

// Option configures Parse
type Option func(*parser)

// WithOutput sets where usage and argument errors are written (default stderr).
func WithOutput(w io.Writer) Option {
	return func(ps *parser) { ps.out = w }
}

// WithProgram sets the program name shown in the usage line.
func WithProgram(name string) Option {
	return func(ps *parser) { ps.prog = name }
}

// WithFs sets the filesystem prompt files are read from.
func WithFs(fs afero.Fs) Option {
	return func(ps *parser) { ps.fs = fs }
}

// WithStrictExit makes unknown arguments exit with ExitUsage instead of ExitOK.
func WithStrictExit(strict bool) Option {
	return func(ps *parser) { ps.strict = strict }
}

// Parse scans args (without the program name) into p. Flags are applied in
// order. p is only updated when the outcome is ActionRun; help and rejected
// arguments leave it untouched.
func Parse(args []string, p *Params, opts ...Option) Outcome {
	ps := &parser{
		out:  os.Stderr,
		prog: "llama",
		fs:   afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(ps)
	}

	defaults := p.Clone()
	work := p.Clone()
	flags := newFlagSet(ps.prog, &work, ps.fs)

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "-h" || arg == "--help" {
			PrintUsage(ps.out, ps.prog, defaults)
			return Outcome{Action: ActionHelp, ExitCode: ExitOK}
		}

		flag, value, attached := lookupFlag(flags, arg)
		if flag == nil {
			return ps.unknown(arg, defaults)
		}

		if !attached {
			switch {
			case flag.NoOptDefVal != "":
				value = flag.NoOptDefVal
			case i+1 < len(args):
				i++
				value = args[i]
			default:
				return ps.reject(&apperrors.ValidationError{
					Field: flag.Name,
					Value: "",
					Err:   apperrors.ErrMissingValue,
				})
			}
		}

		if err := flag.Value.Set(value); err != nil {
			if !errors.Is(err, apperrors.ErrPromptFile) {
				err = fmt.Errorf("%w: %w", apperrors.ErrInvalidValue, err)
			}
			return ps.reject(&apperrors.ValidationError{
				Field: flag.Name,
				Value: value,
				Err:   err,
			})
		}
	}

	*p = work
	return Outcome{Action: ActionRun, ExitCode: ExitOK}
}

func (ps *parser) unknown(arg string, defaults Params) Outcome {
	fmt.Fprintf(ps.out, "error: unknown argument: %s\n", arg)
	PrintUsage(ps.out, ps.prog, defaults)

	code := ExitOK
	if ps.strict {
		code = ExitUsage
	}
	return Outcome{
		Action:   ActionUsage,
		ExitCode: code,
		Err: &apperrors.ValidationError{
			Field: "argument",
			Value: arg,
			Err:   apperrors.ErrUnknownArgument,
		},
	}
}

func (ps *parser) reject(err error) Outcome {
	fmt.Fprintf(ps.out, "error: %v\n", err)
	fmt.Fprintf(ps.out, "run '%s --help' for usage\n", ps.prog)
	return Outcome{Action: ActionUsage, ExitCode: ExitFailure, Err: err}
}
