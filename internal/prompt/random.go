// Package prompt picks seed phrases for runs started without a prompt.
package prompt

// Source is a caller-owned pseudo-random generator. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Uint32() uint32
}

var seeds = [...]string{
	"So",
	"Once upon a time",
	"When",
	"The",
	"After",
	"If",
	"import",
	"He",
	"She",
	"They",
}

// Random draws one value from rng and maps it onto a seed phrase.
func Random(rng Source) string {
	switch r := rng.Uint32() % uint32(len(seeds)); {
	case r < uint32(len(seeds)):
		return seeds[r]
	default:
		return "To"
	}
}

// Seeds returns the seed phrases in selection order.
func Seeds() []string {
	return append([]string(nil), seeds[:]...)
}
