// Package tokenize turns prompt text into token ids through an engine's
// tokenizer.
package tokenize

import (
	"fmt"

	apperrors "github.com/computerscienceiscool/llama-cli/internal/errors"
)

// DefaultCapacity is the size of the first scratch buffer handed to the tokenizer.
const DefaultCapacity = 8096

// Token is a vocabulary id
type Token int32

// Tokenizer fills buf with the tokens for text and returns how many it wrote.
// When buf is too small it returns -n, where n is the number of tokens needed.
type Tokenizer interface {
	TokenizeInto(text string, buf []Token, addBOS bool) int
}

// TokenizerFunc adapts a function to the Tokenizer interface
type TokenizerFunc func(text string, buf []Token, addBOS bool) int

// TokenizeInto implements Tokenizer
func (f TokenizerFunc) TokenizeInto(text string, buf []Token, addBOS bool) int {
	return f(text, buf, addBOS)
}

// Tokenize returns the tokens for text, prefixed with the beginning-of-sequence
// token when addBOS is set. A tokenizer that needs more room than
// DefaultCapacity gets one retry with the size it asked for.
func Tokenize(tk Tokenizer, text string, addBOS bool) ([]Token, error) {
	buf := make([]Token, DefaultCapacity)
	n := tk.TokenizeInto(text, buf, addBOS)
	if n < 0 {
		buf = make([]Token, -n)
		n = tk.TokenizeInto(text, buf, addBOS)
	}

	if n < 0 || n > len(buf) {
		actual := n
		if actual < 0 {
			actual = -actual
		}
		return nil, fmt.Errorf("tokenize %d bytes: %w", len(text), &apperrors.ResourceError{
			Resource: "token_buffer",
			Limit:    len(buf),
			Actual:   actual,
			Err:      apperrors.ErrTokenOverflow,
		})
	}

	tokens := make([]Token, n)
	copy(tokens, buf[:n])
	return tokens, nil
}
