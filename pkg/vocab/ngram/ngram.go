package ngram

import (
	"fmt"
	"strings"

	"github.com/cognicore/vocab/pkg/vocab/internalerr"
)

// DefaultDelimiter joins the tokens of a multi-token n-gram.
const DefaultDelimiter = "_"

// Generator produces contiguous n-grams of every order between a configured
// minimum and maximum, each emitted as a single delimiter-joined string.
//
// Emission order is fixed and observable: for each starting position the
// window grows one token at a time, so tokens [a b c d] with min=1, max=2
// yield
//
//	a, a_b, b, b_c, c, c_d, d
type Generator struct {
	min   int
	max   int
	delim string
}

// NewGenerator creates a generator for orders min..max.
// min must be >= 1 and max must be >= min; an empty delimiter falls back
// to DefaultDelimiter.
func NewGenerator(min, max int, delim string) (*Generator, error) {
	if min < 1 {
		return nil, fmt.Errorf("%w: ngram min must be >= 1, got %d", internalerr.ErrInvalidConfig, min)
	}
	if max < min {
		return nil, fmt.Errorf("%w: ngram max %d is below min %d", internalerr.ErrInvalidConfig, max, min)
	}
	if delim == "" {
		delim = DefaultDelimiter
	}
	return &Generator{min: min, max: max, delim: delim}, nil
}

// Min returns the minimum n-gram order.
func (g *Generator) Min() int { return g.min }

// Max returns the maximum n-gram order.
func (g *Generator) Max() int { return g.max }

// Delimiter returns the string used to join multi-token n-grams.
func (g *Generator) Delimiter() string { return g.delim }

// Generate returns all qualifying n-grams of tokens in emission order.
// Sequences shorter than the minimum order produce no output, and windows
// that would run past the end of the sequence are simply not emitted.
// The result grows dynamically, so no size estimate is needed up front.
func (g *Generator) Generate(tokens []string) []string {
	var out []string
	var gram strings.Builder

	for j := range tokens {
		gram.Reset()
		for k := 0; k < g.max && j+k < len(tokens); k++ {
			if k > 0 {
				gram.WriteString(g.delim)
			}
			gram.WriteString(tokens[j+k])
			if k+1 >= g.min {
				out = append(out, gram.String())
			}
		}
	}

	return out
}
