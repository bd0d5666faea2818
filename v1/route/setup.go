package route

import (
	"fmt"
	"regexp"
	"strings"
)

// Normalizer applies the built-in structural masks followed by an ordered
// list of extra masks. It is immutable after construction and safe for
// concurrent use.
type Normalizer struct {
	masks []compiledMask

	// fallback replaces segments the chain does not settle on within
	// maxPasses. It is the fixed point of Placeholder.
	fallback string
}

type compiledMask struct {
	re          *regexp.Regexp
	replacement string
}

// NewNormalizer compiles masks in order. Any malformed mask fails the whole
// construction with an error wrapping ErrInvalidMask; literal replacements
// that the chain keeps rewriting without settling fail with
// ErrMaskNotIdempotent.
//
// Replacements with group references cannot be checked up front. A segment
// they keep rewriting is normalized to the fallback placeholder instead.
func NewNormalizer(masks []Mask) (*Normalizer, error) {
	n := &Normalizer{masks: make([]compiledMask, 0, len(masks))}

	for i, m := range masks {
		if m.Pattern == "" {
			return nil, fmt.Errorf("%w: mask %d has an empty pattern", ErrInvalidMask, i)
		}
		if strings.Contains(m.Replacement, Separator) {
			return nil, fmt.Errorf("%w: mask %d replacement %q contains %q", ErrInvalidMask, i, m.Replacement, Separator)
		}
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: mask %d: %v", ErrInvalidMask, i, err)
		}
		n.masks = append(n.masks, compiledMask{re: re, replacement: m.Replacement})
	}

	for i, m := range n.masks {
		if m.replacement == "" || strings.Contains(m.replacement, "$") {
			continue
		}
		if _, ok := n.fixpoint(m.replacement); !ok {
			return nil, fmt.Errorf("%w: mask %d replacement %q keeps being rewritten", ErrMaskNotIdempotent, i, m.replacement)
		}
	}

	fallback, ok := n.fixpoint(Placeholder)
	if !ok {
		return nil, fmt.Errorf("%w: placeholder %q keeps being rewritten", ErrMaskNotIdempotent, Placeholder)
	}
	n.fallback = fallback

	return n, nil
}

// MustNormalizer is NewNormalizer that panics on error. Intended for masks
// known at compile time.
func MustNormalizer(masks ...Mask) *Normalizer {
	n, err := NewNormalizer(masks)
	if err != nil {
		panic(err)
	}
	return n
}

var defaultNormalizer = &Normalizer{fallback: Placeholder}

// Normalize rewrites rawPath with the built-in masks only.
func Normalize(rawPath string) string {
	return defaultNormalizer.Normalize(rawPath)
}
