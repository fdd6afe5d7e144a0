// Package textproc holds the shared lexical utilities used by the
// classification and summarization engines: token normalization with
// stop-term removal and stemming, and deterministic sentence splitting.
package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

const minTokenLen = 3

// Normalize lowercases, strips everything outside letters and whitespace,
// tokenizes, drops stop-terms and short tokens, and stems the survivors.
// Pure function; normalizing already-normalized text is a no-op.
func Normalize(text string) []string {
	tokens := tokenizeAlpha(text)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) < minTokenLen || stopTerms[tok] {
			continue
		}
		// Stemming can land on a stop term or a short token ("having" →
		// "have", "ups" → "up"); filter the stem too so a second pass over
		// the output changes nothing.
		stem := english.Stem(tok, false)
		if len(stem) < minTokenLen || stopTerms[stem] {
			continue
		}
		out = append(out, stem)
	}
	return out
}

// NormalizeToText joins normalized tokens back into a single string, the
// form the term vectorizer consumes.
func NormalizeToText(text string) string {
	return strings.Join(Normalize(text), " ")
}

// Truncate caps s at maxBytes without splitting a multi-byte rune: the cut
// point backs up to the nearest rune boundary.
func Truncate(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	if maxBytes < 0 {
		maxBytes = 0
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}

func tokenizeAlpha(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, 32)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if b.Len() > 0 {
			out = append(out, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
