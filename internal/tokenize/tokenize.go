// Package tokenize turns review text into the token streams the vectorizers
// count: lower-casing, word splitting, lemmatization, stop words and n-grams.
package tokenize

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits one document into tokens.
type Tokenizer interface {
	Tokenize(doc string) []string
}

// Func adapts a plain function to Tokenizer.
type Func func(doc string) []string

// Tokenize calls f(doc).
func (f Func) Tokenize(doc string) []string { return f(doc) }

// Lower NFC-normalizes s and lower-cases it with Unicode case mapping.
func Lower(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

var wordRun = regexp.MustCompile(`[\p{L}\p{N}\p{Mn}_]+`)

// Pattern is the default analyzer: every run of two or more word
// characters is a token; punctuation and single characters are dropped.
var Pattern Tokenizer = Func(func(doc string) []string {
	runs := wordRun.FindAllString(doc, -1)
	out := runs[:0]
	for _, r := range runs {
		if len([]rune(r)) >= 2 {
			out = append(out, r)
		}
	}
	return out
})
