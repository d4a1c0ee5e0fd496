package tokenize

import (
	"regexp"
	"strings"
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

func rules(pairs ...string) []rewrite {
	out := make([]rewrite, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, rewrite{re: regexp.MustCompile(pairs[i]), repl: pairs[i+1]})
	}
	return out
}

// Penn Treebank conventions: quotes become `` and '', punctuation and
// brackets are split off, clitics are separated from their host word.
var (
	startQuotes = rules(
		`^"`, "``",
		"(``)", " ${1} ",
		`([ (\[{<])"`, "${1} `` ",
	)
	punctuation = rules(
		`([:,])([^\d])`, " ${1} ${2}",
		`([:,])$`, " ${1} ",
		`\.\.\.`, " ... ",
		`[;@#$%&]`, " ${0} ",
		`([^.\s])\.([\])}>"']*)(\s|$)`, "${1} .${2}${3}",
		`[?!]`, " ${0} ",
		`([^'])' `, "${1} ' ",
	)
	brackets = rules(
		`[\]\[(){}<>]`, " ${0} ",
		`--`, " -- ",
	)
	endQuotes = rules(
		`"`, " '' ",
		`(\S)('')`, "${1} ${2} ",
		`([^' ])('[sS]|'[mM]|'[dD]|') `, "${1} ${2} ",
		`([^' ])('ll|'LL|'re|'RE|'ve|'VE|n't|N'T) `, "${1} ${2} ",
	)
	contractions = rules(
		`(?i)\b(can)(not)\b`, " ${1} ${2} ",
		`(?i)\b(d)('ye)\b`, " ${1} ${2} ",
		`(?i)\b(gim)(me)\b`, " ${1} ${2} ",
		`(?i)\b(gon)(na)\b`, " ${1} ${2} ",
		`(?i)\b(got)(ta)\b`, " ${1} ${2} ",
		`(?i)\b(lem)(me)\b`, " ${1} ${2} ",
		`(?i)\b(wan)(na)\s`, " ${1} ${2} ",
	)
)

func apply(s string, rs []rewrite) string {
	for _, r := range rs {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}

// Word splits doc into Treebank-style word tokens. Unlike Pattern it keeps
// punctuation and single-character words as tokens.
var Word Tokenizer = Func(func(doc string) []string {
	s := apply(doc, startQuotes)
	s = apply(s, punctuation)
	s = apply(s, brackets)
	s = " " + s + " "
	s = apply(s, endQuotes)
	s = apply(s, contractions)
	return strings.Fields(s)
})
