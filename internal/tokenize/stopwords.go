package tokenize

// StopWords is the fixed stop-word set removed before n-grams are built.
var StopWords = map[string]struct{}{
	"the":  {},
	"a":    {},
	"an":   {},
	"i":    {},
	"he":   {},
	"she":  {},
	"they": {},
	"to":   {},
	"of":   {},
	"it":   {},
	"from": {},
}

// RemoveStopWords returns toks without the members of stop, preserving order.
func RemoveStopWords(toks []string, stop map[string]struct{}) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		if _, ok := stop[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}
