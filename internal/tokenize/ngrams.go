package tokenize

import "strings"

// NGrams returns all n-grams of toks for minN <= n <= maxN, each joined by
// a single space. All n-grams of one order come before the next order.
func NGrams(toks []string, minN, maxN int) []string {
	if minN < 1 {
		minN = 1
	}
	var out []string
	for n := minN; n <= maxN && n <= len(toks); n++ {
		for i := 0; i+n <= len(toks); i++ {
			if n == 1 {
				out = append(out, toks[i])
				continue
			}
			out = append(out, strings.Join(toks[i:i+n], " "))
		}
	}
	return out
}
