package tokenize

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	porterstemmer "github.com/kiteco/go-porterstemmer"
)

// ErrResourceMissing is returned when the lemmatizer dictionary is absent.
var ErrResourceMissing = errors.New("lemmatizer resource missing")

// Lemmatizer maps a token to its base form.
type Lemmatizer interface {
	Lemmatize(token string) string
}

// WordNet lemmatizes nouns against a WordNet dictionary: the exception
// list first, then the detachment rules, keeping only candidates present in
// the noun index. Tokens with no candidate are returned unchanged.
type WordNet struct {
	lemmas     map[string]struct{}
	exceptions map[string][]string
}

var nounRules = [][2]string{
	{"s", ""},
	{"ses", "s"},
	{"ves", "f"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// LoadWordNet reads index.noun and noun.exc from a WordNet dict directory.
// It must be called once before TF-IDF vectorization; a missing directory
// or file fails with ErrResourceMissing.
func LoadWordNet(dir string) (*WordNet, error) {
	w := &WordNet{
		lemmas:     make(map[string]struct{}),
		exceptions: make(map[string][]string),
	}
	err := readLines(filepath.Join(dir, "index.noun"), func(line string) {
		// License header lines start with a space.
		if strings.HasPrefix(line, " ") {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return
		}
		w.lemmas[strings.ToLower(fields[0])] = struct{}{}
	})
	if err != nil {
		return nil, err
	}
	err = readLines(filepath.Join(dir, "noun.exc"), func(line string) {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return
		}
		w.exceptions[fields[0]] = append(w.exceptions[fields[0]], fields[1:]...)
	})
	if err != nil {
		return nil, err
	}
	if len(w.lemmas) == 0 {
		return nil, fmt.Errorf("%w: %s has no noun lemmas", ErrResourceMissing, dir)
	}
	return w, nil
}

func readLines(path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s (install the WordNet dictionary or set lemma_dict)", ErrResourceMissing, path)
		}
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	return nil
}

// Size returns the number of noun lemmas loaded.
func (w *WordNet) Size() int { return len(w.lemmas) }

// Lemmatize returns the shortest noun lemma for token, or token itself.
func (w *WordNet) Lemmatize(token string) string {
	cands := w.morphy(token)
	if len(cands) == 0 {
		return token
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if len(c) < len(best) {
			best = c
		}
	}
	return best
}

func (w *WordNet) morphy(form string) []string {
	if exc, ok := w.exceptions[form]; ok {
		return w.known(append([]string{form}, exc...))
	}
	forms := detach([]string{form})
	if res := w.known(append([]string{form}, forms...)); len(res) > 0 {
		return res
	}
	for len(forms) > 0 {
		forms = detach(forms)
		if res := w.known(forms); len(res) > 0 {
			return res
		}
	}
	return nil
}

func detach(forms []string) []string {
	var out []string
	for _, f := range forms {
		for _, r := range nounRules {
			if strings.HasSuffix(f, r[0]) {
				out = append(out, strings.TrimSuffix(f, r[0])+r[1])
			}
		}
	}
	return out
}

func (w *WordNet) known(forms []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(forms))
	for _, f := range forms {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		if _, ok := w.lemmas[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Porter reduces tokens with the Porter stemming algorithm. It needs no
// dictionary.
type Porter struct{}

// Lemmatize returns the Porter stem of token.
func (Porter) Lemmatize(token string) string {
	return porterstemmer.StemString(token)
}
