package vectorize

import (
	"fmt"
	"strings"
)

// Kind selects the vectorizer. There are exactly two.
type Kind int

const (
	BagOfWords Kind = iota + 1
	TFIDF
)

func (k Kind) String() string {
	switch k {
	case BagOfWords:
		return "bow"
	case TFIDF:
		return "tfidf"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "bow" or "tfidf", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bow":
		return BagOfWords, nil
	case "tfidf":
		return TFIDF, nil
	default:
		return 0, fmt.Errorf("unknown vectorizer %q (want bow or tfidf)", s)
	}
}
