package textnorm

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Ratio is a character-level similarity in [0,1] based on edit distance.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// TokenSortRatio compares the two strings with their tokens sorted, making
// the comparison insensitive to word order.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// NameSimilarity scores two person names in [0,1]. Both names are
// normalized first, then the higher of the plain ratio and the
// token-order-independent ratio is returned, so transposed word orders
// ("Dela Cruz Juan" vs "Juan Dela Cruz") still score highly.
func NameSimilarity(name1, name2 string) float64 {
	if name1 == "" || name2 == "" {
		return 0.0
	}

	norm1 := NormalizeName(name1)
	norm2 := NormalizeName(name2)

	ratio := Ratio(norm1, norm2)
	tokenRatio := TokenSortRatio(norm1, norm2)

	if tokenRatio > ratio {
		return tokenRatio
	}
	return ratio
}

// PartialRatio compares the shorter string against every equal-length
// window of the longer one and returns the best ratio. Mirrors the partial
// matching used for interest and location hints.
func PartialRatio(a, b string) float64 {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if shorter == "" {
		return 0.0
	}
	if len(shorter) == len(longer) {
		return Ratio(shorter, longer)
	}

	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		if r := Ratio(shorter, longer[i:i+len(shorter)]); r > best {
			best = r
		}
	}
	return best
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
