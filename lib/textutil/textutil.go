package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// stripMarks removes combining marks so "Pérez" and "Perez" compare equal.
// A chain keeps buffers, so each call gets its own.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func NormalizeName(name string) string {
	folded, _, err := transform.String(stripMarks(), name)
	if err == nil {
		name = folded
	}
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// ClosestMatch returns the index of the candidate most similar to target
// by Jaro-Winkler distance over normalized names, -1 when there are no
// candidates or nothing scores above minScore.
func ClosestMatch(target string, candidates []string, minScore float64) int {
	target = NormalizeName(target)

	best := -1
	bestScore := minScore
	for i, c := range candidates {
		score := matchr.JaroWinkler(target, NormalizeName(c), false)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}
