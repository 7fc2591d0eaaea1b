package errz

import (
	"sort"
	"strings"
)

// MaxSuggestions is the maximum number of suggestions returned.
const MaxSuggestions = 3

// Suggestion is a candidate name and its edit distance from the target.
type Suggestion struct {
	Value    string
	Distance int
}

// SuggestSimilar returns up to MaxSuggestions candidates whose
// case-insensitive edit distance from target is small relative to the
// target's length. Function names in expressions are case-insensitive, so
// a candidate that differs only in case is not a suggestion.
func SuggestSimilar(target string, candidates []string) []Suggestion {
	if target == "" || len(candidates) == 0 {
		return nil
	}
	target = strings.ToUpper(target)
	threshold := suggestionThreshold(len(target))

	var out []Suggestion
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		upper := strings.ToUpper(c)
		if c == "" || upper == target || seen[upper] {
			continue
		}
		seen[upper] = true
		if d := editDistance(target, upper); d <= threshold {
			out = append(out, Suggestion{Value: c, Distance: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

func suggestionThreshold(n int) int {
	switch {
	case n <= 3:
		return 1
	case n <= 5:
		return 2
	default:
		return 3
	}
}

// FormatSuggestions formats suggestions as a "did you mean" hint.
// Returns an empty string if there are none.
func FormatSuggestions(suggestions []Suggestion) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return "Did you mean '" + suggestions[0].Value + "'?"
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = "'" + s.Value + "'"
	}
	return "Did you mean one of: " + strings.Join(quoted, ", ") + "?"
}

// editDistance is the Levenshtein distance between a and b, computed with
// two rolling rows.
func editDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}
