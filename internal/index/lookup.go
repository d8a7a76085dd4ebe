package index

import (
	"sort"

	"courtlinks/lib/textutil"

	"github.com/antzucaro/matchr"
)

// minSuggestionSimilarity keeps unrelated case numbers out of suggestions.
const minSuggestionSimilarity = 0.8

// Lookup finds the entry for a user supplied appeals case number.
func (idx Index) Lookup(key string) (Entry, bool) {
	entry, ok := idx[textutil.NormalizeKey(key)]
	return entry, ok
}

type suggestion struct {
	key        string
	similarity float64
}

// Suggest returns up to n keys of the index that look like key, most similar first.
func (idx Index) Suggest(key string, n int) []string {
	key = textutil.NormalizeKey(key)
	if key == "" || n <= 0 {
		return nil
	}

	var candidates []suggestion
	for k := range idx {
		similarity := matchr.JaroWinkler(key, k, false)
		if similarity < minSuggestionSimilarity {
			continue
		}
		candidates = append(candidates, suggestion{key: k, similarity: similarity})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].similarity != candidates[j].similarity {
			return candidates[i].similarity > candidates[j].similarity
		}
		return candidates[i].key < candidates[j].key
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.key
	}
	return out
}
