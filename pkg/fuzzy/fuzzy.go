/*
Package fuzzy resolves free-text queries to known titles with approximate
string matching, independent of the vector space.

Similarity is a normalized edit-distance ratio computed case-insensitively.
Resolution mode asks for a few candidates above a high cutoff and consumes the
best one; suggestion mode runs on every keystroke with a lower cutoff and a
larger limit.
*/
package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Match is one candidate title with its similarity to the query.
// Index is the position of the title in the input slice.
type Match struct {
	Title string
	Index int
	Score float64
}

// Ratio returns a similarity in [0,1] between a and b, case-insensitive:
// 1 - lev(a,b)/(len(a)+len(b)). Identical strings score 1; the ratio decays
// with edit distance and rewards partial prefixes of longer titles.
func Ratio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(total)
}

// Resolve scores query against every title and returns up to maxResults
// matches with Score >= minScore, ordered by descending score. Equal scores
// keep original title order. An empty query or title list short-circuits to
// nil without scanning; Resolve never fails.
func Resolve(query string, titles []string, maxResults int, minScore float64) []Match {
	if query == "" || len(titles) == 0 || maxResults <= 0 {
		return nil
	}

	var matches []Match
	for i, title := range titles {
		score := Ratio(query, title)
		if score >= minScore {
			matches = append(matches, Match{Title: title, Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches
}
