// Package search implements the lexical ranking used for directory queries.
// Scoring is a deterministic weighted substring-presence check, cheap to
// recompute on every query with no persistent index structure.
package search

import (
	"sort"
	"strings"

	"github.com/upsearch/upsearch/internal/directory"
)

// Field weights for a case-insensitive substring match of the query.
const (
	titleWeight       = 10
	descriptionWeight = 5
	urlWeight         = 3
	categoryWeight    = 2
)

// Result pairs a site with its relevance score for one query.
type Result struct {
	Site  directory.Site
	Score int
}

// Rank scores each site against the query and returns matches ordered by
// descending score. Sites scoring zero are excluded. Ties keep the input
// (enumeration) order.
func Rank(sites []directory.Site, query string) []Result {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}

	results := make([]Result, 0, len(sites))

	for _, site := range sites {
		score := Score(&site, query)
		if score > 0 {
			results = append(results, Result{Site: site, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// Score computes the weighted match score of one site for a lowercased query.
func Score(site *directory.Site, query string) int {
	score := 0

	if contains(site.Title, query) {
		score += titleWeight
	}

	if contains(site.Description, query) {
		score += descriptionWeight
	}

	if contains(site.URL, query) {
		score += urlWeight
	}

	if contains(site.Category, query) {
		score += categoryWeight
	}

	return score
}

func contains(field, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(field), lowerQuery)
}
