package insights

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	// DefaultTopN is the number of frequent terms the fallback keeps.
	DefaultTopN = 5

	fallbackSummary   = "AI service temporarily unavailable. Document processed using fallback analysis."
	unableToDetermine = "Unable to determine"

	maxHighlights = 3
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// TermCount is one entry of the frequency ranking.
type TermCount struct {
	Term  string
	Count int
}

// TopTerms tokenizes text and returns the topN most frequent content
// words, highest count first. Tokens shorter than three characters and
// English stopwords are discarded. Ties keep first-encountered order, so
// identical input always yields an identical ranking. An empty result is
// not an error.
func TopTerms(text string, topN int) []TermCount {
	if topN <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if len(token) <= 2 || stopwords[token] {
			continue
		}
		if _, ok := counts[token]; !ok {
			firstSeen[token] = len(firstSeen)
		}
		counts[token]++
	}
	if len(counts) == 0 {
		return nil
	}

	ranked := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		ranked = append(ranked, TermCount{Term: term, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Term] < firstSeen[ranked[j].Term]
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Fallback builds an Insight from plain text using word-frequency
// analysis. It is the degraded path used when the AI service fails.
func Fallback(text string) Insight {
	ranked := TopTerms(text, DefaultTopN)

	skills := make([]string, 0, len(ranked))
	highlights := make([]string, 0, maxHighlights)
	freq := make(map[string]int, len(ranked))
	for i, tc := range ranked {
		skills = append(skills, tc.Term)
		freq[tc.Term] = tc.Count
		if i < maxHighlights {
			highlights = append(highlights, fmt.Sprintf("Frequent term: %s (%d occurrences)", tc.Term, tc.Count))
		}
	}

	return Insight{
		Summary:          fallbackSummary,
		KeySkills:        skills,
		ExperienceLevel:  unableToDetermine,
		Education:        unableToDetermine,
		Highlights:       highlights,
		WordFrequency:    freq,
		ProcessingMethod: MethodFallback,
	}
}
