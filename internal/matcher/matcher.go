// Package matcher scores free-text symptom descriptions against a knowledge
// base using exact keyword containment plus fuzzy token similarity.
package matcher

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Skufu/symptomchat/internal/knowledge"
)

const (
	// ExactWeight is added once per keyword found as a substring of the input.
	ExactWeight = 10.0
	// FuzzyWeight is multiplied by the similarity ratio of a fuzzy hit.
	FuzzyWeight = 5.0
	// FuzzyThreshold must be strictly exceeded for a fuzzy hit.
	FuzzyThreshold = 0.8
	// MaxResults caps the number of results returned by Match.
	MaxResults = 5
)

// Result is a scored copy of a knowledge-base condition.
type Result struct {
	knowledge.Condition
	Score           float64
	MatchedKeywords []string
}

func (r Result) MarshalJSON() ([]byte, error) {
	fields := r.Condition.Fields()
	matched := r.MatchedKeywords
	if matched == nil {
		matched = []string{}
	}
	fields["match_score"] = r.Score
	fields["matched_keywords"] = matched
	return json.Marshal(fields)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.Condition); err != nil {
		return err
	}
	attrs := r.Condition.Attributes
	if v, ok := attrs["match_score"]; ok {
		if err := json.Unmarshal(v, &r.Score); err != nil {
			return fmt.Errorf("match_score: %w", err)
		}
		delete(attrs, "match_score")
	}
	if v, ok := attrs["matched_keywords"]; ok {
		if err := json.Unmarshal(v, &r.MatchedKeywords); err != nil {
			return fmt.Errorf("matched_keywords: %w", err)
		}
		delete(attrs, "matched_keywords")
	}
	if len(attrs) == 0 {
		r.Condition.Attributes = nil
	}
	return nil
}

// Match returns up to MaxResults conditions ordered by descending score.
// Equal scores keep knowledge-base order.
func Match(input string, base *knowledge.Base) []Result {
	normalized := strings.ToLower(strings.TrimSpace(input))
	tokens := strings.Fields(normalized)

	var results []Result
	for _, cond := range base.Conditions() {
		score, matched := scoreCondition(normalized, tokens, cond.Keywords)
		if score > 0 {
			results = append(results, Result{
				Condition:       cond,
				Score:           score,
				MatchedKeywords: matched,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

func scoreCondition(normalized string, tokens, keywords []string) (float64, []string) {
	score := 0.0
	matched := []string{}
	seen := make(map[string]bool, len(keywords))

	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			score += ExactWeight
			matched = append(matched, kw)
			seen[kw] = true
		}
	}

	for _, tok := range tokens {
		for _, kw := range keywords {
			if seen[kw] {
				continue
			}
			if ratio := Similarity(tok, kw); ratio > FuzzyThreshold {
				score += ratio * FuzzyWeight
				matched = append(matched, kw)
				seen[kw] = true
			}
		}
	}

	return score, matched
}
