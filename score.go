package sitechat

import (
	"strings"
	"unicode/utf8"
)

// minScoredTokenLen is the length a question token must exceed to count.
const minScoredTokenLen = 3

// RelevanceScore is a deterministic keyword-overlap heuristic in [0,1].
//
// Every whitespace-delimited, lower-cased question token longer than three
// characters counts as a match when it appears in both the context and the
// answer. The score is matches divided by the total number of question
// tokens, capped at 1.
func RelevanceScore(question, answer, context string) float64 {
	questionTokens := strings.Fields(strings.ToLower(question))
	contextTokens := tokenSet(context)
	answerTokens := tokenSet(answer)

	var matches int
	for _, tok := range questionTokens {
		if utf8.RuneCountInString(tok) <= minScoredTokenLen {
			continue
		}
		if contextTokens[tok] && answerTokens[tok] {
			matches++
		}
	}

	return min(float64(matches)/float64(max(len(questionTokens), 1)), 1)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}
