// Package parser maps free-form player input onto one of the choices the
// game has just presented. It tolerates typos, abbreviations and bare
// numbers, and asks for clarification instead of guessing when two choices
// score too closely.
package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Clarify carries the follow-up question when input could not be resolved to
// a single choice.
type Clarify struct {
	Prompt     string
	Candidates []int
}

// Result is the outcome of matching one line of input against a choice list.
// Index is -1 whenever Clarify is set.
type Result struct {
	Index      int
	Confidence float64
	Clarify    *Clarify
}

const (
	acceptThreshold = 0.6
	tieMargin       = 0.05
)

// MatchChoice resolves raw input against the presented choice labels. A bare
// number selects by position (1-based). Otherwise labels are matched by exact
// text, prefix, token overlap and edit distance, in that order of strength.
func MatchChoice(raw string, labels []string) Result {
	none := Result{Index: -1}
	if len(labels) == 0 {
		none.Clarify = &Clarify{Prompt: "There is nothing to choose from."}
		return none
	}

	n := normaliseInput(raw)
	if n == "" {
		none.Clarify = &Clarify{Prompt: "Enter a choice by number or name."}
		return none
	}

	if idx, err := strconv.Atoi(n); err == nil {
		if idx < 1 || idx > len(labels) {
			none.Clarify = &Clarify{Prompt: fmt.Sprintf("Pick a number between 1 and %d.", len(labels))}
			return none
		}
		return Result{Index: idx - 1, Confidence: 1.0}
	}

	type scored struct {
		idx   int
		score float64
	}
	results := make([]scored, 0, len(labels))
	for i, label := range labels {
		score := scoreLabel(n, normaliseInput(label))
		if score > 0 {
			results = append(results, scored{idx: i, score: score})
		}
	}
	if len(results) == 0 {
		none.Clarify = &Clarify{Prompt: "I couldn't match that to any of the choices. Try the number or the first word."}
		return none
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].idx < results[j].idx
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	if len(results) > 1 {
		second := results[1]
		if best.score-second.score < tieMargin && second.score > acceptThreshold {
			none.Clarify = &Clarify{
				Prompt:     "Did you mean one of these? Pick by number.",
				Candidates: []int{best.idx, second.idx},
			}
			return none
		}
	}
	if best.score < acceptThreshold {
		none.Clarify = &Clarify{Prompt: "I'm not confident which choice that was. Pick by number."}
		return none
	}
	return Result{Index: best.idx, Confidence: clampScore(best.score)}
}

func scoreLabel(input, label string) float64 {
	if label == "" {
		return 0
	}
	if input == label {
		return 1.0
	}
	if strings.HasPrefix(label, input) && len(input) >= 2 {
		return 0.9
	}

	// Match against individual label words so "spar" finds
	// "spar for tips [risky]".
	bestWord := 0.0
	for _, word := range tokenise(label) {
		s := scoreWord(input, word)
		if s > bestWord {
			bestWord = s
		}
	}

	dist := levenshtein.ComputeDistance(input, label)
	whole := 0.0
	if dist <= levenshteinLimit(len(label)) {
		whole = 0.72 - 0.08*float64(dist)
	}
	if bestWord > whole {
		return clampScore(bestWord)
	}
	return clampScore(whole)
}

func scoreWord(input, word string) float64 {
	if input == word {
		return 0.85
	}
	if strings.HasPrefix(word, input) && len(input) >= 3 {
		return 0.8
	}
	dist := levenshtein.ComputeDistance(input, word)
	if dist > levenshteinLimit(len(word)) {
		return 0
	}
	return 0.68 - 0.08*float64(dist)
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
