// Package emotion classifies free text into a coarse emotion by keyword
// matching.
package emotion

import "strings"

const (
	Joy     = "joy"
	Sadness = "sadness"
	Anger   = "anger"
	Fear    = "fear"
	Neutral = "neutral"
)

// Result is the outcome of analysing one text.
type Result struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

type lexicon struct {
	emotion  string
	keywords []string
}

// Order matters: on a tie the earlier emotion wins.
var lexicons = []lexicon{
	{Joy, []string{"happy", "great", "good", "awesome", "love", "grateful"}},
	{Sadness, []string{"sad", "down", "blue", "depressed", "cry"}},
	{Anger, []string{"angry", "mad", "furious", "annoyed", "rage"}},
	{Fear, []string{"scared", "afraid", "anxious", "worried", "nervous"}},
}

// Analyze counts, per emotion, how many of its keywords occur in text
// (case-insensitive substring match) and returns the emotion with the
// highest count. Text without any keyword is neutral with confidence 0.5.
func Analyze(text string) Result {
	lower := strings.ToLower(text)

	best, bestScore := Neutral, 0
	for _, lx := range lexicons {
		score := 0
		for _, word := range lx.keywords {
			if strings.Contains(lower, word) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = lx.emotion, score
		}
	}

	if bestScore == 0 {
		return Result{Emotion: Neutral, Confidence: 0.5}
	}
	return Result{Emotion: best, Confidence: min(1.0, 0.2*float64(bestScore))}
}
