// Package recommend maps a mood onto a practice module. Moods outside the
// table have no recommendation and are rejected by callers.
package recommend

import "github.com/cortexai/cortex-api/internal/emotion"

const (
	LevelIntro        = "intro"
	LevelIntermediate = "intermediate"
)

// Recommendation names a practice module and its difficulty level.
type Recommendation struct {
	Module string `json:"module"`
	Level  string `json:"level"`
}

var byMood = map[string]Recommendation{
	emotion.Joy:     {Module: "gratitude_practice", Level: LevelIntermediate},
	emotion.Sadness: {Module: "mood_journaling", Level: LevelIntro},
	emotion.Anger:   {Module: "breathwork", Level: LevelIntro},
	emotion.Fear:    {Module: "grounding_exercises", Level: LevelIntro},
	emotion.Neutral: {Module: "mindfulness_check_in", Level: LevelIntro},
}

// ForMood returns the recommendation for mood. ok is false for moods
// without an entry.
func ForMood(mood string) (rec Recommendation, ok bool) {
	rec, ok = byMood[mood]
	return rec, ok
}
