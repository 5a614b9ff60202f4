// Package importance scores new records from their text and speaker role.
package importance

import "strings"

var (
	userSignals      = []string{"prefer", "want", "need", "important", "remember"}
	assistantActions = []string{"created", "installed", "configured", "deployed"}
)

// Estimate returns a score in [0.5, 1.0]. User messages weigh more,
// preference/decision vocabulary weighs more still, and long messages get a
// small bump. Pure function, evaluated once at creation.
func Estimate(text, role string) float64 {
	score := 0.5
	lower := strings.ToLower(text)

	if role == "user" {
		score += 0.1
		if containsAny(lower, userSignals) {
			score += 0.2
		}
	}
	if role == "assistant" && containsAny(lower, assistantActions) {
		score += 0.15
	}
	if len(text) > 200 {
		score += 0.1
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
