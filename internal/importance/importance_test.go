package importance

import (
	"math"
	"strings"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		role string
		want float64
	}{
		{
			name: "baseline assistant message",
			text: "here is the output",
			role: "assistant",
			want: 0.5,
		},
		{
			name: "plain user message",
			text: "what time is it",
			role: "user",
			want: 0.6,
		},
		{
			name: "user preference",
			text: "I prefer tabs over spaces, remember that",
			role: "user",
			want: 0.8,
		},
		{
			name: "assistant action",
			text: "I configured the webhook and deployed the service",
			role: "assistant",
			want: 0.65,
		},
		{
			name: "preference words ignored outside user role",
			text: "the user said they prefer dark mode",
			role: "assistant",
			want: 0.5,
		},
		{
			name: "long user message",
			text: strings.Repeat("filler ", 30),
			role: "user",
			want: 0.7,
		},
		{
			name: "long user preference stacks all bumps",
			text: "remember this setup: " + strings.Repeat("x", 200),
			role: "user",
			want: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.text, tt.role)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Estimate(%q, %q) = %v, want %v", tt.text, tt.role, got, tt.want)
			}
		})
	}
}

func TestEstimateBounds(t *testing.T) {
	texts := []string{
		"",
		"short",
		"I need you to remember this important preference: " + strings.Repeat("x", 200),
		strings.Repeat("configured deployed installed created ", 20),
	}
	for _, role := range []string{"user", "assistant", "system", ""} {
		for _, text := range texts {
			got := Estimate(text, role)
			if got < 0.5 || got > 1.0 {
				t.Fatalf("Estimate(len=%d, role=%q) = %v, outside [0.5, 1.0]", len(text), role, got)
			}
		}
	}
}
