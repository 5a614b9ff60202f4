package keywords

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtractEntities(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "mentions",
			text: "ping @alice and @bob about this",
			want: []string{"alice", "bob"},
		},
		{
			name: "url domain",
			text: "see https://example.com/docs/page for details",
			want: []string{"example.com"},
		},
		{
			name: "snake case term",
			text: "the parse_config helper broke",
			want: []string{"parse_config"},
		},
		{
			name: "camel case term",
			text: "refactor HttpClient next",
			want: []string{"HttpClient"},
		},
		{
			name: "fixed vocabulary",
			text: "restarted the Docker container behind Qdrant",
			want: []string{"docker", "qdrant"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEntities(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractEntities(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i, w := range tt.want {
				if got[i] != w {
					t.Errorf("entity %d = %q, want %q (all: %v)", i, got[i], w, got)
				}
			}
		})
	}
}

func TestExtractEntitiesCaps(t *testing.T) {
	t.Run("code terms capped at five", func(t *testing.T) {
		var parts []string
		for i := 0; i < 8; i++ {
			parts = append(parts, fmt.Sprintf("func_name_%c", 'a'+i))
		}
		got := ExtractEntities(strings.Join(parts, " "))
		if len(got) != 5 {
			t.Fatalf("got %d code-term entities, want 5: %v", len(got), got)
		}
	})

	t.Run("total capped at ten", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 9; i++ {
			fmt.Fprintf(&b, "@user%d ", i)
		}
		b.WriteString("docker github memory skill ollama")
		got := ExtractEntities(b.String())
		if len(got) != 10 {
			t.Fatalf("got %d entities, want 10: %v", len(got), got)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		got := ExtractEntities("@same @same @same")
		if len(got) != 1 || got[0] != "same" {
			t.Fatalf("got %v, want [same]", got)
		}
	})
}
