package keywords

import (
	"regexp"
	"strings"
)

const (
	maxEntities  = 10
	maxCodeTerms = 5
)

var (
	mentionRe = regexp.MustCompile(`@(\w+)`)
	domainRe  = regexp.MustCompile(`https?://([^\s/]+)`)
	// snake_case or CamelCase terms, the usual shape of function and type
	// names mentioned in conversation.
	codeTermRe = regexp.MustCompile(`\b([a-z]+_[a-z_]+|[A-Z][a-z]+[A-Z][a-zA-Z]*)\b`)
)

// fixedVocabulary are domain terms always worth tagging when mentioned.
var fixedVocabulary = []string{
	"coolify", "docker", "github", "memory", "skill", "ollama", "qdrant",
}

// ExtractEntities derives up to 10 entity tags from conversational text:
// @mentions, URL domains, code-like identifiers (capped at 5), and fixed
// vocabulary hits.
func ExtractEntities(text string) []string {
	seen := make(map[string]bool)
	var entities []string
	add := func(e string) {
		if e == "" || seen[e] {
			return
		}
		seen[e] = true
		entities = append(entities, e)
	}

	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range domainRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	codeTerms := codeTermRe.FindAllString(text, -1)
	if len(codeTerms) > maxCodeTerms {
		codeTerms = codeTerms[:maxCodeTerms]
	}
	for _, t := range codeTerms {
		add(t)
	}
	lower := strings.ToLower(text)
	for _, kw := range fixedVocabulary {
		if strings.Contains(lower, kw) {
			add(kw)
		}
	}

	if len(entities) > maxEntities {
		entities = entities[:maxEntities]
	}
	return entities
}
