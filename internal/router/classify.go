// Package router picks a conversation category for chat prompts and a
// storage container for uploads. The two lookups are independent.
package router

import (
	"strings"

	"chatdesk/internal/domain"
)

type rule struct {
	category domain.Category
	keywords []string
}

// Evaluated in order; the first rule with any matching keyword wins.
var rules = []rule{
	{category: domain.CategoryHR, keywords: []string{"salary", "benefit", "hr", "leave", "hiring"}},
	{category: domain.CategoryLegal, keywords: []string{"contract", "policy", "compliance", "nda", "legal"}},
	{category: domain.CategoryL1, keywords: []string{"ticket", "issue", "bug", "incident"}},
}

// Classify returns the category of text using substring keyword matching.
// Text matching no rule is l2.
func Classify(text string) domain.Category {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.category
			}
		}
	}
	return domain.CategoryL2
}

// ClassifyMessages classifies the space-joined contents of messages.
func ClassifyMessages(messages []domain.ChatMessage) domain.Category {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.Content)
	}
	return Classify(strings.Join(parts, " "))
}
