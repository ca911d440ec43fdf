package llmclient

import (
	"fmt"

	"aeoaudit/model"
)

const promptCount = 20

// GeneratePrompts synthesizes up to 20 prompts from the page's questions,
// keywords, and H2 headings (§4.E "AI Citation"), taking all questions
// first, then H2 headings, then keywords, until the target count is reached
// or sources are exhausted.
func GeneratePrompts(pm *model.PageModel) []string {
	var prompts []string

	for _, q := range pm.Questions {
		if len(prompts) >= promptCount {
			return prompts
		}
		prompts = append(prompts, q.Text)
	}

	for _, h := range pm.Headings {
		if len(prompts) >= promptCount {
			return prompts
		}
		if h.Level == 2 {
			prompts = append(prompts, fmt.Sprintf("Tell me about %s", h.Text))
		}
	}

	for _, kw := range pm.Keywords {
		if len(prompts) >= promptCount {
			return prompts
		}
		prompts = append(prompts, fmt.Sprintf("What is %s?", kw))
	}

	return prompts
}
