package advisor

import (
	"fmt"

	"idealauncher/internal/idea"
)

const reviewHeader = `Respond with ONLY valid JSON (no markdown, no extra text): {"isValid": boolean, "feedback": "string"}
The feedback should be a single encouraging sentence (15-25 words) about what to improve.

Criteria for valid:
`

// criteria holds the review checklist for well-known stage ids.
var criteria = map[idea.StageID]struct {
	subject string
	checks  []string
}{
	"problem": {
		subject: "a real-world problem or struggle they want to solve",
		checks: []string{
			"Describes a real struggle or pain point (not generic, has emotional weight)",
			"Is specific enough to understand what bothers them",
			"Shows they've thought about the problem",
		},
	},
	"why": {
		subject: "why their app idea matters",
		checks: []string{
			"Names a real frustration or motivation",
			"Is specific enough to understand what bothers them",
			"Shows they've thought about the problem",
		},
	},
	"people": {
		subject: "their target audience",
		checks: []string{
			`Identifies a specific group of people (not "everyone")`,
			"Describes who they are in some detail (students, friends, parents, etc.)",
			"Shows understanding of the audience's characteristics",
		},
	},
	"who": {
		subject: "who their app is for",
		checks: []string{
			`Identifies a specific group of people (not "everyone")`,
			"Describes who they are in some detail",
			"Shows understanding of the audience's characteristics",
		},
	},
	"solution": {
		subject: "an app idea or solution",
		checks: []string{
			"Describes what the app actually does (concrete, not vague)",
			"Shows they understand the main purpose or feature",
			"Is specific enough to build from",
		},
	},
	"what": {
		subject: "what their app does",
		checks: []string{
			"Describes what the app actually does (concrete, not vague)",
			"Shows they understand the main purpose or feature",
			"Is specific enough to build from",
		},
	},
	"how": {
		subject: "how people would use their app",
		checks: []string{
			"Walks through at least one concrete interaction",
			"Mentions what the user sees or does",
			"Is specific enough to build from",
		},
	},
}

// reviewPrompt builds the review instructions for a stage. Unknown stage ids
// get a generic checklist based on the stage label.
func reviewPrompt(spec idea.StageSpec) string {
	c, ok := criteria[spec.ID]
	if !ok {
		c.subject = fmt.Sprintf("the %q part of their app idea", spec.Label)
		c.checks = []string{
			"Is concrete rather than generic",
			"Is specific enough to build from",
		}
	}

	p := fmt.Sprintf("You are evaluating a user's description of %s.\n", c.subject) + reviewHeader
	for _, check := range c.checks {
		p += "- " + check + "\n"
	}
	p += "- Isn't just random words or placeholder text\n\nText to evaluate:"
	return p
}
