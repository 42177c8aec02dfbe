package config

import (
	"fmt"
	"time"

	"idealauncher/internal/assembler"
	"idealauncher/internal/gemini"
)

// Variant names.
const (
	VariantCompass  = "compass"
	VariantLauncher = "launcher"
)

// DefaultAITimeout bounds each remote call unless configured otherwise.
const DefaultAITimeout = 15 * time.Second

// DefaultStageDuration is the workshop time planned per stage.
const DefaultStageDuration = 20 * time.Second

// Variants returns the known variant names in display order.
func Variants() []string {
	return []string{VariantCompass, VariantLauncher}
}

// Preset returns the complete configuration for a variant. Unknown names
// return an error.
func Preset(variant string) (*Config, error) {
	switch variant {
	case VariantCompass, "":
		return compassPreset(), nil
	case VariantLauncher:
		return launcherPreset(), nil
	default:
		return nil, fmt.Errorf("unknown variant %q (valid: %v)", variant, Variants())
	}
}

func baseConfig(variant string) *Config {
	return &Config{
		Variant: variant,
		Catalog: defaultCatalog(),
		Templates: []ConceptConfig{
			{
				ID:           "choose-mate",
				Title:        "ChooseMate",
				Description:  `A "just pick for me" app that ends choice paralysis with confident suggestions`,
				ProblemAngle: "Decision fatigue and analysis paralysis when faced with too many options",
				Audience:     "Students and professionals who struggle with decision-making",
				CoreFunction: "Give users one smart, curated option and remove the burden of choice",
			},
			{
				ID:           "streak-keeper",
				Title:        "StreakKeeper",
				Description:  "A streak-based accountability partner that makes consistency feel like a game",
				ProblemAngle: "Losing motivation halfway through and struggling to stick to habits",
				Audience:     "Anyone trying to build lasting habits but lacking accountability",
				CoreFunction: "Gamify habit tracking with visual streaks and gentle nudges",
			},
			{
				ID:           "focus-flow",
				Title:        "FocusFlow",
				Description:  "A study buddy that holds you accountable with gentle, honest check-ins",
				ProblemAngle: "Not being able to focus and feeling bored with nothing structured to do",
				Audience:     "Students and learners seeking an accountability partner",
				CoreFunction: "Create a judgment-free check-in system that keeps users on track",
			},
		},
		Timer: TimerConfig{StageDuration: DefaultStageDuration},
		Assembly: AssemblyConfig{
			DefaultName:         assembler.DefaultName,
			HeaderTemplate:      assembler.DefaultHeaderTemplate,
			ClosingDirective:    assembler.DefaultClosingDirective,
			RequireConfirmation: true,
		},
		AI: AIConfig{
			Model:       gemini.DefaultModel,
			Timeout:     DefaultAITimeout,
			Temperature: 0.7,
		},
		Output: OutputConfig{
			Markdown: MarkdownConfig{
				Enabled:  true,
				Style:    "dark",
				WordWrap: 100,
				Emoji:    true,
			},
		},
	}
}

func defaultCatalog() []InstructionConfig {
	return []InstructionConfig{
		{Category: "design", Text: "Make it mobile-friendly and responsive"},
		{Category: "design", Text: "Use clear, simple language and typography"},
		{Category: "design", Text: "Apply a modern, minimalist color palette"},
		{Category: "design", Text: "Include intuitive navigation gestures"},
		{Category: "functionality", Text: "Prioritize fast loading times"},
		{Category: "functionality", Text: "Ensure core actions are reachable in one tap"},
		{Category: "functionality", Text: "Add helpful error messages and feedback"},
		{Category: "functionality", Text: "Keep state consistent across interactions"},
		{Category: "functionality", Text: "Include a simple onboarding sequence"},
		{Category: "users", Text: "Optimize for short, frequent usage sessions"},
		{Category: "users", Text: "Avoid technical jargon"},
		{Category: "users", Text: "Build with accessibility in mind"},
	}
}

func baseCategories() []CategoryConfig {
	return []CategoryConfig{
		{ID: "design", Heading: "VISUAL VIBE", Placeholder: "Premium, clean aesthetic"},
		{ID: "functionality", Heading: "HOW IT WORKS", Placeholder: "Smooth, interactive features"},
		{ID: "users", Heading: "USER FEELINGS", Placeholder: "Designed specifically for the crowd mentioned above"},
	}
}

// compassPreset is the four-stage why/who/what/how workflow.
func compassPreset() *Config {
	cfg := baseConfig(VariantCompass)
	cfg.Stages = []StageConfig{
		{
			ID:    "why",
			Label: "Why",
			Prompts: []string{
				"What frustrates you enough to build something about it?",
				"Why does this matter? What happens if nothing changes?",
				"Can you give a specific moment when this bothered you?",
			},
		},
		{
			ID:    "who",
			Label: "Who",
			Prompts: []string{
				"Who runs into this? Describe them.",
				"What do they do today to get by?",
				"What would change for them if this worked perfectly?",
			},
		},
		{
			ID:    "what",
			Label: "What",
			Prompts: []string{
				"What should the app actually DO?",
				"What's the ONE thing it must do really well?",
				"What should it NOT try to do?",
			},
		},
		{
			ID:    "how",
			Label: "How",
			Prompts: []string{
				"Walk through the first minute someone spends in the app.",
				"What do they see and tap?",
				"What brings them back tomorrow?",
			},
		},
	}
	cfg.Threshold = 50
	cfg.Categories = append(baseCategories(),
		CategoryConfig{ID: "screens", Heading: "SCREENS", Placeholder: "Whatever screens the idea needs"},
	)
	cfg.Readiness = ReadinessConfig{Policy: "per-category"}
	cfg.Entry = EntryConfig{MinSparks: 1}
	return cfg
}

// launcherPreset is the three-stage problem/people/solution workflow.
func launcherPreset() *Config {
	cfg := baseConfig(VariantLauncher)
	cfg.Stages = []StageConfig{
		{
			ID:    "problem",
			Label: "The Struggle",
			Prompts: []string{
				"What problem or challenge are you trying to address?",
				"Why does this problem matter? What happens if nothing changes?",
				"Can you give a specific example of this problem in action?",
			},
		},
		{
			ID:    "people",
			Label: "The Crowd",
			Prompts: []string{
				"Who specifically experiences this problem? Describe them.",
				"What do these people currently do to cope with this problem?",
				"If your solution worked perfectly, what would change in their daily life?",
			},
		},
		{
			ID:    "solution",
			Label: "The Big Idea",
			Prompts: []string{
				"What should your app or tool actually DO? (Focus on actions, not features)",
				"What's the ONE thing it must do really well?",
				"What should it NOT try to do? (What's out of scope?)",
			},
		},
	}
	cfg.Threshold = 100
	cfg.Categories = baseCategories()
	cfg.Readiness = ReadinessConfig{Policy: "min-total", MinApproved: 5}
	cfg.Entry = EntryConfig{MinSparks: 3}
	return cfg
}
