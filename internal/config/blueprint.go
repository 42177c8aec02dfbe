package config

import (
	"idealauncher/internal/assembler"
	"idealauncher/internal/idea"
	"idealauncher/internal/store"
)

// Blueprint converts the configuration into a validated [idea.Blueprint].
func (c *Config) Blueprint() (*idea.Blueprint, error) {
	bp := &idea.Blueprint{
		Threshold:   c.Threshold,
		Policy:      idea.ReadinessPolicy(c.Readiness.Policy),
		MinApproved: c.Readiness.MinApproved,
		MinSparks:   c.Entry.MinSparks,

		StageDuration: c.Timer.StageDuration,
	}

	for _, s := range c.Stages {
		bp.Stages = append(bp.Stages, idea.StageSpec{
			ID:      idea.StageID(s.ID),
			Label:   s.Label,
			Prompts: s.Prompts,
		})
	}
	for _, cat := range c.Categories {
		bp.Categories = append(bp.Categories, idea.CategorySpec{
			ID:          idea.Category(cat.ID),
			Heading:     cat.Heading,
			Placeholder: cat.Placeholder,
		})
	}
	for _, in := range c.Catalog {
		bp.Catalog = append(bp.Catalog, idea.InstructionTemplate{
			Category: idea.Category(in.Category),
			Text:     in.Text,
		})
	}
	for _, t := range c.Templates {
		bp.Concepts = append(bp.Concepts, idea.Concept{
			ID:           t.ID,
			Title:        t.Title,
			Description:  t.Description,
			ProblemAngle: t.ProblemAngle,
			Audience:     t.Audience,
			CoreFunction: t.CoreFunction,
		})
	}

	if err := bp.Validate(); err != nil {
		return nil, err
	}
	return bp, nil
}

// AssemblerOptions returns the prompt assembly settings.
func (c *Config) AssemblerOptions() assembler.Options {
	return assembler.Options{
		DefaultName:      c.Assembly.DefaultName,
		HeaderTemplate:   c.Assembly.HeaderTemplate,
		ClosingDirective: c.Assembly.ClosingDirective,
	}
}

// StatePath returns where the state file lives.
// See [store.ResolvePath] for the resolution order.
// Without a user config directory the state lives in ./.idealauncher.
func (c *Config) StatePath() string {
	dir, err := ConfigDir()
	if err != nil {
		dir = ".idealauncher"
	}
	return store.ResolvePath(dir, c.State.Path)
}

// AIReady reports whether remote AI features can be used.
func (c *Config) AIReady() bool {
	return c.AI.Enabled && c.AI.APIKey != ""
}
