package idea

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StateVersion is the schema version written into every new [State].
const StateVersion = 1

// ReadinessPolicy selects how instruction readiness is judged before the
// final assembly view can be entered.
type ReadinessPolicy string

const (
	// PolicyPerCategory requires at least one approved instruction in every
	// category.
	PolicyPerCategory ReadinessPolicy = "per-category"

	// PolicyMinTotal requires a minimum number of approved instructions
	// across all categories.
	PolicyMinTotal ReadinessPolicy = "min-total"
)

// StageSpec declares one stage of a deployment.
type StageSpec struct {
	ID    StageID
	Label string

	// Prompts are guiding questions shown while the stage is written. The
	// active one advances as the text grows; see [State.ActivePrompt].
	Prompts []string
}

// CategorySpec declares one instruction category.
type CategorySpec struct {
	ID Category

	// Heading is the section title used in the assembled prompt.
	Heading string

	// Placeholder is the bullet emitted when no instruction of this category
	// is approved.
	Placeholder string
}

// InstructionTemplate is a catalog entry before seeding.
type InstructionTemplate struct {
	Category Category
	Text     string
}

// Concept is a curated idea the user can start from.
type Concept struct {
	ID           string
	Title        string
	Description  string
	ProblemAngle string
	Audience     string
	CoreFunction string
}

// Blueprint is the validated shape of one deployment: which stages exist and
// in which order, how long a stage must be before it locks, which categories
// exist and the default catalog.
//
// A Blueprint is immutable after [Blueprint.Validate] succeeds. Create states
// with [Blueprint.NewState] or attach a decoded state with [Blueprint.Adopt].
type Blueprint struct {
	Stages      []StageSpec
	Threshold   int
	Categories  []CategorySpec
	Catalog     []InstructionTemplate
	Policy      ReadinessPolicy
	MinApproved int
	MinSparks   int
	Concepts    []Concept

	// StageDuration is the workshop time planned per stage. Zero disables
	// timer nudges.
	StageDuration time.Duration

	// NewID generates ids for custom instructions. Defaults to
	// "custom-" followed by a random UUID.
	NewID func() string
}

// Validate checks that the blueprint is internally consistent: stage and
// category ids are non-empty and unique, every catalog entry names a declared
// category, and the readiness policy is known.
func (b *Blueprint) Validate() error {
	if len(b.Stages) == 0 {
		return fmt.Errorf("blueprint: at least one stage is required")
	}
	if b.Threshold <= 0 {
		return fmt.Errorf("blueprint: lock threshold must be positive, got %d", b.Threshold)
	}
	if b.StageDuration < 0 {
		return fmt.Errorf("blueprint: stage duration must not be negative, got %s", b.StageDuration)
	}

	stages := make(map[StageID]bool, len(b.Stages))
	for _, s := range b.Stages {
		if strings.TrimSpace(string(s.ID)) == "" {
			return fmt.Errorf("blueprint: stage id must not be empty")
		}
		if stages[s.ID] {
			return fmt.Errorf("blueprint: duplicate stage %q", s.ID)
		}
		stages[s.ID] = true
	}

	if len(b.Categories) == 0 {
		return fmt.Errorf("blueprint: at least one category is required")
	}
	categories := make(map[Category]bool, len(b.Categories))
	for _, c := range b.Categories {
		if strings.TrimSpace(string(c.ID)) == "" {
			return fmt.Errorf("blueprint: category id must not be empty")
		}
		if categories[c.ID] {
			return fmt.Errorf("blueprint: duplicate category %q", c.ID)
		}
		categories[c.ID] = true
	}

	for i, tmpl := range b.Catalog {
		if !categories[tmpl.Category] {
			return fmt.Errorf("blueprint: catalog entry %d: %w: %q", i, ErrUnknownCategory, tmpl.Category)
		}
		if strings.TrimSpace(tmpl.Text) == "" {
			return fmt.Errorf("blueprint: catalog entry %d: %w", i, ErrEmptyInstruction)
		}
	}

	switch b.Policy {
	case PolicyPerCategory:
	case PolicyMinTotal:
		if b.MinApproved < 1 {
			return fmt.Errorf("blueprint: policy %q needs a minimum of at least 1, got %d", b.Policy, b.MinApproved)
		}
	default:
		return fmt.Errorf("blueprint: unknown readiness policy %q", b.Policy)
	}

	if b.MinSparks < 0 {
		return fmt.Errorf("blueprint: minimum sparks must not be negative")
	}

	concepts := make(map[string]bool, len(b.Concepts))
	for _, c := range b.Concepts {
		if c.ID == "" {
			return fmt.Errorf("blueprint: concept id must not be empty")
		}
		if concepts[c.ID] {
			return fmt.Errorf("blueprint: duplicate concept %q", c.ID)
		}
		concepts[c.ID] = true
	}

	return nil
}

// StageIDs returns the configured stage ids in declaration order.
func (b *Blueprint) StageIDs() []StageID {
	ids := make([]StageID, len(b.Stages))
	for i, s := range b.Stages {
		ids[i] = s.ID
	}
	return ids
}

// Stage returns the spec for a stage id.
func (b *Blueprint) Stage(id StageID) (StageSpec, bool) {
	for _, s := range b.Stages {
		if s.ID == id {
			return s, true
		}
	}
	return StageSpec{}, false
}

// Category returns the spec for a category id.
func (b *Blueprint) Category(id Category) (CategorySpec, bool) {
	for _, c := range b.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return CategorySpec{}, false
}

// Concept returns the curated concept with the given id.
func (b *Blueprint) Concept(id string) (Concept, bool) {
	for _, c := range b.Concepts {
		if c.ID == id {
			return c, true
		}
	}
	return Concept{}, false
}

func (b *Blueprint) newCustomID() string {
	if b.NewID != nil {
		return b.NewID()
	}
	return "custom-" + uuid.NewString()
}

// NewState returns a fresh state: every stage empty and unlocked, the catalog
// seeded, nothing selected, and the view at entry selection.
func (b *Blueprint) NewState() *State {
	s := &State{
		Version: StateVersion,
		Stages:  make(map[StageID]*Stage, len(b.Stages)),
		View:    ViewEntrySelection,
		bp:      b,
	}
	for _, spec := range b.Stages {
		s.Stages[spec.ID] = &Stage{ID: spec.ID, Label: spec.Label}
	}
	s.Seed(b.Catalog)
	return s
}

// Adopt attaches a decoded state to the blueprint after checking it still fits:
// the version is supported, the stage keys are exactly the configured set,
// every instruction names a known category and ids are unique. Stage labels are
// refreshed from the blueprint.
//
// Adopt returns an error wrapping [ErrStateMismatch] when the state does not
// fit; callers should then discard it and start fresh.
func (b *Blueprint) Adopt(s *State) error {
	if s == nil {
		return fmt.Errorf("%w: no state", ErrStateMismatch)
	}
	if s.Version != StateVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrStateMismatch, s.Version, StateVersion)
	}
	if len(s.Stages) != len(b.Stages) {
		return fmt.Errorf("%w: %d stages, want %d", ErrStateMismatch, len(s.Stages), len(b.Stages))
	}
	for _, spec := range b.Stages {
		st, ok := s.Stages[spec.ID]
		if !ok || st == nil {
			return fmt.Errorf("%w: missing stage %q", ErrStateMismatch, spec.ID)
		}
		st.ID = spec.ID
		st.Label = spec.Label
	}

	seen := make(map[string]bool, len(s.Instructions))
	for _, in := range s.Instructions {
		if _, ok := b.Category(in.Category); !ok {
			return fmt.Errorf("%w: instruction %q has unknown category %q", ErrStateMismatch, in.ID, in.Category)
		}
		if in.ID == "" || seen[in.ID] {
			return fmt.Errorf("%w: duplicate instruction id %q", ErrStateMismatch, in.ID)
		}
		seen[in.ID] = true
	}

	if s.View == "" {
		s.View = ViewEntrySelection
	}
	if !s.View.IsValid() {
		return fmt.Errorf("%w: unknown view %q", ErrStateMismatch, s.View)
	}
	if s.Selection.TemplateID != "" {
		if _, ok := b.Concept(s.Selection.TemplateID); !ok {
			return fmt.Errorf("%w: unknown template %q", ErrStateMismatch, s.Selection.TemplateID)
		}
	}

	s.bp = b
	return nil
}
