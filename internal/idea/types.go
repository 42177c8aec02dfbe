// Package idea holds the workflow state of an idea launch session.
//
// A session walks a user from an initial idea selection through a fixed set of
// stages (free text that is locked once long enough), then through a catalog
// of build instructions the user approves or adds to. The resulting [State] is
// the single source of truth and is serialized wholesale after every mutation.
//
// Key types:
//   - [Blueprint] is the validated, configuration-driven shape of a deployment
//     (stage ids, threshold, categories, default catalog, readiness policy)
//   - [State] is the serializable session state; all mutations are methods on it
//   - [Stage] is one locked-or-unlocked answer
//   - [Instruction] is one selectable build detail
//   - [Snapshot] is an immutable view of a State used for prompt assembly
//
// Every mutation either succeeds or returns one of the package sentinel errors
// and leaves the State untouched.
package idea

import "time"

// StageID identifies a stage. Valid values are the stage ids declared by the
// deployment's [Blueprint].
type StageID string

// Category identifies an instruction category. Valid values are the
// categories declared by the deployment's [Blueprint].
type Category string

// View is one step of the linear workflow a session moves through.
type View string

const (
	// ViewEntrySelection is where the user picks a template, sparks or skips.
	ViewEntrySelection View = "entry-selection"

	// ViewStageWorkspace is where stage texts are written and locked.
	ViewStageWorkspace View = "stage-workspace"

	// ViewInstructionReview is where instructions are approved and added.
	ViewInstructionReview View = "instruction-review"

	// ViewFinalAssembly shows the assembled prompt. It is terminal.
	ViewFinalAssembly View = "final-assembly"
)

// IsValid reports whether v is one of the four workflow views.
func (v View) IsValid() bool {
	switch v {
	case ViewEntrySelection, ViewStageWorkspace, ViewInstructionReview, ViewFinalAssembly:
		return true
	}
	return false
}

// Stage is one articulated part of the idea.
type Stage struct {
	ID     StageID `json:"id"`
	Label  string  `json:"label"`
	Text   string  `json:"text"`
	Locked bool    `json:"locked"`
}

// Instruction is one selectable build detail.
//
// Catalog-seeded instructions have ids of the form "default-<index>" and can
// not be removed. Custom instructions have ids of the form "custom-<uuid>".
type Instruction struct {
	ID         string   `json:"id"`
	Category   Category `json:"category"`
	Text       string   `json:"text"`
	IsApproved bool     `json:"isApproved"`
	IsCustom   bool     `json:"isCustom,omitempty"`
}

// Selection records how the user entered the workflow. At most one of the
// three forms is set.
type Selection struct {
	// TemplateID is the id of the curated concept the user picked.
	TemplateID string `json:"templateId,omitempty"`

	// Sparks are free-text idea sparks the user caught.
	Sparks []string `json:"sparks,omitempty"`

	// Skipped is set when the user explicitly skipped the selection.
	Skipped bool `json:"skipped,omitempty"`
}

// IsMade reports whether any selection has been recorded.
func (s Selection) IsMade() bool {
	return s.TemplateID != "" || len(s.Sparks) > 0 || s.Skipped
}

// ArtifactSource tells where an assembled prompt came from.
type ArtifactSource string

const (
	// SourceDeterministic marks text produced by the local template algorithm.
	SourceDeterministic ArtifactSource = "deterministic"

	// SourceEnhanced marks text tidied by the external generation service.
	SourceEnhanced ArtifactSource = "enhanced"
)

// Artifact is an assembled prompt. It is never patched; a new assembly
// replaces it.
type Artifact struct {
	Text        string         `json:"text"`
	Source      ArtifactSource `json:"source"`
	GeneratedAt time.Time      `json:"generatedAt"`
}
