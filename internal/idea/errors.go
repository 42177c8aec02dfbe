package idea

import "errors"

// Sentinel errors returned by [State] mutations. A mutation that returns one
// of these leaves the State unchanged; callers may treat them as a rejected
// no-op rather than a failure.
var (
	// ErrUnknownStage is returned for a stage id the blueprint does not declare.
	ErrUnknownStage = errors.New("unknown stage")

	// ErrStageLocked is returned when writing to or re-locking a locked stage.
	ErrStageLocked = errors.New("stage is locked")

	// ErrBelowThreshold is returned when locking a stage whose text is shorter
	// than the configured threshold.
	ErrBelowThreshold = errors.New("stage text is below the lock threshold")

	// ErrUnknownCategory is returned for a category the blueprint does not declare.
	ErrUnknownCategory = errors.New("unknown instruction category")

	// ErrEmptyInstruction is returned when adding a custom instruction with
	// empty or whitespace-only text.
	ErrEmptyInstruction = errors.New("instruction text is empty")

	// ErrInstructionNotFound is returned when no instruction has the given id.
	ErrInstructionNotFound = errors.New("instruction not found")

	// ErrNotCustom is returned when removing a catalog-seeded instruction.
	ErrNotCustom = errors.New("only custom instructions can be removed")

	// ErrAlreadySelected is returned when an entry selection was already made.
	ErrAlreadySelected = errors.New("idea selection already made")

	// ErrUnknownTemplate is returned for a template id the blueprint does not declare.
	ErrUnknownTemplate = errors.New("unknown idea template")

	// ErrTooFewSparks is returned when fewer sparks than required are selected.
	ErrTooFewSparks = errors.New("not enough sparks selected")

	// ErrTimerRunning is returned when the workshop timer is started twice.
	ErrTimerRunning = errors.New("timer is already running")

	// ErrTimerStopped is returned when a stopped workshop timer is stopped.
	ErrTimerStopped = errors.New("timer is not running")

	// ErrStateMismatch is returned by [Blueprint.Adopt] when a stored state
	// does not fit the blueprint (different stage set, unknown categories,
	// duplicate ids or an unsupported version).
	ErrStateMismatch = errors.New("stored state does not match configuration")
)
