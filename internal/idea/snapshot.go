package idea

// Section is the approved content of one category, in display order.
type Section struct {
	Category CategorySpec

	// Approved holds the text of every approved instruction of the category,
	// in original relative order. Empty when nothing is approved.
	Approved []string
}

// Snapshot is an immutable, assembly-ready copy of a [State].
//
// Stages follow the blueprint declaration order, not insertion or lock order.
// Sections follow the blueprint category order.
type Snapshot struct {
	DisplayName string
	Stages      []Stage
	Sections    []Section
	Selection   Selection

	// Concept is the curated concept the session started from, if any.
	Concept *Concept
}

// Snapshot captures the current state for assembly. Later mutations of the
// state do not affect the returned value.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		DisplayName: s.DisplayName,
		Stages:      s.OrderedStages(),
		Selection: Selection{
			TemplateID: s.Selection.TemplateID,
			Sparks:     append([]string(nil), s.Selection.Sparks...),
			Skipped:    s.Selection.Skipped,
		},
	}

	for _, c := range s.bp.Categories {
		sec := Section{Category: c}
		for _, in := range s.Instructions {
			if in.Category == c.ID && in.IsApproved {
				sec.Approved = append(sec.Approved, in.Text)
			}
		}
		snap.Sections = append(snap.Sections, sec)
	}

	if s.Selection.TemplateID != "" {
		if c, ok := s.bp.Concept(s.Selection.TemplateID); ok {
			snap.Concept = &c
		}
	}

	return snap
}
