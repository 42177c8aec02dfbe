package idea

import (
	"fmt"
	"strings"
)

// Seed replaces the instruction collection with the given templates. Ids are
// assigned as "default-<index>" in template order and nothing is approved.
func (s *State) Seed(templates []InstructionTemplate) {
	s.Instructions = make([]Instruction, len(templates))
	for i, t := range templates {
		s.Instructions[i] = Instruction{
			ID:       fmt.Sprintf("default-%d", i),
			Category: t.Category,
			Text:     t.Text,
		}
	}
	s.invalidatePrompt()
}

func (s *State) indexOf(id string) int {
	for i := range s.Instructions {
		if s.Instructions[i].ID == id {
			return i
		}
	}
	return -1
}

// Instruction returns the instruction with the given id.
func (s *State) Instruction(id string) (Instruction, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Instruction{}, false
	}
	return s.Instructions[i], true
}

// InstructionsIn returns the instructions of one category in collection order.
func (s *State) InstructionsIn(c Category) []Instruction {
	var out []Instruction
	for _, in := range s.Instructions {
		if in.Category == c {
			out = append(out, in)
		}
	}
	return out
}

// ToggleApproval flips the approval of an instruction.
func (s *State) ToggleApproval(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrInstructionNotFound
	}
	s.Instructions[i].IsApproved = !s.Instructions[i].IsApproved
	s.invalidatePrompt()
	return nil
}

// AddCustom appends a user-written instruction. The text is trimmed; custom
// instructions start approved.
func (s *State) AddCustom(c Category, text string) (Instruction, error) {
	if _, ok := s.bp.Category(c); !ok {
		return Instruction{}, ErrUnknownCategory
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Instruction{}, ErrEmptyInstruction
	}

	id := s.bp.newCustomID()
	for s.indexOf(id) >= 0 {
		id = s.bp.newCustomID()
	}

	in := Instruction{
		ID:         id,
		Category:   c,
		Text:       text,
		IsApproved: true,
		IsCustom:   true,
	}
	s.Instructions = append(s.Instructions, in)
	s.invalidatePrompt()
	return in, nil
}

// Remove deletes a custom instruction permanently. Catalog-seeded
// instructions are rejected with [ErrNotCustom].
func (s *State) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrInstructionNotFound
	}
	if !s.Instructions[i].IsCustom {
		return ErrNotCustom
	}
	s.Instructions = append(s.Instructions[:i:i], s.Instructions[i+1:]...)
	s.invalidatePrompt()
	return nil
}

// ApprovedByCategory reports, for every configured category, whether at least
// one instruction of it is approved.
func (s *State) ApprovedByCategory() map[Category]bool {
	out := make(map[Category]bool, len(s.bp.Categories))
	for _, c := range s.bp.Categories {
		out[c.ID] = false
	}
	for _, in := range s.Instructions {
		if in.IsApproved {
			out[in.Category] = true
		}
	}
	return out
}

// ApprovedCount returns the number of approved instructions.
func (s *State) ApprovedCount() int {
	n := 0
	for _, in := range s.Instructions {
		if in.IsApproved {
			n++
		}
	}
	return n
}
