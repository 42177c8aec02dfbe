package manifest

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Concept is a curated idea a session can start from.
type Concept struct {
	// ID is the identifier used by the pick command (e.g., "streak-keeper").
	ID string `yaml:"id"`

	// Title doubles as the default display name of the app.
	Title string `yaml:"title"`

	Description  string `yaml:"description"`
	ProblemAngle string `yaml:"problem_angle"`
	Audience     string `yaml:"audience"`
	CoreFunction string `yaml:"core_function"`
}

// conceptsFile represents the raw YAML structure of a concepts file.
type conceptsFile struct {
	Concepts []Concept `yaml:"concepts"`
}

// ConceptSet holds curated concepts in file order.
type ConceptSet struct {
	Concepts []Concept
}

// ReadConceptsFromFile reads and parses a concepts YAML file.
//
// The YAML format is:
//
//	concepts:
//	  - id: streak-keeper
//	    title: StreakKeeper
//	    description: A habit tracker that celebrates every day you show up.
//	    problem_angle: Habits fall apart the moment you miss a day.
//	    audience: Students building study and gym routines.
//	    core_function: One tap to log a habit and watch the streak grow.
func ReadConceptsFromFile(path string) (*ConceptSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read concepts: %w", err)
	}

	return ReadConceptsFromBytes(data)
}

// ReadConceptsFromBytes parses concepts from YAML bytes.
func ReadConceptsFromBytes(data []byte) (*ConceptSet, error) {
	var raw conceptsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse concepts: %w", err)
	}

	if len(raw.Concepts) == 0 {
		return nil, fmt.Errorf("concepts file contains no concepts")
	}

	seen := make(map[string]bool, len(raw.Concepts))
	for i, c := range raw.Concepts {
		if c.ID == "" {
			return nil, fmt.Errorf("concept at index %d has no id", i)
		}
		if c.Title == "" {
			return nil, fmt.Errorf("concept %q has no title", c.ID)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate concept id %q", c.ID)
		}
		seen[c.ID] = true
	}

	return &ConceptSet{Concepts: raw.Concepts}, nil
}

// Get returns the concept with the given id, or nil if not found.
func (cs *ConceptSet) Get(id string) *Concept {
	for _, c := range cs.Concepts {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// IDs returns all concept ids in sorted order.
func (cs *ConceptSet) IDs() []string {
	ids := make([]string, len(cs.Concepts))
	for i, c := range cs.Concepts {
		ids[i] = c.ID
	}
	sort.Strings(ids)
	return ids
}
