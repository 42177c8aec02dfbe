// Package manifest reads the content files a deployment can ship alongside its
// configuration: the instruction catalog (CSV) and the curated concepts (YAML).
//
// Instruction catalog CSV format:
//
//	category,text
//	design,Make it mobile-friendly and responsive
//	design,"Use clear, simple language and typography"
//	functionality,Prioritize fast loading times
//	users,Avoid technical jargon
//
// Rows are seeded in file order, so the row order becomes the display order
// within each category. Category names are checked against the configured
// categories later, when the blueprint is validated.
package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is a single row of the instruction catalog.
type Entry struct {
	// Category is the instruction category (e.g., "design").
	Category string

	// Text is the instruction text shown to the user and emitted into the
	// prompt when approved.
	Text string
}

// Catalog holds all entries parsed from a catalog CSV file.
type Catalog struct {
	// Entries are the catalog entries in file order.
	Entries []Entry
}

// ReadFromFile reads and parses an instruction catalog CSV file.
func ReadFromFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return readFromReader(f)
}

// ReadFromString parses an instruction catalog from a CSV string.
func ReadFromString(data string) (*Catalog, error) {
	return readFromReader(strings.NewReader(data))
}

func readFromReader(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	colIndex := buildColumnIndex(header)
	if err := validateColumns(colIndex); err != nil {
		return nil, err
	}

	var entries []Entry
	lineNum := 1 // header was line 1
	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog line %d: %w", lineNum, err)
		}

		entry := Entry{
			Category: strings.ToLower(getField(record, colIndex, "category")),
			Text:     getField(record, colIndex, "text"),
		}
		if entry.Category == "" && entry.Text == "" {
			continue
		}
		if entry.Category == "" {
			return nil, fmt.Errorf("catalog line %d: category is required", lineNum)
		}
		if entry.Text == "" {
			return nil, fmt.Errorf("catalog line %d: text is required", lineNum)
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog contains no instructions")
	}

	return &Catalog{Entries: entries}, nil
}

// requiredColumns are the columns that must be present in the catalog CSV.
var requiredColumns = []string{"category", "text"}

func buildColumnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.ToLower(col))] = i
	}
	return index
}

func validateColumns(colIndex map[string]int) error {
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return fmt.Errorf("catalog missing required column: %s", col)
		}
	}
	return nil
}

func getField(record []string, colIndex map[string]int, column string) string {
	idx, ok := colIndex[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// Categories returns the distinct categories in order of first appearance.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range c.Entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}

// InCategory returns the entries of one category in file order.
func (c *Catalog) InCategory(category string) []Entry {
	var out []Entry
	for _, e := range c.Entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}
