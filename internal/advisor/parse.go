package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// maxItems caps how many suggestions are kept from one response.
const maxItems = 3

// ErrUnparseable is returned when a response contains nothing usable.
var ErrUnparseable = errors.New("response could not be parsed")

// extractObject returns the outermost {...} span of s, tolerating markdown
// fences and chatter around it.
func extractObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// ParseItems extracts suggestion items from a response.
//
// The preferred shape is a JSON object with an "items" array of strings. When
// no such object is found, the text is split into sentences instead. Returns
// [ErrUnparseable] when neither yields a non-empty item.
func ParseItems(response string) ([]string, error) {
	if obj, ok := extractObject(response); ok {
		var payload struct {
			Items []string `json:"items"`
		}
		if err := json.Unmarshal([]byte(obj), &payload); err == nil {
			if items := clean(payload.Items); len(items) > 0 {
				return items, nil
			}
		}
	}

	if items := clean(splitSentences(response)); len(items) > 0 {
		return items, nil
	}
	return nil, ErrUnparseable
}

// ParseFeedback extracts a review from a {"isValid": bool, "feedback": string}
// response.
func ParseFeedback(response string) (Feedback, error) {
	obj, ok := extractObject(response)
	if !ok {
		return Feedback{}, fmt.Errorf("%w: no JSON object", ErrUnparseable)
	}

	var payload struct {
		IsValid  *bool  `json:"isValid"`
		Feedback string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(obj), &payload); err != nil {
		return Feedback{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if payload.IsValid == nil {
		return Feedback{}, fmt.Errorf("%w: missing isValid", ErrUnparseable)
	}

	msg := strings.TrimSpace(payload.Feedback)
	if msg == "" {
		msg = "Keep refining your response"
	}
	return Feedback{Ready: *payload.IsValid, Message: msg}, nil
}

// splitSentences breaks free text on sentence ends and line breaks. JSON
// punctuation is never treated as prose.
func splitSentences(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
		return nil
	}

	var out []string
	var cur strings.Builder
	flush := func() {
		out = append(out, cur.String())
		cur.Reset()
	}
	for _, r := range s {
		switch r {
		case '\n':
			flush()
		case '.', '!', '?':
			cur.WriteRune(r)
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

// clean trims bullets and whitespace, drops empties and keeps at most
// maxItems entries.
func clean(items []string) []string {
	var out []string
	for _, it := range items {
		it = strings.TrimSpace(it)
		it = strings.TrimLeft(it, "-*• ")
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		out = append(out, it)
		if len(out) == maxItems {
			break
		}
	}
	return out
}
