package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Priority of an item. The persisted representation keeps the localized
// tokens of pre-existing data files so those documents round-trip.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var priorityTokens = map[Priority]string{
	PriorityLow:    "Baixa",
	PriorityMedium: "Média",
	PriorityHigh:   "Alta",
}

// ParsePriority accepts both the neutral and the persisted localized forms.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "Low", "Baixa":
		return PriorityLow, nil
	case "Medium", "Média":
		return PriorityMedium, nil
	case "High", "Alta":
		return PriorityHigh, nil
	case "":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

func (p Priority) String() string { return string(p) }

func (p Priority) MarshalJSON() ([]byte, error) {
	tok, ok := priorityTokens[p]
	if !ok {
		return nil, fmt.Errorf("unknown priority %q", string(p))
	}
	return json.Marshal(tok)
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePriority(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Item is a single card. It belongs to exactly one list; its position in the
// list's Items slice is the drag-and-drop visual order.
type Item struct {
	ID          int      `json:"id"`
	Text        string   `json:"item_text"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Completed   bool     `json:"completed"`
}

var ErrEmptyItemText = errors.New("item text must not be empty")

// NewItem builds an item with defaults applied (priority Low, not completed,
// no tags). The id is assigned by the owning list on insert.
func NewItem(text string, priority Priority, description string, tags []string, completed bool) (Item, error) {
	if strings.TrimSpace(text) == "" {
		return Item{}, ErrEmptyItemText
	}
	if priority == "" {
		priority = PriorityLow
	}
	return Item{
		Text:        text,
		Priority:    priority,
		Description: description,
		Tags:        dedupeTags(tags),
		Completed:   completed,
	}, nil
}

// ParseTags splits free-form user input on commas, trims whitespace and drops
// empties and duplicates. Matching is case-sensitive.
func ParseTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return dedupeTags(tags)
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// HasAnyTag reports whether the item carries at least one of the given tags.
func (i Item) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range i.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Clone returns a value copy with its own tags slice, used when a drag
// transfer copies an item into another list.
func (i Item) Clone() Item {
	c := i
	if i.Tags != nil {
		c.Tags = append([]string(nil), i.Tags...)
	}
	return c
}
