// Package knowledge holds the condition records the matcher scores against.
// A Base is built once at startup and never mutated afterwards.
package knowledge

import (
	"encoding/json"
	"fmt"
)

// Condition is one knowledge-base record. Fields other than the name and
// keywords are kept as raw JSON so they round-trip untouched.
type Condition struct {
	Name       string
	Keywords   []string
	Attributes map[string]json.RawMessage
}

const (
	fieldCondition = "condition"
	fieldKeywords  = "keywords"
)

func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw[fieldCondition]; ok {
		if err := json.Unmarshal(v, &c.Name); err != nil {
			return fmt.Errorf("condition: %w", err)
		}
		delete(raw, fieldCondition)
	}
	if v, ok := raw[fieldKeywords]; ok {
		if err := json.Unmarshal(v, &c.Keywords); err != nil {
			return fmt.Errorf("keywords: %w", err)
		}
		delete(raw, fieldKeywords)
	}
	if len(raw) > 0 {
		c.Attributes = raw
	}
	return nil
}

func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Fields())
}

// Fields flattens the record back into its JSON object form.
func (c Condition) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(c.Attributes)+2)
	for k, v := range c.Attributes {
		out[k] = v
	}
	keywords := c.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	out[fieldCondition] = c.Name
	out[fieldKeywords] = keywords
	return out
}

// Base is an ordered, read-only collection of conditions.
type Base struct {
	conditions []Condition
}

// NewBase copies conditions into a new Base.
func NewBase(conditions []Condition) *Base {
	cp := make([]Condition, len(conditions))
	copy(cp, conditions)
	return &Base{conditions: cp}
}

// Empty returns a Base with no records.
func Empty() *Base {
	return &Base{}
}

// Conditions returns the records in load order. Callers must not modify them.
func (b *Base) Conditions() []Condition {
	return b.conditions
}

func (b *Base) Len() int {
	return len(b.conditions)
}

// Names lists condition names in load order.
func (b *Base) Names() []string {
	names := make([]string, 0, len(b.conditions))
	for _, c := range b.conditions {
		names = append(names, c.Name)
	}
	return names
}
