package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Stat-specific validation errors
var (
	// ErrStatIDEmpty is returned when a stat has a nil identifier.
	ErrStatIDEmpty = errors.New("stat ID cannot be empty")

	// ErrStatCategoryEmpty is returned when a stat has no category label.
	ErrStatCategoryEmpty = errors.New("stat category cannot be empty")
)

// StatValueKind identifies which variant of a StatValue is active.
type StatValueKind int

// Stat value variants. The zero kind marks an unset value.
const (
	StatValueInvalid StatValueKind = iota
	StatValueInteger
	StatValueString
)

// String returns the wire name of the kind.
func (k StatValueKind) String() string {
	switch k {
	case StatValueInteger:
		return "integer"
	case StatValueString:
		return "string"
	default:
		return "invalid"
	}
}

// StatValue is either an integer or a string. Exactly one variant is active
// for any value built with IntValue or StringValue.
type StatValue struct {
	kind StatValueKind
	num  int
	text string
}

// IntValue returns an integer stat value.
func IntValue(n int) StatValue {
	return StatValue{kind: StatValueInteger, num: n}
}

// StringValue returns a string stat value.
func StringValue(s string) StatValue {
	return StatValue{kind: StatValueString, text: s}
}

// Kind reports the active variant.
func (v StatValue) Kind() StatValueKind {
	return v.kind
}

// Int returns the integer payload and whether the integer variant is active.
func (v StatValue) Int() (int, bool) {
	return v.num, v.kind == StatValueInteger
}

// Text returns the string payload and whether the string variant is active.
func (v StatValue) Text() (string, bool) {
	return v.text, v.kind == StatValueString
}

// DisplayString renders integers as decimal digits and strings verbatim.
func (v StatValue) DisplayString() string {
	switch v.kind {
	case StatValueInteger:
		return strconv.Itoa(v.num)
	case StatValueString:
		return v.text
	default:
		return ""
	}
}

// statValueJSON is the discriminated wire form of a StatValue.
type statValueJSON struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the value together with its variant tag.
func (v StatValue) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.kind {
	case StatValueInteger:
		payload = v.num
	case StatValueString:
		payload = v.text
	default:
		return nil, ErrInvalidStatValue
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(statValueJSON{Kind: v.kind.String(), Value: raw})
}

// UnmarshalJSON decodes a tagged value produced by MarshalJSON.
func (v *StatValue) UnmarshalJSON(data []byte) error {
	var wire statValueJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStatValue, err)
	}

	switch wire.Kind {
	case "integer":
		var n int
		if err := json.Unmarshal(wire.Value, &n); err != nil {
			return fmt.Errorf("%w: integer payload: %v", ErrInvalidStatValue, err)
		}
		*v = IntValue(n)
	case "string":
		var s string
		if err := json.Unmarshal(wire.Value, &s); err != nil {
			return fmt.Errorf("%w: string payload: %v", ErrInvalidStatValue, err)
		}
		*v = StringValue(s)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidStatValue, wire.Kind)
	}
	return nil
}

// Stat is a single labelled value on a card. Two stats with the same
// category and value but different IDs are distinct.
type Stat struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Value    StatValue `json:"value"`
}

// NewStat creates a stat with a freshly generated identifier.
func NewStat(category string, value StatValue) Stat {
	return Stat{
		ID:       uuid.New(),
		Category: category,
		Value:    value,
	}
}

// Validate checks that the stat has an ID, a category and an active value.
func (s Stat) Validate() error {
	if s.ID == uuid.Nil {
		return ErrStatIDEmpty
	}
	if s.Category == "" {
		return ErrStatCategoryEmpty
	}
	if s.Value.Kind() == StatValueInvalid {
		return ErrInvalidStatValue
	}
	return nil
}
