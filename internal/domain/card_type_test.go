package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAllCardTypes(t *testing.T) {
	t.Parallel()

	types := AllCardTypes()
	if len(types) != 18 {
		t.Fatalf("Expected 18 card types, got %d", len(types))
	}
	if types[0] != CardTypeNormal || types[17] != CardTypeFairy {
		t.Errorf("Unexpected ordering: first=%s last=%s", types[0], types[17])
	}

	// Callers get their own copy.
	types[0] = "mutated"
	if AllCardTypes()[0] != CardTypeNormal {
		t.Error("Expected AllCardTypes to return a fresh slice")
	}
}

func TestParseCardType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    CardType
		wantErr bool
	}{
		{"fire", CardTypeFire, false},
		{"Psychic", CardTypePsychic, false},
		{"  STEEL ", CardTypeSteel, false},
		{"plasma", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := ParseCardType(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidCardType) {
				t.Errorf("ParseCardType(%q): expected %v, got %v", tc.input, ErrInvalidCardType, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseCardType(%q) = (%s, %v), want %s", tc.input, got, err, tc.want)
		}
	}
}

func TestCardTypeDisplayName(t *testing.T) {
	t.Parallel()

	if got := CardTypeElectric.DisplayName(); got != "Electric" {
		t.Errorf("Expected Electric, got %q", got)
	}
	if got := CardType("").DisplayName(); got != "" {
		t.Errorf("Expected empty display name, got %q", got)
	}
}

func TestCardTypeUnmarshalJSON(t *testing.T) {
	t.Parallel()

	var ct CardType
	if err := json.Unmarshal([]byte(`"dragon"`), &ct); err != nil || ct != CardTypeDragon {
		t.Errorf("Expected dragon, got (%s, %v)", ct, err)
	}
	if err := json.Unmarshal([]byte(`"laser"`), &ct); !errors.Is(err, ErrInvalidCardType) {
		t.Errorf("Expected %v, got %v", ErrInvalidCardType, err)
	}
}
