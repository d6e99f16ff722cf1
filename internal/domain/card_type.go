package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CardType is the theme category of a card. It drives presentation only but
// is part of the persisted record.
type CardType string

// Known card types.
const (
	CardTypeNormal   CardType = "normal"
	CardTypeFire     CardType = "fire"
	CardTypeWater    CardType = "water"
	CardTypeElectric CardType = "electric"
	CardTypeGrass    CardType = "grass"
	CardTypeIce      CardType = "ice"
	CardTypeFighting CardType = "fighting"
	CardTypePoison   CardType = "poison"
	CardTypeGround   CardType = "ground"
	CardTypeFlying   CardType = "flying"
	CardTypePsychic  CardType = "psychic"
	CardTypeBug      CardType = "bug"
	CardTypeRock     CardType = "rock"
	CardTypeGhost    CardType = "ghost"
	CardTypeDragon   CardType = "dragon"
	CardTypeDark     CardType = "dark"
	CardTypeSteel    CardType = "steel"
	CardTypeFairy    CardType = "fairy"
)

var allCardTypes = []CardType{
	CardTypeNormal, CardTypeFire, CardTypeWater, CardTypeElectric, CardTypeGrass, CardTypeIce,
	CardTypeFighting, CardTypePoison, CardTypeGround, CardTypeFlying, CardTypePsychic, CardTypeBug,
	CardTypeRock, CardTypeGhost, CardTypeDragon, CardTypeDark, CardTypeSteel, CardTypeFairy,
}

// AllCardTypes returns every card type in declaration order.
func AllCardTypes() []CardType {
	types := make([]CardType, len(allCardTypes))
	copy(types, allCardTypes)
	return types
}

// ParseCardType resolves a type name case-insensitively.
func ParseCardType(name string) (CardType, error) {
	candidate := CardType(strings.ToLower(strings.TrimSpace(name)))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCardType, name)
	}
	return candidate, nil
}

// Valid reports whether t is one of the known card types.
func (t CardType) Valid() bool {
	for _, known := range allCardTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DisplayName returns the type name with its first letter upper-cased.
func (t CardType) DisplayName() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// UnmarshalJSON rejects unknown type names so a corrupted record never yields
// a card with an unusable theme.
func (t *CardType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCardType, err)
	}
	parsed := CardType(name)
	if !parsed.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCardType, name)
	}
	*t = parsed
	return nil
}
