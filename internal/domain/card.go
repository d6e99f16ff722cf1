package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDisplayIDNegative is returned when a card's display ID is below zero.
	ErrCardDisplayIDNegative = errors.New("card display ID cannot be negative")
)

// Card is a collectible entry. ID is the persistence and equality key and is
// fixed at creation; DisplayID is the sequential number shown to the user.
// Cards are treated as immutable values: edits are full replacements keyed
// by ID.
type Card struct {
	ID          string    `json:"id"`
	DisplayID   int       `json:"display_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Stats       []Stat    `json:"stats"`
	Type        CardType  `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewCard creates a new Card with a generated ID and the current time as its
// creation timestamp. An empty imageURL means the card has no artwork.
// Returns an error if validation fails.
func NewCard(
	displayID int,
	title, description, imageURL string,
	stats []Stat,
	cardType CardType,
) (*Card, error) {
	card := &Card{
		ID:          uuid.NewString(),
		DisplayID:   displayID,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		Stats:       append([]Stat(nil), stats...),
		Type:        cardType,
		CreatedAt:   time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error wrapping ErrValidation and the specific cause if any
// field fails validation.
func (c *Card) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func (c *Card) validate() error {
	if c.ID == "" {
		return ErrCardIDEmpty
	}

	if c.DisplayID < 0 {
		return ErrCardDisplayIDNegative
	}

	if !c.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCardType, c.Type)
	}

	for i, stat := range c.Stats {
		if err := stat.Validate(); err != nil {
			return fmt.Errorf("stat %d: %w", i, err)
		}
	}

	return nil
}

// FormattedID renders the display ID as "#" followed by at least three digits.
func (c Card) FormattedID() string {
	return fmt.Sprintf("#%03d", c.DisplayID)
}

// HasImage reports whether the card references artwork.
func (c Card) HasImage() bool {
	return c.ImageURL != ""
}

// Clone returns a copy that shares no mutable state with c.
func (c Card) Clone() Card {
	clone := c
	if c.Stats != nil {
		clone.Stats = append([]Stat(nil), c.Stats...)
	}
	return clone
}

// Equal reports structural equality, field for field and in stat order.
func (c Card) Equal(other Card) bool {
	if c.ID != other.ID ||
		c.DisplayID != other.DisplayID ||
		c.Title != other.Title ||
		c.Description != other.Description ||
		c.ImageURL != other.ImageURL ||
		c.Type != other.Type ||
		!c.CreatedAt.Equal(other.CreatedAt) ||
		len(c.Stats) != len(other.Stats) {
		return false
	}

	for i := range c.Stats {
		if c.Stats[i] != other.Stats[i] {
			return false
		}
	}
	return true
}
