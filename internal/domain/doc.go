// Package domain contains the core entities of the card collection: cards,
// their stats, and the theme types that classify them. The types here are
// plain values with validation and formatting helpers and carry no knowledge
// of storage, generation, or presentation.
package domain
