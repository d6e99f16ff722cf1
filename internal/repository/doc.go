// Package repository defines the persistence contract for the card
// collection and the display-ID counter, and implements it on top of a
// kv.Store.
//
// The whole collection is stored as one JSON array and every mutation is a
// read-modify-write of that array. This suits a personal collection with a
// single writer; larger collections should move to per-record storage behind
// the same CardRepository interface.
package repository
