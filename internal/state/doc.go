// Package state holds the application state of SnapDex: the card collection,
// the current selection, the UI visibility flags and the last failure.
//
// State is changed only by dispatching one of the Action values defined here
// to a Store. Dispatch is serialized; after every applied action the Store
// publishes a Change to its subscribers. Card generation is the one action
// whose effect is asynchronous: the AI pipeline runs on a background worker
// and its result is applied later through the same serialized path.
package state
