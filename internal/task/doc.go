// Package task runs background work on a bounded queue drained by a pool of
// worker goroutines. Card generation is submitted here so that slow AI calls
// never run while the application state is locked.
package task
