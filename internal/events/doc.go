// Package events provides types and interfaces for an event-driven architecture.
//
// This package defines event types and handler interfaces that allow for loose coupling
// between components in the system. The application state store emits an event after
// every applied action without knowing who is listening; subscribers register handlers
// and decode the payload they care about.
//
// The primary components are:
// - Event: a typed, JSON-encoded notification
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
