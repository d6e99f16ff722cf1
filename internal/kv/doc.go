// Package kv defines the key-value storage contract the card repository is
// built on, together with an in-memory implementation and an LRU read-through
// cache that can wrap any Store. Durable SQL-backed implementations live in
// internal/platform/sqlstore.
package kv
