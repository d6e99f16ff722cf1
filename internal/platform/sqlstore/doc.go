// Package sqlstore provides SQL-backed implementations of kv.Store.
//
// SQLite (via modernc.org/sqlite) is the default durable store for a local
// collection; PostgreSQL (via the pgx stdlib driver) is available for setups
// that keep the collection in a database server. Both share one
// implementation and differ only in their SQL dialect. Schemas are applied
// with goose from embedded migrations when a store is opened.
package sqlstore
