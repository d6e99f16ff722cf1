package sqlstore

import "github.com/pressly/goose/v3"

// dialect holds the SQL text that differs between backends.
type dialect struct {
	name         string
	gooseDialect goose.Dialect
	getQuery     string
	putQuery     string
	incrQuery    string
}

var sqliteDialect = dialect{
	name:         "sqlite",
	gooseDialect: goose.DialectSQLite3,
	getQuery:     `SELECT value FROM kv_entries WHERE key = ?`,
	putQuery: `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	incrQuery: `INSERT INTO kv_counters (key, value) VALUES (?, 1)
		ON CONFLICT (key) DO UPDATE SET value = kv_counters.value + 1
		RETURNING value`,
}

var postgresDialect = dialect{
	name:         "postgres",
	gooseDialect: goose.DialectPostgres,
	getQuery:     `SELECT value FROM kv_entries WHERE key = $1`,
	putQuery: `INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	incrQuery: `INSERT INTO kv_counters (key, value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = kv_counters.value + 1
		RETURNING value`,
}
