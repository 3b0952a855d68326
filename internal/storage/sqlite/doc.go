// Package sqlite provides a SQLite-backed storage.Store using the pure Go
// modernc.org/sqlite driver.
package sqlite
