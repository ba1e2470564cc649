// Package kv provides the persistent key-value store behind the journal.
//
// The store is deliberately simple: whole-value reads and whole-value
// replaces under a handful of well-known keys. Serialization is owned by
// the callers — the store only sees opaque bytes.
package kv

// Store is the persistence interface the repositories write through.
// Abstracted for testability (DIP).
type Store interface {
	// Get returns the stored value for key. The second result is false
	// when no value has ever been written under key.
	Get(key string) ([]byte, bool, error)
	// Set replaces the value stored under key.
	Set(key string, value []byte) error
	Close() error
}
