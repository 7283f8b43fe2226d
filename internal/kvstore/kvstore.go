// Package kvstore provides the persistent slot primitive the local engine
// builds on: a flat key-value space where each key ("slot") holds one
// serialized collection as a single text blob.
package kvstore

import "context"

// Store is the minimal key-value contract. Writes replace the whole slot;
// there are no partial updates at this level.
type Store interface {
	// Get returns the value stored under key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
}
