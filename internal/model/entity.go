// Package model contains the domain entities and their identity rules.
// Pure data shapes with no storage-specific dependencies; usable across
// layers (HTTP, service, storage) without coupling to persistence.
package model

import "time"

// Entity is implemented by every record type the data-access layer stores.
// Identity (id, creation timestamp) is store-assigned: callers never supply
// it on create and stores never change it afterwards.
type Entity interface {
	// EntityID returns the record's unique identifier, empty before Stamp.
	EntityID() string
	// Stamp assigns the store-issued identity exactly once, at creation.
	Stamp(id string, createdAt time.Time)
}
