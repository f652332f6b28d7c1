package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is a user-added city as persisted. The plate prefix is not stored;
// it is derived from the county every time entries are loaded.
type Entry struct {
	Key     string    `json:"key,omitempty"`
	City    string    `json:"city"`
	County  string    `json:"county"`
	AddedAt time.Time `json:"added_at,omitempty"`
}

// SetKey sets the database key for this entry.
func (e *Entry) SetKey(key string) {
	e.Key = key
}

// GetKey returns the database key for this entry.
func (e *Entry) GetKey() string {
	return e.Key
}

// GenerateEntryKey returns a new key for an entry.
// Keys use time-ordered UUIDs so that key order is insertion order.
func GenerateEntryKey() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return fmt.Sprintf("%s:%s", PrefixEntry, id.String())
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(city, county string) *Entry {
	return &Entry{
		Key:     GenerateEntryKey(),
		City:    city,
		County:  county,
		AddedAt: time.Now().UTC(),
	}
}
