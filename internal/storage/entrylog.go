package storage

import (
	"github.com/mtplates/mtplates/internal/model"
)

// EntryLog is the durable home of user-added entries.
// Entries returns them in the order they were appended.
type EntryLog interface {
	Entries() ([]*model.Entry, error)
	Append(entry *model.Entry) error
	Location() string
	Close() error
}
