package storage

import (
	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/logging"
	"github.com/mtplates/mtplates/internal/model"
)

// BadgerLog stores each entry as one JSON value in a Badger database.
// Keys are time-ordered, so iterating the prefix replays appends in order.
type BadgerLog struct {
	db      *DB
	minFree uint64
}

// NewBadgerLog returns a log over an open database. The log owns db and
// closes it on Close.
func NewBadgerLog(db *DB, minFree uint64) *BadgerLog {
	return &BadgerLog{db: db, minFree: minFree}
}

// OpenBadgerLog opens (or creates) the database in dir and wraps it.
func OpenBadgerLog(dir string, minFree uint64) (*BadgerLog, error) {
	db, err := Open(Options{Path: dir})
	if err != nil {
		return nil, mterrors.NewSystemErrorWithOp("open entries", "cannot open database "+dir, classifyWriteError(err))
	}
	return NewBadgerLog(db, minFree), nil
}

// Location returns the database directory.
func (l *BadgerLog) Location() string {
	if l.db.Path() == "" {
		return "memory"
	}
	return l.db.Path()
}

// Close closes the database.
func (l *BadgerLog) Close() error {
	return l.db.Close()
}

// Entries returns all stored entries in insertion order.
func (l *BadgerLog) Entries() ([]*model.Entry, error) {
	entries, err := GetAllByPrefix(l.db, model.PrefixEntry+":", func() *model.Entry {
		return &model.Entry{}
	})
	if err != nil {
		return nil, mterrors.NewSystemErrorWithOp("load entries", "cannot read "+l.Location(), err)
	}
	return entries, nil
}

// Append stores the entry under a fresh key.
func (l *BadgerLog) Append(entry *model.Entry) error {
	if l.db.Path() != "" {
		if err := CheckDiskSpace(l.db.Path(), l.minFree); err != nil {
			return mterrors.NewPersistError(l.Location(), err)
		}
	}
	if entry.Key == "" {
		entry.Key = model.GenerateEntryKey()
	}

	if err := l.db.Set(entry); err != nil {
		return mterrors.NewPersistError(l.Location(), classifyWriteError(err))
	}

	logging.LogOperation("append_entry", logging.KeyPath, l.Location(),
		logging.KeyCity, entry.City, logging.KeyCounty, entry.County)
	return nil
}
