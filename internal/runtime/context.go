// Package runtime provides application runtime context for mtplates.
package runtime

import (
	"io"
	"os"

	"github.com/mtplates/mtplates/internal/config"
	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/logging"
	"github.com/mtplates/mtplates/internal/output"
	"github.com/mtplates/mtplates/internal/storage"
	"github.com/mtplates/mtplates/internal/store"
)

// MemoryDir selects an in-memory badger database.
const MemoryDir = ":memory:"

// Context holds the application runtime context.
type Context struct {
	Store     *store.Store
	Formatter *output.Formatter

	// Stderr receives CLI error messages. Nil means the formatter's writer.
	Stderr io.Writer

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	SeedFile     string
	EntriesFile  string
	Backend      string
	BadgerDir    string
	MinFreeSpace uint64
	Format       output.Format
	ColorMode    output.ColorMode
	Debug        bool
}

// DefaultOptions returns runtime options taken from the global config.
func DefaultOptions() Options {
	cfg := config.Global
	return Options{
		SeedFile:     cfg.Data.SeedFile,
		EntriesFile:  cfg.Data.EntriesFile,
		Backend:      cfg.Data.Backend,
		BadgerDir:    cfg.Data.BadgerDir,
		MinFreeSpace: cfg.Storage.MinFreeSpace,
		Format:       output.FormatCLI,
		ColorMode:    output.ColorAuto,
		Debug:        false,
	}
}

// New opens the entry log for the configured backend, loads the store and
// builds the formatter.
func New(opts Options) (*Context, error) {
	entries, err := openEntryLog(opts)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(store.Options{
		SeedFile: opts.SeedFile,
		Entries:  entries,
	})
	if err != nil {
		if mterrors.IsFatal(err) {
			logging.DebugLog("fatal load error", "seed", opts.SeedFile, logging.KeyError, err)
		}
		return nil, err
	}

	stats := st.Stats()
	logging.DebugLog("runtime ready",
		"seed", st.SeedName(),
		logging.KeyPath, st.EntriesLocation(),
		logging.KeyBackend, opts.Backend,
		"seed_rows", stats.SeedRows,
		"user_entries", stats.UserEntries,
		"skipped_entries", stats.SkippedEntries)

	// Create formatter
	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	return &Context{
		Store:     st,
		Formatter: formatter,
		Stderr:    os.Stderr,
		Debug:     opts.Debug,
	}, nil
}

func openEntryLog(opts Options) (storage.EntryLog, error) {
	switch opts.Backend {
	case "", config.BackendText:
		path := opts.EntriesFile
		if path == "" {
			path = config.DefaultEntriesPath()
		}
		return storage.NewTextLog(path, opts.MinFreeSpace), nil
	case config.BackendBadger:
		dir := opts.BadgerDir
		switch dir {
		case MemoryDir:
			dir = ""
		case "":
			dir = config.DefaultBadgerPath()
		}
		return storage.OpenBadgerLog(dir, opts.MinFreeSpace)
	default:
		return nil, &mterrors.UserError{
			Message: "Unknown backend",
			Field:   "backend",
			Value:   opts.Backend,
			Cause:   mterrors.ErrInvalidBackend,
		}
	}
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}
