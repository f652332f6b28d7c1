// Package store owns the city table: it loads the seed and user-added
// datasets, answers lookups, and persists new cities.
//
// Names are trimmed and then matched exactly, case included, everywhere:
// at load, on lookup, and when written back.
package store

import (
	"sort"
	"strings"

	"github.com/mtplates/mtplates/internal/counties"
	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/logging"
	"github.com/mtplates/mtplates/internal/model"
	"github.com/mtplates/mtplates/internal/storage"
	"github.com/mtplates/mtplates/internal/validate"
)

// Options configures Open.
type Options struct {
	// SeedFile is the seed CSV. Empty uses the built-in dataset.
	SeedFile string
	// Entries holds user-added cities. The store takes ownership and
	// closes it on Close, or on a failed Open.
	Entries storage.EntryLog
}

// Store is the in-memory city table plus the county prefix table.
// It is not safe for concurrent use.
type Store struct {
	cities   map[string]model.CityRecord
	prefixes *counties.Table
	entries  storage.EntryLog
	seedName string
	stats    LoadStats
}

// LoadStats describes what Open read.
type LoadStats struct {
	SeedRows       int `json:"seed_rows"`
	UserEntries    int `json:"user_entries"`
	SkippedEntries int `json:"skipped_entries"`
	Cities         int `json:"cities"`
}

// Open loads the seed dataset and then the user-added entries, later
// records replacing earlier ones with the same city name. Seed errors are
// fatal; user entries whose county no longer resolves are skipped.
func Open(opts Options) (*Store, error) {
	if opts.Entries == nil {
		return nil, mterrors.NewSystemError("no entry log configured", mterrors.ErrInvalidBackend)
	}

	s, err := load(opts)
	if err != nil {
		opts.Entries.Close()
		return nil, err
	}
	return s, nil
}

func load(opts Options) (*Store, error) {
	rows, err := storage.LoadSeed(opts.SeedFile)
	if err != nil {
		return nil, err
	}

	seedName := opts.SeedFile
	if seedName == "" {
		seedName = storage.BuiltinSeedName
	}

	s := &Store{
		cities:   make(map[string]model.CityRecord, len(rows)),
		prefixes: counties.Montana(),
		entries:  opts.Entries,
		seedName: seedName,
	}

	for _, row := range rows {
		if err := s.prefixes.Register(row.County, row.Prefix); err != nil {
			return nil, mterrors.NewLoadError(seedName, mterrors.ErrSeedMalformed,
				mterrors.Wrapf(err, "line %d", row.Line))
		}
		s.cities[row.City] = model.CityRecord{
			City:          row.City,
			County:        row.County,
			LicensePrefix: row.Prefix,
		}
	}
	s.stats.SeedRows = len(rows)

	entries, err := opts.Entries.Entries()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		city := strings.TrimSpace(e.City)
		county := strings.TrimSpace(e.County)

		if !validate.Name(city).Valid || !validate.Name(county).Valid {
			s.skip(city, county, "invalid name")
			continue
		}
		prefix, ok := s.prefixes.Prefix(county)
		if !ok {
			s.skip(city, county, "unknown county")
			continue
		}
		s.cities[city] = model.CityRecord{City: city, County: county, LicensePrefix: prefix}
		s.stats.UserEntries++
	}
	s.stats.Cities = len(s.cities)

	logging.DebugLog("store loaded",
		"seed", seedName,
		logging.KeyBackend, opts.Entries.Location(),
		logging.KeyCount, s.stats.Cities)
	return s, nil
}

func (s *Store) skip(city, county, reason string) {
	s.stats.SkippedEntries++
	logging.Warn("skipping user entry",
		logging.KeyCity, city,
		logging.KeyCounty, county,
		"reason", reason,
		logging.KeyPath, s.entries.Location())
}

// Close releases the entry log.
func (s *Store) Close() error {
	return s.entries.Close()
}

// Lookup returns the record for a city name. Surrounding whitespace is
// ignored; everything else must match exactly. A miss returns
// errors.ErrCityNotFound.
func (s *Store) Lookup(name string) (model.CityRecord, error) {
	rec, ok := s.cities[strings.TrimSpace(name)]
	if !ok {
		return model.CityRecord{}, mterrors.ErrCityNotFound
	}
	return rec, nil
}

// ResolvePrefix returns the plate prefix for a county. Counties outside the
// table yield an unknown county error carrying a spelling hint when the
// name is close to a known county.
func (s *Store) ResolvePrefix(county string) (int, error) {
	county = strings.TrimSpace(county)
	if prefix, ok := s.prefixes.Prefix(county); ok {
		return prefix, nil
	}

	hint := ""
	if known := s.prefixes.Suggest(county); known != "" {
		hint = "Did you mean '" + known + "'?"
	}
	return 0, mterrors.NewUnknownCountyError(county, hint)
}

// AddCity validates and records a new city, replacing any existing record
// with the same name, and appends it to the entry log. If the append fails
// the table is restored and the persistence error is returned.
func (s *Store) AddCity(city, county string) (model.CityRecord, error) {
	city = strings.TrimSpace(city)
	county = strings.TrimSpace(county)

	if err := validate.CityName(city); err != nil {
		return model.CityRecord{}, err
	}
	if err := validate.CountyName(county); err != nil {
		return model.CityRecord{}, err
	}
	prefix, err := s.ResolvePrefix(county)
	if err != nil {
		return model.CityRecord{}, err
	}

	rec := model.CityRecord{City: city, County: county, LicensePrefix: prefix}
	previous, existed := s.cities[city]
	s.cities[city] = rec

	if err := s.entries.Append(model.NewEntry(city, county)); err != nil {
		if existed {
			s.cities[city] = previous
		} else {
			delete(s.cities, city)
		}
		logging.Error("failed to persist city",
			logging.KeyCity, city,
			logging.KeyCounty, county,
			logging.KeyError, err)
		return model.CityRecord{}, err
	}

	s.stats.Cities = len(s.cities)
	logging.LogOperation("add_city",
		logging.KeyCity, city,
		logging.KeyCounty, county,
		logging.KeyPrefix, prefix)
	return rec, nil
}

// SuggestCity returns a known city whose name is within a couple of edits
// of name, or "". Lookup never uses it; it only feeds "did you mean" hints.
func (s *Store) SuggestCity(name string) string {
	names := make([]string, 0, len(s.cities))
	for city := range s.cities {
		names = append(names, city)
	}
	return counties.Closest(name, names)
}

// Cities returns every record sorted by city name.
// When county is non-empty only that county's cities are returned.
func (s *Store) Cities(county string) []model.CityRecord {
	county = strings.TrimSpace(county)
	out := make([]model.CityRecord, 0, len(s.cities))
	for _, rec := range s.cities {
		if county != "" && rec.County != county {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].City < out[j].City
	})
	return out
}

// Counties returns the prefix table ordered by prefix.
func (s *Store) Counties() []counties.County {
	return s.prefixes.All()
}

// Stats returns load statistics.
func (s *Store) Stats() LoadStats {
	return s.stats
}

// SeedName returns the seed file path, or the built-in dataset name.
func (s *Store) SeedName() string {
	return s.seedName
}

// EntriesLocation returns where user-added entries are stored.
func (s *Store) EntriesLocation() string {
	return s.entries.Location()
}
