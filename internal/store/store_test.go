package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/model"
	"github.com/mtplates/mtplates/internal/storage"
)

const testSeed = `city,county,prefix
Bozeman,Gallatin,6
Missoula,Missoula,4
Helena,Lewis and Clark,5
Great Falls,Cascade,2
`

// failingLog accepts reads and rejects every append.
type failingLog struct {
	entries []*model.Entry
	closed  bool
}

func (f *failingLog) Entries() ([]*model.Entry, error) { return f.entries, nil }
func (f *failingLog) Location() string                 { return "failing" }
func (f *failingLog) Close() error                     { f.closed = true; return nil }
func (f *failingLog) Append(*model.Entry) error {
	return mterrors.NewPersistError("failing", mterrors.ErrDiskFull)
}

type testEnv struct {
	dir       string
	seedPath  string
	entryPath string
}

func newTestEnv(t *testing.T, seed string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:       dir,
		seedPath:  filepath.Join(dir, "seed.csv"),
		entryPath: filepath.Join(dir, "NewCities.txt"),
	}
	require.NoError(t, os.WriteFile(env.seedPath, []byte(seed), 0644))
	return env
}

func (e *testEnv) open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{
		SeedFile: e.seedPath,
		Entries:  storage.NewTextLog(e.entryPath, 0),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// =============================================================================
// Open Tests
// =============================================================================

func TestOpenSeedRowsRoundTrip(t *testing.T) {
	rows, err := storage.ReadSeed(strings.NewReader(testSeed), "test")
	require.NoError(t, err)

	s := newTestEnv(t, testSeed).open(t)
	for _, row := range rows {
		rec, err := s.Lookup(row.City)
		require.NoError(t, err, row.City)
		assert.Equal(t, row.County, rec.County)
		assert.Equal(t, row.Prefix, rec.LicensePrefix)
	}
	assert.Equal(t, 4, s.Stats().SeedRows)
	assert.Equal(t, 4, s.Stats().Cities)
}

func TestOpenBuiltinSeed(t *testing.T) {
	s, err := Open(Options{Entries: storage.NewTextLog(filepath.Join(t.TempDir(), "x.txt"), 0)})
	require.NoError(t, err)
	defer s.Close()

	rec, err := s.Lookup("Bozeman")
	require.NoError(t, err)
	assert.Equal(t, model.CityRecord{City: "Bozeman", County: "Gallatin", LicensePrefix: 6}, rec)
	assert.Equal(t, storage.BuiltinSeedName, s.SeedName())
	assert.Len(t, s.Counties(), 56)
}

func TestOpenMissingSeedIsFatal(t *testing.T) {
	log := &failingLog{}
	_, err := Open(Options{SeedFile: filepath.Join(t.TempDir(), "missing.csv"), Entries: log})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mterrors.ErrSeedMissing))
	assert.True(t, mterrors.IsFatal(err))
	assert.True(t, log.closed)
}

func TestOpenMalformedSeedIsFatal(t *testing.T) {
	env := newTestEnv(t, "Bozeman,Gallatin,6\nMissoula,Missoula\n")
	_, err := Open(Options{SeedFile: env.seedPath, Entries: storage.NewTextLog(env.entryPath, 0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mterrors.ErrSeedMalformed))
}

func TestOpenConflictingSeedPrefixIsFatal(t *testing.T) {
	env := newTestEnv(t, "Bozeman,Gallatin,6\nBelgrade,Gallatin,7\n")
	_, err := Open(Options{SeedFile: env.seedPath, Entries: storage.NewTextLog(env.entryPath, 0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mterrors.ErrSeedMalformed))
	assert.Contains(t, err.Error(), "line 2")
}

func TestOpenSeedRegistersNewCounty(t *testing.T) {
	s := newTestEnv(t, "Mammoth,Yellowstone Park,57\n").open(t)

	p, err := s.ResolvePrefix("Yellowstone Park")
	require.NoError(t, err)
	assert.Equal(t, 57, p)
}

func TestOpenWithoutEntryLog(t *testing.T) {
	_, err := Open(Options{})
	assert.True(t, errors.Is(err, mterrors.ErrInvalidBackend))
}

func TestOpenUserEntriesOverrideSeed(t *testing.T) {
	env := newTestEnv(t, testSeed)
	// Bozeman moved to Park County by a previous session.
	content := "Four Corners - Gallatin\nBozeman - Park\n"
	require.NoError(t, os.WriteFile(env.entryPath, []byte(content), 0644))

	s := env.open(t)

	rec, err := s.Lookup("Bozeman")
	require.NoError(t, err)
	assert.Equal(t, "Park", rec.County)
	assert.Equal(t, 49, rec.LicensePrefix)

	rec, err = s.Lookup("Four Corners")
	require.NoError(t, err)
	assert.Equal(t, 6, rec.LicensePrefix)

	assert.Equal(t, 2, s.Stats().UserEntries)
}

func TestOpenSkipsUnresolvableUserEntries(t *testing.T) {
	env := newTestEnv(t, testSeed)
	content := "Nowhereville - Narnia\nB0gus - Gallatin\nFour Corners - Gallatin\n"
	require.NoError(t, os.WriteFile(env.entryPath, []byte(content), 0644))

	s := env.open(t)

	_, err := s.Lookup("Nowhereville")
	assert.True(t, errors.Is(err, mterrors.ErrCityNotFound))
	_, err = s.Lookup("B0gus")
	assert.True(t, errors.Is(err, mterrors.ErrCityNotFound))
	assert.Equal(t, 2, s.Stats().SkippedEntries)
	assert.Equal(t, 1, s.Stats().UserEntries)
}

func TestOpenSurvivesOversizedUserEntry(t *testing.T) {
	env := newTestEnv(t, testSeed)
	content := "Four Corners - Gallatin\n" + strings.Repeat("A", 70000) + "\nBig Sky - Gallatin\n"
	require.NoError(t, os.WriteFile(env.entryPath, []byte(content), 0644))

	s := env.open(t)

	rec, err := s.Lookup("Big Sky")
	require.NoError(t, err)
	assert.Equal(t, 6, rec.LicensePrefix)
	assert.Equal(t, 2, s.Stats().UserEntries)
}

// =============================================================================
// Lookup Tests
// =============================================================================

func TestLookup(t *testing.T) {
	s := newTestEnv(t, testSeed).open(t)

	tests := []struct {
		name    string
		input   string
		want    model.CityRecord
		notFind bool
	}{
		{"bozeman", "Bozeman", model.CityRecord{City: "Bozeman", County: "Gallatin", LicensePrefix: 6}, false},
		{"missoula", "Missoula", model.CityRecord{City: "Missoula", County: "Missoula", LicensePrefix: 4}, false},
		{"trimmed", "  Great Falls \t", model.CityRecord{City: "Great Falls", County: "Cascade", LicensePrefix: 2}, false},
		{"case_sensitive", "bozeman", model.CityRecord{}, true},
		{"unknown", "Nowhereville", model.CityRecord{}, true},
		{"empty", "", model.CityRecord{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := s.Lookup(tt.input)
			if tt.notFind {
				assert.True(t, errors.Is(err, mterrors.ErrCityNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec)
		})
	}
}

// =============================================================================
// ResolvePrefix Tests
// =============================================================================

func TestResolvePrefix(t *testing.T) {
	s := newTestEnv(t, testSeed).open(t)

	p, err := s.ResolvePrefix("Gallatin")
	require.NoError(t, err)
	assert.Equal(t, 6, p)

	// Counties without a seed city still resolve through the static table.
	p, err = s.ResolvePrefix("Lincoln")
	require.NoError(t, err)
	assert.Equal(t, 56, p)

	_, err = s.ResolvePrefix("Narnia")
	assert.True(t, errors.Is(err, mterrors.ErrUnknownCounty))
}

func TestResolvePrefixIsPure(t *testing.T) {
	s := newTestEnv(t, testSeed).open(t)
	first, err := s.ResolvePrefix("Lewis and Clark")
	require.NoError(t, err)

	_, err = s.AddCity("East Helena", "Lewis and Clark")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		p, err := s.ResolvePrefix("Lewis and Clark")
		require.NoError(t, err)
		assert.Equal(t, first, p)
	}
}

func TestResolvePrefixSuggestsCase(t *testing.T) {
	s := newTestEnv(t, testSeed).open(t)

	_, err := s.ResolvePrefix("gallatin")
	ue, ok := mterrors.AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, "Did you mean 'Gallatin'?", ue.Suggestion)

	_, err = s.ResolvePrefix("Galatin")
	assert.Equal(t, "Did you mean 'Gallatin'?", mterrors.GetSuggestion(err))

	_, err = s.ResolvePrefix("Narnia")
	assert.Contains(t, mterrors.GetSuggestion(err), "mtplates counties")
}

func TestSuggestCity(t *testing.T) {
	s := newTestEnv(t, testSeed).open(t)

	assert.Equal(t, "Bozeman", s.SuggestCity("bozeman"))
	assert.Equal(t, "Bozeman", s.SuggestCity("Bozman"))
	assert.Equal(t, "", s.SuggestCity("Nowhereville"))

	// Hints never change lookup results.
	_, err := s.Lookup("Bozman")
	assert.True(t, errors.Is(err, mterrors.ErrCityNotFound))
}

// =============================================================================
// AddCity Tests
// =============================================================================

func TestAddCityReadYourWrites(t *testing.T) {
	s := newTestEnv(t, testSeed).open(t)

	rec, err := s.AddCity("Four Corners", "Gallatin")
	require.NoError(t, err)
	want := model.CityRecord{City: "Four Corners", County: "Gallatin", LicensePrefix: 6}
	assert.Equal(t, want, rec)

	got, err := s.Lookup("Four Corners")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 5, s.Stats().Cities)
}

func TestAddCityDurableAcrossOpen(t *testing.T) {
	env := newTestEnv(t, testSeed)

	s := env.open(t)
	_, err := s.AddCity(" Four Corners ", " Gallatin ")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	data, err := os.ReadFile(env.entryPath)
	require.NoError(t, err)
	assert.Equal(t, "Four Corners - Gallatin\n", string(data))

	reopened := env.open(t)
	rec, err := reopened.Lookup("Four Corners")
	require.NoError(t, err)
	assert.Equal(t, 6, rec.LicensePrefix)
}

func TestAddCityDurableWithBadger(t *testing.T) {
	env := newTestEnv(t, testSeed)
	dbDir := filepath.Join(env.dir, "db")

	openBadger := func() *Store {
		log, err := storage.OpenBadgerLog(dbDir, 0)
		require.NoError(t, err)
		s, err := Open(Options{SeedFile: env.seedPath, Entries: log})
		require.NoError(t, err)
		return s
	}

	s := openBadger()
	_, err := s.AddCity("Four Corners", "Gallatin")
	require.NoError(t, err)
	_, err = s.AddCity("Four Corners", "Madison")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s = openBadger()
	defer s.Close()
	rec, err := s.Lookup("Four Corners")
	require.NoError(t, err)
	assert.Equal(t, "Madison", rec.County)
	assert.Equal(t, 25, rec.LicensePrefix)
}

func TestAddCityOverwrites(t *testing.T) {
	s := newTestEnv(t, testSeed).open(t)

	rec, err := s.AddCity("Bozeman", "Park")
	require.NoError(t, err)
	assert.Equal(t, 49, rec.LicensePrefix)

	got, err := s.Lookup("Bozeman")
	require.NoError(t, err)
	assert.Equal(t, "Park", got.County)
}

func TestAddCityValidation(t *testing.T) {
	s := newTestEnv(t, testSeed).open(t)

	tests := []struct {
		name     string
		city     string
		county   string
		sentinel error
	}{
		{"digit_city", "Four9Corners", "Gallatin", mterrors.ErrInvalidName},
		{"empty_city", "  ", "Gallatin", mterrors.ErrInvalidName},
		{"punct_county", "Four Corners", "Gallatin!", mterrors.ErrInvalidName},
		{"unknown_county", "Four Corners", "Narnia", mterrors.ErrUnknownCounty},
		{"wrong_case_county", "Four Corners", "gallatin", mterrors.ErrUnknownCounty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddCity(tt.city, tt.county)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.True(t, mterrors.IsUserError(err))

			_, err = s.Lookup(tt.city)
			assert.True(t, errors.Is(err, mterrors.ErrCityNotFound))
		})
	}

	_, err := os.Stat(s.EntriesLocation())
	assert.True(t, os.IsNotExist(err), "rejected cities must not be written")
}

func TestAddCityPersistFailureRollsBack(t *testing.T) {
	env := newTestEnv(t, testSeed)
	s, err := Open(Options{SeedFile: env.seedPath, Entries: &failingLog{}})
	require.NoError(t, err)
	defer s.Close()

	t.Run("new_city_removed", func(t *testing.T) {
		_, err := s.AddCity("Four Corners", "Gallatin")
		require.Error(t, err)
		assert.True(t, errors.Is(err, mterrors.ErrPersistFailed))

		_, err = s.Lookup("Four Corners")
		assert.True(t, errors.Is(err, mterrors.ErrCityNotFound))
	})

	t.Run("existing_city_restored", func(t *testing.T) {
		_, err := s.AddCity("Bozeman", "Park")
		require.Error(t, err)

		rec, err := s.Lookup("Bozeman")
		require.NoError(t, err)
		assert.Equal(t, "Gallatin", rec.County)
		assert.Equal(t, 6, rec.LicensePrefix)
	})

	assert.Equal(t, 4, s.Stats().Cities)
}

// =============================================================================
// Listing Tests
// =============================================================================

func TestCities(t *testing.T) {
	s := newTestEnv(t, testSeed).open(t)
	_, err := s.AddCity("Belgrade", "Gallatin")
	require.NoError(t, err)

	all := s.Cities("")
	require.Len(t, all, 5)
	assert.Equal(t, "Belgrade", all[0].City)
	assert.Equal(t, "Missoula", all[4].City)

	gallatin := s.Cities("Gallatin")
	require.Len(t, gallatin, 2)
	assert.Equal(t, "Belgrade", gallatin[0].City)
	assert.Equal(t, "Bozeman", gallatin[1].City)

	assert.Empty(t, s.Cities("Narnia"))
}
