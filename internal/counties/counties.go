// Package counties holds the Montana county to license plate prefix table.
//
// Montana plates carry a county number assigned in 1934 by ranking counties
// on vehicle registrations: 1 is Silver Bow, 56 is Lincoln.
package counties

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// County is one entry of the prefix table.
type County struct {
	Name   string `json:"name"`
	Prefix int    `json:"prefix"`
}

// montana lists the 56 counties in prefix order.
var montana = [...]string{
	"Silver Bow", "Cascade", "Yellowstone", "Missoula", "Lewis and Clark",
	"Gallatin", "Flathead", "Fergus", "Powder River", "Carbon",
	"Phillips", "Hill", "Ravalli", "Custer", "Lake",
	"Dawson", "Roosevelt", "Beaverhead", "Chouteau", "Valley",
	"Toole", "Big Horn", "Musselshell", "Blaine", "Madison",
	"Pondera", "Richland", "Powell", "Rosebud", "Deer Lodge",
	"Teton", "Stillwater", "Treasure", "Sheridan", "Sanders",
	"Judith Basin", "Daniels", "Glacier", "Fallon", "Sweet Grass",
	"McCone", "Carter", "Broadwater", "Wheatland", "Prairie",
	"Granite", "Meagher", "Liberty", "Park", "Garfield",
	"Jefferson", "Wibaux", "Golden Valley", "Mineral", "Petroleum",
	"Lincoln",
}

// Table maps county names to plate prefixes. Lookups are case-sensitive.
// A Table is built once and only read afterwards.
type Table struct {
	prefixes map[string]int
}

// Montana returns a table holding the 56 Montana counties.
func Montana() *Table {
	t := &Table{prefixes: make(map[string]int, len(montana))}
	for i, name := range montana {
		t.prefixes[name] = i + 1
	}
	return t
}

// Register adds or confirms a county. It fails if the county is already
// known with a different prefix or the prefix is not positive.
func (t *Table) Register(name string, prefix int) error {
	if prefix <= 0 {
		return fmt.Errorf("county %q: prefix %d must be positive", name, prefix)
	}
	if existing, ok := t.prefixes[name]; ok && existing != prefix {
		return fmt.Errorf("county %q: prefix %d conflicts with %d", name, prefix, existing)
	}
	t.prefixes[name] = prefix
	return nil
}

// Prefix returns the plate prefix for a county.
func (t *Table) Prefix(name string) (int, bool) {
	p, ok := t.prefixes[name]
	return p, ok
}

// MaxSuggestDistance is the largest edit distance Suggest and Closest
// accept, compared case-insensitively.
const MaxSuggestDistance = 2

// Suggest returns the known county that name most likely means: a
// case-insensitive match first, otherwise the closest name within
// MaxSuggestDistance edits. It returns "" when nothing is close.
func (t *Table) Suggest(name string) string {
	names := make([]string, 0, len(t.prefixes))
	for known := range t.prefixes {
		names = append(names, known)
	}
	return Closest(name, names)
}

// Closest returns the candidate nearest to name, ignoring case and
// surrounding whitespace, or "" if none is within MaxSuggestDistance.
// Ties go to the alphabetically first candidate.
func Closest(name string, candidates []string) string {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return ""
	}

	best, bestDist := "", MaxSuggestDistance+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(query, strings.ToLower(c))
		if d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	return best
}

// All returns every county ordered by prefix.
func (t *Table) All() []County {
	all := make([]County, 0, len(t.prefixes))
	for name, prefix := range t.prefixes {
		all = append(all, County{Name: name, Prefix: prefix})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Prefix != all[j].Prefix {
			return all[i].Prefix < all[j].Prefix
		}
		return all[i].Name < all[j].Name
	})
	return all
}
