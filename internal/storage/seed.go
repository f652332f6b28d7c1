package storage

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/validate"
)

const utf8BOM = "\ufeff"

// BuiltinSeedName is reported as the seed location when no file is configured.
const BuiltinSeedName = "builtin:montana.csv"

//go:embed data/montana.csv
var builtinSeed []byte

// SeedRow is one city of the seed dataset.
type SeedRow struct {
	City   string
	County string
	Prefix int
	Line   int
}

// LoadSeed reads the seed dataset from path, or the built-in dataset when
// path is empty. Any missing file or malformed row is a fatal load error.
func LoadSeed(path string) ([]SeedRow, error) {
	if path == "" {
		return ReadSeed(bytes.NewReader(builtinSeed), BuiltinSeedName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, mterrors.NewLoadError(path, mterrors.ErrSeedMissing, err)
	}
	defer f.Close()

	return ReadSeed(f, path)
}

// ReadSeed parses city,county,prefix rows. A leading header row is skipped.
// Rows must have exactly three fields, valid names and a positive integer
// prefix; the first bad row aborts the whole load.
func ReadSeed(r io.Reader, name string) ([]SeedRow, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var rows []SeedRow
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, mterrors.NewLoadError(name, mterrors.ErrSeedMalformed, err)
		}
		line, _ := reader.FieldPos(0)

		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}

		row, err := parseSeedRecord(record, line)
		if err != nil {
			return nil, mterrors.NewLoadError(name, mterrors.ErrSeedMalformed, err)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, mterrors.NewLoadError(name, mterrors.ErrSeedMalformed, errors.New("no rows"))
	}
	return rows, nil
}

// skipBOM drops a leading UTF-8 byte order mark, as written by spreadsheet
// exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func isHeader(record []string) bool {
	return strings.EqualFold(strings.TrimSpace(record[0]), "city") &&
		strings.EqualFold(strings.TrimSpace(record[1]), "county")
}

func parseSeedRecord(record []string, line int) (SeedRow, error) {
	city := strings.TrimSpace(record[0])
	county := strings.TrimSpace(record[1])

	if res := validate.Name(city); !res.Valid {
		return SeedRow{}, fmt.Errorf("line %d: city %q: %s", line, city, res.Reason)
	}
	if res := validate.Name(county); !res.Valid {
		return SeedRow{}, fmt.Errorf("line %d: county %q: %s", line, county, res.Reason)
	}

	prefix, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil || prefix <= 0 {
		return SeedRow{}, fmt.Errorf("line %d: prefix %q is not a positive integer", line, record[2])
	}

	return SeedRow{City: city, County: county, Prefix: prefix, Line: line}, nil
}
