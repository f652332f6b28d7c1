package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	mterrors "github.com/mtplates/mtplates/internal/errors"
	"github.com/mtplates/mtplates/internal/logging"
	"github.com/mtplates/mtplates/internal/model"
	"github.com/mtplates/mtplates/internal/validate"
)

// EntrySeparator sits between city and county on each line of the text log.
const EntrySeparator = " - "

// TextLog stores entries as "City - County" lines in a plain text file.
// The file is only ever appended to.
type TextLog struct {
	path    string
	minFree uint64
}

// NewTextLog returns a log backed by the file at path. The file does not
// need to exist until the first Append.
func NewTextLog(path string, minFree uint64) *TextLog {
	return &TextLog{path: path, minFree: minFree}
}

// Location returns the file path.
func (l *TextLog) Location() string {
	return l.path
}

// Close is a no-op; the file is opened per operation.
func (l *TextLog) Close() error {
	return nil
}

// Entries reads every well-formed line of the file. A missing file yields
// no entries. Lines without a separator, or longer than any valid entry
// could be, are skipped with a warning.
func (l *TextLog) Entries() ([]*model.Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, mterrors.NewSystemErrorWithOp("load entries", "cannot read "+l.path, err)
	}
	defer f.Close()

	var entries []*model.Entry
	reader := bufio.NewReader(f)
	lineNo := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, mterrors.NewSystemErrorWithOp("load entries", "cannot read "+l.path, readErr)
		}
		if raw != "" {
			lineNo++
			if entry := l.parseLine(raw, lineNo); entry != nil {
				entries = append(entries, entry)
			}
		}
		if readErr == io.EOF {
			break
		}
	}

	return entries, nil
}

// maxEntryLine is the longest line two maximum-length names can produce.
const maxEntryLine = 2*validate.MaxNameLength*utf8.UTFMax + len(EntrySeparator)

func (l *TextLog) parseLine(raw string, lineNo int) *model.Entry {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil
	}
	if len(line) > maxEntryLine {
		logging.Warn("skipping oversized entry",
			logging.KeyPath, l.path, logging.KeyLine, lineNo)
		return nil
	}

	city, county, ok := ParseEntryLine(line)
	if !ok {
		logging.Warn("skipping malformed entry",
			logging.KeyPath, l.path, logging.KeyLine, lineNo)
		return nil
	}
	return &model.Entry{City: city, County: county}
}

// Append writes one line for the entry and syncs it to disk.
func (l *TextLog) Append(entry *model.Entry) error {
	dir := filepath.Dir(l.path)
	if err := EnsureDirectory(dir); err != nil {
		return mterrors.NewPersistError(l.path, err)
	}
	if err := CheckDiskSpace(dir, l.minFree); err != nil {
		return mterrors.NewPersistError(l.path, err)
	}

	f, err := os.OpenFile(l.path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return mterrors.NewPersistError(l.path, classifyWriteError(err))
	}

	line := FormatEntryLine(entry.City, entry.County) + "\n"
	if needsLeadingNewline(f) {
		line = "\n" + line
	}

	if _, err := io.WriteString(f, line); err != nil {
		f.Close()
		return mterrors.NewPersistError(l.path, classifyWriteError(err))
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return mterrors.NewPersistError(l.path, classifyWriteError(err))
	}
	if err := f.Close(); err != nil {
		return mterrors.NewPersistError(l.path, classifyWriteError(err))
	}

	logging.LogOperation("append_entry", logging.KeyPath, l.path,
		logging.KeyCity, entry.City, logging.KeyCounty, entry.County)
	return nil
}

// needsLeadingNewline reports whether the file is non-empty and its last
// byte is not a newline, as happens after a hand edit.
func needsLeadingNewline(f *os.File) bool {
	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return false
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false
	}
	return last[0] != '\n'
}

// FormatEntryLine renders one line of the text log without the newline.
func FormatEntryLine(city, county string) string {
	return fmt.Sprintf("%s%s%s", city, EntrySeparator, county)
}

// ParseEntryLine splits a line on the last separator. County names never
// contain the separator, so hyphenated city names survive the round trip.
func ParseEntryLine(line string) (city, county string, ok bool) {
	i := strings.LastIndex(line, EntrySeparator)
	if i < 0 {
		return "", "", false
	}
	city = strings.TrimSpace(line[:i])
	county = strings.TrimSpace(line[i+len(EntrySeparator):])
	if city == "" || county == "" {
		return "", "", false
	}
	return city, county, true
}
