package source

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ErrNoLogFound is returned when a directory contains no rotated log
var ErrNoLogFound = errors.New("no log file found")

// rotatedNameRe matches rotated log names like "app.log-20240101" or
// "app.log-20240101.gz".
var rotatedNameRe = regexp.MustCompile(`^(?P<name>.+)-(?P<date>\d{8})(?P<ext>\.gz)?$`)

const rotatedDateLayout = "20060102"

// LatestLog describes the newest rotated log discovered in a directory
type LatestLog struct {
	Path       string
	Date       time.Time
	Compressed bool
}

// FindLatest scans dir for rotated logs named <name>-YYYYMMDD[.gz] and
// returns the one with the newest embedded date. When prefix is non-empty,
// only filenames starting with it are considered. Filenames whose date part
// does not parse are skipped, not fatal.
func FindLatest(dir, prefix string) (*LatestLog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var latest *LatestLog
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		m := rotatedNameRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		date, err := time.Parse(rotatedDateLayout, m[2])
		if err != nil {
			continue
		}
		if latest == nil || date.After(latest.Date) {
			latest = &LatestLog{
				Path:       filepath.Join(dir, name),
				Date:       date,
				Compressed: m[3] == ".gz",
			}
		}
	}

	if latest == nil {
		return nil, ErrNoLogFound
	}
	return latest, nil
}

// DateFromName extracts the embedded rotation date from a log file path,
// if its base name follows the <name>-YYYYMMDD[.gz] convention.
func DateFromName(path string) (time.Time, bool) {
	m := rotatedNameRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return time.Time{}, false
	}
	date, err := time.Parse(rotatedDateLayout, m[2])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
