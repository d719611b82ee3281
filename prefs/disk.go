// This file is part of Flightstick.
//
// Flightstick is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Flightstick is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Flightstick.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultPrefsFile is the default filename for the application preferences
// file. Use resources.JoinPath() to prepend the correct base path.
const DefaultPrefsFile = "flightstick.prefs"

// WarningBoilerPlate is the first line in a prefs file. It is checked for on
// loading and written automatically on saving.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the string that separates the key from the value on a prefs file line.
const entrySeparator = " :: "

// Disk represents preference values as stored on disk. Add() values to the
// instance and Save()/Load() as required.
//
// More than one Disk instance can use the same file. Save() preserves
// entries in the file that have not been added to the instance doing the
// saving.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// path argument is the path to the preferences file. The file does not need
// to exist at this point.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for preferences file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to the Disk instance, keyed with the supplied key.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)

	if key == "" || strings.ContainsAny(key, "\n") || strings.Contains(key, entrySeparator) {
		return fmt.Errorf("prefs: invalid key (%s)", key)
	}

	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: duplicate key (%s)", key)
	}

	dsk.entries[key] = p

	return nil
}

// read the prefs file into a key/value map. a missing file produces an empty
// map rather than an error when ignoreMissing is true.
func (dsk *Disk) readFile(ignoreMissing bool) (map[string]string, error) {
	vals := make(map[string]string)

	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && ignoreMissing {
			return vals, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// an empty file is treated the same as a missing file
	if !scanner.Scan() {
		return vals, nil
	}

	// the boilerplate line guards against treating an arbitrary file as a
	// prefs file
	if scanner.Text() != WarningBoilerPlate {
		return nil, fmt.Errorf("prefs: %s is not a valid prefs file", dsk.path)
	}

	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), entrySeparator)
		if !ok {
			// quietly skip lines that don't parse
			continue
		}
		if isDefunct(k) {
			continue
		}
		vals[k] = v
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return vals, nil
}

// Save current preference values to disk. Entries in the file that have not
// been added to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	// read file as it exists now so that entries owned by other Disk
	// instances are not lost
	vals, err := dsk.readFile(true)
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		vals[k] = p.String()
	}

	// sorted keys mean the file is stable between saves
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, entrySeparator, vals[k]))
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	if _, err := f.WriteString(s.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("prefs: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk, setting every value that has been added
// to this Disk instance. Values in the command line stack take precedence
// over values in the file.
//
// If ignoreMissing is true then a missing prefs file is not an error. The
// registered values keep whatever value they already have.
func (dsk *Disk) Load(ignoreMissing bool) error {
	vals, err := dsk.readFile(ignoreMissing)
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %w", err)
			}
			continue
		}

		if v, ok := vals[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %w", err)
			}
		}
	}

	return nil
}

// String returns the current value of every registered entry, one per line,
// in the same format used by the prefs file.
func (dsk *Disk) String() string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, entrySeparator, dsk.entries[k].String()))
	}

	return s.String()
}

// Reset every registered entry to its default value. The file on disk is not
// touched until the next Save().
func (dsk *Disk) Reset() error {
	for _, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
	}
	return nil
}
