// datafile.go
//
// A single-file data backend and sync core for the piggy family web hub
// Copyright (c) 2026 SchellingX (https://github.com/schellingx)
//
// This file is part of piggyweb.
// piggyweb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// piggyweb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with piggyweb.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DataFile persists the entire application state as one JSON document in a
// single file. Every write replaces the whole document; the last write wins.
// The mutex serialises access within this process only — concurrent writers
// from other processes race at the filesystem level, which is the documented
// consistency model.
type DataFile struct {
	mu   sync.Mutex
	path string
}

// NewDataFile creates a DataFile backed by the given path. The parent
// directory is created if missing so a first-run deployment needs no setup.
func NewDataFile(path string) (*DataFile, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return &DataFile{path: path}, nil
}

// Path returns the backing file path.
func (d *DataFile) Path() string {
	return d.path
}

// Load returns the last-written document verbatim. The second return value
// is false when no document has ever been written: a missing file and an
// unreadable or corrupt one are treated identically as "absent".
func (d *DataFile) Load() ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := os.ReadFile(d.path)
	if err != nil {
		return nil, false
	}
	if !json.Valid(raw) {
		return nil, false
	}
	return raw, true
}

// Save overwrites the document wholesale, byte for byte.
func (d *DataFile) Save(raw []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.WriteFile(d.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}

// Accessible reports whether the data file location is usable: either the
// file is readable or its directory is writable for a first save.
func (d *DataFile) Accessible() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := os.Stat(d.path); err == nil {
		return nil
	}
	dir := filepath.Dir(d.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path parent %q is not a directory", dir)
	}
	return nil
}
