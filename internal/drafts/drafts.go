// drafts.go
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

// Package drafts persists in-progress blog edits to keyed local slots,
// separate from the server-synced state document. It runs its own 1s
// debounce instance — same pattern as the main auto-save, different trigger
// set and destination.
package drafts

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

// Editor modes used in draft keys.
const (
	ModeNew  = "new"
	ModeEdit = "edit"
)

// DefaultDebounce is the quiet period after the last edit before the draft
// file is rewritten.
const DefaultDebounce = 1000 * time.Millisecond

// Draft is one in-progress blog edit.
type Draft struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CoverImage string    `json:"coverImage,omitempty"`
	SavedAt    time.Time `json:"savedAt"`
}

func (d Draft) empty() bool {
	return d.Title == "" && d.Content == ""
}

// Store holds draft slots keyed by (userId, mode, postId|"new") and mirrors
// them to a local JSON file on a debounce timer.
type Store struct {
	mu       sync.Mutex
	path     string
	slots    map[string]Draft
	debounce time.Duration
	timer    *time.Timer
}

// Key builds the slot key. New-post drafts share the fixed "new" slot per
// user.
func Key(userID, mode, postID string) string {
	if mode == ModeNew || postID == "" {
		postID = "new"
	}
	return userID + "/" + mode + "/" + postID
}

// Open loads the draft file at path, treating a missing or corrupt file as
// empty. A zero debounce selects DefaultDebounce.
func Open(path string, debounce time.Duration) *Store {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	s := &Store{
		path:     path,
		slots:    make(map[string]Draft),
		debounce: debounce,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(raw, &s.slots); err != nil {
			log.Printf("Draft file unreadable, starting empty: %v", err)
			s.slots = make(map[string]Draft)
		}
	}
	return s
}

// Load returns the draft for the editor opening with the given key.
// New-post mode always loads an existing draft; edit mode loads only when
// the draft has a non-empty title or content (otherwise the record being
// edited wins).
func (s *Store) Load(userID, mode, postID string) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.slots[Key(userID, mode, postID)]
	if !ok {
		return Draft{}, false
	}
	if mode == ModeEdit && draft.empty() {
		return Draft{}, false
	}
	return draft, true
}

// Put records the latest editor contents with a fresh timestamp and
// schedules a debounced rewrite of the draft file.
func (s *Store) Put(userID, mode, postID string, draft Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft.SavedAt = time.Now()
	s.slots[Key(userID, mode, postID)] = draft
	s.scheduleFlushLocked()
}

// Delete clears the slot (the publish path) and flushes immediately.
func (s *Store) Delete(userID, mode, postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	delete(s.slots, Key(userID, mode, postID))
	if err := s.flushLocked(); err != nil {
		log.Printf("Draft flush failed: %v", err)
	}
}

// Flush writes all slots to the draft file.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// Close stops the pending timer and flushes whatever is buffered.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return s.flushLocked()
}

// flushLocked marshals and writes under s.mu, so concurrent flushes cannot
// land on disk out of order. Callers hold s.mu.
func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// scheduleFlushLocked restarts the debounce timer. Callers hold s.mu.
func (s *Store) scheduleFlushLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.Flush(); err != nil {
			log.Printf("Draft flush failed: %v", err)
		}
	})
}
