// syncer.go
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

package store

import (
	"context"
	"log"
	"time"
)

// DefaultDebounce is the quiet period after the last mutation before the
// full document is uploaded.
const DefaultDebounce = 1000 * time.Millisecond

// Syncer owns the debounce timer and turns store change events into
// whole-document uploads. It runs a single goroutine, so saves never
// overlap: a change arriving while a save is in flight sits in the change
// channel and is coalesced into exactly one follow-up save.
type Syncer struct {
	store    *Store
	client   *Client
	debounce time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewSyncer creates a syncer for the store and gateway client. A zero
// debounce selects DefaultDebounce.
func NewSyncer(store *Store, client *Client, debounce time.Duration) *Syncer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Syncer{
		store:    store,
		client:   client,
		debounce: debounce,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Hydrate runs the startup protocol: fetch the server document, seed the
// server when it reports uninitialized, otherwise overlay the present keys.
// Every path ends Hydrated; a fetch failure just means running on seed data.
func (s *Syncer) Hydrate(ctx context.Context) {
	patch, initialized, err := s.client.FetchState(ctx)
	if err != nil {
		log.Printf("Hydrate failed, continuing with local data: %v", err)
		s.store.setState(StateHydrated)
		return
	}

	if !initialized {
		s.store.setState(StateSeeding)
		if err := s.client.SaveState(ctx, s.store.Snapshot()); err != nil {
			log.Printf("Seeding save failed: %v", err)
		}
		s.store.setState(StateHydrated)
		return
	}

	s.store.applyPatch(patch)
	s.store.setState(StateHydrated)
}

// Start launches the sync loop.
func (s *Syncer) Start() {
	go s.run()
}

// Stop cancels any pending debounce timer and waits for the loop to exit.
// A pending, unfired save is dropped — the documented data-loss window.
func (s *Syncer) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Syncer) run() {
	defer close(s.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-s.stop:
			if timer != nil {
				timer.Stop()
			}
			return

		case <-s.store.Changes():
			// Pure trailing debounce: cancel and restart on every change.
			if timer == nil {
				timer = time.NewTimer(s.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-fire:
					default:
					}
				}
				timer.Reset(s.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			s.save()
		}
	}
}

// save uploads the current document. Failures are logged and otherwise
// ignored; the next debounce cycle is the only retry mechanism.
func (s *Syncer) save() {
	if err := s.client.SaveState(context.Background(), s.store.Snapshot()); err != nil {
		log.Printf("State save failed: %v", err)
	}
}
