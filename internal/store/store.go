// store.go
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

// Package store holds the canonical in-memory copies of all hub collections
// behind a narrow mutation interface. Mutations never touch the network;
// each one emits a change event that the Syncer turns into a debounced
// whole-document upload.
package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/schellingx/piggyweb/internal/models"
)

// Hydration states. The store starts Loading with seed data in place,
// passes through Seeding when the server reports no document, and settles
// in Hydrated. Change events are suppressed until Hydrated.
type State int

const (
	StateLoading State = iota
	StateSeeding
	StateHydrated
)

// Store is the client-side state container.
type Store struct {
	mu           sync.Mutex
	users        []models.User
	blogs        []models.BlogPost
	photos       []models.Photo
	apps         []models.AppItem
	reminders    []models.Reminder
	homeSections []models.HomeSection

	// Session-local, never persisted.
	currentUser *models.User
	homeEditing bool

	state   State
	changes chan struct{}
}

// New creates a store pre-populated with seed data, in the Loading state.
func New() *Store {
	doc := SeedDocument()
	return &Store{
		users:        doc.AllUsers,
		blogs:        doc.Blogs,
		photos:       doc.Photos,
		apps:         doc.Apps,
		reminders:    doc.Reminders,
		homeSections: doc.HomeSections,
		state:        StateLoading,
		changes:      make(chan struct{}, 1),
	}
}

// Changes is the change-event stream consumed by the Syncer. The channel is
// a coalescing signal: a pending event stands for "state changed since the
// last read", not a count.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// State returns the hydration state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// notifyLocked emits a change event unless hydration is still in progress.
// Callers hold s.mu.
func (s *Store) notifyLocked() {
	if s.state != StateHydrated {
		return
	}
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// newID generates a timestamp-based id. Uniqueness is assumed, not
// enforced; two ids generated in the same millisecond collide.
func newID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func nowDate() string {
	return time.Now().Format("2006-01-02")
}

// Snapshot returns the full persistable document. Mutations are
// copy-on-write, so the returned slice headers stay valid after later
// mutations.
func (s *Store) Snapshot() models.StateDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.StateDocument{
		AllUsers:     s.users,
		Blogs:        s.blogs,
		Photos:       s.photos,
		Apps:         s.apps,
		Reminders:    s.reminders,
		HomeSections: s.homeSections,
	}
}

// applyPatch overwrites only the collections present in the server
// document; absent keys keep the current (seed) values.
func (s *Store) applyPatch(patch models.StatePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.AllUsers != nil {
		s.users = *patch.AllUsers
	}
	if patch.Blogs != nil {
		s.blogs = *patch.Blogs
	}
	if patch.Photos != nil {
		s.photos = *patch.Photos
	}
	if patch.Apps != nil {
		s.apps = *patch.Apps
	}
	if patch.Reminders != nil {
		s.reminders = *patch.Reminders
	}
	if patch.HomeSections != nil {
		s.homeSections = *patch.HomeSections
	}
}

// --- users & authentication ---

// AddUser creates a new member account. Role is fixed at creation; new
// users are always members.
func (s *Store) AddUser(name, password, avatar string) models.User {
	user := models.User{
		ID:       newID(),
		Name:     name,
		Avatar:   avatar,
		Role:     models.RoleMember,
		Password: password,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, len(s.users), len(s.users)+1)
	copy(users, s.users)
	s.users = append(users, user)
	s.notifyLocked()
	return user
}

// Login does a linear scan for an exact (name, password) match. On a miss
// the current-user state is left unchanged.
func (s *Store) Login(name, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Name == name && s.users[i].Password == password {
			u := s.users[i]
			s.currentUser = &u
			return true
		}
	}
	return false
}

// Logout clears the current user. Being "logged in" is only a User held in
// memory; it does not survive a restart.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = nil
}

// CurrentUser returns the logged-in user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return models.User{}, false
	}
	return *s.currentUser, true
}

// ChangePassword updates a user's password after verifying the old one.
func (s *Store) ChangePassword(name, oldPassword, newPassword string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Name == name && s.users[i].Password == oldPassword {
			users := make([]models.User, len(s.users))
			copy(users, s.users)
			users[i].Password = newPassword
			s.users = users
			if s.currentUser != nil && s.currentUser.ID == users[i].ID {
				u := users[i]
				s.currentUser = &u
			}
			s.notifyLocked()
			return true
		}
	}
	return false
}

// ResetUserPassword sets a new password looked up by name only. The UI's
// security question is cosmetic; nothing is verified here.
func (s *Store) ResetUserPassword(name, newPassword string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Name == name {
			users := make([]models.User, len(s.users))
			copy(users, s.users)
			users[i].Password = newPassword
			s.users = users
			s.notifyLocked()
			return true
		}
	}
	return false
}

// UpdateUserAvatar replaces a user's avatar by id.
func (s *Store) UpdateUserAvatar(id, avatar string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			users := make([]models.User, len(s.users))
			copy(users, s.users)
			users[i].Avatar = avatar
			s.users = users
			if s.currentUser != nil && s.currentUser.ID == id {
				u := users[i]
				s.currentUser = &u
			}
			s.notifyLocked()
			return true
		}
	}
	return false
}

// Users returns the user list.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users
}

// --- blogs ---

// AddBlog prepends a post (newest-first). A missing id or date is filled
// in.
func (s *Store) AddBlog(post models.BlogPost) models.BlogPost {
	if post.ID == "" {
		post.ID = newID()
	}
	if post.Date == "" {
		post.Date = nowDate()
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	blogs := make([]models.BlogPost, 0, len(s.blogs)+1)
	blogs = append(blogs, post)
	blogs = append(blogs, s.blogs...)
	s.blogs = blogs
	s.notifyLocked()
	return post
}

// UpdateBlog replaces a post wholesale by id.
func (s *Store) UpdateBlog(post models.BlogPost) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.blogs {
		if s.blogs[i].ID == post.ID {
			blogs := make([]models.BlogPost, len(s.blogs))
			copy(blogs, s.blogs)
			blogs[i] = post
			s.blogs = blogs
			s.notifyLocked()
			return true
		}
	}
	return false
}

// DeleteBlog removes a post by id.
func (s *Store) DeleteBlog(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blogs := make([]models.BlogPost, 0, len(s.blogs))
	for i := range s.blogs {
		if s.blogs[i].ID != id {
			blogs = append(blogs, s.blogs[i])
		}
	}
	s.blogs = blogs
	s.notifyLocked()
}

// LikeBlog increments a post's like counter. Read-then-write,
// last-writer-wins.
func (s *Store) LikeBlog(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.blogs {
		if s.blogs[i].ID == id {
			blogs := make([]models.BlogPost, len(s.blogs))
			copy(blogs, s.blogs)
			blogs[i].Likes++
			s.blogs = blogs
			s.notifyLocked()
			return
		}
	}
}

// Blogs returns the post list, newest first.
func (s *Store) Blogs() []models.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blogs
}

// --- photos ---

// AddPhoto prepends a gallery item. There is no update or delete here;
// gallery curation happens outside the store.
func (s *Store) AddPhoto(photo models.Photo) models.Photo {
	if photo.ID == "" {
		photo.ID = newID()
	}
	if photo.Date == "" {
		photo.Date = nowDate()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	photos := make([]models.Photo, 0, len(s.photos)+1)
	photos = append(photos, photo)
	photos = append(photos, s.photos...)
	s.photos = photos
	s.notifyLocked()
	return photo
}

// Photos returns the gallery list, newest first.
func (s *Store) Photos() []models.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photos
}

// --- apps ---

// AddApp appends a launcher entry.
func (s *Store) AddApp(app models.AppItem) models.AppItem {
	if app.ID == "" {
		app.ID = newID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	apps := make([]models.AppItem, len(s.apps), len(s.apps)+1)
	copy(apps, s.apps)
	s.apps = append(apps, app)
	s.notifyLocked()
	return app
}

// Apps returns the launcher list.
func (s *Store) Apps() []models.AppItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apps
}

// --- reminders ---

// AddReminder appends a new, uncompleted reminder.
func (s *Store) AddReminder(text string) models.Reminder {
	reminder := models.Reminder{
		ID:        newID(),
		Text:      text,
		Completed: false,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	reminders := make([]models.Reminder, len(s.reminders), len(s.reminders)+1)
	copy(reminders, s.reminders)
	s.reminders = append(reminders, reminder)
	s.notifyLocked()
	return reminder
}

// ToggleReminder flips the completed flag of the matching reminder.
func (s *Store) ToggleReminder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			reminders := make([]models.Reminder, len(s.reminders))
			copy(reminders, s.reminders)
			reminders[i].Completed = !reminders[i].Completed
			s.reminders = reminders
			s.notifyLocked()
			return
		}
	}
}

// DeleteReminder removes a reminder by id.
func (s *Store) DeleteReminder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reminders := make([]models.Reminder, 0, len(s.reminders))
	for i := range s.reminders {
		if s.reminders[i].ID != id {
			reminders = append(reminders, s.reminders[i])
		}
	}
	s.reminders = reminders
	s.notifyLocked()
}

// Reminders returns the reminder list.
func (s *Store) Reminders() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reminders
}

// --- home layout ---

// ToggleHomeEditing flips the landing-page edit mode. Session-local; never
// persisted and never triggers a save.
func (s *Store) ToggleHomeEditing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.homeEditing = !s.homeEditing
	return s.homeEditing
}

// HomeEditing reports whether edit mode is on.
func (s *Store) HomeEditing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.homeEditing
}

// UpdateHomeSections replaces the landing-page layout wholesale.
func (s *Store) UpdateHomeSections(sections []models.HomeSection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.homeSections = sections
	s.notifyLocked()
}

// HomeSections returns the landing-page layout, in insertion order.
func (s *Store) HomeSections() []models.HomeSection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.homeSections
}
