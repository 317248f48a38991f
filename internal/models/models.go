// models.go
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

package models

// Role values for User.Role. New users are always created as RoleMember;
// the role is fixed at creation.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleGuest  = "guest"
)

// User is a family member account. Password is stored and compared as-is;
// this service is intended for a private single-family deployment.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// Comment is a reader comment on a blog post. Author is a display name,
// not a user id.
type Comment struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// BlogPost is a single blog entry. Posts are kept newest-first.
type BlogPost struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Content  string    `json:"content"`
	Author   User      `json:"author"`
	Date     string    `json:"date"`
	Tags     []string  `json:"tags"`
	Likes    int       `json:"likes"`
	Image    string    `json:"image,omitempty"`
	Comments []Comment `json:"comments"`
}

// Photo source values.
const (
	PhotoSourceLocal = "local"
	PhotoSourceMount = "mount"
)

// Photo is a gallery item. URL is either a data-URI (client upload) or a
// server-relative path under the media mount.
type Photo struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Caption   string `json:"caption"`
	Category  string `json:"category"`
	Date      string `json:"date"`
	TakenBy   string `json:"takenBy"`
	Source    string `json:"source,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
}

// AppItem is a launcher entry. Icon is an icon-set key string.
type AppItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Reminder is a single to-do item.
type Reminder struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// HomeSection types.
const (
	SectionCarousel = "carousel"
	SectionApps     = "apps"
	SectionBlogs    = "blogs"
	SectionNotices  = "notices"
	SectionTheme    = "theme"
)

// HomeSection describes one block of the landing page, in insertion order.
type HomeSection struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Visible bool   `json:"visible"`
	Title   string `json:"title"`
}

// StateDocument is the entire persisted application state. Every save
// replaces the whole record; there is no partial-write API.
type StateDocument struct {
	AllUsers     []User        `json:"allUsers"`
	Blogs        []BlogPost    `json:"blogs"`
	Photos       []Photo       `json:"photos"`
	Apps         []AppItem     `json:"apps"`
	Reminders    []Reminder    `json:"reminders"`
	HomeSections []HomeSection `json:"homeSections"`
}

// StatePatch mirrors StateDocument with pointer slices so a decoded server
// document can distinguish a key that is absent from one that is present but
// empty. Absent keys keep the client's current values on hydration.
type StatePatch struct {
	AllUsers     *[]User        `json:"allUsers"`
	Blogs        *[]BlogPost    `json:"blogs"`
	Photos       *[]Photo       `json:"photos"`
	Apps         *[]AppItem     `json:"apps"`
	Reminders    *[]Reminder    `json:"reminders"`
	HomeSections *[]HomeSection `json:"homeSections"`
}
