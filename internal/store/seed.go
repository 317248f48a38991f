package store

import "github.com/schellingx/piggyweb/internal/models"

// SeedDocument returns the built-in defaults shown while the first fetch is
// in flight, and pushed to the server on a first run. Ids here are fixed
// strings rather than timestamps so reseeded deployments stay comparable.
func SeedDocument() models.StateDocument {
	return models.StateDocument{
		AllUsers: []models.User{
			{ID: "u-dad", Name: "Dad", Avatar: "🐷", Role: models.RoleAdmin, Password: "1234"},
			{ID: "u-mom", Name: "Mom", Avatar: "🌸", Role: models.RoleMember, Password: "1234"},
			{ID: "u-piggy", Name: "Piggy", Avatar: "🎀", Role: models.RoleMember, Password: "1234"},
		},
		Blogs: []models.BlogPost{
			{
				ID:       "b-welcome",
				Title:    "Welcome home",
				Excerpt:  "Our own little corner of the internet.",
				Content:  "This is the family blog. Photos, notes, and whatever else we feel like keeping.",
				Author:   models.User{ID: "u-dad", Name: "Dad", Avatar: "🐷", Role: models.RoleAdmin},
				Date:     "2026-01-01",
				Tags:     []string{"family"},
				Likes:    0,
				Comments: []models.Comment{},
			},
		},
		Photos: []models.Photo{},
		Apps: []models.AppItem{
			{ID: "a-photos", Name: "Gallery", Icon: "camera", Category: "home", Description: "Family photo gallery", URL: "/gallery"},
			{ID: "a-blog", Name: "Blog", Icon: "book", Category: "home", Description: "Family blog", URL: "/blog"},
			{ID: "a-chat", Name: "Assistant", Icon: "sparkles", Category: "home", Description: "AI chat assistant", URL: "/chat"},
		},
		Reminders: []models.Reminder{},
		HomeSections: []models.HomeSection{
			{ID: "s-carousel", Type: models.SectionCarousel, Visible: true, Title: "Photos"},
			{ID: "s-apps", Type: models.SectionApps, Visible: true, Title: "Apps"},
			{ID: "s-blogs", Type: models.SectionBlogs, Visible: true, Title: "Latest posts"},
			{ID: "s-notices", Type: models.SectionNotices, Visible: true, Title: "Reminders"},
			{ID: "s-theme", Type: models.SectionTheme, Visible: false, Title: "Theme"},
		},
	}
}
