package store

import (
	"testing"

	"github.com/schellingx/piggyweb/internal/models"
)

func hydratedStore() *Store {
	s := New()
	s.setState(StateHydrated)
	return s
}

// TestNewStoreStartsLoading verifies seed data is in place before hydration
func TestNewStoreStartsLoading(t *testing.T) {
	s := New()

	if s.State() != StateLoading {
		t.Errorf("Expected Loading state, got %v", s.State())
	}
	if len(s.Users()) == 0 {
		t.Error("Expected seed users to be present")
	}
	if len(s.HomeSections()) != 5 {
		t.Errorf("Expected 5 seed home sections, got %d", len(s.HomeSections()))
	}
}

// TestReminderScenario walks the add/toggle/delete sequence
func TestReminderScenario(t *testing.T) {
	s := hydratedStore()

	r := s.AddReminder("buy milk")
	if r.Completed {
		t.Error("Expected new reminder to start uncompleted")
	}
	if r.Text != "buy milk" {
		t.Errorf("Expected text 'buy milk', got %q", r.Text)
	}

	s.ToggleReminder(r.ID)
	reminders := s.Reminders()
	if len(reminders) != 1 {
		t.Fatalf("Expected 1 reminder, got %d", len(reminders))
	}
	if !reminders[0].Completed {
		t.Error("Expected reminder completed after toggle")
	}
	if reminders[0].Text != "buy milk" || reminders[0].ID != r.ID {
		t.Error("Expected toggle to change only the completed flag")
	}

	s.ToggleReminder(r.ID)
	if s.Reminders()[0].Completed {
		t.Error("Expected second toggle to flip back")
	}

	s.DeleteReminder(r.ID)
	for _, rem := range s.Reminders() {
		if rem.ID == r.ID {
			t.Error("Expected reminder to be removed")
		}
	}
}

// TestToggleReminderOnlyMatching verifies non-matching items are untouched
func TestToggleReminderOnlyMatching(t *testing.T) {
	s := hydratedStore()

	a := s.AddReminder("first")
	b := s.AddReminder("second")

	s.ToggleReminder(b.ID)

	for _, r := range s.Reminders() {
		switch r.ID {
		case a.ID:
			if r.Completed {
				t.Error("Expected untouched reminder to stay uncompleted")
			}
		case b.ID:
			if !r.Completed {
				t.Error("Expected toggled reminder to be completed")
			}
		}
	}
}

// TestLoginScan tests the exact-match scan and miss behaviour
func TestLoginScan(t *testing.T) {
	s := hydratedStore()

	if s.Login("ghost", "x") {
		t.Error("Expected login to fail for unknown user")
	}
	if _, ok := s.CurrentUser(); ok {
		t.Error("Expected no current user after failed login")
	}

	if !s.Login("Dad", "1234") {
		t.Fatal("Expected seed admin login to succeed")
	}
	current, ok := s.CurrentUser()
	if !ok || current.Name != "Dad" {
		t.Error("Expected Dad to be the current user")
	}

	// A failed login leaves the previous session in place
	if s.Login("ghost", "x") {
		t.Error("Expected login to fail for unknown user")
	}
	current, ok = s.CurrentUser()
	if !ok || current.Name != "Dad" {
		t.Error("Expected failed login to leave current user unchanged")
	}

	// Wrong password is a miss too
	if s.Login("Dad", "wrong") {
		t.Error("Expected login to fail on password mismatch")
	}

	s.Logout()
	if _, ok := s.CurrentUser(); ok {
		t.Error("Expected no current user after logout")
	}
}

// TestAddUserAlwaysMember verifies the fixed-at-creation role
func TestAddUserAlwaysMember(t *testing.T) {
	s := hydratedStore()

	u := s.AddUser("Granny", "pw", "👵")
	if u.Role != models.RoleMember {
		t.Errorf("Expected member role, got %s", u.Role)
	}
	if u.ID == "" {
		t.Error("Expected a generated id")
	}
	if !s.Login("Granny", "pw") {
		t.Error("Expected new user to be able to log in")
	}
}

// TestPasswordOperations tests change (verified) and reset (by name only)
func TestPasswordOperations(t *testing.T) {
	s := hydratedStore()

	if s.ChangePassword("Mom", "wrong", "new") {
		t.Error("Expected change with wrong old password to fail")
	}
	if !s.ChangePassword("Mom", "1234", "new") {
		t.Error("Expected change with correct old password to succeed")
	}
	if !s.Login("Mom", "new") {
		t.Error("Expected login with new password")
	}

	// Reset needs no verification at the store level
	if !s.ResetUserPassword("Mom", "again") {
		t.Error("Expected reset by name to succeed")
	}
	if s.ResetUserPassword("ghost", "x") {
		t.Error("Expected reset for unknown name to fail")
	}
	if !s.Login("Mom", "again") {
		t.Error("Expected login with reset password")
	}
}

// TestBlogLifecycle tests prepend ordering, wholesale update, like, delete
func TestBlogLifecycle(t *testing.T) {
	s := hydratedStore()
	initial := len(s.Blogs())

	first := s.AddBlog(models.BlogPost{Title: "First", Content: "one"})
	second := s.AddBlog(models.BlogPost{Title: "Second", Content: "two"})

	blogs := s.Blogs()
	if len(blogs) != initial+2 {
		t.Fatalf("Expected %d blogs, got %d", initial+2, len(blogs))
	}
	if blogs[0].ID != second.ID || blogs[1].ID != first.ID {
		t.Error("Expected newest-first ordering")
	}

	// Wholesale replace by id
	second.Title = "Second, revised"
	second.Tags = []string{"update"}
	if !s.UpdateBlog(second) {
		t.Fatal("Expected update to find the post")
	}
	if got := s.Blogs()[0]; got.Title != "Second, revised" || len(got.Tags) != 1 {
		t.Error("Expected wholesale replacement of the post")
	}

	if s.UpdateBlog(models.BlogPost{ID: "missing"}) {
		t.Error("Expected update of unknown id to report false")
	}

	s.LikeBlog(first.ID)
	s.LikeBlog(first.ID)
	for _, b := range s.Blogs() {
		if b.ID == first.ID && b.Likes != 2 {
			t.Errorf("Expected 2 likes, got %d", b.Likes)
		}
	}

	s.DeleteBlog(first.ID)
	for _, b := range s.Blogs() {
		if b.ID == first.ID {
			t.Error("Expected post to be deleted")
		}
	}
}

// TestPhotoAndAppOrdering verifies prepend for photos, append for apps
func TestPhotoAndAppOrdering(t *testing.T) {
	s := hydratedStore()

	p1 := s.AddPhoto(models.Photo{URL: "/media/a.jpg", Caption: "a", Source: models.PhotoSourceMount})
	p2 := s.AddPhoto(models.Photo{URL: "data:image/png;base64,xyz", Caption: "b", Source: models.PhotoSourceLocal})
	photos := s.Photos()
	if photos[0].ID != p2.ID || photos[1].ID != p1.ID {
		t.Error("Expected photos newest-first")
	}

	initial := len(s.Apps())
	a := s.AddApp(models.AppItem{Name: "Recipes", Icon: "chef-hat", URL: "https://example.com"})
	apps := s.Apps()
	if len(apps) != initial+1 || apps[len(apps)-1].ID != a.ID {
		t.Error("Expected apps appended in order")
	}
}

// TestHomeSections tests wholesale layout replacement and the edit flag
func TestHomeSections(t *testing.T) {
	s := hydratedStore()

	if s.HomeEditing() {
		t.Error("Expected edit mode off by default")
	}
	if !s.ToggleHomeEditing() {
		t.Error("Expected toggle to turn edit mode on")
	}

	layout := []models.HomeSection{
		{ID: "s-apps", Type: models.SectionApps, Visible: true, Title: "Apps"},
	}
	s.UpdateHomeSections(layout)
	if got := s.HomeSections(); len(got) != 1 || got[0].ID != "s-apps" {
		t.Error("Expected wholesale section replacement")
	}
}

// TestApplyPatchPartial verifies absent keys keep current values
func TestApplyPatchPartial(t *testing.T) {
	s := New()

	reminders := []models.Reminder{{ID: "r1", Text: "from server", Completed: true}}
	s.applyPatch(models.StatePatch{Reminders: &reminders})

	if got := s.Reminders(); len(got) != 1 || got[0].Text != "from server" {
		t.Error("Expected reminders overwritten from patch")
	}
	if len(s.Users()) == 0 {
		t.Error("Expected seed users kept for absent key")
	}

	// Present-but-empty replaces
	empty := []models.User{}
	s.applyPatch(models.StatePatch{AllUsers: &empty})
	if len(s.Users()) != 0 {
		t.Error("Expected empty present key to overwrite")
	}
}

// TestChangesSuppressedUntilHydrated tests the auto-save guard flag
func TestChangesSuppressedUntilHydrated(t *testing.T) {
	s := New()

	s.AddReminder("early")
	select {
	case <-s.Changes():
		t.Error("Expected no change event before hydration")
	default:
	}

	s.setState(StateHydrated)
	s.AddReminder("late")
	select {
	case <-s.Changes():
	default:
		t.Error("Expected change event after hydration")
	}
}
