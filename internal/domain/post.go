package domain

import "time"

// Visibility controls who can see a post. It doubles as the feed's display
// mode: Public shows everyone's public posts plus the user's own, SelfOnly
// shows only the user's own posts.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilitySelfOnly Visibility = "self"
)

// Post is a single journal entry as fetched from the post store. Content,
// author, visibility and creation time are immutable after creation;
// ReactionCount is the only field the client mutates locally (optimistic
// increments between fetches).
type Post struct {
	// ID is assigned by the post store on creation.
	ID string

	// Content is the entry text.
	Content string

	// AuthorID is the id of the creating user.
	AuthorID string

	// Visibility is set at creation and never changes.
	Visibility Visibility

	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time

	// ReactionCount is the number of reactions on this post. Between an
	// optimistic increment and the next full fetch it may run ahead of the
	// authoritative server value.
	ReactionCount int
}

// Stats summarizes the current user's posting activity.
type Stats struct {
	// Total is the lifetime post count.
	Total int

	// Month counts posts created in the same calendar month and year as
	// the reference time.
	Month int

	// Week counts posts created within the rolling 7-day window before the
	// reference time.
	Week int
}

// Session identifies the acting anonymous user. It is established once at
// startup and fixed for the process lifetime.
type Session struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}
