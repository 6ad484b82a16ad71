package domain

import "context"

// PostStore is the remote collection of posts and their reaction ledger.
type PostStore interface {
	// ListPosts returns the full post collection with reaction counts,
	// ordered by creation time descending.
	ListPosts(ctx context.Context) ([]Post, error)

	// InsertPost creates a new post. The store assigns the id and the
	// creation timestamp.
	InsertPost(ctx context.Context, content, authorID string, visibility Visibility) error

	// InsertReaction records one reaction in the ledger. The store enforces
	// at most one reaction per (post, user) pair; a violation is reported
	// as ErrDuplicateReaction, any other failure as a generic error.
	InsertReaction(ctx context.Context, postID, userID string) error
}

// IdentityProvider yields the stable anonymous user session.
type IdentityProvider interface {
	// CurrentSession resumes a previously established session. ok is false
	// when no usable session exists on this device.
	CurrentSession(ctx context.Context) (session Session, ok bool, err error)

	// CreateAnonymousSession issues a fresh anonymous session.
	CreateAnonymousSession(ctx context.Context) (Session, error)
}

// SessionCache persists the anonymous session on this device so the same
// identity survives restarts.
type SessionCache interface {
	// Load returns the cached session, or ok=false when none is stored.
	Load(ctx context.Context) (session Session, ok bool, err error)

	// Save stores the session, replacing any previous one.
	Save(ctx context.Context, session Session) error
}
