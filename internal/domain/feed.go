package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Engine is the core feed service. It owns the raw fetched post snapshot
// and everything derived from it: the displayed list for the current
// visibility mode and the current user's posting stats. Derived state is
// recomputed from the snapshot after every mutation, never patched
// incrementally, so it can never drift from its source.
type Engine struct {
	store   PostStore
	session Session
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	rawPosts  []Post
	mode      Visibility
	displayed []Post
	stats     Stats
	loading   bool
}

// NewEngine creates an Engine for the given session. The snapshot starts
// empty; call Refresh to populate it.
func NewEngine(store PostStore, session Session, logger *slog.Logger) *Engine {
	return &Engine{
		store:   store,
		session: session,
		logger:  logger,
		now:     time.Now,
		mode:    VisibilityPublic,
	}
}

// UserID returns the acting user's id.
func (e *Engine) UserID() string {
	return e.session.UserID
}

// Mode returns the current visibility mode.
func (e *Engine) Mode() Visibility {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Loading reports whether a fetch is in flight.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Displayed returns the posts visible under the current mode, newest first.
func (e *Engine) Displayed() []Post {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Post, len(e.displayed))
	copy(out, e.displayed)
	return out
}

// Stats returns the current user's posting stats as of the last snapshot
// change.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Refresh fetches the full post collection and replaces the snapshot
// wholesale. On failure the snapshot is left untouched and the error is
// returned. Concurrent refreshes are last-resolved-wins.
func (e *Engine) Refresh(ctx context.Context) error {
	e.setLoading(true)
	defer e.setLoading(false)

	posts, err := e.store.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}

	e.mu.Lock()
	e.rawPosts = posts
	e.recompute(true)
	e.mu.Unlock()
	return nil
}

// SetMode switches the visibility mode and re-derives the displayed list.
// Stats are unaffected: the mode does not change which posts are the
// user's own.
func (e *Engine) SetMode(mode Visibility) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = mode
	e.recompute(false)
}

// CreatePost validates and inserts a new entry, then refetches the whole
// collection. There is no optimistic insert; the post becomes visible only
// once the refetch completes.
func (e *Engine) CreatePost(ctx context.Context, content string, visibility Visibility) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if e.session.UserID == "" {
		return ErrNoSession
	}

	if err := e.store.InsertPost(ctx, content, e.session.UserID, visibility); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return e.Refresh(ctx)
}

// React applies an optimistic +1 to the post's reaction count and then
// records the reaction in the remote ledger. The local increment is applied
// before the write is dispatched and is not reconciled against the server
// until the next full fetch. A duplicate-key failure from the ledger is
// benign and leaves the increment in place; any other write failure
// triggers a single corrective refetch.
//
// Reacting with no session or to an unknown post id is a no-op; reacting
// to one's own post is rejected with ErrOwnReaction.
func (e *Engine) React(ctx context.Context, postID string) error {
	if e.session.UserID == "" {
		return nil
	}

	e.mu.Lock()
	idx := -1
	for i := range e.rawPosts {
		if e.rawPosts[i].ID == postID {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return nil
	}
	if e.rawPosts[idx].AuthorID == e.session.UserID {
		e.mu.Unlock()
		return ErrOwnReaction
	}

	e.rawPosts[idx].ReactionCount++
	e.recompute(false)
	e.mu.Unlock()

	err := e.store.InsertReaction(ctx, postID, e.session.UserID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDuplicateReaction):
		// The ledger already holds this pair. The single local increment
		// matches the at-most-one-per-user invariant, so nothing to undo.
		return nil
	default:
		e.logger.Warn("reaction write failed, refetching", "post_id", postID, "error", err)
		if rerr := e.Refresh(ctx); rerr != nil {
			e.logger.Error("corrective refetch failed", "error", rerr)
		}
		return fmt.Errorf("insert reaction: %w", err)
	}
}

// recompute re-derives the displayed list and, when the snapshot itself
// changed, the user's stats. now is sampled fresh on every stats
// computation. Callers must hold mu.
func (e *Engine) recompute(snapshotChanged bool) {
	e.displayed = DeriveDisplayed(e.rawPosts, e.mode, e.session.UserID)
	if snapshotChanged {
		e.stats = ComputeStats(e.myPosts(), e.now())
	}
}

// myPosts returns the user's subset of the snapshot. Callers must hold mu.
func (e *Engine) myPosts() []Post {
	mine := make([]Post, 0, len(e.rawPosts))
	for _, p := range e.rawPosts {
		if p.AuthorID == e.session.UserID {
			mine = append(mine, p)
		}
	}
	return mine
}

func (e *Engine) setLoading(v bool) {
	e.mu.Lock()
	e.loading = v
	e.mu.Unlock()
}

// DeriveDisplayed filters the raw snapshot down to what the given mode
// shows, preserving relative order. SelfOnly keeps the user's posts of
// either visibility; Public keeps public posts plus the user's own.
func DeriveDisplayed(raw []Post, mode Visibility, userID string) []Post {
	out := make([]Post, 0, len(raw))
	for _, p := range raw {
		switch mode {
		case VisibilitySelfOnly:
			if p.AuthorID == userID {
				out = append(out, p)
			}
		default:
			if p.Visibility == VisibilityPublic || p.AuthorID == userID {
				out = append(out, p)
			}
		}
	}
	return out
}
