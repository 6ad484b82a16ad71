package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"github.com/mizutani/innervoice/internal/domain"
)

// Store talks to the Supabase data plane over PostgREST. It implements
// domain.PostStore.
type Store struct {
	client *supa.Client
}

// NewStore wraps an authenticated Supabase client.
func NewStore(client *supa.Client) *Store {
	return &Store{client: client}
}

// postRow is the wire shape of a posts row with the embedded reaction
// aggregate from `reactions(count)`.
type postRow struct {
	ID         string        `json:"id"`
	Content    string        `json:"content"`
	UserID     string        `json:"user_id"`
	Visibility string        `json:"visibility"`
	CreatedAt  string        `json:"created_at"`
	Reactions  []reactionAgg `json:"reactions"`
}

type reactionAgg struct {
	Count int `json:"count"`
}

type insertPostRow struct {
	Content    string `json:"content"`
	UserID     string `json:"user_id"`
	Visibility string `json:"visibility"`
}

type insertReactionRow struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

// ListPosts fetches the full post collection with reaction counts, newest
// first.
func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var rows []postRow
	_, err := s.client.From("posts").
		Select("*, reactions(count)", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(rows))
	for _, r := range rows {
		createdAt, err := parseTimestamp(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", r.ID, err)
		}

		count := 0
		if len(r.Reactions) > 0 {
			count = r.Reactions[0].Count
		}

		posts = append(posts, domain.Post{
			ID:            r.ID,
			Content:       r.Content,
			AuthorID:      r.UserID,
			Visibility:    domain.Visibility(r.Visibility),
			CreatedAt:     createdAt,
			ReactionCount: count,
		})
	}
	return posts, nil
}

// InsertPost creates a new post row. The database assigns id and
// created_at.
func (s *Store) InsertPost(ctx context.Context, content, authorID string, visibility domain.Visibility) error {
	row := insertPostRow{
		Content:    content,
		UserID:     authorID,
		Visibility: string(visibility),
	}
	_, _, err := s.client.From("posts").Insert(row, false, "", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// InsertReaction records one reaction. A unique violation on the
// (post_id, user_id) constraint is reported as domain.ErrDuplicateReaction.
func (s *Store) InsertReaction(ctx context.Context, postID, userID string) error {
	row := insertReactionRow{PostID: postID, UserID: userID}
	_, _, err := s.client.From("reactions").Insert(row, false, "", "minimal", "").Execute()
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert reaction: %w", domain.ErrDuplicateReaction)
		}
		return fmt.Errorf("insert reaction: %w", err)
	}
	return nil
}

// isUniqueViolation detects the Postgres unique-constraint error PostgREST
// returns for a second reaction on the same (post, user) pair. postgrest-go
// flattens the error payload into a string, so match the SQLSTATE there.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}

// timestampLayouts covers timestamptz (RFC 3339 offset) and plain
// timestamp columns as PostgREST serializes them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
