package ui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizutani/innervoice/internal/domain"
)

type stubStore struct {
	posts []domain.Post
}

func (s *stubStore) ListPosts(context.Context) ([]domain.Post, error) { return s.posts, nil }
func (s *stubStore) InsertPost(_ context.Context, content, authorID string, vis domain.Visibility) error {
	s.posts = append([]domain.Post{{ID: "new", Content: content, AuthorID: authorID, Visibility: vis, CreatedAt: time.Now()}}, s.posts...)
	return nil
}
func (s *stubStore) InsertReaction(context.Context, string, string) error { return nil }

func newTestModel(t *testing.T, posts ...domain.Post) Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := domain.NewEngine(&stubStore{posts: posts}, domain.Session{UserID: "me"}, logger)
	require.NoError(t, engine.Refresh(context.Background()))
	return NewModel(engine)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabTogglesVisibilityMode(t *testing.T) {
	m := newTestModel(t,
		domain.Post{ID: "1", AuthorID: "other", Visibility: domain.VisibilityPublic, CreatedAt: time.Now()},
		domain.Post{ID: "2", AuthorID: "me", Visibility: domain.VisibilitySelfOnly, CreatedAt: time.Now()},
	)
	assert.Equal(t, domain.VisibilityPublic, m.engine.Mode())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	assert.Equal(t, domain.VisibilitySelfOnly, m.engine.Mode())
	require.Len(t, m.engine.Displayed(), 1)
	assert.Equal(t, "2", m.engine.Displayed()[0].ID)
}

func TestComposerSubmitsPost(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(key("n"))
	m = updated.(Model)
	assert.True(t, m.composing)

	updated, _ = m.Update(key("hi"))
	m = updated.(Model)
	assert.Equal(t, "hi", m.input)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.False(t, m.composing)

	msg := cmd()
	done, ok := msg.(postDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	require.Len(t, m.engine.Displayed(), 1)
	assert.Equal(t, "hi", m.engine.Displayed()[0].Content)
}

func TestComposerEscCancels(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(key("n"))
	m = updated.(Model)
	updated, _ = m.Update(key("oops"))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	assert.False(t, m.composing)
	assert.Empty(t, m.input)
}

func TestFeedChangedTriggersRefresh(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(FeedChangedMsg{})
	m = updated.(Model)

	assert.True(t, m.loading)
	require.NotNil(t, cmd)
	_, ok := cmd().(refreshDoneMsg)
	assert.True(t, ok)
}
