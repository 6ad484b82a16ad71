package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mizutani/innervoice/internal/domain"
)

// Engine is the slice of the feed engine the UI consumes.
type Engine interface {
	Refresh(ctx context.Context) error
	SetMode(mode domain.Visibility)
	Mode() domain.Visibility
	Displayed() []domain.Post
	Stats() domain.Stats
	CreatePost(ctx context.Context, content string, visibility domain.Visibility) error
	React(ctx context.Context, postID string) error
	UserID() string
}

type refreshDoneMsg struct {
	err error
}

type postDoneMsg struct {
	err error
}

type reactDoneMsg struct {
	err error
}

type clearStatusMsg struct {
	id int
}

// FeedChangedMsg asks the model to refetch the feed. The realtime
// subscriber delivers it through Program.Send.
type FeedChangedMsg struct{}

// Model is the bubbletea model for the interactive client.
type Model struct {
	engine Engine

	cursor    int
	composing bool
	input     string
	status    string
	statusID  int
	err       error
	loading   bool
	width     int
	height    int
	nowFn     func() time.Time
}

// NewModel creates the initial model.
func NewModel(engine Engine) Model {
	return Model{
		engine: engine,
		nowFn:  time.Now,
	}
}

// Init kicks off the first feed fetch.
func (m Model) Init() tea.Cmd {
	return refreshCmd(m.engine)
}

func refreshCmd(e Engine) tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: e.Refresh(context.Background())}
	}
}

func createPostCmd(e Engine, content string, visibility domain.Visibility) tea.Cmd {
	return func() tea.Msg {
		return postDoneMsg{err: e.CreatePost(context.Background(), content, visibility)}
	}
}

func reactCmd(e Engine, postID string) tea.Cmd {
	return func() tea.Msg {
		return reactDoneMsg{err: e.React(context.Background(), postID)}
	}
}

func clearStatusCmd(id int) tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
