package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mizutani/innervoice/internal/domain"
)

// Update handles key events and async results. All state transitions run on
// this single message loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshDoneMsg:
		m.loading = false
		m.err = msg.err
		m.clampCursor()
		return m, nil

	case postDoneMsg:
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, domain.ErrEmptyContent) {
				return m.withStatus("write something first")
			}
			m.err = msg.err
			return m, nil
		}
		m.input = ""
		return m.withStatus("posted")

	case reactDoneMsg:
		if errors.Is(msg.err, domain.ErrOwnReaction) {
			return m.withStatus("that one is yours")
		}
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case FeedChangedMsg:
		m.loading = true
		return m, refreshCmd(m.engine)

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.composing {
			return m.updateComposer(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.cursor++
		m.clampCursor()

	case "k", "up":
		m.cursor--
		m.clampCursor()

	case "tab":
		if m.engine.Mode() == domain.VisibilityPublic {
			m.engine.SetMode(domain.VisibilitySelfOnly)
		} else {
			m.engine.SetMode(domain.VisibilityPublic)
		}
		m.clampCursor()

	case "n":
		m.composing = true
		m.input = ""

	case "r":
		posts := m.engine.Displayed()
		if m.cursor < len(posts) {
			return m, reactCmd(m.engine, posts[m.cursor].ID)
		}

	case "ctrl+r":
		m.loading = true
		return m, refreshCmd(m.engine)
	}

	return m, nil
}

func (m Model) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		content := m.input
		m.composing = false
		m.loading = true
		// New entries take the visibility currently selected in the feed.
		return m, createPostCmd(m.engine, content, m.engine.Mode())

	case tea.KeyEsc:
		m.composing = false
		m.input = ""

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}

	case tea.KeySpace:
		m.input += " "

	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}

	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.engine.Displayed())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) withStatus(status string) (tea.Model, tea.Cmd) {
	m.status = status
	m.statusID++
	return m, clearStatusCmd(m.statusID)
}
