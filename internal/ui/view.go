package ui

import (
	"fmt"
	"strings"

	"github.com/mizutani/innervoice/internal/domain"
)

// View renders the feed, stats header and composer as plain text.
func (m Model) View() string {
	var b strings.Builder

	stats := m.engine.Stats()
	mode := m.engine.Mode()

	b.WriteString("Inner Voice\n")
	if mode == domain.VisibilityPublic {
		b.WriteString("The world is listening.")
	} else {
		b.WriteString("Just for you.")
	}
	if m.loading {
		b.WriteString("  (refreshing...)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "week %d · month %d · total %d\n\n", stats.Week, stats.Month, stats.Total)

	posts := m.engine.Displayed()
	if len(posts) == 0 {
		b.WriteString("  nothing here yet\n")
	}

	now := m.nowFn()
	for i, p := range posts {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}

		var tags []string
		if p.AuthorID == m.engine.UserID() {
			tags = append(tags, "you")
		}
		if p.Visibility == domain.VisibilitySelfOnly {
			tags = append(tags, "private")
		}

		b.WriteString(marker)
		b.WriteString(p.Content)
		if len(tags) > 0 {
			fmt.Fprintf(&b, "  [%s]", strings.Join(tags, ", "))
		}
		b.WriteString("\n")

		fmt.Fprintf(&b, "    %s", domain.FormatPostTime(p.CreatedAt, now))
		if p.ReactionCount > 0 {
			fmt.Fprintf(&b, "  ♥ %d", p.ReactionCount)
		}
		b.WriteString("\n\n")
	}

	if m.composing {
		fmt.Fprintf(&b, "\nType your thoughts: %s_\n", m.input)
		b.WriteString("enter to post · esc to cancel\n")
	} else {
		b.WriteString("\nn new · r react · tab public/private · ctrl+r refresh · q quit\n")
	}

	if m.status != "" {
		fmt.Fprintf(&b, "\n%s\n", m.status)
	}
	if m.err != nil {
		fmt.Fprintf(&b, "\nerror: %v\n", m.err)
	}

	return b.String()
}
