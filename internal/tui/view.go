package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tagdraw/internal/domain"
	"tagdraw/internal/render"
)

func (m Model) View() string {
	var b strings.Builder

	title := m.styles.Title.Render("Danbooru Tag Generator")
	if m.result != nil {
		title += "  " + m.styles.RunID.Render("run "+m.result.RunID)
	}
	b.WriteString(title + "\n\n")

	b.WriteString(m.modeRow() + "\n")
	b.WriteString(m.inputRow() + "\n\n")
	b.WriteString(m.statusLine() + "\n\n")

	b.WriteString(m.styles.PaneTitle.Render("Generated tags") + "\n")
	tagLine := ""
	if m.result != nil {
		tagLine = render.TagLine(m.result.Tags)
	}
	if tagLine == "" {
		tagLine = m.styles.Help.Render("(nothing yet)")
	}
	b.WriteString(m.pane().Render(tagLine) + "\n\n")

	if m.poolReady {
		heading := fmt.Sprintf("Full tag pool (%d tags)", len(m.result.Pool))
		b.WriteString(m.styles.PaneTitle.Render(heading) + "\n")
		b.WriteString(m.pool.View() + "\n")
	}

	b.WriteString("\n" + m.footer())
	return b.String()
}

func (m Model) modeRow() string {
	label := m.styles.Label.Render("Mode:")
	if m.focus == focusMode {
		label = m.styles.LabelFocused.Render("Mode:")
	}

	fixed := m.styles.ModeOff.Render("( ) fixed count")
	rng := m.styles.ModeOff.Render("( ) random range")
	if m.mode == ModeFixed {
		fixed = m.styles.ModeOn.Render("(x) fixed count")
	} else {
		rng = m.styles.ModeOn.Render("(x) random range")
	}

	row := label + " " + fixed + "   " + rng
	if m.focus == focusMode {
		row += m.styles.Help.Render("   space to switch")
	}
	return row
}

func (m Model) inputRow() string {
	if m.mode == ModeFixed {
		label := m.styles.Label.Render("Count:")
		if m.focus == focusCount {
			label = m.styles.LabelFocused.Render("Count:")
		}
		return label + " " + m.countIn.View()
	}

	minLabel := m.styles.Label.Render("Min:")
	if m.focus == focusMin {
		minLabel = m.styles.LabelFocused.Render("Min:")
	}
	maxLabel := m.styles.Label.Render("Max:")
	if m.focus == focusMax {
		maxLabel = m.styles.LabelFocused.Render("Max:")
	}
	return minLabel + " " + m.minIn.View() + "   " + maxLabel + " " + m.maxIn.View()
}

func (m Model) statusLine() string {
	if m.fetching {
		return m.spin.View() + " " + m.styles.Info.Render(m.status)
	}
	switch m.statusKind {
	case statusSuccess:
		return m.styles.Success.Render(m.status)
	case statusWarning:
		return m.styles.Warning.Render(m.status)
	case statusError:
		return m.styles.Error.Render(m.status)
	default:
		return m.styles.Info.Render(m.status)
	}
}

func (m Model) footer() string {
	if m.prompt != promptNone {
		label := map[promptKind]string{
			promptTags:    "tags",
			promptSources: "sources",
			promptReport:  "report",
		}[m.prompt]
		return m.styles.Prompt.Render("Save "+label+" to: ") +
			m.pathIn.View() +
			m.styles.Help.Render("  enter save, esc cancel")
	}
	return m.styles.Help.Render(
		"enter generate  tab focus  ctrl+t tags  ctrl+s sources  ctrl+r report  esc quit")
}

func (m Model) pane() lipgloss.Style {
	w := m.width - 4
	if w < 20 {
		w = 76
	}
	return m.styles.Pane.Width(w)
}

// poolContent is what the pool viewport scrolls through: the whole pool in
// display form, one tag per line, sorted.
func poolContent(res *domain.FetchResult) string {
	return strings.Join(render.PoolLines(res.Pool), "\n")
}
