package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/photogrid/pkg/batch"
	"github.com/matzehuels/photogrid/pkg/debounce"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	listPickedStyle   = lipgloss.NewStyle().Foreground(colorOK)
)

// Terminal cells are mapped to CSS pixels at this size when the picker
// previews the layout for the current window.
const (
	cellWidth  = 8
	cellHeight = 16
)

// =============================================================================
// SelectModel - Interactive batch selection
// =============================================================================

// relayoutMsg asks the model to recompute the layout for its window size.
type relayoutMsg struct{}

// SelectModel is the bubbletea model for picking a batch selection.
type SelectModel struct {
	Session   *batch.Session
	Cursor    int
	Offset    int
	Height    int
	Confirmed bool

	viewport layout.Viewport
	winW     int
	winH     int
	layout   *layout.Result
	resize   *debounce.Driver
	err      error
}

// NewSelectModel creates a picker over the session's collection. base
// supplies chrome, rem and DPR for the layout preview; resize, when set,
// throttles relayouts during window resizes.
func NewSelectModel(s *batch.Session, base layout.Viewport, resize *debounce.Driver) SelectModel {
	return SelectModel{Session: s, Height: 15, viewport: base, resize: resize}
}

func (m SelectModel) Init() tea.Cmd {
	return nil
}

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	pics := m.Session.Collection().Pictures()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(pics)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if m.Cursor < len(pics) {
				m.err = m.Session.Toggle(pics[m.Cursor].ID)
			}
		case "a":
			m.Session.SelectAll()
		case "n":
			m.Session.SelectNone()
		case "i":
			m.Session.Invert()
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.winW, m.winH = msg.Width, msg.Height
		m.Height = max(msg.Height-10, 5)
		if m.resize != nil {
			m.resize.Signal()
		} else {
			m.relayout()
		}
	case relayoutMsg:
		m.relayout()
	}
	return m, nil
}

// relayout recomputes the layout preview for the last window size.
func (m *SelectModel) relayout() {
	if m.winW == 0 || m.winH == 0 {
		return
	}
	vp := m.viewport
	vp.Width = m.winW * cellWidth
	vp.Height = m.winH * cellHeight
	vp.OuterWidth, vp.InnerWidth, vp.ContentWidth = vp.Width, vp.Width, vp.Width
	res := layout.Compute(vp, layout.State{})
	m.layout = &res
}

func (m SelectModel) View() string {
	var b strings.Builder
	pics := m.Session.Collection().Pictures()

	b.WriteString(StyleTitle.Render("Select Pictures"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  space toggle  a all  n none  i invert  ⏎ done  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(pics))
	for i := m.Offset; i < end; i++ {
		p := pics[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if p.Selected {
			box = listPickedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s%s %6d  %s", cursor, box, p.ID, truncate(string(p.Caption), 48))
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case p.IsDeleted():
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	b.WriteString(summaryLine(m.Session.State()))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(StyleWarning.Render(errors.UserMessage(m.err)))
		b.WriteString("\n")
	}
	if m.layout != nil {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("layout %s  box %dpx  render %d",
			m.layout.Orientation, m.layout.BBox, m.layout.RenderSize)))
		b.WriteString("\n")
	}
	return b.String()
}

// summaryLine renders the selection aggregate on one line.
func summaryLine(st *batch.State) string {
	if st.Empty() {
		return listDimStyle.Render("nothing selected")
	}
	parts := []string{StyleNumber.Render(fmt.Sprintf("%d selected", st.Count))}
	if capt, ok := st.Scalars["cap"]; ok {
		if capt.Varies {
			parts = append(parts, "caption varies")
		} else if capt.Last != "" {
			parts = append(parts, fmt.Sprintf("caption %q", truncate(capt.Last, 24)))
		}
	}
	if st.Loc != nil {
		if st.Loc.Varies {
			parts = append(parts, "location varies")
		} else if st.Loc.Text != "" {
			parts = append(parts, "at "+st.Loc.Text)
		}
	}
	parts = append(parts, fmt.Sprintf("%d tags, %d people", len(st.Tags), len(st.People)))
	return strings.Join(parts, listDimStyle.Render(" · "))
}
