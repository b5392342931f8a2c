// Package tui renders a generated timeline in the terminal: one colored
// lane per track, a movable playhead, and a scene inspector line.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"go-lightshow/show"
)

const (
	defaultCellMS = 250
	minCellMS     = 50
	maxCellMS     = 4000
)

type Model struct {
	Timeline *show.Timeline

	width    int
	cursorMS int
	cellMS   int
	quitting bool
}

func NewModel(tl *show.Timeline) Model {
	return Model{
		Timeline: tl,
		width:    80,
		cellMS:   defaultCellMS,
	}
}

// Run shows the preview until the user quits.
func Run(tl *show.Timeline) error {
	p := tea.NewProgram(NewModel(tl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "left", "h":
			m.cursorMS -= m.cellMS
			if m.cursorMS < 0 {
				m.cursorMS = 0
			}

		case "right", "l":
			m.cursorMS += m.cellMS
			if m.cursorMS > m.Timeline.DurationMS {
				m.cursorMS = m.Timeline.DurationMS
			}

		case "home", "g":
			m.cursorMS = 0

		case "end", "G":
			m.cursorMS = m.Timeline.DurationMS

		case "+", "=":
			if m.cellMS > minCellMS {
				m.cellMS /= 2
			}

		case "-", "_":
			if m.cellMS < maxCellMS {
				m.cellMS *= 2
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var out strings.Builder
	tl := m.Timeline

	header := fmt.Sprintf("go-lightshow preview  bpm=%.1f  duration=%.1fs  scenes=%d  style=%s",
		tl.BPM, float64(tl.DurationMS)/1000, len(tl.Scenes), tl.Style)
	out.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	out.WriteString("\n\n")

	laneWidth := m.width - 14
	if laneWidth < 10 {
		laneWidth = 10
	}
	windowMS := laneWidth * m.cellMS
	startMS := m.cursorMS - windowMS/2
	if startMS < 0 {
		startMS = 0
	}

	out.WriteString(m.ruler(startMS, laneWidth))
	for _, tr := range tl.Tracks {
		out.WriteString(m.lane(tr, startMS, laneWidth))
	}

	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("playhead %s\n", fmtMS(m.cursorMS)))
	for _, tr := range tl.Tracks {
		out.WriteString(m.inspect(tr))
	}

	out.WriteString("\n")
	help := "left/right scrub   +/- zoom   g/G start/end   q quit"
	out.WriteString(lipgloss.NewStyle().Faint(true).Render(help))
	out.WriteString("\n")
	return out.String()
}

// ruler prints timestamps every 20 cells plus the playhead marker row.
func (m Model) ruler(startMS, laneWidth int) string {
	marks := make([]byte, laneWidth)
	for i := range marks {
		marks[i] = ' '
	}
	cursorCell := (m.cursorMS - startMS) / m.cellMS
	if cursorCell >= 0 && cursorCell < laneWidth {
		marks[cursorCell] = 'v'
	}

	var labels strings.Builder
	for cell := 0; cell < laneWidth; cell += 20 {
		t := fmtMS(startMS + cell*m.cellMS)
		labels.WriteString(fmt.Sprintf("%-20s", t))
	}
	row := labels.String()
	if len(row) > laneWidth {
		row = row[:laneWidth]
	}
	return fmt.Sprintf("%12s  %s\n%12s  %s\n", "", row, "", string(marks))
}

// lane draws one track as colored blocks, one cell per cellMS.
func (m Model) lane(tr show.Track, startMS, laneWidth int) string {
	var cells strings.Builder
	for i := 0; i < laneWidth; i++ {
		t := startMS + i*m.cellMS
		p := placementAt(tr, t)
		if p == nil {
			cells.WriteString(" ")
			continue
		}
		st := lipgloss.NewStyle().Background(lipgloss.Color(p.ColorHex))
		cells.WriteString(st.Render(" "))
	}
	name := tr.Name
	if len(name) > 12 {
		name = name[:12]
	}
	return fmt.Sprintf("%12s  %s\n", name, cells.String())
}

// inspect names the scene under the playhead on one track.
func (m Model) inspect(tr show.Track) string {
	p := placementAt(tr, m.cursorMS)
	if p == nil {
		return fmt.Sprintf("%12s  -\n", tr.Name)
	}
	s := m.Timeline.SceneByID(p.SceneID)
	name := "?"
	if s != nil {
		name = s.Name
	}
	chip := lipgloss.NewStyle().
		Background(lipgloss.Color(p.ColorHex)).
		Foreground(lipgloss.Color(contrastFG(p.ColorHex))).
		Render(" " + name + " ")
	return fmt.Sprintf("%12s  %s  %s +%dms\n", tr.Name, chip, fmtMS(p.StartMS), p.DurationMS)
}

func placementAt(tr show.Track, ms int) *show.Placement {
	for i := range tr.Placements {
		p := &tr.Placements[i]
		if ms >= p.StartMS && ms < p.StartMS+p.DurationMS {
			return p
		}
	}
	return nil
}

// contrastFG picks black or white text for a background hex color.
func contrastFG(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "#ffffff"
	}
	if l, _, _ := c.Lab(); l > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

func fmtMS(ms int) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d.%03d", s/60, s%60, ms%1000)
}
