// Package tui implements the terminal user interface
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oisee/fmsynth/pkg/music"
	"github.com/oisee/fmsynth/pkg/player"
)

// Pane identifies which list has focus
type Pane int

const (
	PanePresets Pane = iota
	PaneMelodies
)

// Model is the main TUI model
type Model struct {
	Player *player.Player

	// View state
	Width    int
	Height   int
	Focus    Pane
	ShowHelp bool

	// Selection state
	PresetIdx int
	MelodyIdx int

	// Playback display
	NowPreset string
	NowNote   string
	Playing   bool

	// Status message
	StatusMsg string
}

// NewModel creates a new TUI model around a running player
func NewModel(p *player.Player) Model {
	return Model{
		Player:    p,
		Width:     100,
		Height:    30,
		StatusMsg: "Enter plays the selected melody with the selected preset",
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
	)
}

// tickMsg is sent periodically for playback updates
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(16_666_666, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tickMsg:
		m.NowPreset, m.NowNote, m.Playing = m.Player.NowPlaying()
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.Player.Stop()
		return m, tea.Quit

	case "f1", "?":
		m.ShowHelp = !m.ShowHelp

	case "tab", "left", "right":
		if m.Focus == PanePresets {
			m.Focus = PaneMelodies
		} else {
			m.Focus = PanePresets
		}

	case "up", "k":
		if m.Focus == PanePresets && m.PresetIdx > 0 {
			m.PresetIdx--
		}
		if m.Focus == PaneMelodies && m.MelodyIdx > 0 {
			m.MelodyIdx--
		}

	case "down", "j":
		if m.Focus == PanePresets && m.PresetIdx < len(music.Presets)-1 {
			m.PresetIdx++
		}
		if m.Focus == PaneMelodies && m.MelodyIdx < len(music.Melodies)-1 {
			m.MelodyIdx++
		}

	case "home":
		if m.Focus == PanePresets {
			m.PresetIdx = 0
		} else {
			m.MelodyIdx = 0
		}

	case "end":
		if m.Focus == PanePresets {
			m.PresetIdx = len(music.Presets) - 1
		} else {
			m.MelodyIdx = len(music.Melodies) - 1
		}

	case "enter":
		preset := music.Presets[m.PresetIdx]
		melody := music.Melodies[m.MelodyIdx]
		m.Player.PlayMelody(preset, melody)
		m.StatusMsg = fmt.Sprintf("Playing '%s' with '%s'", melody.Name, preset.Name)

	case "d":
		segments := make([]player.Segment, len(music.Presets))
		for i, p := range music.Presets {
			segments[i] = player.Segment{Preset: p, Melody: music.Scale}
		}
		m.Player.SetSegments(segments)
		m.Player.Play()
		m.StatusMsg = "Playing demo scale through every preset"

	case " ", "esc":
		m.Player.Stop()
		m.StatusMsg = "Stopped"
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.ShowHelp {
		return m.helpView()
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.presetView(), "  ", m.melodyView()))
	b.WriteString("\n")
	b.WriteString(m.footerView())

	return b.String()
}

func (m Model) headerView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14")).
		Render("FMSYNTH")

	state := "STOPPED"
	if m.Playing {
		now := m.NowPreset
		if m.NowNote != "" {
			now += " " + m.NowNote
		}
		state = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Render("PLAYING " + now)
	}

	return title + " │ " + state
}

func (m Model) presetView() string {
	return m.listView("PRESETS", presetNames(), m.PresetIdx, m.Focus == PanePresets)
}

func (m Model) melodyView() string {
	return m.listView("MELODIES", melodyNames(), m.MelodyIdx, m.Focus == PaneMelodies)
}

func (m Model) listView(title string, items []string, cursor int, focused bool) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	if focused {
		titleStyle = titleStyle.Foreground(lipgloss.Color("11")).Bold(true)
	}

	var lines []string
	lines = append(lines, titleStyle.Render(title))

	for i, name := range items {
		style := lipgloss.NewStyle()
		marker := "  "
		if i == cursor {
			marker = "> "
			if focused {
				style = style.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
			} else {
				style = style.Foreground(lipgloss.Color("6"))
			}
		}
		lines = append(lines, marker+style.Render(fmt.Sprintf("%2d. %s", i+1, name)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) footerView() string {
	keys := " [Enter]Play [D]Demo [Space]Stop [Tab]Pane [F1]Help [Q]Quit"
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(keys)
	return "\n" + m.StatusMsg + "\n" + status
}

func (m Model) helpView() string {
	help := `
╔══════════════════════════════════════════════════════╗
║                    FMSYNTH HELP                      ║
╠══════════════════════════════════════════════════════╣
║ NAVIGATION                                           ║
║   ↑↓ / jk    Move cursor in focused list             ║
║   Tab ←→     Switch between presets and melodies     ║
║   Home/End   First/last entry                        ║
║                                                      ║
║ PLAYBACK                                             ║
║   Enter      Play selected melody with preset        ║
║   D          Demo: scale through every preset        ║
║   Space/Esc  Stop                                    ║
║                                                      ║
║                              [F1] Close help         ║
╚══════════════════════════════════════════════════════╝
`
	return lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Render(help)
}

func presetNames() []string {
	names := make([]string, len(music.Presets))
	for i, p := range music.Presets {
		names[i] = p.Name
	}
	return names
}

func melodyNames() []string {
	names := make([]string, len(music.Melodies))
	for i, m := range music.Melodies {
		names[i] = m.Name
	}
	return names
}
