// ABOUTME: Bubbletea model for the sampler TUI
// ABOUTME: Maps keys to engine commands and renders playback state
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/funkfinger/sampler-go/internal/asset"
	"github.com/funkfinger/sampler-go/internal/engine"
)

var (
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// StatusMsg carries an engine state snapshot into the TUI
type StatusMsg engine.Status

// NoticeMsg carries a one-line notice into the TUI
type NoticeMsg string

// Model represents the TUI state
type Model struct {
	send    func(engine.Command)
	volCtrl VolumeControl

	// Engine state
	mode         engine.Mode
	speed        float64
	pitch        float64
	independent  bool
	frequency    float64
	amplitude    float64
	activeVoices int
	ticks        uint64
	underruns    uint64
	loopName     string

	// Output state, owned by the model and pushed to volCtrl
	volume int
	muted  bool

	notice string

	// Dimensions
	width  int
	height int
}

// NewModel creates a TUI model. Commands triggered by keys go through
// send; a nil send drops them, which the tests rely on. Volume starts
// from the control's current state.
func NewModel(send func(engine.Command), volCtrl VolumeControl) Model {
	if send == nil {
		send = func(engine.Command) {}
	}
	m := Model{
		send:      send,
		volCtrl:   volCtrl,
		speed:     engine.DefaultSpeed,
		pitch:     engine.DefaultPitch,
		frequency: engine.DefaultFrequency,
		amplitude: engine.DefaultAmplitude,
		volume:    100,
	}
	if volCtrl != nil {
		m.volume = volCtrl.Volume()
		m.muted = volCtrl.Muted()
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	case NoticeMsg:
		m.notice = string(msg)
	}

	return m, nil
}

// handleKey maps keyboard input to engine commands
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit
	case "s", "S":
		m.send(engine.SelectTone())
	case "m", "M":
		m.send(engine.SelectSample())
	case "+":
		m.send(engine.SpeedDelta(0.1))
	case "-":
		m.send(engine.SpeedDelta(-0.1))
	case "p", "P":
		m.send(engine.PitchDelta(0.1))
	case "o", "O":
		m.send(engine.PitchDelta(-0.1))
	case "i", "I":
		m.send(engine.ToggleIndependent())
	case "1":
		m.send(engine.ResetSpeed())
	case "2":
		m.send(engine.ResetPitch())
	case "z", "Z":
		m.send(engine.TriggerVoice(0))
	case "x", "X":
		m.send(engine.TriggerVoice(1))
	case "c", "C":
		m.send(engine.TriggerVoice(2))
	case "v", "V":
		m.send(engine.TriggerVoice(3))
	case "up":
		m.setVolume(m.volume + 5)
	case "down":
		m.setVolume(m.volume - 5)
	case " ":
		m.muted = !m.muted
		if m.volCtrl != nil {
			m.volCtrl.SetMuted(m.muted)
		}
	}

	return m, nil
}

// setVolume clamps to 0-100 and pushes the change to the output
func (m *Model) setVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	m.volume = volume
	if m.volCtrl != nil {
		m.volCtrl.SetVolume(volume)
	}
}

// applyStatus updates model from an engine snapshot
func (m *Model) applyStatus(msg StatusMsg) {
	m.mode = msg.Mode
	m.speed = msg.Speed
	m.pitch = msg.Pitch
	m.independent = msg.Independent
	m.frequency = msg.Frequency
	m.amplitude = msg.Amplitude
	m.activeVoices = msg.ActiveVoices
	m.ticks = msg.Ticks
	m.underruns = msg.Underruns
	if msg.LoopName != "" {
		m.loopName = msg.LoopName
	}
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderStatus())
	b.WriteString(m.renderNotice())
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderStatus renders the playback state box
func (m Model) renderStatus() string {
	pitchText := fmt.Sprintf("%.2fx", m.pitch)
	if !m.independent {
		pitchText += " (linked)"
	}

	toneText := fmt.Sprintf("%.1f Hz at %.0f%% amplitude", m.frequency, m.amplitude*100)
	volumeText := fmt.Sprintf("[%s] %d%%", renderBar(m.volume, 100, 10), m.volume)
	if m.muted {
		volumeText += " (muted)"
	}
	loopText := fmt.Sprintf("%s  (voices: %d/%d active)",
		truncate(m.loopName, 20), m.activeVoices, engine.NumVoices)
	engineText := fmt.Sprintf("%d ticks, %d underruns", m.ticks, m.underruns)

	return fmt.Sprintf(`┌─ Sampler ────────────────────────────────────────────┐
│ %-7s%-45s │
│ %-7s%-45s │
│ %-7s%-45s │
│ %-7s%-45s │
│ %-7s%-45s │
│ %-7s%-45s │
│ %-7s%-45s │
└──────────────────────────────────────────────────────┘
`,
		"Mode:", m.mode,
		"Speed:", fmt.Sprintf("%.2fx", m.speed),
		"Pitch:", pitchText,
		"Tone:", toneText,
		"Volume:", volumeText,
		"Loop:", loopText,
		"Engine:", engineText)
}

// renderNotice renders the latest engine notice
func (m Model) renderNotice() string {
	if m.notice == "" {
		return "\n"
	}
	return noticeStyle.Render("> "+m.notice) + "\n"
}

// renderHelp renders keyboard shortcuts, labeling the trigger keys
// with the bank's voice names
func (m Model) renderHelp() string {
	drums := make([]string, engine.NumVoices)
	for i := range drums {
		drums[i] = asset.VoiceName(i)
	}
	return helpStyle.Render(
		"s:Sine  m:Sample  +/-:Speed  p/o:Pitch  i:Independent  up/down:Volume\n"+
			"1:Reset speed  2:Reset pitch  space:Mute  z/x/c/v:"+strings.Join(drums, "/")+"  q:Quit") + "\n"
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := make([]byte, width)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '.'
		}
	}
	return string(bar)
}
