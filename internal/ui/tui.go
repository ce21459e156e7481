// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and forwards engine updates to it
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/funkfinger/sampler-go/internal/engine"
)

// VolumeControl adjusts playback volume on the output device. The
// speaker satisfies it; a nil control leaves the volume keys inert.
type VolumeControl interface {
	SetVolume(volume int)
	SetMuted(muted bool)
	Volume() int
	Muted() bool
}

// UI runs the sampler TUI. Engine callbacks push updates through a
// buffered channel; a forwarding goroutine relays them to the program
// so pushes never block the engine.
type UI struct {
	program *tea.Program
	updates chan tea.Msg
	done    chan struct{}
}

// New creates a UI sending key commands through send and volume
// changes through volCtrl
func New(send func(engine.Command), volCtrl VolumeControl) *UI {
	u := &UI{
		updates: make(chan tea.Msg, 10),
		done:    make(chan struct{}),
	}
	u.program = tea.NewProgram(NewModel(send, volCtrl), tea.WithAltScreen())
	return u
}

// Run blocks until the user quits
func (u *UI) Run() error {
	go func() {
		for {
			select {
			case msg := <-u.updates:
				u.program.Send(msg)
			case <-u.done:
				return
			}
		}
	}()

	_, err := u.program.Run()
	close(u.done)
	return err
}

// UpdateStatus pushes an engine snapshot to the display
func (u *UI) UpdateStatus(st engine.Status) {
	select {
	case u.updates <- StatusMsg(st):
	default:
		// Don't block if channel is full
	}
}

// Notify pushes a one-line notice to the display
func (u *UI) Notify(text string) {
	select {
	case u.updates <- NoticeMsg(text):
	default:
	}
}

// Stop asks the program to quit
func (u *UI) Stop() {
	u.program.Quit()
}
