// ABOUTME: Lua script runner for driving playback without a keyboard
// ABOUTME: Exposes the control surface as Lua builtins over the command queue
package script

import (
	"fmt"
	"log"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/funkfinger/sampler-go/internal/engine"
)

// Runner executes a control script against an engine. Commands go
// through send; wait hands control back to the caller for the given
// number of ticks (the player sleeps, the renderer steps).
type Runner struct {
	send func(engine.Command)
	wait func(ticks int)

	// Tracked locally so scripts get an absolute independent(bool)
	// over the engine's toggle command. Keyboard toggles during a
	// scripted run are not observed.
	independent bool
}

// New creates a runner. Both callbacks are required.
func New(send func(engine.Command), wait func(ticks int)) *Runner {
	return &Runner{send: send, wait: wait}
}

// RunFile executes the script at path
func (r *Runner) RunFile(path string) error {
	L := lua.NewState()
	defer L.Close()
	r.register(L)

	log.Printf("Script: running %s", path)
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}
	return nil
}

// RunString executes an inline script
func (r *Runner) RunString(src string) error {
	L := lua.NewState()
	defer L.Close()
	r.register(L)

	if err := L.DoString(src); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}
	return nil
}

func (r *Runner) register(L *lua.LState) {
	L.SetGlobal("speed", L.NewFunction(func(L *lua.LState) int {
		r.send(engine.SpeedDelta(float64(L.CheckNumber(1))))
		return 0
	}))

	L.SetGlobal("pitch", L.NewFunction(func(L *lua.LState) int {
		r.send(engine.PitchDelta(float64(L.CheckNumber(1))))
		return 0
	}))

	L.SetGlobal("independent", L.NewFunction(func(L *lua.LState) int {
		want := L.CheckBool(1)
		if want != r.independent {
			r.independent = want
			r.send(engine.ToggleIndependent())
		}
		return 0
	}))

	L.SetGlobal("mode", L.NewFunction(func(L *lua.LState) int {
		name := strings.ToLower(L.CheckString(1))
		switch name {
		case "tone":
			r.send(engine.SelectTone())
		case "sample":
			r.send(engine.SelectSample())
		default:
			L.ArgError(1, fmt.Sprintf("unknown mode %q (want tone or sample)", name))
		}
		return 0
	}))

	L.SetGlobal("trigger", L.NewFunction(func(L *lua.LState) int {
		r.send(engine.TriggerVoice(L.CheckInt(1)))
		return 0
	}))

	L.SetGlobal("reset_speed", L.NewFunction(func(L *lua.LState) int {
		r.send(engine.ResetSpeed())
		return 0
	}))

	L.SetGlobal("reset_pitch", L.NewFunction(func(L *lua.LState) int {
		r.send(engine.ResetPitch())
		return 0
	}))

	L.SetGlobal("frequency", L.NewFunction(func(L *lua.LState) int {
		r.send(engine.SetFrequency(float64(L.CheckNumber(1))))
		return 0
	}))

	L.SetGlobal("amplitude", L.NewFunction(func(L *lua.LState) int {
		r.send(engine.SetAmplitude(float64(L.CheckNumber(1))))
		return 0
	}))

	L.SetGlobal("wait", L.NewFunction(func(L *lua.LState) int {
		if ticks := L.CheckInt(1); ticks > 0 {
			r.wait(ticks)
		}
		return 0
	}))

	L.SetGlobal("log", L.NewFunction(func(L *lua.LState) int {
		log.Printf("Script: %s", L.CheckString(1))
		return 0
	}))
}
