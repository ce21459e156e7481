// ABOUTME: Tests for the Lua control script runner
// ABOUTME: Tests builtin dispatch, argument handling, and toggle tracking
package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/funkfinger/sampler-go/internal/engine"
)

type collector struct {
	commands []engine.Command
	waits    []int
}

func newCollector() (*collector, *Runner) {
	c := &collector{}
	r := New(
		func(cmd engine.Command) { c.commands = append(c.commands, cmd) },
		func(ticks int) { c.waits = append(c.waits, ticks) },
	)
	return c, r
}

func TestBuiltinsEmitCommands(t *testing.T) {
	c, r := newCollector()

	err := r.RunString(`
		mode("sample")
		speed(0.5)
		independent(true)
		pitch(-0.1)
		trigger(2)
		reset_speed()
		reset_pitch()
		frequency(880)
		amplitude(0.5)
		mode("tone")
	`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}

	expected := []engine.Command{
		engine.SelectSample(),
		engine.SpeedDelta(0.5),
		engine.ToggleIndependent(),
		engine.PitchDelta(-0.1),
		engine.TriggerVoice(2),
		engine.ResetSpeed(),
		engine.ResetPitch(),
		engine.SetFrequency(880),
		engine.SetAmplitude(0.5),
		engine.SelectTone(),
	}
	if diff := cmp.Diff(expected, c.commands); diff != "" {
		t.Errorf("command mismatch (-want +got):\n%s", diff)
	}
}

func TestWaitReachesCallback(t *testing.T) {
	c, r := newCollector()

	if err := r.RunString(`wait(10) wait(0) wait(-5) wait(3)`); err != nil {
		t.Fatalf("RunString: %v", err)
	}

	// Zero and negative waits are dropped
	if diff := cmp.Diff([]int{10, 3}, c.waits); diff != "" {
		t.Errorf("wait mismatch (-want +got):\n%s", diff)
	}
}

func TestIndependentTracksToggleState(t *testing.T) {
	c, r := newCollector()

	err := r.RunString(`
		independent(true)
		independent(true)
		independent(false)
		independent(false)
		independent(true)
	`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}

	// Only actual state changes emit toggles
	if len(c.commands) != 3 {
		t.Fatalf("expected 3 toggles, got %d: %v", len(c.commands), c.commands)
	}
	for i, cmd := range c.commands {
		if cmd.Op != engine.OpToggleIndependent {
			t.Errorf("command %d: expected toggle, got op %d", i, cmd.Op)
		}
	}
}

func TestModeIsCaseInsensitive(t *testing.T) {
	c, r := newCollector()

	if err := r.RunString(`mode("SAMPLE") mode("Tone")`); err != nil {
		t.Fatalf("RunString: %v", err)
	}

	expected := []engine.Command{engine.SelectSample(), engine.SelectTone()}
	if diff := cmp.Diff(expected, c.commands); diff != "" {
		t.Errorf("command mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownModeFails(t *testing.T) {
	_, r := newCollector()

	if err := r.RunString(`mode("loud")`); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestBrokenScriptFails(t *testing.T) {
	_, r := newCollector()

	if err := r.RunString(`speed(`); err == nil {
		t.Error("expected parse error")
	}
	if err := r.RunString(`speed("fast")`); err == nil {
		t.Error("expected argument error")
	}
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "control.lua")
	src := []byte(`speed(0.2)` + "\n" + `wait(4)` + "\n")
	if err := os.WriteFile(path, src, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, r := newCollector()
	if err := r.RunFile(path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}

	if len(c.commands) != 1 || c.commands[0].Op != engine.OpSpeedDelta {
		t.Errorf("unexpected commands %v", c.commands)
	}
	if diff := cmp.Diff([]int{4}, c.waits); diff != "" {
		t.Errorf("wait mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFileMissing(t *testing.T) {
	_, r := newCollector()

	if err := r.RunFile(filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Error("expected error for missing script")
	}
}
