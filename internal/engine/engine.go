// ABOUTME: Core sample-generation engine with a fixed 32ms tick
// ABOUTME: Drains control commands then produces exactly one buffer per tick
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/funkfinger/sampler-go/internal/asset"
	"github.com/funkfinger/sampler-go/internal/audio"
)

const (
	// TickFrames is the number of samples generated per tick
	TickFrames = 512

	// TickDuration is one buffer's worth of time at the engine rate
	TickDuration = time.Duration(TickFrames) * time.Second / audio.SampleRate

	// Status pushes happen on parameter changes and on this tick cadence
	statusEveryTicks = 16

	commandQueueSize = 64
)

// Sink receives generated PCM buffers. Writes are fire-and-forget:
// the engine logs failures but never blocks generation on the sink.
type Sink interface {
	Write(samples []int16) (int, error)
}

// Status is a point-in-time snapshot of the engine state
type Status struct {
	ID           string
	Mode         Mode
	Speed        float64
	Pitch        float64
	Independent  bool
	Frequency    float64
	Amplitude    float64
	ActiveVoices int
	Ticks        uint64
	Underruns    uint64
	LoopName     string
}

// Config carries engine construction parameters and callbacks
type Config struct {
	Loop   *asset.Asset            // sample-mode source
	Voices [NumVoices]*asset.Asset // percussion one-shots
	Sink   Sink

	// Initial tone parameters; zero values select the defaults
	Frequency float64
	Amplitude float64

	// OnNotice receives user-facing one-liners for applied commands.
	// OnStatus receives state snapshots. OnError receives sink write
	// failures. All are optional and called from the engine goroutine.
	OnNotice func(string)
	OnStatus func(Status)
	OnError  func(error)
}

// Engine generates PCM buffers on a fixed tick, dispatching to the
// active mode's generator. All mutable state lives on the engine and
// is touched only between generation calls, never during one.
type Engine struct {
	id         string
	controller *Controller
	osc        *Oscillator
	resampler  *Resampler
	pitch      *PitchStage
	pool       *VoicePool
	sink       Sink

	generators map[Mode]func([]int16)

	commands chan Command

	buf     []int16 // tick output
	scratch []int16 // speed-resampled input to the pitch stage
	overlay []int16 // percussion mix

	ticks     uint64
	underruns uint64

	onNotice func(string)
	onStatus func(Status)
	onError  func(error)
}

// New creates an engine from the config. The sink must already be
// initialized; a missing sink or loop asset is a construction error.
func New(cfg Config) (*Engine, error) {
	if cfg.Sink == nil {
		return nil, fmt.Errorf("engine requires a sink")
	}
	if cfg.Loop == nil {
		return nil, fmt.Errorf("engine requires a loop asset")
	}
	for i, v := range cfg.Voices {
		if v == nil {
			return nil, fmt.Errorf("engine requires voice asset %d", i)
		}
	}

	e := &Engine{
		id:         uuid.New().String(),
		controller: NewController(),
		osc:        &Oscillator{},
		resampler:  NewResampler(cfg.Loop),
		pitch:      NewPitchStage(),
		pool:       NewVoicePool(cfg.Voices),
		sink:       cfg.Sink,
		commands:   make(chan Command, commandQueueSize),
		buf:        make([]int16, TickFrames),
		scratch:    make([]int16, TickFrames),
		overlay:    make([]int16, TickFrames),
		onNotice:   cfg.OnNotice,
		onStatus:   cfg.OnStatus,
		onError:    cfg.OnError,
	}

	if cfg.Frequency != 0 {
		e.controller.Apply(SetFrequency(cfg.Frequency))
	}
	if cfg.Amplitude != 0 {
		e.controller.Apply(SetAmplitude(cfg.Amplitude))
	}

	e.generators = map[Mode]func([]int16){
		ModeTone:              e.generateTone,
		ModeSampleLinked:      e.generateSampleLinked,
		ModeSampleIndependent: e.generateSampleIndependent,
	}

	return e, nil
}

// ID returns the engine instance identifier
func (e *Engine) ID() string { return e.id }

// Send enqueues a control command for the next tick. The queue never
// blocks the caller; when it is full the command is dropped and
// logged.
func (e *Engine) Send(cmd Command) {
	select {
	case e.commands <- cmd:
	default:
		log.Printf("Engine: command queue full, dropping op %d", cmd.Op)
	}
}

// Run generates audio on the tick cadence until the context is
// canceled. A tick that takes longer than its deadline counts as an
// underrun; generation is never paused to wait for the sink.
func (e *Engine) Run(ctx context.Context) error {
	log.Printf("Engine: starting (id=%s, %d samples per %v tick)", e.id, TickFrames, TickDuration)
	e.pushStatus()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Engine: stopping after %d ticks (%d underruns)", e.ticks, e.underruns)
			return nil
		case <-ticker.C:
			start := time.Now()
			e.Step()
			if elapsed := time.Since(start); elapsed > TickDuration {
				e.underruns++
				log.Printf("Engine: tick overran deadline (%v > %v)", elapsed, TickDuration)
			}
		}
	}
}

// Step processes all pending commands, generates one buffer, mixes the
// percussion overlay, and writes the result to the sink. Run calls it
// on the tick cadence; the offline renderer and tests call it
// directly.
func (e *Engine) Step() {
	e.drainCommands()

	e.generators[e.controller.Mode()](e.buf)

	if e.pool.Active() > 0 {
		e.pool.Mix(e.overlay)
		for i := range e.buf {
			e.buf[i] = audio.ClampInt16(int32(e.buf[i]) + int32(e.overlay[i]))
		}
	}

	if _, err := e.sink.Write(e.buf); err != nil {
		log.Printf("Engine: sink write failed: %v", err)
		if e.onError != nil {
			e.onError(err)
		}
	}

	e.ticks++
	if e.ticks%statusEveryTicks == 0 {
		e.pushStatus()
	}
}

// Status returns a snapshot of the engine state. Call it from the
// engine's goroutine or between Steps; while Run is active, consume
// snapshots through the OnStatus callback instead.
func (e *Engine) Status() Status {
	return Status{
		ID:           e.id,
		Mode:         e.controller.Mode(),
		Speed:        e.controller.Speed(),
		Pitch:        e.controller.Pitch(),
		Independent:  e.controller.Independent(),
		Frequency:    e.controller.Frequency(),
		Amplitude:    e.controller.Amplitude(),
		ActiveVoices: e.pool.Active(),
		Ticks:        e.ticks,
		Underruns:    e.underruns,
		LoopName:     e.resampler.Source().Name(),
	}
}

// drainCommands applies every queued command before generation so a
// tick never sees a half-applied control state.
func (e *Engine) drainCommands() {
	for {
		select {
		case cmd := <-e.commands:
			e.apply(cmd)
		default:
			return
		}
	}
}

func (e *Engine) apply(cmd Command) {
	if cmd.Op < OpSelectTone || cmd.Op > OpSetAmplitude {
		log.Printf("Engine: ignoring unknown command op %d", cmd.Op)
		return
	}

	if cmd.Op == OpTriggerVoice {
		if v := e.pool.Voice(cmd.Voice); v != nil {
			e.pool.Trigger(cmd.Voice)
			e.notify(fmt.Sprintf("Triggered voice %d (%s)", cmd.Voice, v.Name()))
		}
		// Out-of-range trigger indexes are a silent no-op
		e.pushStatus()
		return
	}

	if notice := e.controller.Apply(cmd); notice != "" {
		e.notify(notice)
	}
	e.pushStatus()
}

func (e *Engine) notify(notice string) {
	log.Printf("Engine: %s", notice)
	if e.onNotice != nil {
		e.onNotice(notice)
	}
}

func (e *Engine) pushStatus() {
	if e.onStatus != nil {
		e.onStatus(e.Status())
	}
}

func (e *Engine) generateTone(buf []int16) {
	e.osc.Fill(buf, e.controller.Frequency(), e.controller.Amplitude())
}

func (e *Engine) generateSampleLinked(buf []int16) {
	e.resampler.Fill(buf, e.controller.Speed())
}

func (e *Engine) generateSampleIndependent(buf []int16) {
	// Unity pitch skips the stage entirely; its position holds still
	if e.controller.Pitch() == 1.0 {
		e.resampler.Fill(buf, e.controller.Speed())
		return
	}
	e.resampler.Fill(e.scratch, e.controller.Speed())
	e.pitch.Shift(e.scratch, buf, e.controller.Pitch())
}
