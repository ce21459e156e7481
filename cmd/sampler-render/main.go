// ABOUTME: Offline renderer producing WAV files without an audio device
// ABOUTME: Steps the engine directly, driven by tick counts or a Lua script
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/funkfinger/sampler-go/internal/asset"
	"github.com/funkfinger/sampler-go/internal/audio"
	"github.com/funkfinger/sampler-go/internal/engine"
	"github.com/funkfinger/sampler-go/internal/output"
	"github.com/funkfinger/sampler-go/internal/script"
	"github.com/funkfinger/sampler-go/internal/version"
)

var (
	outPath    = flag.String("out", "", "Output WAV file (discard audio when empty)")
	ticks      = flag.Int("ticks", 100, "Ticks to render; script waits count toward the total")
	scriptPath = flag.String("script", "", "Lua control script driving the render")
	frequency  = flag.Float64("freq", engine.DefaultFrequency, "Tone frequency in Hz")
	amplitude  = flag.Float64("amp", engine.DefaultAmplitude, "Tone amplitude (0.0-1.0)")
	samplePath = flag.String("sample", "", "Replace the built-in loop with a WAV, MP3, or FLAC file")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stdout)

	if *showVer {
		fmt.Printf("%s-render %s\n", version.Product, version.Version)
		return
	}

	bank, err := asset.LoadBank()
	if err != nil {
		log.Fatalf("Failed to load sample bank: %v", err)
	}
	loop := bank.Loop
	if *samplePath != "" {
		loop, err = asset.Load(*samplePath)
		if err != nil {
			log.Fatalf("Failed to load sample: %v", err)
		}
	}

	var sink output.Sink
	if *outPath != "" {
		sink, err = output.NewWAVWriter(*outPath, audio.DefaultFormat())
		if err != nil {
			log.Fatalf("Failed to open output file: %v", err)
		}
	} else {
		sink = output.NewNull()
	}

	eng, err := engine.New(engine.Config{
		Loop:      loop,
		Voices:    bank.Voices,
		Sink:      sink,
		Frequency: *frequency,
		Amplitude: *amplitude,
	})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	// Script waits advance the engine synchronously; any ticks the
	// script did not consume are rendered afterwards
	remaining := *ticks
	if *scriptPath != "" {
		runner := script.New(eng.Send, func(n int) {
			for i := 0; i < n; i++ {
				eng.Step()
			}
			remaining -= n
		})
		if err := runner.RunFile(*scriptPath); err != nil {
			log.Fatalf("Script error: %v", err)
		}
	}
	for i := 0; i < remaining; i++ {
		eng.Step()
	}

	if err := sink.Close(); err != nil {
		log.Fatalf("Failed to finalize output: %v", err)
	}

	st := eng.Status()
	seconds := float64(st.Ticks) * engine.TickDuration.Seconds()
	log.Printf("Rendered %d ticks (%.2fs) in %v mode", st.Ticks, seconds, st.Mode)
	if *outPath != "" {
		log.Printf("Wrote %s", *outPath)
	}
}
