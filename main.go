// ABOUTME: Entry point for the sampler player
// ABOUTME: Parses CLI flags and wires the engine to the speaker and TUI
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/funkfinger/sampler-go/internal/asset"
	"github.com/funkfinger/sampler-go/internal/audio"
	"github.com/funkfinger/sampler-go/internal/engine"
	"github.com/funkfinger/sampler-go/internal/output"
	"github.com/funkfinger/sampler-go/internal/script"
	"github.com/funkfinger/sampler-go/internal/ui"
	"github.com/funkfinger/sampler-go/internal/version"
)

var (
	frequency  = flag.Float64("freq", engine.DefaultFrequency, "Tone frequency in Hz")
	amplitude  = flag.Float64("amp", engine.DefaultAmplitude, "Tone amplitude (0.0-1.0)")
	samplePath = flag.String("sample", "", "Replace the built-in loop with a WAV, MP3, or FLAC file")
	recordPath = flag.String("wav", "", "Record output to a WAV file while playing")
	scriptPath = flag.String("script", "", "Lua control script to run after startup")
	logFile    = flag.String("log-file", "sampler.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	// Determine if we should use TUI or streaming logs
	useTUI := !(*noTUI || *streamLogs)

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	if !useTUI {
		log.Printf("Starting %s %s", version.Product, version.Version)
		log.Printf("TUI disabled - logging to stdout")
	}

	// Load the embedded sample bank, optionally replacing the loop
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
		log.Printf("Loop replaced with %s (%.2fs)", loop.Name(), loop.Duration())
	}

	// Audio output; a recording sink is tee'd in when requested
	speaker, err := output.NewSpeaker(audio.DefaultFormat())
	if err != nil {
		log.Fatalf("Failed to initialize audio output: %v", err)
	}
	var sink output.Sink = speaker
	if *recordPath != "" {
		recorder, err := output.NewWAVWriter(*recordPath, audio.DefaultFormat())
		if err != nil {
			log.Fatalf("Failed to open recording file: %v", err)
		}
		sink = output.NewTee(speaker, recorder)
	}

	// Engine callbacks reach the TUI through closures; tui is assigned
	// before the engine goroutine starts
	var tui *ui.UI
	notify := func(text string) {
		if tui != nil {
			tui.Notify(text)
		}
	}
	pushStatus := func(st engine.Status) {
		if tui != nil {
			tui.UpdateStatus(st)
		}
	}

	eng, err := engine.New(engine.Config{
		Loop:      loop,
		Voices:    bank.Voices,
		Sink:      sink,
		Frequency: *frequency,
		Amplitude: *amplitude,
		OnNotice:  notify,
		OnStatus:  pushStatus,
	})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	uiDone := make(chan error, 1)
	if useTUI {
		tui = ui.New(eng.Send, speaker)
		go func() { uiDone <- tui.Run() }()
	}

	ctx, cancel := context.WithCancel(context.Background())
	engDone := make(chan error, 1)
	go func() { engDone <- eng.Run(ctx) }()

	// Control script runs alongside the live engine
	if *scriptPath != "" {
		runner := script.New(eng.Send, func(ticks int) {
			time.Sleep(time.Duration(ticks) * engine.TickDuration)
		})
		go func() {
			if err := runner.RunFile(*scriptPath); err != nil {
				log.Printf("Script error: %v", err)
			}
		}()
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Printf("Shutdown signal received")
		if tui != nil {
			tui.Stop()
		}
	case err := <-uiDone:
		if err != nil {
			log.Printf("TUI error: %v", err)
		} else {
			log.Printf("Received quit from TUI")
		}
	}

	cancel()
	if err := <-engDone; err != nil {
		log.Printf("Engine error: %v", err)
	}
	if err := sink.Close(); err != nil {
		log.Printf("Error closing output: %v", err)
	}

	log.Printf("Sampler stopped")
}
