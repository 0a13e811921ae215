package main

import (
	"flag"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// One Up/Down key press shifts all voices by a tenth of an octave.
const pitchStepPerKey = 0.1

type App struct {
	reg     *Registry
	display *VoiceDisplay
	quit    bool
}

func (app *App) Init() error {
	display, err := CreateVoiceDisplay(app.reg)
	if err != nil {
		return err
	}
	app.display = display
	return nil
}

func (app *App) IsRunning() bool {
	return !app.quit
}

// voiceKey maps a key to a voice id; the top row and the keypad both work.
func voiceKey(key glfw.Key) (string, bool) {
	switch key {
	case glfw.Key1, glfw.KeyKP1:
		return "1", true
	case glfw.Key2, glfw.KeyKP2:
		return "2", true
	case glfw.Key3, glfw.KeyKP3:
		return "3", true
	case glfw.Key4, glfw.KeyKP4:
		return "4", true
	}
	return "", false
}

func (app *App) OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		if id, ok := voiceKey(key); ok {
			app.reg.Activate(id)
			return
		}
		switch key {
		case glfw.Key5, glfw.KeyKP5:
			app.reg.Blend()
		case glfw.KeyUp:
			app.reg.AdjustPitch(pitchStepPerKey)
		case glfw.KeyDown:
			app.reg.AdjustPitch(-pitchStepPerKey)
		case glfw.KeyEscape:
			app.quit = true
		}
	case glfw.Release:
		if id, ok := voiceKey(key); ok {
			app.reg.Deactivate(id)
		}
	}
}

func (app *App) Render() error {
	app.display.Render()
	return nil
}

func (app *App) Close() error {
	if app.display != nil {
		return app.display.Close()
	}
	return nil
}

func main() {
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	backend := flag.String("backend", "oto", "audio backend (oto|portaudio)")
	device := flag.String("device", "", "output device name or index (portaudio backend only)")
	flag.Parse()

	if err := InitLogger(*logLevel); err != nil {
		log.Fatalf("%v", err)
	}

	reg := NewRegistry()
	defer reg.Close()
	mixer := NewMixer(reg)

	out, err := openAudioOutput(*backend, *device, mixer)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer out.Close()
	if err := out.Start(); err != nil {
		log.Fatalf("%v", err)
	}
	logger.Info("audio stream started", "backend", *backend, "sampleRate", sampleRate)

	app := &App{reg: reg}
	if err := WithGL("driftatone", app); err != nil {
		log.Fatalf("%v", err)
	}
}
