// Command doomvncd drives an rfb.Server the way a DOOM-family engine's
// I_*Graphics functions would: it stands in for the out-of-scope game
// renderer and event queue (spec.md §1) so the RFB core in package rfb
// can be exercised end-to-end without a real WAD or video subsystem.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/pflag"

	"github.com/adzm/doomrfb/rfb"
)

const (
	screenWidth  = 320
	screenHeight = 200

	ticDuration = time.Second / 35 // DOOM's TICRATE
)

var (
	listenAddr = pflag.StringP("listen", "l", fmt.Sprintf(":%d", rfb.DefaultPort), "listen on [ip]:port")
	textInput  = pflag.Bool("text-input", false, "start with text input mode enabled")
	gammaLevel = pflag.Int("gamma", 0, "initial gamma correction level (0-4)")
	profile    = pflag.Bool("profile", false, "write a cpu.prof file on shutdown")
	tics       = pflag.Int("tics", 0, "exit after this many tics (0 = run forever)")
	fpsDots    = pflag.Bool("fps-dots", false, "display per-tic FPS indicator dots")
)

func main() {
	pflag.Parse()
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *profile {
		f, err := os.Create("cpu.prof")
		if err != nil {
			log.Error("could not create profile file", "err", err)
			os.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error("could not start cpu profile", "err", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	queue := newGameEventQueue(log)
	server := rfb.NewServer(rfb.Options{
		Width:      screenWidth,
		Height:     screenHeight,
		ListenAddr: *listenAddr,
		Sink:       queue,
		Logger:     log,
	})

	if err := InitGraphics(server, log); err != nil {
		log.Error("init graphics failed", "err", err)
		os.Exit(1)
	}
	defer ShutdownGraphics(server, log)

	server.SetTextInput(*textInput)

	palette := buildDemoPalette()
	corrected := SetPalette(server, palette, *gammaLevel)
	whiteIdx := NearestPaletteIndex(corrected, 255, 255, 255)
	blackIdx := NearestPaletteIndex(corrected, 0, 0, 0)

	frame := make([]byte, screenWidth*screenHeight)
	diskSaved := make([]byte, diskIconSize*diskIconSize)

	ticker := time.NewTicker(ticDuration)
	defer ticker.Stop()

	tic := 0
	lastFPSTic := time.Now()
	for range ticker.C {
		StartTic(server)
		for _, ev := range queue.Drain() {
			if ev.Type == rfb.EventQuit {
				log.Info("client disconnected, shutting down")
				return
			}
			log.Info("event", "type", eventTypeName(ev.Type), "data1", ev.Data1, "data2", ev.Data2, "data3", ev.Data3)
		}

		drawPattern(frame, screenWidth, screenHeight, tic)
		if *fpsDots {
			now := time.Now()
			elapsed := int(now.Sub(lastFPSTic) / ticDuration)
			if elapsed < 1 {
				elapsed = 1
			}
			lastFPSTic = now
			drawFPSDots(frame, screenWidth, screenHeight, elapsed, whiteIdx, blackIdx)
		}
		FinishUpdate(server, frame, diskSaved, whiteIdx)

		tic++
		if *tics > 0 && tic >= *tics {
			return
		}
	}
}

// InitGraphics mirrors original_source/src/i_video.c's I_InitGraphics:
// bring up the RFB core and wait for a client's handshake to complete.
// The (out-of-scope) framebuffer allocation is the caller's frame
// slice, already zeroed by make().
func InitGraphics(server *rfb.Server, log *slog.Logger) error {
	log.Info("waiting for VNC client", "width", server.Width(), "height", server.Height())
	return server.Init()
}

// SetPalette mirrors I_SetPalette: gamma-correct the engine's palette
// and hand the corrected copy to the core. It returns that corrected
// copy so the caller can resolve palette indices (via
// NearestPaletteIndex) against exactly what the viewer will decode.
func SetPalette(server *rfb.Server, doomPalette []byte, gamma int) []byte {
	corrected := ApplyGamma(doomPalette, gamma)
	server.PreparePalette(corrected)
	return corrected
}

// StartTic mirrors I_StartTic: service whatever the client has sent
// since the last tic.
func StartTic(server *rfb.Server) {
	server.Pump()
}

// FinishUpdate mirrors I_FinishUpdate: overlay the disk icon, send the
// frame if the client asked for one, then restore the pixels the
// overlay covered. (The FPS dots, if enabled, are drawn by the caller
// before this is called, and are never restored -- see drawFPSDots.)
func FinishUpdate(server *rfb.Server, frame []byte, diskSaved []byte, fillIdx byte) {
	drawDiskIcon(frame, server.Width(), server.Height(), diskSaved, fillIdx)
	server.SendFrame(frame)
	restoreDiskIcon(frame, server.Width(), server.Height(), diskSaved)
}

// ShutdownGraphics mirrors I_ShutdownGraphics: release the core's
// resources and close the peer connection.
func ShutdownGraphics(server *rfb.Server, log *slog.Logger) {
	log.Info("shutting down")
	server.Exit()
}
