package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/princeguard/assets"
	pgaudio "github.com/milk9111/princeguard/audio"
	"github.com/milk9111/princeguard/prefabs"
	"github.com/milk9111/princeguard/scene"
	"github.com/milk9111/princeguard/sequence"
	"golang.design/x/clipboard"
)

type Game struct {
	scene    *scene.Scene
	cfg      scene.Config
	provider pgaudio.HandleProvider
	watcher  *prefabs.Watcher
	logger   *log.Logger

	seed      int64
	resets    int
	dirty     bool
	clipboard bool
	debug     bool
}

func NewGame(seed int64, assetsDir string, watch, debug bool, logger *log.Logger) (*Game, error) {
	cfg, err := scene.LoadConfig(logger)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:    cfg,
		logger: logger,
		seed:   seed,
		debug:  debug,
	}

	ctx := audio.NewContext(assets.SampleRate)
	g.provider = assets.NewAudioProvider(ctx, assets.FS(assetsDir))

	if err := clipboard.Init(); err != nil {
		logger.Printf("game: clipboard unavailable: %v", err)
	} else {
		g.clipboard = true
	}

	if watch {
		w, err := prefabs.NewWatcher(existingDirs(prefabs.DiskDir(), filepath.Join(prefabs.DiskDir(), "scripts"))...)
		if err != nil {
			logger.Printf("game: prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// reset starts a fresh run, reloading prefabs first if any changed on disk.
func (g *Game) reset() error {
	if g.dirty {
		cfg, err := scene.LoadConfig(g.logger)
		if err != nil {
			g.logger.Printf("game: reload failed, keeping previous prefabs: %v", err)
		} else {
			g.cfg = cfg
			g.logger.Printf("game: prefabs reloaded")
		}
		g.dirty = false
	}

	s, err := scene.New(g.cfg, scene.Options{Seed: g.seed + int64(g.resets), Provider: g.provider, Logger: g.logger})
	if err != nil {
		return err
	}
	g.scene.Close()
	g.scene = s
	g.resets++
	return nil
}

func (g *Game) Update() error {
	if g.watcher != nil {
		for _, name := range g.watcher.Drain() {
			g.logger.Printf("game: %s changed, press R to reload", name)
			g.dirty = true
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}

	in := pollInput()
	if in.Down(sequence.KeyReset) {
		return g.reset()
	}
	if in.Down(sequence.KeyCopyLog) {
		g.copyLog()
	}

	g.scene.Update(in)
	return nil
}

func (g *Game) copyLog() {
	text := g.scene.Report().PhaseLog()
	if !g.clipboard {
		g.logger.Printf("game: phase log\n%s", text)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	g.logger.Printf("game: phase log copied")
}

func (g *Game) Draw(screen *ebiten.Image) {
	renderer{cam: g.scene.Camera, colors: g.cfg.Frames}.draw(screen, g)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Camera.ScreenWidth), float64(g.cfg.Camera.ScreenHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	g.scene.Close()
	if err := g.watcher.Close(); err != nil {
		g.logger.Printf("game: close watcher: %v", err)
	}
}

func existingDirs(dirs ...string) []string {
	out := dirs[:0]
	for _, d := range dirs {
		if st, err := os.Stat(d); err == nil && st.IsDir() {
			out = append(out, d)
		}
	}
	return out
}
