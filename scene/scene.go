// Package scene wires the battlefield, the protection sequence, the camera
// and audio into one frame-stepped unit.
package scene

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/audio"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
	"github.com/milk9111/princeguard/sequence"
	"github.com/milk9111/princeguard/system"
)

// dt is one 60 Hz frame.
const dt = 1.0

// Options are the per-run collaborators of a scene.
type Options struct {
	Seed int64
	// Provider opens audio cues. Nil plays nothing.
	Provider audio.HandleProvider
	Logger   *log.Logger
}

// Scene owns one playthrough.
type Scene struct {
	World     *system.World
	Sequencer *sequence.Sequencer
	Camera    *obj.Camera
	Player    *obj.Player
	Audio     *audio.Dispatcher
	Frames    *component.FrameSource

	cfg      Config
	seed     int64
	logger   *log.Logger
	tick     int
	status   sequence.Status
	respawns int
	hurts    int
	deaths   int
}

// New builds a scene and snaps the camera onto the player.
func New(cfg Config, opts Options) (*Scene, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := common.NewRNG(opts.Seed)
	frames := component.NewFrameSource(cfg.Frames, logger)
	frames.Events = cfg.Frames.Events()
	frames.Emitter = &component.ClipEventEmitter{}

	world, err := system.NewWorld(cfg.World, frames, rng, logger)
	if err != nil {
		return nil, fmt.Errorf("scene: new: %w", err)
	}

	cam := obj.NewCamera(cfg.Camera.ScreenWidth, cfg.Camera.ScreenHeight, cfg.Camera.MaxSpeed)
	cam.SetWorldBounds(world.Size())

	player := obj.NewPlayer(cfg.PlayerStart.X, cfg.PlayerStart.Y, cfg.Player, frames)

	dispatcher := audio.NewDispatcher(opts.Provider, cfg.Audio, logger)
	if err := dispatcher.Init(); err != nil {
		logger.Printf("scene: %v", err)
	}
	if cfg.Ambient.Cue != "" {
		dispatcher.SetAmbient(cfg.Ambient.Cue, cfg.Ambient.Position, cfg.Ambient.MaxDistance)
	}
	var cues int
	frames.Emitter.Handlers = append(frames.Emitter.Handlers, func(_ *component.Clip, evt component.ClipEvent) {
		cues++
		dispatcher.OnEvent(evt.Name, cues)
	})
	world.Volley.OnFire = func(a *obj.Arrow) {
		dispatcher.OnEvent("volley_fire", a.ProjectileID())
		a.OnImpact = func(a *obj.Arrow) { dispatcher.OnEvent("arrow_impact", a.ProjectileID()) }
	}

	seq, err := sequence.NewSequencer(cfg.Sequence, sequence.Deps{
		Controlled: player,
		Audio:      dispatcher,
		Pan:        cam,
		Volley:     world.Volley,
		Surfaces:   world.Collision,
		Frames:     frames,
		RNG:        rng,
		Logger:     logger,
	})
	if err != nil {
		dispatcher.Dispose()
		return nil, fmt.Errorf("scene: new: %w", err)
	}

	s := &Scene{
		World:     world,
		Sequencer: seq,
		Camera:    cam,
		Player:    player,
		Audio:     dispatcher,
		Frames:    frames,
		cfg:       cfg,
		seed:      opts.Seed,
		logger:    logger,
	}
	player.Health.OnDamage = func(*component.Health, component.CombatEvent) {
		s.hurts++
		dispatcher.OnEvent("player_hurt", s.hurts)
	}
	player.Health.OnDeath = func(*component.Health, component.CombatEvent) {
		s.deaths++
		logger.Printf("scene: player died (%d)", s.deaths)
	}
	cam.Snap(sequence.ComputeTarget(seq.View(), cfg.Camera.Viewport))
	dispatcher.OnPhaseEnter(sequence.PhaseWaiting.String())
	return s, nil
}

// Close releases audio handles.
func (s *Scene) Close() {
	if s == nil {
		return
	}
	s.Audio.Dispose()
}

// Update advances one frame and reports whether the sequence has finished.
func (s *Scene) Update(in sequence.Input) sequence.Status {
	if s == nil {
		return sequence.Complete
	}
	if in == nil {
		in = sequence.Keys{}
	}
	s.tick++

	move := 0.0
	if in.Down(sequence.KeyLeft) {
		move--
	}
	if in.Down(sequence.KeyRight) {
		move++
	}
	s.Player.Update(dt, move)
	s.keepPlayerInBounds()
	s.respawnIfDead()

	var target *obj.Player
	if !s.Player.Scripted() && !s.Player.Dying() {
		target = s.Player
	}
	s.World.Update(dt, target)

	s.status = s.Sequencer.Update(dt, in)

	s.Camera.Step(sequence.ComputeTarget(s.Sequencer.View(), s.cfg.Camera.Viewport), dt)
	s.Audio.Tick(s.listener())
	return s.status
}

func (s *Scene) keepPlayerInBounds() {
	pos := s.Player.Position()
	w, _ := s.World.Size()
	clamped := common.Clamp(pos.X, 0, w-s.cfg.Player.Width)
	if clamped != pos.X {
		pos.X = clamped
		s.Player.SetPosition(pos)
	}
}

// respawnIfDead puts a player killed by the archer back at the start once
// the death animation ends. The cinematic disables this.
func (s *Scene) respawnIfDead() {
	if s.Player.Scripted() || !s.Player.DeathFinished() {
		return
	}
	if s.Player.Respawn(s.cfg.PlayerStart.X, s.cfg.PlayerStart.Y) {
		s.respawns++
		s.logger.Printf("scene: player respawned (%d)", s.respawns)
	}
}

// listener is the centre of the view.
func (s *Scene) listener() cp.Vector {
	x, y := s.Camera.Position()
	w, h := s.Camera.ViewSize()
	return cp.Vector{X: x + w/2, Y: y + h/2}
}

// Tick returns the number of frames simulated.
func (s *Scene) Tick() int {
	if s == nil {
		return 0
	}
	return s.tick
}

// Status returns the result of the last Update.
func (s *Scene) Status() sequence.Status {
	if s == nil {
		return sequence.Complete
	}
	return s.status
}

func (s *Scene) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.cfg
}
