package scene

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/audio"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
	"github.com/milk9111/princeguard/prefabs"
	"github.com/milk9111/princeguard/sequence"
	"github.com/milk9111/princeguard/system"
)

// Config is everything a scene is built from.
type Config struct {
	World       system.WorldConfig
	Sequence    sequence.Config
	Camera      prefabs.CameraConfig
	Player      obj.PlayerConfig
	PlayerStart cp.Vector
	Audio       audio.Config
	Ambient     prefabs.AmbientConfig
	Frames      *prefabs.FrameTable
}

// DefaultConfig builds a scene config from the compiled-in defaults without
// touching any prefab file.
func DefaultConfig() Config {
	player, start := prefabs.BuildPlayerConfig(prefabs.PlayerSpec{})
	return Config{
		World:       system.DefaultWorldConfig(),
		Sequence:    sequence.DefaultConfig(),
		Camera:      prefabs.BuildCameraConfig(prefabs.CameraSpec{}),
		Player:      player,
		PlayerStart: start,
		Audio:       audio.Config{FadeFrames: 30, MusicVolume: 0.7},
		Frames: prefabs.NewFrameTable(prefabs.FramesSpec{Counts: map[string]int{
			obj.AnimIdle:  4,
			obj.AnimRun:   8,
			obj.AnimDeath: 6,
		}}),
	}
}

// LoadConfig reads every prefab file. The actor script, when it fails to
// compile, is logged and replaced by the uniform picker.
func LoadConfig(logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.Default()
	}

	actor, err := prefabs.LoadSpec[prefabs.ActorSpec]("actor.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}
	arrow, err := prefabs.LoadSpec[prefabs.ArrowSpec]("arrow.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}
	battlefield, err := prefabs.LoadSpec[prefabs.BattlefieldSpec]("battlefield.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}
	seqSpec, err := prefabs.LoadSpec[prefabs.SequenceSpec]("sequence.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}
	camSpec, err := prefabs.LoadSpec[prefabs.CameraSpec]("camera.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}
	playerSpec, err := prefabs.LoadSpec[prefabs.PlayerSpec]("player.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}
	audioSpec, err := prefabs.LoadSpec[prefabs.AudioSpec]("audio.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}
	framesSpec, err := prefabs.LoadSpec[prefabs.FramesSpec]("frames.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}

	world, err := prefabs.BuildWorldConfig(battlefield, actor, arrow)
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}
	picker, err := prefabs.LoadBehaviorPicker(actor.Script, logger)
	if err != nil {
		logger.Printf("scene: %v, using uniform behaviors", err)
		picker = obj.RandomPicker{}
	}
	world.Picker = picker

	seq, err := prefabs.BuildSequenceConfig(seqSpec, actor, arrow)
	if err != nil {
		return Config{}, fmt.Errorf("scene: load config: %w", err)
	}
	player, start := prefabs.BuildPlayerConfig(playerSpec)
	audioCfg, ambient := prefabs.BuildAudioConfig(audioSpec)

	return Config{
		World:       world,
		Sequence:    seq,
		Camera:      prefabs.BuildCameraConfig(camSpec),
		Player:      player,
		PlayerStart: start,
		Audio:       audioCfg,
		Ambient:     ambient,
		Frames:      prefabs.NewFrameTable(framesSpec),
	}, nil
}

// validate catches configs that would strand the player: a start position
// outside the map or a door the prince can never reach.
func (c Config) validate() error {
	if c.PlayerStart.X < 0 || c.PlayerStart.X > c.World.Width {
		return fmt.Errorf("scene: player start x=%v outside 0..%v: %w", c.PlayerStart.X, c.World.Width, obj.ErrDegenerateGeometry)
	}
	if c.Sequence.DoorX > c.World.Width {
		return fmt.Errorf("scene: door tile %v beyond map: %w", common.TileOf(c.Sequence.DoorX), obj.ErrDegenerateGeometry)
	}
	return nil
}
