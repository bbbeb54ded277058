package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ActorSpec struct {
	Kind           string  `yaml:"kind"`
	Health         int     `yaml:"health"`
	Damage         int     `yaml:"damage"`
	AggroRange     float64 `yaml:"aggro_range"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackFrames   int     `yaml:"attack_frames"`
	HitFrames      int     `yaml:"hit_frames"`
	AttackCooldown int     `yaml:"attack_cooldown"`
	ActionCooldown int     `yaml:"action_cooldown"`

	SpeedMin     float64 `yaml:"speed_min"`
	SpeedMax     float64 `yaml:"speed_max"`
	AnimTicksMin int     `yaml:"anim_ticks_min"`
	AnimTicksMax int     `yaml:"anim_ticks_max"`
	BehaviorMin  int     `yaml:"behavior_min"`
	BehaviorMax  int     `yaml:"behavior_max"`

	Gravity  float64      `yaml:"gravity"`
	Friction float64      `yaml:"friction"`
	Collider ColliderSpec `yaml:"collider"`

	AllyBlockDistance float64 `yaml:"ally_block_distance"`
	PatrolFactor      float64 `yaml:"patrol_factor"`
	ChaseFactor       float64 `yaml:"chase_factor"`
	SidestepFactor    float64 `yaml:"sidestep_factor"`
	SidestepChance    float64 `yaml:"sidestep_chance"`

	// Script is a tengo file under prefabs/scripts that picks idle behaviors.
	Script string `yaml:"script"`
}

type ArrowSpec struct {
	Speed        float64      `yaml:"speed"`
	Gravity      float64      `yaml:"gravity"`
	MaxRange     float64      `yaml:"max_range"`
	LingerFrames int          `yaml:"linger_frames"`
	Collider     ColliderSpec `yaml:"collider"`
	Volley       VolleySpec   `yaml:"volley"`
}

type VolleySpec struct {
	Origin       PointSpec `yaml:"origin"`
	Delay        RangeSpec `yaml:"delay"`
	Cooldown     int       `yaml:"cooldown"`
	JitterX      int       `yaml:"jitter_x"`
	JitterY      int       `yaml:"jitter_y"`
	ActiveAfter  float64   `yaml:"active_after_tile"`
	BottomY      float64   `yaml:"bottom_y"`
	Curtain      RangeSpec `yaml:"curtain"`
	CurtainCount int       `yaml:"curtain_count"`
	Spacing      int       `yaml:"curtain_spacing"`
	Step         float64   `yaml:"curtain_step"`
	Offset       float64   `yaml:"curtain_offset"`
	CurtainJitY  int       `yaml:"curtain_jitter_y"`
}

type BattlefieldSpec struct {
	Width         float64       `yaml:"width_tiles"`
	Height        float64       `yaml:"height_tiles"`
	Surfaces      []RectSpec    `yaml:"surfaces"`
	SpawnInterval int           `yaml:"spawn_interval"`
	LingerFrames  int           `yaml:"linger_frames"`
	NearbyRadius  float64       `yaml:"nearby_radius"`
	ArrowDamage   int           `yaml:"arrow_damage"`
	Factions      []FactionSpec `yaml:"factions"`
}

type FactionSpec struct {
	Name         string  `yaml:"name"`
	Team         string  `yaml:"team"`
	MaxCount     int     `yaml:"max_count"`
	LowWatermark int     `yaml:"low_watermark"`
	InitialCount int     `yaml:"initial_count"`
	MinTile      float64 `yaml:"min_tile"`
	MaxTile      float64 `yaml:"max_tile"`
	SpawnY       float64 `yaml:"spawn_y"`
	// Actor overrides fields of actor.yaml for this faction.
	Actor map[string]any `yaml:"actor"`
}

type SequenceSpec struct {
	DoorTile float64     `yaml:"door_tile"`
	Prince   PrinceSpec  `yaml:"prince"`
	Trigger  TriggerSpec `yaml:"trigger"`
	PanTile  float64     `yaml:"pan_tile"`

	Arrows    ProtectionArrowSpec `yaml:"arrows"`
	Defenders DefenderSpec        `yaml:"defenders"`
	Zoom      ZoomSpec            `yaml:"zoom"`
	Formation FormationSpec       `yaml:"formation"`
	Reveal    []RevealStepSpec    `yaml:"reveal"`

	DeathFrameTicks int     `yaml:"death_frame_ticks"`
	ShockwaveGrowth float64 `yaml:"shockwave_growth"`
	ShockwaveFrames int     `yaml:"shockwave_frames"`
	FinalFrames     int     `yaml:"final_frames"`
	WaveDelay       int     `yaml:"wave_delay"`
	CorpseLinger    int     `yaml:"corpse_linger"`
	MusicFadeFrames int     `yaml:"music_fade_frames"`
}

type PrinceSpec struct {
	StartTile       float64      `yaml:"start_tile"`
	Y               float64      `yaml:"y"`
	Collider        ColliderSpec `yaml:"collider"`
	BaseSpeed       float64      `yaml:"base_speed"`
	PanBonus        float64      `yaml:"pan_bonus"`
	MinSpeed        float64      `yaml:"min_speed"`
	Variation       FloatRange   `yaml:"variation"`
	VariationFrames int          `yaml:"variation_frames"`
	Health          int          `yaml:"health"`
	HitDamage       int          `yaml:"hit_damage"`
	HealthFloor     int          `yaml:"health_floor"`
	IFrames         int          `yaml:"iframes"`
	TicksPerFrame   int          `yaml:"ticks_per_frame"`
}

type TriggerSpec struct {
	Tiles          float64 `yaml:"tiles"`
	CinematicTiles float64 `yaml:"cinematic_tiles"`
	Speed          float64 `yaml:"speed"`
	Slowing        float64 `yaml:"slowing"`
	DeathTimeout   int     `yaml:"death_timeout"`
	PauseFrames    int     `yaml:"pause_frames"`
}

type ProtectionArrowSpec struct {
	Origin    PointSpec `yaml:"origin"`
	Interval  RangeSpec `yaml:"interval"`
	JitterX   int       `yaml:"jitter_x"`
	JitterY   int       `yaml:"jitter_y"`
	BottomY   float64   `yaml:"bottom_y"`
	PastDoor  float64   `yaml:"past_door"`
	// Overrides replaces fields of arrow.yaml for protection arrows.
	Overrides map[string]any `yaml:"arrow"`
}

type DefenderSpec struct {
	Spawn      PointSpec `yaml:"spawn"`
	TargetTile float64   `yaml:"target_tile"`
	Speed      float64   `yaml:"speed"`
	Max        int       `yaml:"max"`
}

type ZoomSpec struct {
	StartTile    float64 `yaml:"start_tile"`
	EndTile      float64 `yaml:"end_tile"`
	Max          float64 `yaml:"max"`
	SettleFrames int     `yaml:"settle_frames"`
	DezoomFrames int     `yaml:"dezoom_frames"`
}

type FormationSpec struct {
	Count        int     `yaml:"count"`
	Columns      int     `yaml:"columns"`
	OffsetX      float64 `yaml:"offset_x"`
	ColumnStep   float64 `yaml:"column_step"`
	RowShift     float64 `yaml:"row_shift"`
	Y            float64 `yaml:"y"`
	RushSpeed    float64 `yaml:"rush_speed"`
	StopDistance float64 `yaml:"stop_distance"`
}

type RevealStepSpec struct {
	Label      string `yaml:"label"`
	Delay      int    `yaml:"delay"`
	WaitDezoom bool   `yaml:"wait_dezoom"`
}

type CameraSpec struct {
	ScreenWidth  int     `yaml:"screen_width"`
	ScreenHeight int     `yaml:"screen_height"`
	MaxSpeed     float64 `yaml:"max_speed"`
	BaseY        float64 `yaml:"base_y"`
}

type PlayerSpec struct {
	StartTile     float64      `yaml:"start_tile"`
	Y             float64      `yaml:"y"`
	MoveSpeed     float64      `yaml:"move_speed"`
	Health        int          `yaml:"health"`
	HitIFrames    int          `yaml:"hit_iframes"`
	TicksPerFrame int          `yaml:"ticks_per_frame"`
	Collider      ColliderSpec `yaml:"collider"`
}

type AudioSpec struct {
	Cues        map[string]CueSpec `yaml:"cues"`
	Phases      map[string]string  `yaml:"phases"`
	Music       map[string]string  `yaml:"music"`
	Events      map[string]string  `yaml:"events"`
	Repeatable  []string           `yaml:"repeatable"`
	MusicVolume float64            `yaml:"music_volume"`
	FadeFrames  int                `yaml:"fade_frames"`
	Ambient     AmbientSpec        `yaml:"ambient"`
}

type CueSpec struct {
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

type AmbientSpec struct {
	Cue         string    `yaml:"cue"`
	Position    PointSpec `yaml:"position"`
	MaxDistance float64   `yaml:"max_distance"`
}

// FramesSpec lists frame counts per "kind/anim" or bare "anim", the
// placeholder colour per kind, and named events per animation frame.
type FramesSpec struct {
	Counts map[string]int              `yaml:"counts"`
	Colors map[string]YAMLColor        `yaml:"colors"`
	Events map[string]map[int][]string `yaml:"events"`
}

// PointSpec is a position. Tile, when set, wins over X.
type PointSpec struct {
	Tile *float64 `yaml:"tile"`
	X    float64  `yaml:"x"`
	Y    float64  `yaml:"y"`
}

type RangeSpec struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG colour name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
