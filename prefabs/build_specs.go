package prefabs

import (
	"fmt"
	"image/color"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/audio"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/component"
	"github.com/milk9111/princeguard/obj"
	"github.com/milk9111/princeguard/sequence"
	"github.com/milk9111/princeguard/system"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// DecodeComponentSpec re-decodes a loosely typed YAML value into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	out := zero
	if err := DecodeOnto(raw, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// DecodeOnto decodes raw over an already populated value, keeping every field
// raw does not mention.
func DecodeOnto[T any](raw any, dst *T) error {
	if raw == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, dst)
}

func or[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func (p PointSpec) vector() cp.Vector {
	x := p.X
	if p.Tile != nil {
		x = common.TileX(*p.Tile)
	}
	return cp.Vector{X: x, Y: p.Y}
}

func (p PointSpec) isZero() bool {
	return p.Tile == nil && p.X == 0 && p.Y == 0
}

func BuildActorConfig(s ActorSpec) obj.ActorConfig {
	d := obj.DefaultActorConfig()
	return obj.ActorConfig{
		Kind:              or(s.Kind, d.Kind),
		MaxHealth:         or(s.Health, d.MaxHealth),
		Damage:            or(s.Damage, d.Damage),
		AggroRange:        or(s.AggroRange, d.AggroRange),
		AttackRange:       or(s.AttackRange, d.AttackRange),
		AttackFrames:      or(s.AttackFrames, d.AttackFrames),
		HitFrames:         or(s.HitFrames, d.HitFrames),
		AttackCooldown:    or(s.AttackCooldown, d.AttackCooldown),
		ActionCooldown:    or(s.ActionCooldown, d.ActionCooldown),
		SpeedMin:          or(s.SpeedMin, d.SpeedMin),
		SpeedMax:          or(s.SpeedMax, d.SpeedMax),
		AnimTicksMin:      or(s.AnimTicksMin, d.AnimTicksMin),
		AnimTicksMax:      or(s.AnimTicksMax, d.AnimTicksMax),
		BehaviorMin:       or(s.BehaviorMin, d.BehaviorMin),
		BehaviorMax:       or(s.BehaviorMax, d.BehaviorMax),
		Gravity:           or(s.Gravity, d.Gravity),
		Friction:          or(s.Friction, d.Friction),
		Width:             or(s.Collider.Width, d.Width),
		Height:            or(s.Collider.Height, d.Height),
		AllyBlockDistance: or(s.AllyBlockDistance, d.AllyBlockDistance),
		PatrolFactor:      or(s.PatrolFactor, d.PatrolFactor),
		ChaseFactor:       or(s.ChaseFactor, d.ChaseFactor),
		SidestepFactor:    or(s.SidestepFactor, d.SidestepFactor),
		SidestepChance:    or(s.SidestepChance, d.SidestepChance),
	}
}

func BuildArrowConfig(s ArrowSpec) obj.ArrowConfig {
	d := obj.DefaultArrowConfig()
	return obj.ArrowConfig{
		Speed:        or(s.Speed, d.Speed),
		Gravity:      or(s.Gravity, d.Gravity),
		MaxRange:     or(s.MaxRange, d.MaxRange),
		Width:        or(s.Collider.Width, d.Width),
		Height:       or(s.Collider.Height, d.Height),
		LingerFrames: or(s.LingerFrames, d.LingerFrames),
	}
}

func BuildVolleyConfig(s ArrowSpec) system.VolleyConfig {
	d := system.DefaultVolleyConfig()
	v := s.Volley
	cfg := system.VolleyConfig{
		Origin:         d.Origin,
		Arrow:          BuildArrowConfig(s),
		DelayMin:       or(v.Delay.Min, d.DelayMin),
		DelayMax:       or(v.Delay.Max, d.DelayMax),
		Cooldown:       or(v.Cooldown, d.Cooldown),
		JitterX:        or(v.JitterX, d.JitterX),
		JitterY:        or(v.JitterY, d.JitterY),
		CurtainMin:     or(v.Curtain.Min, d.CurtainMin),
		CurtainMax:     or(v.Curtain.Max, d.CurtainMax),
		CurtainCount:   or(v.CurtainCount, d.CurtainCount),
		CurtainSpacing: or(v.Spacing, d.CurtainSpacing),
		CurtainStep:    or(v.Step, d.CurtainStep),
		CurtainOffset:  or(v.Offset, d.CurtainOffset),
		CurtainJitterY: or(v.CurtainJitY, d.CurtainJitterY),
		ActiveAfterX:   d.ActiveAfterX,
		BottomY:        or(v.BottomY, d.BottomY),
	}
	if !v.Origin.isZero() {
		cfg.Origin = v.Origin.vector()
	}
	if v.ActiveAfter != 0 {
		cfg.ActiveAfterX = common.TileX(v.ActiveAfter)
	}
	return cfg
}

func parseTeam(name string) (component.Team, error) {
	switch t := component.Team(name); t {
	case component.TeamRed, component.TeamBlue:
		return t, nil
	}
	return "", fmt.Errorf("prefabs: unknown team %q", name)
}

// BuildWorldConfig combines battlefield.yaml with the shared actor and arrow
// specs. Factions may override any actor field.
func BuildWorldConfig(s BattlefieldSpec, actor ActorSpec, arrow ArrowSpec) (system.WorldConfig, error) {
	d := system.DefaultWorldConfig()
	bd := d.Battlefield
	cfg := system.WorldConfig{
		Width:       d.Width,
		Height:      d.Height,
		Surfaces:    d.Surfaces,
		Volley:      BuildVolleyConfig(arrow),
		ArrowDamage: or(s.ArrowDamage, d.ArrowDamage),
		Battlefield: system.PopulationConfig{
			SpawnInterval: or(s.SpawnInterval, bd.SpawnInterval),
			LingerFrames:  or(s.LingerFrames, bd.LingerFrames),
			NearbyRadius:  or(s.NearbyRadius, bd.NearbyRadius),
			Actor:         BuildActorConfig(actor),
		},
	}
	if s.Width > 0 {
		cfg.Width = common.TileX(s.Width)
	}
	if s.Height > 0 {
		cfg.Height = common.TileX(s.Height)
	}
	if len(s.Surfaces) > 0 {
		cfg.Surfaces = make([]common.Rect, 0, len(s.Surfaces))
		for _, r := range s.Surfaces {
			cfg.Surfaces = append(cfg.Surfaces, common.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
		}
	}
	if len(s.Factions) == 0 {
		cfg.Battlefield.Factions = bd.Factions
		return cfg, nil
	}
	for _, f := range s.Factions {
		team, err := parseTeam(f.Team)
		if err != nil {
			return system.WorldConfig{}, fmt.Errorf("prefabs: faction %s: %w", f.Name, err)
		}
		fc := system.FactionConfig{
			Name:         or(f.Name, f.Team),
			Team:         team,
			MaxCount:     f.MaxCount,
			LowWatermark: f.LowWatermark,
			InitialCount: f.InitialCount,
			MinX:         common.TileX(f.MinTile),
			MaxX:         common.TileX(f.MaxTile),
			SpawnY:       f.SpawnY,
		}
		if len(f.Actor) > 0 {
			spec := actor
			if err := DecodeOnto(f.Actor, &spec); err != nil {
				return system.WorldConfig{}, fmt.Errorf("prefabs: faction %s actor: %w", f.Name, err)
			}
			ac := BuildActorConfig(spec)
			fc.Actor = &ac
		}
		cfg.Battlefield.Factions = append(cfg.Battlefield.Factions, fc)
	}
	return cfg, nil
}

func BuildPrinceConfig(s PrinceSpec) sequence.PrinceConfig {
	d := sequence.DefaultPrinceConfig()
	cfg := sequence.PrinceConfig{
		StartX:          d.StartX,
		Y:               or(s.Y, d.Y),
		Width:           or(s.Collider.Width, d.Width),
		Height:          or(s.Collider.Height, d.Height),
		BaseSpeed:       or(s.BaseSpeed, d.BaseSpeed),
		PanBonus:        or(s.PanBonus, d.PanBonus),
		MinSpeed:        or(s.MinSpeed, d.MinSpeed),
		VariationMin:    d.VariationMin,
		VariationMax:    d.VariationMax,
		VariationFrames: or(s.VariationFrames, d.VariationFrames),
		MaxHealth:       or(s.Health, d.MaxHealth),
		HitDamage:       or(s.HitDamage, d.HitDamage),
		HealthFloor:     or(s.HealthFloor, d.HealthFloor),
		IFrames:         or(s.IFrames, d.IFrames),
		TicksPerFrame:   or(s.TicksPerFrame, d.TicksPerFrame),
	}
	if s.StartTile > 0 {
		cfg.StartX = common.TileX(s.StartTile)
	}
	if s.Variation != (FloatRange{}) {
		cfg.VariationMin, cfg.VariationMax = s.Variation.Min, s.Variation.Max
	}
	return cfg
}

// BuildSequenceConfig converts sequence.yaml. The protection arrows start
// from arrow.yaml and take the overrides under arrows.arrow.
func BuildSequenceConfig(s SequenceSpec, actor ActorSpec, arrow ArrowSpec) (sequence.Config, error) {
	d := sequence.DefaultConfig()
	cfg := d
	cfg.Prince = BuildPrinceConfig(s.Prince)
	cfg.Actor = BuildActorConfig(actor)

	if s.DoorTile > 0 {
		cfg.DoorX = common.TileX(s.DoorTile)
	}
	cfg.TriggerTiles = or(s.Trigger.Tiles, d.TriggerTiles)
	cfg.CinematicTiles = or(s.Trigger.CinematicTiles, d.CinematicTiles)
	cfg.CinematicSpeed = or(s.Trigger.Speed, d.CinematicSpeed)
	cfg.CinematicSlowing = or(s.Trigger.Slowing, d.CinematicSlowing)
	cfg.DeathTimeout = or(s.Trigger.DeathTimeout, d.DeathTimeout)
	cfg.PauseFrames = or(s.Trigger.PauseFrames, d.PauseFrames)
	cfg.PanTile = or(s.PanTile, d.PanTile)

	a := s.Arrows
	if !a.Origin.isZero() {
		cfg.ArrowOrigin = a.Origin.vector()
	}
	cfg.ArrowIntervalMin = or(a.Interval.Min, d.ArrowIntervalMin)
	cfg.ArrowIntervalMax = or(a.Interval.Max, d.ArrowIntervalMax)
	cfg.ArrowJitterX = or(a.JitterX, d.ArrowJitterX)
	cfg.ArrowJitterY = or(a.JitterY, d.ArrowJitterY)
	cfg.ArrowBottomY = or(a.BottomY, d.ArrowBottomY)
	cfg.ArrowPastDoor = or(a.PastDoor, d.ArrowPastDoor)
	base := arrow
	if len(a.Overrides) > 0 {
		if err := DecodeOnto(a.Overrides, &base); err != nil {
			return sequence.Config{}, fmt.Errorf("prefabs: sequence arrows: %w", err)
		}
	}
	cfg.Arrow = BuildArrowConfig(base)

	if !s.Defenders.Spawn.isZero() {
		cfg.DefenderSpawn = s.Defenders.Spawn.vector()
	}
	if s.Defenders.TargetTile > 0 {
		cfg.DefenderTargetX = common.TileX(s.Defenders.TargetTile)
	}
	cfg.DefenderSpeed = or(s.Defenders.Speed, d.DefenderSpeed)
	cfg.DefenderMax = or(s.Defenders.Max, d.DefenderMax)

	cfg.ZoomStartTile = or(s.Zoom.StartTile, d.ZoomStartTile)
	cfg.ZoomEndTile = or(s.Zoom.EndTile, d.ZoomEndTile)
	cfg.MaxZoom = or(s.Zoom.Max, d.MaxZoom)
	cfg.SettleFrames = or(s.Zoom.SettleFrames, d.SettleFrames)
	cfg.DezoomFrames = s.Zoom.DezoomFrames
	if cfg.DezoomFrames == 0 {
		span := (cfg.ZoomEndTile - cfg.ZoomStartTile) * common.TileSize
		cfg.DezoomFrames = int(span / cfg.Prince.BaseSpeed / 2)
	}

	f := s.Formation
	df := d.Formation
	cfg.Formation = sequence.FormationConfig{
		Count:        or(f.Count, df.Count),
		Columns:      or(f.Columns, df.Columns),
		OffsetX:      or(f.OffsetX, df.OffsetX),
		ColumnStep:   or(f.ColumnStep, df.ColumnStep),
		RowShift:     or(f.RowShift, df.RowShift),
		Y:            or(f.Y, df.Y),
		RushSpeed:    or(f.RushSpeed, df.RushSpeed),
		StopDistance: or(f.StopDistance, df.StopDistance),
	}
	if len(s.Reveal) > 0 {
		cfg.RevealSteps = make([]sequence.RevealStep, 0, len(s.Reveal))
		for _, st := range s.Reveal {
			cfg.RevealSteps = append(cfg.RevealSteps, sequence.RevealStep{Label: st.Label, Delay: st.Delay, WaitDezoom: st.WaitDezoom})
		}
	}

	cfg.DeathFrameTicks = or(s.DeathFrameTicks, d.DeathFrameTicks)
	cfg.ShockwaveGrowth = or(s.ShockwaveGrowth, d.ShockwaveGrowth)
	cfg.ShockwaveFrames = or(s.ShockwaveFrames, d.ShockwaveFrames)
	cfg.FinalFrames = or(s.FinalFrames, d.FinalFrames)
	cfg.WaveDelay = or(s.WaveDelay, d.WaveDelay)
	cfg.CorpseLinger = or(s.CorpseLinger, d.CorpseLinger)
	cfg.MusicFadeFrames = or(s.MusicFadeFrames, d.MusicFadeFrames)
	return cfg, nil
}

// CameraConfig sizes the logical screen and the camera's speed.
type CameraConfig struct {
	ScreenWidth  int
	ScreenHeight int
	MaxSpeed     float64
	Viewport     sequence.Viewport
}

func BuildCameraConfig(s CameraSpec) CameraConfig {
	cfg := CameraConfig{
		ScreenWidth:  or(s.ScreenWidth, 960),
		ScreenHeight: or(s.ScreenHeight, 540),
		MaxSpeed:     or(s.MaxSpeed, 5.0),
	}
	cfg.Viewport = sequence.Viewport{
		Width:  float64(cfg.ScreenWidth),
		Height: float64(cfg.ScreenHeight),
		BaseY:  or(s.BaseY, 800-float64(cfg.ScreenHeight)),
	}
	return cfg
}

// BuildPlayerConfig returns the player's tunables and start position.
func BuildPlayerConfig(s PlayerSpec) (obj.PlayerConfig, cp.Vector) {
	d := obj.DefaultPlayerConfig()
	cfg := obj.PlayerConfig{
		MoveSpeed:     or(s.MoveSpeed, d.MoveSpeed),
		MaxHealth:     or(s.Health, d.MaxHealth),
		HitIFrames:    or(s.HitIFrames, d.HitIFrames),
		Width:         or(s.Collider.Width, d.Width),
		Height:        or(s.Collider.Height, d.Height),
		TicksPerFrame: or(s.TicksPerFrame, d.TicksPerFrame),
	}
	start := cp.Vector{X: common.TileX(or(s.StartTile, 90.0)), Y: or(s.Y, 600-cfg.Height)}
	return cfg, start
}

// AmbientConfig places the looping ambient cue in the world.
type AmbientConfig struct {
	Cue         string
	Position    cp.Vector
	MaxDistance float64
}

func BuildAudioConfig(s AudioSpec) (audio.Config, AmbientConfig) {
	cfg := audio.Config{
		Cues:        make(map[string]audio.Cue, len(s.Cues)),
		PhaseCues:   s.Phases,
		PhaseMusic:  s.Music,
		EventCues:   s.Events,
		Repeatable:  make(map[string]bool, len(s.Repeatable)),
		MusicVolume: s.MusicVolume,
		FadeFrames:  s.FadeFrames,
	}
	for name, c := range s.Cues {
		cfg.Cues[name] = audio.Cue{File: c.File, Volume: c.Volume, Loop: c.Loop}
	}
	for _, name := range s.Repeatable {
		cfg.Repeatable[name] = true
	}
	amb := AmbientConfig{Cue: s.Ambient.Cue, Position: s.Ambient.Position.vector(), MaxDistance: s.Ambient.MaxDistance}
	return cfg, amb
}

// FrameTable serves frame counts from frames.yaml and placeholder colours
// per entity kind.
type FrameTable struct {
	counts component.StaticFrames
	colors map[string]color.Color
	events component.ClipEventMap
}

func NewFrameTable(s FramesSpec) *FrameTable {
	t := &FrameTable{
		counts: component.StaticFrames{},
		colors: make(map[string]color.Color, len(s.Colors)),
		events: component.ClipEventMap{},
	}
	for k, n := range s.Counts {
		t.counts[k] = n
	}
	for k, c := range s.Colors {
		t.colors[k] = c.Color
	}
	for key, frames := range s.Events {
		for frame, names := range frames {
			for _, name := range names {
				t.events.Add(key, frame, component.ClipEvent{Name: name})
			}
		}
	}
	return t
}

// Events returns the frame events of every animation.
func (t *FrameTable) Events() component.ClipEventMap {
	if t == nil {
		return nil
	}
	return t.events
}

func (t *FrameTable) Frames(kind, anim string) []component.FrameHandle {
	if t == nil {
		return nil
	}
	return t.counts.Frames(kind, anim)
}

// Color returns the placeholder colour for kind, magenta when unset.
func (t *FrameTable) Color(kind string) color.Color {
	if t != nil {
		if c, ok := t.colors[kind]; ok && c != nil {
			return c
		}
	}
	return colornames.Magenta
}

// LoadBehaviorPicker compiles the named tengo script. An empty name yields
// the uniform picker.
func LoadBehaviorPicker(name string, logger *log.Logger) (obj.BehaviorPicker, error) {
	if name == "" {
		return obj.RandomPicker{}, nil
	}
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return obj.NewScriptPicker(src, obj.RandomPicker{}, logger)
}
