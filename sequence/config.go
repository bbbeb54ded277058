package sequence

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
	"github.com/milk9111/princeguard/obj"
)

// RevealStep is one authored step of the reveal sub-sequence. Label names a
// registered action; WaitDezoom adds the dezoom duration to Delay.
type RevealStep struct {
	Label      string
	Delay      int
	WaitDezoom bool
}

// FormationConfig lays out the hostile formation of the reveal.
type FormationConfig struct {
	Count        int
	Columns      int
	OffsetX      float64
	ColumnStep   float64
	RowShift     float64
	Y            float64
	RushSpeed    float64
	StopDistance float64
}

// Config holds every tunable of the sequence. Distances are in pixels unless
// the name says tiles; durations are in frames.
type Config struct {
	DoorX  float64
	Prince PrinceConfig

	TriggerTiles     float64
	CinematicTiles   float64
	CinematicSpeed   float64
	CinematicSlowing float64
	DeathTimeout     int
	PauseFrames      int

	// PanTile is the tile kept at the right edge of the view while panning.
	PanTile float64

	ArrowOrigin      cp.Vector
	ArrowIntervalMin int
	ArrowIntervalMax int
	ArrowJitterX     int
	ArrowJitterY     int
	Arrow            obj.ArrowConfig
	ArrowBottomY     float64
	ArrowPastDoor    float64

	DefenderSpawn   cp.Vector
	DefenderTargetX float64
	DefenderSpeed   float64
	DefenderMax     int

	ZoomStartTile float64
	ZoomEndTile   float64
	MaxZoom       float64
	SettleFrames  int
	DezoomFrames  int

	Formation       FormationConfig
	RevealSteps     []RevealStep
	DeathFrameTicks int
	ShockwaveGrowth float64
	ShockwaveFrames int
	FinalFrames     int
	WaveDelay       int
	CorpseLinger    int
	MusicFadeFrames int

	// Actor configures defenders and the formation.
	Actor obj.ActorConfig
}

// DefaultRevealSteps is the stock reveal: mute, dezoom, rush, react, freeze,
// climax, mass death, complete.
func DefaultRevealSteps() []RevealStep {
	return []RevealStep{
		{Label: StepMuteMusic},
		{Label: StepDezoom, Delay: 30},
		{Label: StepRush},
		{Label: StepReaction, WaitDezoom: true},
		{Label: StepFreezeHostiles, Delay: 30},
		{Label: StepClimax, Delay: 45},
		{Label: StepMassDeath, Delay: 30},
		{Label: StepComplete, Delay: 120},
	}
}

// DefaultConfig mirrors prefabs/sequence.yaml.
func DefaultConfig() Config {
	const (
		zoomStart = 54.0
		zoomEnd   = 70.0
		baseSpeed = 1.5
	)
	// The prince's walk over the zoom span, halved.
	dezoom := (zoomEnd - zoomStart) * common.TileSize / baseSpeed / 2
	return Config{
		DoorX:            common.TileX(80),
		Prince:           DefaultPrinceConfig(),
		TriggerTiles:     5,
		CinematicTiles:   4,
		CinematicSpeed:   3,
		CinematicSlowing: 0.8,
		DeathTimeout:     180,
		PauseFrames:      120,
		PanTile:          62,
		ArrowOrigin:      cp.Vector{X: common.TileX(62), Y: 0},
		ArrowIntervalMin: 30,
		ArrowIntervalMax: 120,
		ArrowJitterX:     50,
		ArrowJitterY:     30,
		Arrow:            obj.DefaultArrowConfig(),
		ArrowBottomY:     800,
		ArrowPastDoor:    200,
		DefenderSpawn:    cp.Vector{X: common.TileX(31), Y: 360},
		DefenderTargetX:  common.TileX(70),
		DefenderSpeed:    4,
		DefenderMax:      64,
		ZoomStartTile:    zoomStart,
		ZoomEndTile:      zoomEnd,
		MaxZoom:          2.5,
		SettleFrames:     60,
		DezoomFrames:     int(dezoom),
		Formation: FormationConfig{
			Count:        100,
			Columns:      10,
			OffsetX:      300,
			ColumnStep:   80,
			RowShift:     30,
			Y:            655 - 100 + 5,
			RushSpeed:    3,
			StopDistance: 50,
		},
		RevealSteps:     DefaultRevealSteps(),
		DeathFrameTicks: 8,
		ShockwaveGrowth: 12,
		ShockwaveFrames: 40,
		FinalFrames:     180,
		WaveDelay:       20,
		CorpseLinger:    300,
		MusicFadeFrames: 30,
		Actor:           obj.DefaultActorConfig(),
	}
}
