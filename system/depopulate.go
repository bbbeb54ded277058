package system

// Trimmable is an ordered entity list that can shed its oldest members.
type Trimmable interface {
	Len() int
	RemoveFront(n int) int
}

// DepopulateWave is the depopulator's progress marker.
type DepopulateWave int

const (
	WaveIdle DepopulateWave = iota
	WaveFirst
	WaveSecond
	WaveDone
)

// DefaultWaveDelay is the number of frames between depopulation waves.
const DefaultWaveDelay = 20

// Depopulator empties two lists over three waves so the screen does not clear
// in a single frame:
//
//	wave 1: a third of the actors (at least one) and half the arrows
//	wave 2: half the remaining actors and every arrow
//	wave 3: every remaining actor
//
// Waves are WaveDelay frames apart. After the last wave the depopulator
// resets itself to WaveIdle.
type Depopulator struct {
	Actors    Trimmable
	Arrows    Trimmable
	WaveDelay int

	// OnWave, if set, runs after each wave with the wave just completed.
	OnWave func(wave DepopulateWave, actorsRemoved, arrowsRemoved int)

	wave  DepopulateWave
	timer int
}

// NewDepopulator creates an idle depopulator over actors and arrows. Either
// list may be nil.
func NewDepopulator(actors, arrows Trimmable) *Depopulator {
	return &Depopulator{Actors: actors, Arrows: arrows, WaveDelay: DefaultWaveDelay}
}

// Start runs the first wave immediately. Starting an active depopulator does
// nothing.
func (d *Depopulator) Start() {
	if d == nil || d.wave != WaveIdle {
		return
	}
	actors := d.remove(d.Actors, max(1, length(d.Actors)/3))
	arrows := d.remove(d.Arrows, max(1, length(d.Arrows)/2))
	d.advance(WaveFirst, actors, arrows)
}

// Tick advances the wave timer and runs the next wave when it is due.
func (d *Depopulator) Tick() {
	if d == nil || d.wave == WaveIdle {
		return
	}
	d.timer++
	if d.timer < d.WaveDelay {
		return
	}
	switch d.wave {
	case WaveFirst:
		actors := d.remove(d.Actors, max(1, length(d.Actors)/2))
		arrows := d.remove(d.Arrows, length(d.Arrows))
		d.advance(WaveSecond, actors, arrows)
	case WaveSecond:
		actors := d.remove(d.Actors, length(d.Actors))
		d.advance(WaveDone, actors, 0)
		d.wave = WaveIdle
	}
}

// Active reports whether waves are still pending.
func (d *Depopulator) Active() bool {
	return d != nil && d.wave != WaveIdle
}

// Wave returns the last wave run, WaveIdle when inactive.
func (d *Depopulator) Wave() DepopulateWave {
	if d == nil {
		return WaveIdle
	}
	return d.wave
}

func (d *Depopulator) advance(w DepopulateWave, actors, arrows int) {
	d.wave = w
	d.timer = 0
	if d.OnWave != nil {
		d.OnWave(w, actors, arrows)
	}
}

func (d *Depopulator) remove(t Trimmable, n int) int {
	if t == nil {
		return 0
	}
	return t.RemoveFront(n)
}

func length(t Trimmable) int {
	if t == nil {
		return 0
	}
	return t.Len()
}
