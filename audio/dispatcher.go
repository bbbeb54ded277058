package audio

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/common"
)

// ErrCueMissing reports a cue whose file could not be found or decoded.
var ErrCueMissing = errors.New("audio cue missing")

const (
	defaultMusicVolume = 1.0
	defaultFadeFrames  = 30
	fadeEpsilon        = 1e-9
)

// Handle is a playable sound. *audio.Player from ebiten satisfies it.
type Handle interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(v float64)
	Volume() float64
}

// HandleProvider opens cues.
type HandleProvider interface {
	Load(cue Cue) (Handle, error)
}

// Cue is one sound file and its base volume.
type Cue struct {
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

// Config maps sequence phases and events to cues and music tracks.
type Config struct {
	Cues map[string]Cue
	// PhaseCues plays a one-shot cue when a phase is entered.
	PhaseCues map[string]string
	// PhaseMusic crossfades to a track when a phase is entered.
	PhaseMusic map[string]string
	EventCues  map[string]string
	// Repeatable events play for every instance; others play once per name.
	Repeatable  map[string]bool
	MusicVolume float64
	FadeFrames  int
}

// EventKey identifies one occurrence of a named event.
type EventKey struct {
	Name     string
	Instance int
}

// Directive records a music change for hosts that render audio state.
type Directive struct {
	Kind   string
	Track  string
	Volume float64
	Frames int
}

type ambient struct {
	cue         string
	pos         cp.Vector
	maxDistance float64
	base        float64
	volume      float64
}

type music struct {
	track  string
	volume float64

	pendingTrack  string
	pendingVolume float64
	pendingActive bool

	// target is the volume of an in-place fade.
	target  float64
	fading  bool
	stopped bool
	step    float64
}

// Dispatcher turns sequence phases and events into sound. It owns every
// handle it opens; call Dispose to release them.
type Dispatcher struct {
	provider HandleProvider
	cfg      Config
	logger   *log.Logger

	handles    map[string]Handle
	missing    map[string]bool
	played     map[EventKey]bool
	music      music
	ambient    *ambient
	directives []Directive
	ready      bool
}

// NewDispatcher creates a dispatcher. Call Init before use.
func NewDispatcher(provider HandleProvider, cfg Config, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MusicVolume <= 0 {
		cfg.MusicVolume = defaultMusicVolume
	}
	if cfg.FadeFrames <= 0 {
		cfg.FadeFrames = defaultFadeFrames
	}
	return &Dispatcher{provider: provider, cfg: cfg, logger: logger}
}

// Init opens every configured cue. Missing cues get a silent handle and one
// log line each.
func (d *Dispatcher) Init() error {
	if d == nil {
		return fmt.Errorf("audio: init: nil dispatcher")
	}
	d.handles = make(map[string]Handle, len(d.cfg.Cues))
	d.missing = make(map[string]bool)
	d.played = make(map[EventKey]bool)
	d.ready = true
	for name := range d.cfg.Cues {
		d.handle(name)
	}
	return nil
}

// Dispose stops and forgets every handle.
func (d *Dispatcher) Dispose() {
	if d == nil {
		return
	}
	for _, h := range d.handles {
		h.Pause()
	}
	d.handles = nil
	d.played = nil
	d.ambient = nil
	d.music = music{}
	d.ready = false
}

func (d *Dispatcher) handle(name string) Handle {
	if h, ok := d.handles[name]; ok {
		return h
	}
	cue, ok := d.cfg.Cues[name]
	var h Handle
	var err error
	if !ok {
		err = fmt.Errorf("audio: cue %s: %w", name, ErrCueMissing)
	} else if d.provider == nil {
		err = fmt.Errorf("audio: cue %s: no provider: %w", name, ErrCueMissing)
	} else {
		h, err = d.provider.Load(cue)
		if err != nil {
			err = fmt.Errorf("audio: cue %s: %v: %w", name, err, ErrCueMissing)
		}
	}
	if err != nil {
		if !d.missing[name] {
			d.missing[name] = true
			d.logger.Printf("%v", err)
		}
		h = &Silent{}
	}
	if cue.Volume > 0 {
		h.SetVolume(cue.Volume)
	}
	d.handles[name] = h
	return h
}

// Missing reports whether name resolved to a silent handle.
func (d *Dispatcher) Missing(name string) bool {
	return d != nil && d.missing[name]
}

func (d *Dispatcher) playOnce(name string) {
	if name == "" {
		return
	}
	h := d.handle(name)
	if err := h.Rewind(); err != nil {
		d.logger.Printf("audio: rewind %s: %v", name, err)
	}
	h.Play()
}

// OnPhaseEnter plays the phase's cue and music, once per phase.
func (d *Dispatcher) OnPhaseEnter(phase string) {
	if d == nil || !d.ready {
		return
	}
	key := EventKey{Name: "phase:" + phase}
	if d.played[key] {
		return
	}
	d.played[key] = true
	d.playOnce(d.cfg.PhaseCues[phase])
	if track, ok := d.cfg.PhaseMusic[phase]; ok {
		d.Crossfade(track, d.cfg.MusicVolume, d.cfg.FadeFrames)
	}
}

// OnEvent plays the event's cue. Non-repeatable events play once per name;
// repeatable ones once per instance.
func (d *Dispatcher) OnEvent(name string, instance int) {
	if d == nil || !d.ready {
		return
	}
	key := EventKey{Name: name}
	if d.cfg.Repeatable[name] {
		key.Instance = instance
	}
	if d.played[key] {
		return
	}
	d.played[key] = true
	d.playOnce(d.cfg.EventCues[name])
}

// Crossfade fades the current track out over frames, then starts track at
// volume. An empty track only fades out.
func (d *Dispatcher) Crossfade(track string, volume float64, frames int) {
	if d == nil || !d.ready {
		return
	}
	track = strings.TrimSpace(track)
	volume = common.Clamp(volume, 0, 1)
	if frames <= 0 {
		frames = d.cfg.FadeFrames
	}
	d.directives = append(d.directives, Directive{Kind: "crossfade", Track: track, Volume: volume, Frames: frames})

	m := &d.music
	if track != "" && track == m.track && !m.pendingActive {
		d.fadeTo(volume, frames)
		return
	}
	m.pendingTrack = track
	m.pendingVolume = volume
	m.pendingActive = true
	m.fading = false
	if m.track == "" {
		d.switchToPending()
		return
	}
	m.step = fadeStep(m.volume, frames)
}

// FadeMusic fades the current track to volume over frames. A fade to zero
// pauses the track once silent.
func (d *Dispatcher) FadeMusic(volume float64, frames int) {
	if d == nil || !d.ready {
		return
	}
	volume = common.Clamp(volume, 0, 1)
	if frames <= 0 {
		frames = d.cfg.FadeFrames
	}
	d.directives = append(d.directives, Directive{Kind: "fade", Track: d.music.track, Volume: volume, Frames: frames})
	d.fadeTo(volume, frames)
}

func (d *Dispatcher) fadeTo(volume float64, frames int) {
	m := &d.music
	m.target = volume
	m.fading = true
	diff := volume - m.volume
	if diff < 0 {
		diff = -diff
	}
	m.step = fadeStep(diff, frames)
	if m.stopped && volume > 0 {
		m.stopped = false
		if cur := d.current(); cur != nil {
			cur.Play()
		}
	}
}

func fadeStep(span float64, frames int) float64 {
	step := span / float64(frames)
	if step <= 0 {
		step = 1
	}
	return step
}

// SetAmbient attaches a looping cue to a world position. Its volume falls
// off linearly to zero at maxDistance from the listener.
func (d *Dispatcher) SetAmbient(cue string, pos cp.Vector, maxDistance float64) {
	if d == nil || !d.ready {
		return
	}
	if cue == "" {
		if d.ambient != nil {
			d.handle(d.ambient.cue).Pause()
		}
		d.ambient = nil
		return
	}
	base := d.cfg.Cues[cue].Volume
	if base <= 0 {
		base = 1
	}
	d.ambient = &ambient{cue: cue, pos: pos, maxDistance: maxDistance, base: base}
}

// AmbientVolume is clamp(1 - d/max, 0, 1) * base.
func AmbientVolume(distance, maxDistance, base float64) float64 {
	if maxDistance <= 0 {
		return 0
	}
	return common.Clamp(1-distance/maxDistance, 0, 1) * base
}

// Tick applies one frame of music fades and ambient falloff.
func (d *Dispatcher) Tick(listener cp.Vector) {
	if d == nil || !d.ready {
		return
	}
	d.tickMusic()
	if a := d.ambient; a != nil {
		a.volume = AmbientVolume(common.Distance(listener.X, listener.Y, a.pos.X, a.pos.Y), a.maxDistance, a.base)
		h := d.handle(a.cue)
		h.SetVolume(a.volume)
		if a.volume > 0 && !h.IsPlaying() {
			h.Play()
		}
	}
}

func (d *Dispatcher) tickMusic() {
	m := &d.music
	cur := d.current()

	switch {
	case m.pendingActive:
		if cur == nil {
			d.switchToPending()
			return
		}
		m.volume -= m.step
		if m.volume > fadeEpsilon {
			cur.SetVolume(m.volume)
			return
		}
		m.volume = 0
		cur.SetVolume(0)
		cur.Pause()
		m.track = ""
		d.switchToPending()
	case m.fading:
		m.volume = common.Approach(m.volume, m.target, m.step)
		if cur != nil {
			cur.SetVolume(m.volume)
		}
		if m.volume != m.target {
			return
		}
		m.fading = false
		if m.volume == 0 && cur != nil {
			cur.Pause()
			m.stopped = true
		}
	case cur != nil && !m.stopped && !cur.IsPlaying():
		if err := cur.Rewind(); err != nil {
			d.logger.Printf("audio: rewind %s: %v", m.track, err)
		}
		cur.SetVolume(m.volume)
		cur.Play()
	}
}

func (d *Dispatcher) current() Handle {
	if d.music.track == "" {
		return nil
	}
	return d.handle(d.music.track)
}

func (d *Dispatcher) switchToPending() {
	m := &d.music
	track, volume := m.pendingTrack, m.pendingVolume
	m.pendingTrack = ""
	m.pendingVolume = 0
	m.pendingActive = false
	m.step = 0
	m.stopped = false

	m.track = track
	m.volume = volume
	if track == "" {
		m.volume = 0
		return
	}
	h := d.handle(track)
	if err := h.Rewind(); err != nil {
		d.logger.Printf("audio: rewind %s: %v", track, err)
	}
	h.SetVolume(volume)
	h.Play()
}

// Music returns the current track and its volume.
func (d *Dispatcher) Music() (string, float64) {
	if d == nil {
		return "", 0
	}
	return d.music.track, d.music.volume
}

// AmbientLevel returns the last computed ambient volume.
func (d *Dispatcher) AmbientLevel() float64 {
	if d == nil || d.ambient == nil {
		return 0
	}
	return d.ambient.volume
}

// Directives returns every music directive issued so far.
func (d *Dispatcher) Directives() []Directive {
	if d == nil {
		return nil
	}
	return append([]Directive(nil), d.directives...)
}
