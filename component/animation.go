package component

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrAssetMissing reports an animation with no frames.
var ErrAssetMissing = errors.New("asset missing")

// FrameHandle is an opaque drawable owned by the rendering layer.
type FrameHandle any

// FrameProvider resolves the frames of an entity kind's animation. The core
// only ever looks at the length of the returned slice.
type FrameProvider interface {
	Frames(kind, anim string) []FrameHandle
}

// FrameSource wraps a provider and logs each missing animation once.
// Clips created from it raise Events through Emitter.
type FrameSource struct {
	Provider FrameProvider
	Logger   *log.Logger
	Events   ClipEventMap
	Emitter  *ClipEventEmitter

	mu   sync.Mutex
	seen map[string]bool
}

// NewFrameSource creates a FrameSource. A nil logger uses log.Default().
func NewFrameSource(p FrameProvider, logger *log.Logger) *FrameSource {
	if logger == nil {
		logger = log.Default()
	}
	return &FrameSource{Provider: p, Logger: logger}
}

// Lookup returns the frames for kind/anim or ErrAssetMissing.
func (s *FrameSource) Lookup(kind, anim string) ([]FrameHandle, error) {
	var frames []FrameHandle
	if s != nil && s.Provider != nil {
		frames = s.Provider.Frames(kind, anim)
	}
	if len(frames) > 0 {
		return frames, nil
	}
	err := fmt.Errorf("animation %s/%s: %w", kind, anim, ErrAssetMissing)
	if s != nil {
		s.mu.Lock()
		if s.seen == nil {
			s.seen = make(map[string]bool)
		}
		key := kind + "/" + anim
		if !s.seen[key] {
			s.seen[key] = true
			s.Logger.Printf("animation: %v, using placeholder", err)
		}
		s.mu.Unlock()
	}
	return nil, err
}

// Clip tracks playback of one named animation. It never touches pixels.
type Clip struct {
	Kind          string
	Name          string
	Frame         int
	Loop          bool
	Finished      bool
	TicksPerFrame int
	// Placeholder is set when the animation had no frames; renderers draw a
	// coloured box instead.
	Placeholder bool

	source *FrameSource
	frames []FrameHandle
	events map[int][]ClipEvent
	tick   int
}

// NewClip creates a clip for an entity kind.
func NewClip(source *FrameSource, kind string, ticksPerFrame int) *Clip {
	if ticksPerFrame <= 0 {
		ticksPerFrame = 8
	}
	return &Clip{Kind: kind, TicksPerFrame: ticksPerFrame, source: source}
}

// Play switches to a new animation. Replaying the current one is a no-op so
// per-frame callers do not restart it.
func (c *Clip) Play(name string, loop bool) {
	if c == nil || c.Name == name {
		return
	}
	c.Name = name
	c.Loop = loop
	c.Frame = 0
	c.tick = 0
	c.Finished = false
	frames, err := c.source.Lookup(c.Kind, name)
	c.frames = frames
	c.Placeholder = err != nil
	c.events = nil
	if c.source != nil {
		c.events = c.source.Events.lookup(c.Kind, name)
	}
	c.emitFrame()
}

// Update advances the clip by one tick.
func (c *Clip) Update() {
	if c == nil || c.Finished {
		return
	}
	n := c.FrameCount()
	c.tick++
	if c.tick < c.TicksPerFrame {
		return
	}
	c.tick = 0
	c.Frame++
	if c.Frame >= n {
		if !c.Loop {
			c.Frame = n - 1
			c.Finished = true
			return
		}
		c.Frame = 0
	}
	c.emitFrame()
}

// SetFrame jumps to frame i, clamped to the clip length.
func (c *Clip) SetFrame(i int) {
	if c == nil {
		return
	}
	n := c.FrameCount()
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	c.Frame = i
	c.tick = 0
	c.Finished = !c.Loop && i == n-1
}

// FrameCount returns the number of frames, 1 for placeholders.
func (c *Clip) FrameCount() int {
	if c == nil || len(c.frames) == 0 {
		return 1
	}
	return len(c.frames)
}

// Current returns the active frame handle, nil for placeholders.
func (c *Clip) Current() FrameHandle {
	if c == nil || len(c.frames) == 0 {
		return nil
	}
	return c.frames[c.Frame%len(c.frames)]
}

// StaticFrames is a FrameProvider backed by frame counts. Keys are either
// "kind/anim" or a bare "anim" shared by every kind; the former wins.
type StaticFrames map[string]int

func (s StaticFrames) Frames(kind, anim string) []FrameHandle {
	n, ok := s[kind+"/"+anim]
	if !ok {
		n = s[anim]
	}
	if n <= 0 {
		return nil
	}
	return make([]FrameHandle, n)
}
