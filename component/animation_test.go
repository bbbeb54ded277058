package component

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipLoopsAndStops(t *testing.T) {
	src := NewFrameSource(StaticFrames{"run": 3, "death": 2}, nil)
	c := NewClip(src, "soldier", 2)

	c.Play("run", true)
	for i := 0; i < 6; i++ {
		c.Update()
	}
	assert.Equal(t, 0, c.Frame, "three frames of two ticks wrap to zero")
	assert.False(t, c.Finished)

	c.Play("death", false)
	for i := 0; i < 10; i++ {
		c.Update()
	}
	assert.Equal(t, 1, c.Frame)
	assert.True(t, c.Finished)
}

func TestClipReplayDoesNotRestart(t *testing.T) {
	c := NewClip(NewFrameSource(StaticFrames{"run": 4}, nil), "soldier", 1)
	c.Play("run", true)
	c.Update()
	c.Update()
	c.Play("run", true)

	assert.Equal(t, 2, c.Frame)
}

func TestClipMissingAnimationUsesPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	src := NewFrameSource(StaticFrames{}, log.New(&buf, "", 0))
	c := NewClip(src, "soldier", 1)

	c.Play("idle", true)
	c.Update()

	assert.True(t, c.Placeholder)
	assert.Equal(t, 1, c.FrameCount())
	assert.Nil(t, c.Current())

	c.Play("run", true)
	c.Play("idle", true)
	assert.Equal(t, 1, strings.Count(buf.String(), "soldier/idle"), "missing asset is logged once")
}

func TestFrameSourceLookupError(t *testing.T) {
	src := NewFrameSource(nil, log.New(&bytes.Buffer{}, "", 0))
	_, err := src.Lookup("prince", "run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAssetMissing))
}

func TestStaticFramesKindOverride(t *testing.T) {
	frames := StaticFrames{"run": 8, "prince/run": 6}
	assert.Len(t, frames.Frames("soldier", "run"), 8)
	assert.Len(t, frames.Frames("prince", "run"), 6)
	assert.Nil(t, frames.Frames("prince", "fly"))
}

func TestClipSetFrameClamps(t *testing.T) {
	c := NewClip(NewFrameSource(StaticFrames{"death": 4}, nil), "soldier", 1)
	c.Play("death", false)

	c.SetFrame(9)
	assert.Equal(t, 3, c.Frame)
	assert.True(t, c.Finished)

	c.SetFrame(-2)
	assert.Equal(t, 0, c.Frame)
}

func TestClipFrameEvents(t *testing.T) {
	src := NewFrameSource(StaticFrames{"run": 4, "death": 3}, nil)
	src.Events = ClipEventMap{}
	src.Events.Add("run", 0, ClipEvent{Name: "step"})
	src.Events.Add("run", 2, ClipEvent{Name: "step"})
	src.Events.Add("player/death", 2, ClipEvent{Name: "fall"})
	src.Events.Add("death", 1, ClipEvent{Name: "generic"})

	var got []string
	src.Emitter = &ClipEventEmitter{Handlers: []ClipEventHandler{func(c *Clip, evt ClipEvent) {
		got = append(got, c.Kind+":"+evt.Name)
	}}}

	c := NewClip(src, "player", 1)
	c.Play("run", true)
	for i := 0; i < 4; i++ {
		c.Update()
	}
	assert.Equal(t, []string{"player:step", "player:step", "player:step"}, got, "frames 0, 2 and the wrap to 0")

	got = nil
	c.Play("death", false)
	for i := 0; i < 5; i++ {
		c.Update()
	}
	assert.Equal(t, []string{"player:fall"}, got, "kind-specific events win over bare ones")
}
