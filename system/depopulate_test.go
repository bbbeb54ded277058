package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/princeguard/obj"
	"github.com/stretchr/testify/assert"
)

type countList struct{ n int }

func (l *countList) Len() int { return l.n }

func (l *countList) RemoveFront(n int) int {
	if n > l.n {
		n = l.n
	}
	l.n -= n
	return n
}

func TestDepopulatorWaves(t *testing.T) {
	actors := &countList{n: 9}
	arrows := &countList{n: 4}
	d := NewDepopulator(actors, arrows)

	var waves []DepopulateWave
	d.OnWave = func(w DepopulateWave, _, _ int) { waves = append(waves, w) }

	d.Start()
	assert.Equal(t, 6, actors.n)
	assert.Equal(t, 2, arrows.n)
	assert.Equal(t, WaveFirst, d.Wave())

	for i := 0; i < DefaultWaveDelay-1; i++ {
		d.Tick()
	}
	assert.Equal(t, 6, actors.n, "second wave waits for the delay")

	d.Tick()
	assert.Equal(t, 3, actors.n)
	assert.Equal(t, 0, arrows.n)
	assert.Equal(t, WaveSecond, d.Wave())

	for i := 0; i < DefaultWaveDelay; i++ {
		d.Tick()
	}
	assert.Equal(t, 0, actors.n)
	assert.False(t, d.Active())
	assert.Equal(t, WaveIdle, d.Wave())
	assert.Equal(t, []DepopulateWave{WaveFirst, WaveSecond, WaveDone}, waves)
}

func TestDepopulatorRemovesAtLeastOne(t *testing.T) {
	actors := &countList{n: 2}
	d := NewDepopulator(actors, nil)

	d.Start()
	assert.Equal(t, 1, actors.n)
	assert.True(t, d.Active())

	d.Start()
	assert.Equal(t, 1, actors.n, "a running depopulator ignores Start")
}

func TestDepopulatorOverArrowSet(t *testing.T) {
	set := &ArrowSet{}
	for i := 0; i < 5; i++ {
		set.Add(obj.NewArrow(cp.Vector{}, cp.Vector{X: 1}, 1, 0))
	}
	oldest := set.Arrows[2]
	d := NewDepopulator(nil, set)

	d.Start()
	assert.Equal(t, 3, set.Len())
	assert.Same(t, oldest, set.Arrows[0])
}
