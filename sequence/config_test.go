package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDezoomFrames(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 213, cfg.DezoomFrames)
	assert.Equal(t, 1.5, cfg.Prince.BaseSpeed)
}
