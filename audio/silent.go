package audio

// Silent is a Handle that plays nothing. It stands in for missing cues.
type Silent struct {
	volume float64
}

func (s *Silent) Play()               {}
func (s *Silent) Pause()              {}
func (s *Silent) Rewind() error       { return nil }
func (s *Silent) IsPlaying() bool     { return false }
func (s *Silent) SetVolume(v float64) { s.volume = v }
func (s *Silent) Volume() float64     { return s.volume }
