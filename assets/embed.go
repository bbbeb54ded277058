package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	pgaudio "github.com/milk9111/princeguard/audio"
)

// SampleRate is the rate every cue is resampled to.
const SampleRate = 44100

//go:embed *
var assetsFS embed.FS

// FS returns the embedded assets, or dir on disk when it exists.
func FS(dir string) fs.FS {
	if dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return os.DirFS(dir)
		}
	}
	return assetsFS
}

// LoadFile loads an asset by assets-relative path.
func LoadFile(fsys fs.FS, path string) ([]byte, error) {
	return fs.ReadFile(fsys, cleanAssetPath(path))
}

// AudioProvider opens cues as ebiten audio players.
type AudioProvider struct {
	ctx  *audio.Context
	fsys fs.FS
}

// NewAudioProvider reads cues from fsys. ctx may be shared with other
// providers; ebiten allows one context per process.
func NewAudioProvider(ctx *audio.Context, fsys fs.FS) *AudioProvider {
	return &AudioProvider{ctx: ctx, fsys: fsys}
}

// Load decodes cue.File. WAV files are resampled; anything else is taken as
// raw PCM in ebiten's native format.
func (p *AudioProvider) Load(cue pgaudio.Cue) (pgaudio.Handle, error) {
	if p == nil || p.ctx == nil {
		return nil, fmt.Errorf("assets: load %q: no audio context", cue.File)
	}
	b, err := LoadFile(p.fsys, cue.File)
	if err != nil {
		return nil, err
	}

	clean := strings.ToLower(cleanAssetPath(cue.File))
	reader := bytes.NewReader(b)

	var stream io.ReadSeeker = reader
	length := int64(len(b))
	if strings.HasSuffix(clean, ".wav") {
		s, err := wav.DecodeWithSampleRate(p.ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", cue.File, err)
		}
		stream, length = s, s.Length()
	}
	if cue.Loop {
		stream = audio.NewInfiniteLoop(stream, length)
	}
	player, err := p.ctx.NewPlayer(stream)
	if err != nil {
		return nil, err
	}
	return player, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
