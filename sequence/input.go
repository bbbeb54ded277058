package sequence

// Key is a logical input the sequence or its host reacts to.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeySpace
	KeyReset
	KeyCopyLog
)

// Input is a per-frame snapshot of held keys.
type Input interface {
	Down(k Key) bool
}

// Keys is a map-backed Input.
type Keys map[Key]bool

func (k Keys) Down(key Key) bool { return k[key] }

// edge turns a held key into a single press.
type edge struct {
	held bool
}

func (e *edge) pressed(down bool) bool {
	fire := down && !e.held
	e.held = down
	return fire
}
