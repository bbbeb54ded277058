package component

// Health is a reusable health component for any entity that can take damage.
type Health struct {
	Max     int
	Current int
	IFrames int
	Dead    bool

	// Floor is the lowest value damage can bring Current to. A positive floor
	// makes the owner unkillable by ApplyDamage.
	Floor int

	OnDamage func(h *Health, evt CombatEvent)
	OnDeath  func(h *Health, evt CombatEvent)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// Invulnerable reports whether i-frames are running.
func (h *Health) Invulnerable() bool {
	return h != nil && h.IFrames > 0
}

// ApplyDamage applies damage if not in i-frames. Returns true if damage was applied.
func (h *Health) ApplyDamage(amount int, evt CombatEvent) bool {
	if h == nil || h.Dead || h.IFrames > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < h.Floor {
		h.Current = h.Floor
	}
	if h.Current < 0 {
		h.Current = 0
	}
	evt.Damage = amount
	if h.OnDamage != nil {
		h.OnDamage(h, evt)
	}
	if h.Current <= 0 {
		h.kill(evt)
	}
	return true
}

// Kill forces the entity dead regardless of i-frames or floor.
func (h *Health) Kill(evt CombatEvent) {
	if h == nil || h.Dead {
		return
	}
	h.Current = 0
	h.kill(evt)
}

func (h *Health) kill(evt CombatEvent) {
	h.Dead = true
	h.IFrames = 0
	if h.OnDeath != nil {
		evt.Type = EventDeath
		h.OnDeath(h, evt)
	}
}

// StartIFrames sets invulnerability frames.
func (h *Health) StartIFrames(frames int) {
	if h == nil || frames <= 0 || h.Dead {
		return
	}
	h.IFrames = frames
}

// Tick advances the i-frame timer by one frame.
func (h *Health) Tick() {
	if h == nil || h.IFrames <= 0 {
		return
	}
	h.IFrames--
	if h.IFrames < 0 {
		h.IFrames = 0
	}
}

// Ratio returns Current/Max in [0, 1], used for health bars.
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

// CurrentHP returns the current health value.
func (h *Health) CurrentHP() int {
	if h == nil {
		return 0
	}
	return h.Current
}

// MaxHP returns the maximum health value.
func (h *Health) MaxHP() int {
	if h == nil {
		return 0
	}
	return h.Max
}
