package component

// ClipEvent is a named cue attached to one frame of an animation.
type ClipEvent struct {
	Name    string
	Payload string
}

// ClipEventHandler receives frame events.
type ClipEventHandler func(c *Clip, evt ClipEvent)

// ClipEventEmitter dispatches clip frame events to handlers.
type ClipEventEmitter struct {
	Handlers []ClipEventHandler
}

// Emit sends a frame event to all handlers.
func (e *ClipEventEmitter) Emit(c *Clip, evt ClipEvent) {
	if e == nil {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(c, evt)
		}
	}
}

// ClipEventMap stores events per animation key ("kind/anim" or bare "anim",
// the former wins), then per frame.
type ClipEventMap map[string]map[int][]ClipEvent

// Add attaches evt to frame of the animation key.
func (m ClipEventMap) Add(key string, frame int, evt ClipEvent) {
	if m == nil || frame < 0 {
		return
	}
	if m[key] == nil {
		m[key] = make(map[int][]ClipEvent)
	}
	m[key][frame] = append(m[key][frame], evt)
}

func (m ClipEventMap) lookup(kind, anim string) map[int][]ClipEvent {
	if m == nil {
		return nil
	}
	if frames, ok := m[kind+"/"+anim]; ok {
		return frames
	}
	return m[anim]
}

// emitFrame raises the events of the clip's current frame.
func (c *Clip) emitFrame() {
	if c.source == nil || c.source.Emitter == nil {
		return
	}
	for _, evt := range c.events[c.Frame] {
		c.source.Emitter.Emit(c, evt)
	}
}
