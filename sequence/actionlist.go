package sequence

// Action is one step of an ActionList.
type Action func()

// Step is an action that runs Delay frames after the previous step ran.
type Step struct {
	Delay int
	Label string
	Do    Action
}

// ActionList runs timed steps in order. A step with Delay 0 runs in the same
// frame as the step before it, so [(0,a),(5,b),(0,c)] runs a on Start and b
// then c on the fifth Tick.
type ActionList struct {
	steps   []Step
	elapsed int
	started bool
	ran     []string
}

// NewActionList creates a list from steps.
func NewActionList(steps ...Step) *ActionList {
	return &ActionList{steps: append([]Step(nil), steps...)}
}

// Then appends a step and returns the list for chaining.
func (l *ActionList) Then(delay int, label string, do Action) *ActionList {
	if l == nil {
		return nil
	}
	l.steps = append(l.steps, Step{Delay: delay, Label: label, Do: do})
	return l
}

// Start runs every leading zero-delay step. Calling it again does nothing.
func (l *ActionList) Start() {
	if l == nil || l.started {
		return
	}
	l.started = true
	l.drain()
}

// Tick advances one frame and runs every step that has become due.
func (l *ActionList) Tick() {
	if l == nil {
		return
	}
	if !l.started {
		l.Start()
	}
	if len(l.steps) == 0 {
		return
	}
	l.elapsed++
	l.drain()
}

func (l *ActionList) drain() {
	for len(l.steps) > 0 && l.elapsed >= l.steps[0].Delay {
		s := l.steps[0]
		l.steps = l.steps[1:]
		l.elapsed = 0
		l.ran = append(l.ran, s.Label)
		if s.Do != nil {
			s.Do()
		}
	}
}

// Started reports whether Start has run.
func (l *ActionList) Started() bool {
	return l != nil && l.started
}

// Done reports whether every step has run.
func (l *ActionList) Done() bool {
	return l == nil || (l.started && len(l.steps) == 0)
}

// Remaining returns the number of steps still queued.
func (l *ActionList) Remaining() int {
	if l == nil {
		return 0
	}
	return len(l.steps)
}

// Ran returns the labels of executed steps in order.
func (l *ActionList) Ran() []string {
	if l == nil {
		return nil
	}
	return append([]string(nil), l.ran...)
}
