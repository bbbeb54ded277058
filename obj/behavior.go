package obj

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const (
	BehaviorGuard  = "guard"
	BehaviorIdle   = "idle"
	BehaviorPatrol = "patrol"
)

var idleBehaviors = []string{BehaviorGuard, BehaviorIdle, BehaviorPatrol}

// BehaviorContext is the input to an idle behavior choice.
type BehaviorContext struct {
	Team    string
	Current string
	// Roll is a uniform number in [0, 1) drawn from the simulation RNG.
	Roll float64
}

// BehaviorPicker chooses the next idle behavior.
type BehaviorPicker interface {
	Pick(ctx BehaviorContext) string
}

// RandomPicker picks uniformly from guard, idle and patrol using the roll.
type RandomPicker struct{}

func (p RandomPicker) Pick(ctx BehaviorContext) string {
	idx := int(ctx.Roll * float64(len(idleBehaviors)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(idleBehaviors) {
		idx = len(idleBehaviors) - 1
	}
	return idleBehaviors[idx]
}

// ScriptPicker runs a tengo script to choose behaviors. The script reads the
// globals team, current and roll and assigns behavior.
type ScriptPicker struct {
	compiled *tengo.Compiled
	fallback BehaviorPicker
	logger   *log.Logger
	failed   bool
}

// NewScriptPicker compiles src. Pick falls back to fallback whenever the
// script errors or returns an unknown behavior.
func NewScriptPicker(src []byte, fallback BehaviorPicker, logger *log.Logger) (*ScriptPicker, error) {
	if logger == nil {
		logger = log.Default()
	}
	if fallback == nil {
		fallback = RandomPicker{}
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	for name, v := range map[string]any{"team": "", "current": "", "roll": 0.0, "behavior": ""} {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("behavior: add %s: %w", name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("behavior: compile: %w", err)
	}
	return &ScriptPicker{compiled: compiled, fallback: fallback, logger: logger}, nil
}

func (p *ScriptPicker) Pick(ctx BehaviorContext) string {
	if p == nil || p.compiled == nil {
		return RandomPicker{}.Pick(ctx)
	}
	choice, err := p.run(ctx)
	if err != nil {
		if !p.failed {
			p.failed = true
			p.logger.Printf("behavior: script error: %v, using fallback", err)
		}
		return p.fallback.Pick(ctx)
	}
	return choice
}

func (p *ScriptPicker) run(ctx BehaviorContext) (string, error) {
	if err := p.compiled.Set("team", ctx.Team); err != nil {
		return "", fmt.Errorf("set team: %w", err)
	}
	if err := p.compiled.Set("current", ctx.Current); err != nil {
		return "", fmt.Errorf("set current: %w", err)
	}
	if err := p.compiled.Set("roll", ctx.Roll); err != nil {
		return "", fmt.Errorf("set roll: %w", err)
	}
	if err := p.compiled.Set("behavior", ""); err != nil {
		return "", fmt.Errorf("set behavior: %w", err)
	}
	if err := p.compiled.Run(); err != nil {
		return "", err
	}
	choice := strings.TrimSpace(p.compiled.Get("behavior").String())
	for _, b := range idleBehaviors {
		if b == choice {
			return choice, nil
		}
	}
	return "", fmt.Errorf("unknown behavior %q", choice)
}
