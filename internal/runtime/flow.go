package runtime

import (
	"errors"
	"fmt"
	"strings"
)

// Step is one stage of a pydockerize invocation. Steps chain in the
// order given on the command line.
type Step string

const (
	StepGenerate Step = "generate"
	StepBuild    Step = "build"
	StepImages   Step = "images"
	StepRun      Step = "run"
)

// ErrUnknownStep is returned by ParseSteps for names that are not steps.
var ErrUnknownStep = errors.New("unknown step")

// Steps lists every step in its natural pipeline order.
var Steps = []Step{StepGenerate, StepBuild, StepImages, StepRun}

// ParseSteps validates step names. Repeats are kept.
func ParseSteps(names ...string) ([]Step, error) {
	out := make([]Step, 0, len(names))
	for _, n := range names {
		s := Step(strings.ToLower(strings.TrimSpace(n)))
		if !s.valid() {
			return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownStep, n, stepNames())
		}
		out = append(out, s)
	}
	return out, nil
}

// UsesEngine reports whether the step invokes the container engine.
func (s Step) UsesEngine() bool {
	return s == StepBuild || s == StepImages || s == StepRun
}

func (s Step) valid() bool {
	for _, k := range Steps {
		if s == k {
			return true
		}
	}
	return false
}

func stepNames() string {
	names := make([]string, len(Steps))
	for i, s := range Steps {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
