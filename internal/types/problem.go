package types

// Visibility tags whether a test's details may be surfaced to end users.
type Visibility string

const (
	VisibilityVisible Visibility = "visible"
	VisibilityHidden  Visibility = "hidden"
)

// TestCase is one input/expected pair belonging to a problem.
type TestCase struct {
	TestID      string         `json:"testId"`
	Input       []Value        `json:"input"`
	Expected    Value          `json:"expected"`
	Comparator  ComparatorSpec `json:"comparator"`
	Visibility  Visibility     `json:"visibility"`
	Weight      float64        `json:"weight"`
	Description string         `json:"description,omitempty"`
}

// LanguageAssets bundles the per-language harness and reference material
// a Problem carries for one supported language.
type LanguageAssets struct {
	HarnessCode string `json:"harnessCode"`
	StarterCode string `json:"starterCode,omitempty"`
	ReferenceCode string `json:"referenceCode,omitempty"`
}

// Problem is a judgable problem definition, immutable per revision.
type Problem struct {
	ProblemID     string                    `json:"problemId"`
	Tests         []TestCase                `json:"tests"`
	TimeLimitMs   int                       `json:"timeLimitMs"`
	MemoryLimitMb int                       `json:"memoryLimitMb"`
	InputSpec     []TypeSpec                `json:"inputSpec"`
	OutputSpec    TypeSpec                  `json:"outputSpec"`
	Languages     map[string]LanguageAssets `json:"languages"`
}

// DefaultTimeLimitMs and DefaultMemoryLimitMb are returned by
// EffectiveTimeLimitMs and EffectiveMemoryLimitMb when a Problem leaves the
// corresponding limit unset (zero or negative).
const (
	DefaultTimeLimitMs   = 2000
	DefaultMemoryLimitMb = 256
)

// EffectiveTimeLimitMs returns p.TimeLimitMs, or the default when unset.
func (p Problem) EffectiveTimeLimitMs() int {
	if p.TimeLimitMs > 0 {
		return p.TimeLimitMs
	}
	return DefaultTimeLimitMs
}

// EffectiveMemoryLimitMb returns p.MemoryLimitMb, or the default when unset.
func (p Problem) EffectiveMemoryLimitMb() int {
	if p.MemoryLimitMb > 0 {
		return p.MemoryLimitMb
	}
	return DefaultMemoryLimitMb
}

// Filter selects a subset of tests for a judge run.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterVisible Filter = "visible"
)

// SelectTests returns the ordered subset of p.Tests matching filter. The
// returned slice's order fixes the 0-based wire id used in stdin/stdout.
func (p Problem) SelectTests(filter Filter) []TestCase {
	if filter == FilterVisible {
		var out []TestCase
		for _, t := range p.Tests {
			if t.Visibility == VisibilityVisible {
				out = append(out, t)
			}
		}
		return out
	}
	return p.Tests
}
