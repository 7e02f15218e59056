package models

// SmartMode selects the arbitration behavior of the merge strategy.
type SmartMode string

const (
	// SmartModeAuto runs rules first and falls back to the LLM only
	// when the rules pass produced nothing.
	SmartModeAuto SmartMode = "auto"
	// SmartModeRules runs only the deterministic rules pass.
	SmartModeRules SmartMode = "rules"
	// SmartModeLLM runs only the LLM pass. A failed LLM call yields
	// an empty result here; it is never silently replaced by rules.
	SmartModeLLM SmartMode = "llm"
)

// Valid reports whether m is a known mode.
func (m SmartMode) Valid() bool {
	switch m {
	case SmartModeAuto, SmartModeRules, SmartModeLLM:
		return true
	default:
		return false
	}
}
