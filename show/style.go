package show

import "fmt"

// Style selects how aggressively the show cycles colors.
type Style string

const (
	StyleCalm      Style = "calm"
	StyleModerate  Style = "moderate"
	StyleEnergetic Style = "energetic"
	StyleDramatic  Style = "dramatic"
)

// StyleParams are the per-style knobs.
type StyleParams struct {
	BeatsPerColor   int     // beats each color holds at tiers below 4
	FadeMS          int     // scene fade used by serializers
	EnergyThreshold float64 // onsets/sec considered high energy
}

var styleParams = map[Style]StyleParams{
	StyleCalm:      {BeatsPerColor: 4, FadeMS: 500, EnergyThreshold: 5.0},
	StyleModerate:  {BeatsPerColor: 2, FadeMS: 300, EnergyThreshold: 3.0},
	StyleEnergetic: {BeatsPerColor: 1, FadeMS: 150, EnergyThreshold: 2.0},
	StyleDramatic:  {BeatsPerColor: 2, FadeMS: 400, EnergyThreshold: 2.5},
}

// ParseStyle validates a style name from the CLI.
func ParseStyle(s string) (Style, error) {
	st := Style(s)
	if _, ok := styleParams[st]; !ok {
		return "", fmt.Errorf("unknown style %q (want calm, moderate, energetic, or dramatic)", s)
	}
	return st, nil
}

// Params returns the knobs for a style, defaulting to moderate.
func (s Style) Params() StyleParams {
	if p, ok := styleParams[s]; ok {
		return p
	}
	return styleParams[StyleModerate]
}

// Hand-tuned show constants. These encode a designer's taste; do not
// re-derive them.
const (
	hotEnergy  = 0.6  // segment avg energy above this uses the hot pool
	coolEnergy = 0.35 // at or below this uses the cool pool

	buildupWindowBeats = 8.0 // boundary lookahead for build-up detection
	buildupEnergyRatio = 1.3 // next segment must exceed current by this factor
	preDropBeats       = 1.5 // inside this window a build-up goes dark
	breatheInterval    = 32  // beats between breathing blackouts at tier 4+
	downShiftRatio     = 0.7 // next/prev energy ratio that triggers a down-transition
	downShiftBeats     = 2   // darkened beats at the start of a down segment

	defaultEnergy = 0.5 // used when a beat or segment has no energy data

	minBeatDurMS = 10   // beats shorter than this are double detections
	leadInMS     = 500  // opening blackout when there are no beats
	fadeOutMS    = 2000 // closing blackout fade

	clusterWindowSec = 0.5 // onset cluster window
	clusterLookahead = 10  // onsets inspected past the candidate
	clusterMinOnsets = 4   // hits inside the window to call it a cluster
	strobeEnergyMin  = 0.5 // segment energy floor for strobe hits
)
