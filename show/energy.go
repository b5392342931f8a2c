package show

import (
	"math"

	"go-lightshow/analysis"
)

// beatEnergies returns one energy value in [0,1] per beat. When the
// analysis carries per-beat energy it is used directly; otherwise energy
// is derived from onset density around each beat, normalized by the
// densest beat. With no beats or no onsets everything defaults to 0.5.
func beatEnergies(rec *analysis.Record) []float64 {
	n := len(rec.BeatTimes)
	if n == 0 {
		return nil
	}

	if len(rec.BeatEnergy) == n {
		out := make([]float64, n)
		for i, e := range rec.BeatEnergy {
			out[i] = clamp01(e)
		}
		return out
	}

	period := 60.0 / rec.BPM
	counts := make([]float64, n)
	maxCount := 0.0
	for i, bt := range rec.BeatTimes {
		for _, ot := range rec.OnsetTimes {
			if math.Abs(ot-bt) <= period {
				counts[i]++
			}
		}
		if counts[i] > maxCount {
			maxCount = counts[i]
		}
	}

	out := make([]float64, n)
	for i := range out {
		if maxCount == 0 {
			out[i] = defaultEnergy
		} else {
			out[i] = counts[i] / maxCount
		}
	}
	return out
}

// tierFor maps energy in [0,1] to an intensity tier 1-5. Boundary values
// classify upward (exactly 0.2 is tier 2).
func tierFor(energy float64) int {
	switch {
	case energy < 0.2:
		return 1
	case energy < 0.4:
		return 2
	case energy < 0.6:
		return 3
	case energy < 0.8:
		return 4
	default:
		return 5
	}
}

// Per-tier motor speeds and UV levels, indexed by tier.
var (
	tierMotor = [6]uint8{0, 0, 60, 130, 190, 245}
	tierUV    = [6]uint8{0, 0, 40, 100, 170, 230}
)

// Laser patterns for the mid tiers, round-robined every 2 beats.
var laserPatterns = map[int][][4]uint8{
	2: {
		{70, 0, 0, 0}, {0, 70, 0, 0}, {0, 0, 70, 0}, {0, 0, 0, 70},
	},
	3: {
		{140, 0, 140, 0}, {0, 140, 0, 140}, {140, 140, 0, 0}, {0, 0, 140, 140},
	},
	4: {
		{200, 200, 0, 0}, {0, 200, 200, 0}, {0, 0, 200, 200}, {200, 0, 0, 200},
	},
}

// laserVector picks the laser intensities for a tier at a given beat.
func laserVector(tier, beatIndex int) [4]uint8 {
	switch {
	case tier <= 1:
		return [4]uint8{}
	case tier >= 5:
		return [4]uint8{255, 255, 255, 255}
	}
	pats := laserPatterns[tier]
	return pats[(beatIndex/2)%len(pats)]
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
