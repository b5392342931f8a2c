package show

import "math"

// blackoutKind identifies which rule forced a dark beat.
type blackoutKind int

const (
	blackoutNone blackoutKind = iota
	blackoutPreDrop
	blackoutBreathe
	blackoutDown
)

func (k blackoutKind) String() string {
	switch k {
	case blackoutPreDrop:
		return "pre-drop"
	case blackoutBreathe:
		return "breathe"
	case blackoutDown:
		return "down-transition"
	}
	return "none"
}

// decision is the outcome of the transition rules for one beat: either a
// forced blackout, or the (possibly build-up ramped) tier to render.
type decision struct {
	blackout blackoutKind
	tier     int
}

// decide evaluates the blackout rules for the beat at beatTime. The rules
// are mutually exclusive and priority ordered: pre-drop accent beats
// breathing beats down-transition; only the first match fires.
//
// counter is the per-segment beat counter before this beat advances it.
func decide(segs []Segment, segIdx int, beatTime float64, counter, tier int, bpm float64) decision {
	cur := segs[segIdx]

	buildingUp := false
	beatsToNext := math.Inf(1)
	if segIdx+1 < len(segs) {
		beatsToNext = (cur.End - beatTime) * bpm / 60.0
		buildingUp = beatsToNext <= buildupWindowBeats &&
			segs[segIdx+1].AvgEnergy > buildupEnergyRatio*cur.AvgEnergy
	}

	if buildingUp {
		if beatsToNext <= preDropBeats {
			return decision{blackout: blackoutPreDrop}
		}
		// Ramp toward the drop: 0 at the window edge, approaching 1
		// at the boundary.
		r := 1.0 - beatsToNext/buildupWindowBeats
		tier += int(math.Round(3 * r))
		if tier > 5 {
			tier = 5
		}
	}

	if tier >= 4 && counter > 0 && counter%breatheInterval == 0 {
		return decision{blackout: blackoutBreathe}
	}

	if segIdx > 0 && counter < downShiftBeats &&
		cur.AvgEnergy < downShiftRatio*segs[segIdx-1].AvgEnergy {
		return decision{blackout: blackoutDown}
	}

	return decision{tier: tier}
}
