package show

import "testing"

// buildup scenario: 120 bpm, boundary at 20s, next segment much hotter.
func buildupSegs() []Segment {
	return []Segment{
		{Index: 0, Start: 0, End: 20, AvgEnergy: 0.4},
		{Index: 1, Start: 20, End: 40, AvgEnergy: 0.9},
	}
}

func TestDecidePreDropAccent(t *testing.T) {
	// 0.5s before the boundary = 1 beat out at 120 bpm.
	d := decide(buildupSegs(), 0, 19.5, 10, 3, 120)
	if d.blackout != blackoutPreDrop {
		t.Errorf("blackout = %v, want pre-drop", d.blackout)
	}
}

func TestDecideBuildupRamp(t *testing.T) {
	// 2s = 4 beats out: ramp r = 0.5, tier raised by round(1.5) = 2.
	d := decide(buildupSegs(), 0, 18.0, 10, 2, 120)
	if d.blackout != blackoutNone {
		t.Fatalf("unexpected blackout %v", d.blackout)
	}
	if d.tier != 4 {
		t.Errorf("ramped tier = %d, want 4", d.tier)
	}

	// Ramp caps at tier 5.
	d = decide(buildupSegs(), 0, 17.0, 10, 4, 120)
	if d.tier != 5 {
		t.Errorf("capped tier = %d, want 5", d.tier)
	}
}

func TestDecideNoBuildupOutsideWindow(t *testing.T) {
	// 8s = 16 beats out: too far to build.
	d := decide(buildupSegs(), 0, 12.0, 10, 3, 120)
	if d.blackout != blackoutNone || d.tier != 3 {
		t.Errorf("decision = %+v, want plain tier 3", d)
	}
}

func TestDecideBreathingBlackout(t *testing.T) {
	segs := []Segment{{Index: 0, Start: 0, End: 60, AvgEnergy: 0.9}}
	d := decide(segs, 0, 30, breatheInterval, 4, 120)
	if d.blackout != blackoutBreathe {
		t.Errorf("blackout = %v, want breathe", d.blackout)
	}

	// Counter 0 is not a positive multiple.
	d = decide(segs, 0, 30, 0, 4, 120)
	if d.blackout != blackoutNone {
		t.Errorf("counter 0 forced %v", d.blackout)
	}

	// Below tier 4 no breathing happens.
	d = decide(segs, 0, 30, breatheInterval, 3, 120)
	if d.blackout != blackoutNone {
		t.Errorf("tier 3 forced %v", d.blackout)
	}
}

func TestDecideDownTransition(t *testing.T) {
	segs := []Segment{
		{Index: 0, Start: 0, End: 20, AvgEnergy: 0.9},
		{Index: 1, Start: 20, End: 40, AvgEnergy: 0.2},
	}
	for counter := 0; counter < downShiftBeats; counter++ {
		d := decide(segs, 1, 20.5+float64(counter)*0.5, counter, 1, 120)
		if d.blackout != blackoutDown {
			t.Errorf("counter %d: blackout = %v, want down-transition", counter, d.blackout)
		}
	}
	d := decide(segs, 1, 21.5, downShiftBeats, 1, 120)
	if d.blackout != blackoutNone {
		t.Errorf("beat %d still dark: %v", downShiftBeats, d.blackout)
	}
}

func TestDecidePriorityOrder(t *testing.T) {
	// A beat that qualifies for pre-drop AND breathing must pre-drop.
	segs := buildupSegs()
	d := decide(segs, 0, 19.5, breatheInterval, 5, 120)
	if d.blackout != blackoutPreDrop {
		t.Errorf("blackout = %v, want pre-drop to win", d.blackout)
	}

	// Breathing still fires in a segment colder than its predecessor.
	segs = []Segment{
		{Index: 0, Start: 0, End: 20, AvgEnergy: 0.9},
		{Index: 1, Start: 20, End: 40, AvgEnergy: 0.5},
	}
	d = decide(segs, 1, 21.0, breatheInterval, 4, 120)
	if d.blackout != blackoutBreathe {
		t.Errorf("blackout = %v, want breathe to beat down-transition", d.blackout)
	}
}
