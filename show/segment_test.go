package show

import "testing"

func checkCoverage(t *testing.T, segs []Segment, duration float64) {
	t.Helper()
	if len(segs) == 0 {
		t.Fatal("no segments")
	}
	if segs[0].Start != 0 {
		t.Errorf("first segment starts at %g, want 0", segs[0].Start)
	}
	if segs[len(segs)-1].End != duration {
		t.Errorf("last segment ends at %g, want %g", segs[len(segs)-1].End, duration)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].Start != segs[i-1].End {
			t.Errorf("gap between segment %d and %d: %g != %g",
				i-1, i, segs[i-1].End, segs[i].Start)
		}
	}
}

func TestBuildSegmentsEmpty(t *testing.T) {
	segs := buildSegments(nil, 30)
	checkCoverage(t, segs, 30)
	if len(segs) != 1 {
		t.Errorf("got %d segments, want 1", len(segs))
	}
}

func TestBuildSegmentsForcesEnds(t *testing.T) {
	// First boundary past 0.5s gets a 0.0 inserted; last boundary more
	// than 1s short of the end gets the duration appended.
	segs := buildSegments([]float64{10, 20}, 60)
	checkCoverage(t, segs, 60)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	if segs[1].Start != 10 || segs[1].End != 20 {
		t.Errorf("middle segment = [%g,%g), want [10,20)", segs[1].Start, segs[1].End)
	}
}

func TestBuildSegmentsSnapsNearEnds(t *testing.T) {
	// Boundaries close to the track edges are snapped, not duplicated.
	segs := buildSegments([]float64{0.3, 30, 59.5}, 60)
	checkCoverage(t, segs, 60)
	if len(segs) != 2 {
		t.Errorf("got %d segments, want 2", len(segs))
	}
}

func TestBuildSegmentsIgnoresOutOfRange(t *testing.T) {
	segs := buildSegments([]float64{-5, 0, 30, 60, 99}, 60)
	checkCoverage(t, segs, 60)
	if len(segs) != 2 {
		t.Errorf("got %d segments, want 2", len(segs))
	}
}

func TestFillSegmentEnergy(t *testing.T) {
	segs := buildSegments([]float64{10}, 20)
	beats := []float64{1, 2, 15}
	energies := []float64{0.2, 0.4, 0.9}
	fillSegmentEnergy(segs, beats, energies)

	if got := segs[0].AvgEnergy; got < 0.29 || got > 0.31 {
		t.Errorf("segment 0 avg = %g, want 0.3", got)
	}
	if got := segs[1].AvgEnergy; got != 0.9 {
		t.Errorf("segment 1 avg = %g, want 0.9", got)
	}
}

func TestFillSegmentEnergyDefaultsWithoutBeats(t *testing.T) {
	segs := buildSegments([]float64{10}, 20)
	fillSegmentEnergy(segs, nil, nil)
	for i, s := range segs {
		if s.AvgEnergy != defaultEnergy {
			t.Errorf("segment %d avg = %g, want default", i, s.AvgEnergy)
		}
	}
}

func TestSegmentIndexAt(t *testing.T) {
	segs := buildSegments([]float64{10, 20}, 30)
	cases := []struct {
		t    float64
		want int
	}{
		{0, 0}, {9.99, 0}, {10, 1}, {19.99, 1}, {20, 2}, {29.9, 2}, {30, 2},
	}
	for _, c := range cases {
		if got := segmentIndexAt(segs, c.t); got != c.want {
			t.Errorf("segmentIndexAt(%g) = %d, want %d", c.t, got, c.want)
		}
	}
}
