package show

import "sort"

// Segment is one structural interval [Start, End) of the track with the
// average energy of the beats inside it.
type Segment struct {
	Index     int
	Start     float64
	End       float64
	AvgEnergy float64
}

// buildSegments derives contiguous segments covering [0, duration) from
// raw analysis boundaries. A first boundary later than 0.5s gets a 0.0
// inserted ahead of it (earlier ones are snapped to 0.0); the same applies
// at the end with a 1.0s tolerance, so coverage is always exact.
func buildSegments(bounds []float64, duration float64) []Segment {
	var bs []float64
	for _, b := range bounds {
		if b > 0 && b < duration {
			bs = append(bs, b)
		}
	}
	sort.Float64s(bs)

	if len(bs) == 0 || bs[0] > 0.5 {
		bs = append([]float64{0.0}, bs...)
	} else {
		bs[0] = 0.0
	}
	if bs[len(bs)-1] < duration-1.0 {
		bs = append(bs, duration)
	} else {
		bs[len(bs)-1] = duration
	}

	segs := make([]Segment, 0, len(bs)-1)
	for i := 0; i+1 < len(bs); i++ {
		if bs[i+1] <= bs[i] {
			continue
		}
		segs = append(segs, Segment{
			Index:     len(segs),
			Start:     bs[i],
			End:       bs[i+1],
			AvgEnergy: defaultEnergy,
		})
	}
	if len(segs) == 0 {
		segs = []Segment{{Index: 0, Start: 0, End: duration, AvgEnergy: defaultEnergy}}
	}
	return segs
}

// fillSegmentEnergy computes each segment's average beat energy. Segments
// with no beats keep the default.
func fillSegmentEnergy(segs []Segment, beatTimes, energies []float64) {
	for i := range segs {
		var sum float64
		var n int
		for j, t := range beatTimes {
			if t >= segs[i].Start && t < segs[i].End && j < len(energies) {
				sum += energies[j]
				n++
			}
		}
		if n > 0 {
			segs[i].AvgEnergy = sum / float64(n)
		}
	}
}

// segmentIndexAt finds the segment containing time t.
func segmentIndexAt(segs []Segment, t float64) int {
	for i := range segs {
		if t >= segs[i].Start && t < segs[i].End {
			return i
		}
	}
	if t >= segs[len(segs)-1].End {
		return len(segs) - 1
	}
	return 0
}
