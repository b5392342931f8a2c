package show

import (
	"sort"

	"go-lightshow/fixture"
)

// Color subsets favored for hot and cool sections. Names missing from a
// profile's vocabulary are simply not considered.
var (
	hotColorNames  = []string{"red", "orange", "magenta", "pink", "yellow", "amber"}
	coolColorNames = []string{"blue", "cyan", "teal", "purple", "ice", "navy"}
)

const (
	paletteMaxColors  = 4
	paletteOffsetStep = 3
)

// assignPalettes gives every segment a contrastive color selection from
// the profile vocabulary: hot segments pull from warm colors, cool ones
// from cold colors, the rest from the full rotation. Consecutive segments
// rotating onto an identical selection get one re-shifted pick.
func assignPalettes(segs []Segment, pal *fixture.Palette) [][]fixture.PaletteColor {
	rotation := pal.Rotation()
	if len(rotation) == 0 {
		// Vocabulary is only "off": every segment stays dark.
		off := fixture.PaletteColor{Name: "off"}
		if rgb, ok := pal.Lookup("off"); ok {
			off.RGB = rgb
		}
		out := make([][]fixture.PaletteColor, len(segs))
		for i := range out {
			out[i] = []fixture.PaletteColor{off}
		}
		return out
	}

	out := make([][]fixture.PaletteColor, len(segs))
	var prev []fixture.PaletteColor
	for i, seg := range segs {
		pool := poolFor(seg.AvgEnergy, rotation)
		sel := pick(pool, paletteOffsetStep*i)
		if sameColorSet(sel, prev) && len(pool) > len(sel) {
			sel = pick(pool, paletteOffsetStep*i+len(sel))
		}
		out[i] = sel
		prev = sel
	}
	return out
}

// poolFor selects hot, cool, or full rotation pools by segment energy,
// falling back to the full rotation when a subset is empty in this
// profile's vocabulary.
func poolFor(avg float64, rotation []fixture.PaletteColor) []fixture.PaletteColor {
	var names []string
	switch {
	case avg > hotEnergy:
		names = hotColorNames
	case avg <= coolEnergy:
		names = coolColorNames
	default:
		return rotation
	}

	var pool []fixture.PaletteColor
	for _, c := range rotation {
		for _, n := range names {
			if c.Name == n {
				pool = append(pool, c)
				break
			}
		}
	}
	if len(pool) == 0 {
		return rotation
	}
	return pool
}

// pick takes up to 4 consecutive colors cyclically from the pool,
// starting at offset mod pool size.
func pick(pool []fixture.PaletteColor, offset int) []fixture.PaletteColor {
	n := len(pool)
	count := paletteMaxColors
	if count > n {
		count = n
	}
	start := offset % n
	sel := make([]fixture.PaletteColor, 0, count)
	for i := 0; i < count; i++ {
		sel = append(sel, pool[(start+i)%n])
	}
	return sel
}

// sameColorSet compares two selections as name sets, ignoring order.
func sameColorSet(a, b []fixture.PaletteColor) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	an := make([]string, len(a))
	bn := make([]string, len(b))
	for i := range a {
		an[i] = a[i].Name
		bn[i] = b[i].Name
	}
	sort.Strings(an)
	sort.Strings(bn)
	for i := range an {
		if an[i] != bn[i] {
			return false
		}
	}
	return true
}
