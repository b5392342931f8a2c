package show

import (
	"testing"

	"go-lightshow/fixture"
)

func testPalette(names ...string) *fixture.Palette {
	p := &fixture.Palette{}
	p.Colors = append(p.Colors, fixture.PaletteColor{Name: "off"})
	for i, n := range names {
		p.Colors = append(p.Colors, fixture.PaletteColor{
			Name: n,
			RGB:  fixture.RGB{uint8(i + 1), 0, 0},
		})
	}
	return p
}

func names(sel []fixture.PaletteColor) []string {
	out := make([]string, len(sel))
	for i, c := range sel {
		out[i] = c.Name
	}
	return out
}

func segsWithEnergy(energies ...float64) []Segment {
	segs := make([]Segment, len(energies))
	for i, e := range energies {
		segs[i] = Segment{Index: i, Start: float64(i) * 10, End: float64(i+1) * 10, AvgEnergy: e}
	}
	return segs
}

func TestAssignPalettesRotation(t *testing.T) {
	pal := testPalette("red", "orange", "magenta", "pink", "blue", "cyan", "teal", "purple")
	segs := segsWithEnergy(0.5, 0.5, 0.5)
	got := assignPalettes(segs, pal)

	// Neutral pool is the full rotation; offset advances 3 per segment.
	want := [][]string{
		{"red", "orange", "magenta", "pink"},
		{"pink", "blue", "cyan", "teal"},
		{"teal", "purple", "red", "orange"},
	}
	for i := range want {
		g := names(got[i])
		for j := range want[i] {
			if g[j] != want[i][j] {
				t.Errorf("segment %d color %d = %q, want %q", i, j, g[j], want[i][j])
			}
		}
	}
}

func TestAssignPalettesPools(t *testing.T) {
	pal := testPalette("red", "orange", "blue", "cyan", "green", "white")
	hot := assignPalettes(segsWithEnergy(0.9), pal)[0]
	for _, c := range hot {
		if c.Name != "red" && c.Name != "orange" {
			t.Errorf("hot segment picked %q", c.Name)
		}
	}

	cool := assignPalettes(segsWithEnergy(0.2), pal)[0]
	for _, c := range cool {
		if c.Name != "blue" && c.Name != "cyan" {
			t.Errorf("cool segment picked %q", c.Name)
		}
	}
}

func TestAssignPalettesSubsetFallback(t *testing.T) {
	// No hot color names in this vocabulary: fall back to the rotation.
	pal := testPalette("green", "white", "lime")
	got := assignPalettes(segsWithEnergy(0.9), pal)[0]
	if len(got) != 3 {
		t.Errorf("fallback selection has %d colors, want 3", len(got))
	}
}

func TestAssignPalettesAvoidsRepeat(t *testing.T) {
	// Five rotation colors, four of them hot. Segment 4 (hot) picks the
	// full hot subset; segment 5 (neutral, offset 15 mod 5 = 0) would
	// rotate onto the same set, so it re-shifts once.
	pal := testPalette("red", "orange", "magenta", "pink", "blue")
	segs := segsWithEnergy(0.5, 0.5, 0.5, 0.5, 0.9, 0.5)
	got := assignPalettes(segs, pal)

	if sameColorSet(got[4], got[5]) {
		t.Errorf("segments 4 and 5 share palette %v", names(got[5]))
	}
	found := false
	for _, c := range got[5] {
		if c.Name == "blue" {
			found = true
		}
	}
	if !found {
		t.Errorf("re-shifted selection %v should include blue", names(got[5]))
	}
}

func TestAssignPalettesOffOnlyVocabulary(t *testing.T) {
	pal := &fixture.Palette{Colors: []fixture.PaletteColor{{Name: "off"}}}
	got := assignPalettes(segsWithEnergy(0.5), pal)
	if len(got[0]) != 1 || got[0][0].Name != "off" {
		t.Errorf("off-only vocabulary selection = %v", names(got[0]))
	}
}
