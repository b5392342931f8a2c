package qlc

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"go-lightshow/fixture"
	"go-lightshow/show"
)

func testInputs() (*show.Timeline, *fixture.Profile) {
	prof := &fixture.Profile{
		Fixtures: []*fixture.Fixture{{
			Name:         "wash",
			Manufacturer: "Generic",
			Model:        "RGB Par",
			Mode:         "3ch",
			Universe:     1,
			Address:      1,
			Channels:     3,
			ChannelMap:   map[string]int{"red": 0, "green": 1, "blue": 2},
		}},
		Palette: fixture.Palette{Colors: []fixture.PaletteColor{
			{Name: "off"},
			{Name: "red", RGB: fixture.RGB{255, 0, 0}},
		}},
	}
	prof.Fixtures[0].ResolveRoles()

	tl := &show.Timeline{
		BPM:        120,
		DurationMS: 4000,
		Style:      show.StyleModerate,
		Scenes: []*show.Scene{
			{ID: 0, Name: "Blackout", ColorName: "off"},
			{ID: 1, Name: "Red", ColorName: "red",
				Values: fixture.ChannelValues{RGB: fixture.RGB{255, 0, 0}}},
		},
		Tracks: []show.Track{
			{
				Name:         show.TrackMainLights,
				BoundSceneID: 0,
				Placements: []show.Placement{
					{SceneID: 0, StartMS: 0, DurationMS: 1000, ColorHex: "#000000"},
					{SceneID: 1, StartMS: 1000, DurationMS: 1000, ColorHex: "#ff0000"},
				},
			},
			{Name: show.TrackStrobeHits, BoundSceneID: 0},
		},
	}
	return tl, prof
}

func emit(t *testing.T) (string, workspace) {
	t.Helper()
	tl, prof := testInputs()
	var buf bytes.Buffer
	if err := Write(&buf, tl, prof, "audio/song.wav"); err != nil {
		t.Fatal(err)
	}
	var ws workspace
	if err := xml.Unmarshal(buf.Bytes(), &ws); err != nil {
		t.Fatalf("emitted workspace does not parse: %v", err)
	}
	return buf.String(), ws
}

func TestWriteProlog(t *testing.T) {
	out, _ := emit(t)
	if !strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!DOCTYPE Workspace>\n") {
		t.Errorf("prolog missing:\n%s", out[:80])
	}
}

func TestWriteFixtureIndexing(t *testing.T) {
	_, ws := emit(t)
	if len(ws.Engine.Fixtures) != 1 {
		t.Fatalf("got %d fixtures", len(ws.Engine.Fixtures))
	}
	f := ws.Engine.Fixtures[0]
	// Profiles are 1-indexed; the workspace is 0-indexed.
	if f.Universe != 0 || f.Address != 0 {
		t.Errorf("universe/address = %d/%d, want 0/0", f.Universe, f.Address)
	}
	if f.Channels != 3 || f.Name != "wash" {
		t.Errorf("fixture = %+v", f)
	}
}

func TestWriteSceneFunctions(t *testing.T) {
	_, ws := emit(t)
	fns := map[int]function{}
	for _, fn := range ws.Engine.Functions {
		fns[fn.ID] = fn
	}
	// 2 scenes + audio + show.
	if len(fns) != 4 {
		t.Fatalf("got %d functions, want 4", len(fns))
	}

	blackout := fns[0]
	if blackout.Type != "Scene" || blackout.Name != "Blackout" {
		t.Errorf("blackout function = %+v", blackout)
	}
	if blackout.Speed == nil || blackout.Speed.FadeIn != 0 {
		t.Errorf("blackout must not fade, got %+v", blackout.Speed)
	}

	red := fns[1]
	if red.Speed == nil || red.Speed.FadeIn != 300 || red.Speed.FadeOut != 300 {
		t.Errorf("moderate style fade = %+v, want 300", red.Speed)
	}
	if len(red.FixtureVals) != 1 || red.FixtureVals[0].Value != "0,255,1,0,2,0" {
		t.Errorf("red channel values = %+v", red.FixtureVals)
	}
}

func TestWriteShowAndAudio(t *testing.T) {
	_, ws := emit(t)

	audio := ws.Engine.Functions[2]
	if audio.Type != "Audio" || audio.Source != "audio/song.wav" || audio.ID != 2 {
		t.Errorf("audio function = %+v", audio)
	}

	showFn := ws.Engine.Functions[3]
	if showFn.Type != "Show" || showFn.ID != 3 {
		t.Fatalf("show function = %+v", showFn)
	}
	if showFn.TimeDivision == nil || showFn.TimeDivision.BPM != 120 || showFn.TimeDivision.Type != "BPM_4_4" {
		t.Errorf("time division = %+v", showFn.TimeDivision)
	}
	if len(showFn.Tracks) != 3 {
		t.Fatalf("got %d tracks, want audio + 2", len(showFn.Tracks))
	}

	at := showFn.Tracks[0]
	if at.SceneID != noSceneID || len(at.ShowFunctions) != 1 || at.ShowFunctions[0].Duration != 4000 {
		t.Errorf("audio track = %+v", at)
	}

	mt := showFn.Tracks[1]
	if mt.Name != show.TrackMainLights || mt.SceneID != "0" {
		t.Errorf("main track = %+v", mt)
	}
	if len(mt.ShowFunctions) != 2 {
		t.Fatalf("main track has %d placements", len(mt.ShowFunctions))
	}
	sf := mt.ShowFunctions[1]
	if sf.ID != 1 || sf.StartTime != 1000 || sf.Duration != 1000 || sf.Color != "#ff0000" {
		t.Errorf("placement = %+v", sf)
	}
}

func TestWriteVirtualConsole(t *testing.T) {
	_, ws := emit(t)
	btns := ws.VirtualConsole.Frame.Buttons
	if len(btns) != 2 {
		t.Fatalf("got %d buttons, want GO and BLACKOUT", len(btns))
	}
	if btns[0].Caption != "GO" || btns[0].Function.ID != 3 {
		t.Errorf("GO button = %+v", btns[0])
	}
	if btns[1].Caption != "BLACKOUT" || btns[1].Function.ID != 0 {
		t.Errorf("BLACKOUT button = %+v", btns[1])
	}

	lvl := ws.VirtualConsole.Frame.Slider.Level
	if len(lvl.Channels) != 3 {
		t.Errorf("master slider covers %d channels, want 3", len(lvl.Channels))
	}
}

func TestWriteDefaultAudioPath(t *testing.T) {
	tl, prof := testInputs()
	var buf bytes.Buffer
	if err := Write(&buf, tl, prof, ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "audio/song.wav") {
		t.Error("empty audio path not defaulted")
	}
}
