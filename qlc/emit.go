package qlc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-lightshow/fixture"
	"go-lightshow/show"
)

const xmlProlog = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!DOCTYPE Workspace>\n"

// WriteFile serializes a timeline to a .qxw workspace on disk.
func WriteFile(path string, tl *show.Timeline, prof *fixture.Profile, audioPath string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, tl, prof, audioPath)
}

// Write serializes the full workspace: fixtures, one scene function per
// catalog scene, the audio function, the show with its tracks, and a
// minimal virtual console (GO, master, blackout).
func Write(w io.Writer, tl *show.Timeline, prof *fixture.Profile, audioPath string) error {
	if audioPath == "" {
		audioPath = "audio/song.wav"
	}

	ws := workspace{
		CurrentWindow: "VirtualConsole",
		Creator: creator{
			Name:    "Q Light Controller Plus",
			Version: "4.14.3",
			Author:  "go-lightshow",
		},
	}

	ws.Engine.InputOutputMap = ioMap{Universe: universe{Name: "Universe 1", ID: 0}}

	for i, f := range prof.Fixtures {
		ws.Engine.Fixtures = append(ws.Engine.Fixtures, xmlFixture{
			Manufacturer: f.Manufacturer,
			Model:        f.Model,
			Mode:         f.Mode,
			Universe:     f.Universe - 1,
			Address:      f.Address - 1,
			Channels:     f.Channels,
			Name:         f.Name,
			ID:           i,
		})
	}

	// Scene functions carry the scene's catalog id so placement
	// references stay valid without a remap.
	fadeMS := tl.Style.Params().FadeMS
	var blackoutID = -1
	maxID := 0
	for _, s := range tl.Scenes {
		if s.ID > maxID {
			maxID = s.ID
		}
		fade := fadeMS
		if s.ColorName == "off" {
			fade = 0
			blackoutID = s.ID
		}
		fn := function{
			ID:    s.ID,
			Type:  "Scene",
			Name:  s.Name,
			Speed: &speed{FadeIn: fade, FadeOut: fade, Duration: 0},
		}
		for fi, f := range prof.Fixtures {
			fn.FixtureVals = append(fn.FixtureVals, fixtureVal{
				ID:    fi,
				Value: fixtureValString(f, s.Values),
			})
		}
		ws.Engine.Functions = append(ws.Engine.Functions, fn)
	}

	audioID := maxID + 1
	showID := maxID + 2

	ws.Engine.Functions = append(ws.Engine.Functions, function{
		ID:     audioID,
		Type:   "Audio",
		Name:   filepath.Base(audioPath),
		Source: audioPath,
	})

	showFn := function{
		ID:           showID,
		Type:         "Show",
		Name:         "Generated Light Show",
		TimeDivision: &timeDivision{Type: "BPM_4_4", BPM: int(tl.BPM)},
	}
	showFn.Tracks = append(showFn.Tracks, xmlTrack{
		ID:      0,
		Name:    "Audio",
		SceneID: noSceneID,
		ShowFunctions: []showFunction{
			{ID: audioID, StartTime: 0, Duration: tl.DurationMS},
		},
	})
	for i, tr := range tl.Tracks {
		xt := xmlTrack{
			ID:      i + 1,
			Name:    tr.Name,
			SceneID: strconv.Itoa(tr.BoundSceneID),
		}
		for _, p := range tr.Placements {
			xt.ShowFunctions = append(xt.ShowFunctions, showFunction{
				ID:        p.SceneID,
				StartTime: p.StartMS,
				Duration:  p.DurationMS,
				Color:     p.ColorHex,
			})
		}
		showFn.Tracks = append(showFn.Tracks, xt)
	}
	ws.Engine.Functions = append(ws.Engine.Functions, showFn)

	ws.VirtualConsole = buildConsole(prof, showID, blackoutID)

	data, err := xml.MarshalIndent(ws, "", " ")
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}
	if _, err := io.WriteString(w, xmlProlog); err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// fixtureValString builds QLC+'s "offset,value,..." channel list for one
// fixture under one scene.
func fixtureValString(f *fixture.Fixture, v fixture.ChannelValues) string {
	vals := f.Values(v)
	parts := make([]string, 0, len(vals))
	for _, cv := range vals {
		parts = append(parts, fmt.Sprintf("%d,%d", cv.Offset, cv.Value))
	}
	return strings.Join(parts, ",")
}

func buildConsole(prof *fixture.Profile, showID, blackoutID int) vconsole {
	fr := frame{
		Appearance:       defaultAppearance(),
		WindowState:      windowState{Visible: "False", Width: 1920, Height: 1080},
		AllowChildren:    "True",
		AllowResize:      "True",
		ShowHeader:       "False",
		ShowEnableButton: "True",
		Collapsed:        "False",
		Disabled:         "False",
	}

	goApp := defaultAppearance()
	goApp.ForegroundColor = "4294967295"
	goApp.BackgroundColor = "4278233600"
	fr.Buttons = append(fr.Buttons, button{
		Caption:     "GO",
		Function:    buttonFunc{ID: showID},
		Action:      "Toggle",
		Intensity:   intensity{Adjust: "False", Value: "100"},
		WindowState: windowState{Visible: "False", X: 10, Y: 10, Width: 150, Height: 150},
		Appearance:  goApp,
	})

	if blackoutID >= 0 {
		boApp := defaultAppearance()
		boApp.ForegroundColor = "4294967295"
		boApp.BackgroundColor = "4278190080"
		fr.Buttons = append(fr.Buttons, button{
			Caption:     "BLACKOUT",
			Function:    buttonFunc{ID: blackoutID},
			Action:      "Toggle",
			Intensity:   intensity{Adjust: "False", Value: "100"},
			WindowState: windowState{Visible: "False", X: 10, Y: 180, Width: 150, Height: 80},
			Appearance:  boApp,
		})
	}

	// Master slider in level mode over every patched channel.
	lvl := level{LowLimit: 0, HighLimit: 255, Value: 255}
	for fi, f := range prof.Fixtures {
		for ch := 0; ch < f.Channels; ch++ {
			lvl.Channels = append(lvl.Channels, levelChannel{
				Fixture: fi,
				Channel: strconv.Itoa(ch),
			})
		}
	}
	fr.Slider = slider{
		Caption:            "Master",
		WidgetStyle:        "Slider",
		InvertedAppearance: "false",
		WindowState:        windowState{Visible: "False", X: 200, Y: 10, Width: 60, Height: 200},
		Appearance:         defaultAppearance(),
		SliderMode:         sliderMode{ValueDisplayStyle: "Percentage", Monitor: "false", Mode: "Level"},
		Level:              lvl,
	}

	return vconsole{
		Frame: fr,
		Properties: vcProps{
			Size: vcSize{Width: 1920, Height: 1080},
			GrandMaster: grandMaster{
				ChannelMode: "Intensity",
				ValueMode:   "Reduce",
				SliderMode:  "Normal",
			},
		},
	}
}
