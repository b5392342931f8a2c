package midishow

import (
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"

	"go-lightshow/fixture"
	"go-lightshow/show"
)

func testTimeline() *show.Timeline {
	return &show.Timeline{
		BPM:        120,
		DurationMS: 4000,
		Style:      show.StyleModerate,
		Scenes: []*show.Scene{
			{ID: 0, Name: "Blackout", ColorName: "off"},
			{ID: 1, Name: "Red", ColorName: "red",
				Values: fixture.ChannelValues{RGB: fixture.RGB{255, 0, 0}}},
			{ID: 2, Name: "White st", ColorName: "white",
				Values: fixture.ChannelValues{Strobe: 150, White: 200}},
		},
		Tracks: []show.Track{
			{
				Name:         show.TrackMainLights,
				BoundSceneID: 0,
				Placements: []show.Placement{
					{SceneID: 0, StartMS: 0, DurationMS: 500},
					{SceneID: 1, StartMS: 500, DurationMS: 500},
					{SceneID: 2, StartMS: 1000, DurationMS: 500},
				},
			},
			{Name: show.TrackStrobeHits, BoundSceneID: 0},
		},
	}
}

func TestVelocityFor(t *testing.T) {
	tl := testTimeline()
	cases := []struct {
		scene *show.Scene
		want  uint8
	}{
		{nil, 64},
		{tl.Scenes[0], 1},
		{tl.Scenes[1], 100},
		{tl.Scenes[2], 127},
	}
	for _, c := range cases {
		if got := velocityFor(c.scene); got != c.want {
			t.Errorf("velocityFor(%v) = %d, want %d", c.scene, got, c.want)
		}
	}
}

func TestTrackEvents(t *testing.T) {
	tl := testTimeline()
	ticks := smf.MetricTicks(ticksPerQuarter)
	tr := trackEvents(ticks, tl, tl.Tracks[0], 0)

	// 3 placements = 6 note events, plus the name meta and end-of-track.
	if len(tr) != 8 {
		t.Fatalf("got %d events, want 8", len(tr))
	}

	// At 120 bpm a 500ms placement spans exactly one quarter note.
	if delta := tr[2].Delta; delta != ticksPerQuarter {
		t.Errorf("first note-off delta = %d, want %d", delta, ticksPerQuarter)
	}
}

func TestTrackEventsEmpty(t *testing.T) {
	tl := testTimeline()
	ticks := smf.MetricTicks(ticksPerQuarter)
	tr := trackEvents(ticks, tl, tl.Tracks[1], 1)
	// Name meta and end-of-track only.
	if len(tr) != 2 {
		t.Fatalf("got %d events, want 2", len(tr))
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showfile.mid")
	if err := Write(path, testTimeline()); err != nil {
		t.Fatal(err)
	}

	back, err := smf.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Meta track plus one track per timeline track.
	if got := len(back.Tracks); got != 3 {
		t.Fatalf("got %d smf tracks, want 3", got)
	}
}
