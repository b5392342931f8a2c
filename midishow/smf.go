// Package midishow exports a generated timeline as a Standard MIDI File
// for rigs that trigger lighting cues over MIDI instead of loading a
// QLC+ workspace.
package midishow

import (
	"fmt"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"go-lightshow/show"
)

const ticksPerQuarter = 960

// event is one absolute-time MIDI message before delta conversion.
type event struct {
	tick uint32
	msg  midi.Message
	off  bool // note-offs sort before note-ons at the same tick
}

// Write exports the timeline as a type-1 SMF: one MIDI track per show
// track, scene ids as note numbers (mod 128), accents as velocity.
func Write(path string, tl *show.Timeline) error {
	s := smf.New()
	ticks := smf.MetricTicks(ticksPerQuarter)
	s.TimeFormat = ticks

	var meta smf.Track
	meta.Add(0, smf.MetaTrackSequenceName("Generated Light Show"))
	meta.Add(0, smf.MetaMeter(4, 4))
	meta.Add(0, smf.MetaTempo(tl.BPM))
	meta.Close(0)
	if err := s.Add(meta); err != nil {
		return err
	}

	for i, tr := range tl.Tracks {
		if i > 15 {
			return fmt.Errorf("too many tracks for MIDI export: %d", len(tl.Tracks))
		}
		if err := s.Add(trackEvents(ticks, tl, tr, uint8(i))); err != nil {
			return err
		}
	}

	return s.WriteFile(path)
}

func trackEvents(ticks smf.MetricTicks, tl *show.Timeline, tr show.Track, channel uint8) smf.Track {
	var events []event
	for _, p := range tr.Placements {
		key := uint8(p.SceneID % 128)
		vel := velocityFor(tl.SceneByID(p.SceneID))
		start := ticks.Ticks(tl.BPM, time.Duration(p.StartMS)*time.Millisecond)
		end := ticks.Ticks(tl.BPM, time.Duration(p.StartMS+p.DurationMS)*time.Millisecond)
		events = append(events,
			event{tick: start, msg: midi.NoteOn(channel, key, vel)},
			event{tick: end, msg: midi.NoteOff(channel, key), off: true},
		)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var out smf.Track
	out.Add(0, smf.MetaTrackSequenceName(tr.Name))
	var last uint32
	for _, e := range events {
		out.Add(e.tick-last, e.msg)
		last = e.tick
	}
	out.Close(0)
	return out
}

// velocityFor maps scene intensity onto note velocity so a MIDI rig can
// distinguish accents from plain beats.
func velocityFor(s *show.Scene) uint8 {
	if s == nil {
		return 64
	}
	if s.ColorName == "off" {
		return 1
	}
	if s.Values.Strobe > 0 || s.Values.White > 0 {
		return 127
	}
	return 100
}
