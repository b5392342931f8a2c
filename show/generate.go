package show

import (
	"fmt"

	"go-lightshow/analysis"
	"go-lightshow/debug"
	"go-lightshow/fixture"
)

const (
	TrackMainLights = "Main Lights"
	TrackStrobeHits = "Strobe Hits"
)

const blackoutHex = "#000000"

// Generate walks every beat of the analysis and produces the full show
// timeline: the main lights track, the onset-driven strobe track, and the
// catalog of every distinct scene referenced. One deterministic pass; no
// shared state survives between runs.
func Generate(rec *analysis.Record, prof *fixture.Profile, style Style) (*Timeline, error) {
	if rec == nil {
		return nil, fmt.Errorf("nil analysis record")
	}
	if rec.Duration <= 0 {
		return nil, fmt.Errorf("analysis duration must be positive, got %g", rec.Duration)
	}
	if rec.BPM <= 0 {
		return nil, fmt.Errorf("analysis bpm must be positive, got %g", rec.BPM)
	}
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	durMS := int(rec.Duration * 1000)
	endStartMS := durMS - fadeOutMS
	if endStartMS < 0 {
		endStartMS = 0
	}

	cache := NewSceneCache()
	offRGB, _ := prof.Palette.Lookup("off")
	blackout := cache.GetOrCreate("off", offRGB, 0, [4]uint8{}, 0, 0, 0)

	segs := buildSegments(rec.SegmentBoundaries, rec.Duration)
	energies := beatEnergies(rec)
	fillSegmentEnergy(segs, rec.BeatTimes, energies)
	palettes := assignPalettes(segs, &prof.Palette)

	debug.Log("generate", "duration=%.1fs bpm=%.1f beats=%d segments=%d style=%s",
		rec.Duration, rec.BPM, len(rec.BeatTimes), len(segs), style)

	main := Track{Name: TrackMainLights, BoundSceneID: blackout.ID}

	// Opening blackout: time 0 up to the first beat, or a fixed lead-in
	// when the track has no beats at all.
	leadEnd := leadInMS
	if len(rec.BeatTimes) > 0 {
		leadEnd = int(rec.BeatTimes[0] * 1000)
	}
	if leadEnd > endStartMS {
		leadEnd = endStartMS
	}
	if leadEnd > 0 {
		main.Placements = append(main.Placements, Placement{
			SceneID:    blackout.ID,
			StartMS:    0,
			DurationMS: leadEnd,
			ColorHex:   blackoutHex,
		})
	}

	params := style.Params()
	counter := 0
	prevSegIdx := -1

	for i, t := range rec.BeatTimes {
		if t < 0 || t >= rec.Duration {
			continue
		}

		startMS := int(t * 1000)
		endMS := durMS
		if i+1 < len(rec.BeatTimes) {
			endMS = int(rec.BeatTimes[i+1] * 1000)
		}
		if startMS >= endStartMS {
			break
		}
		if endMS > endStartMS {
			endMS = endStartMS
		}
		if endMS-startMS < minBeatDurMS {
			// Degenerate double-detected beat.
			continue
		}

		segIdx := segmentIndexAt(segs, t)
		if segIdx != prevSegIdx {
			counter = 0
			prevSegIdx = segIdx
		}

		tier := tierFor(energyAt(energies, i))
		dec := decide(segs, segIdx, t, counter, tier, rec.BPM)
		if dec.blackout != blackoutNone {
			debug.Log("generate", "beat %d t=%.2fs blackout=%s", i, t, dec.blackout)
			main.Placements = append(main.Placements, Placement{
				SceneID:    blackout.ID,
				StartMS:    startMS,
				DurationMS: endMS - startMS,
				ColorHex:   blackoutHex,
			})
			counter++
			continue
		}
		tier = dec.tier

		colors := palettes[segIdx]
		rate := params.BeatsPerColor
		if tier >= 4 {
			rate = 1
		}
		color := colors[(counter/rate)%len(colors)]

		lasers := laserVector(tier, i)
		var white, strobe uint8
		if tier >= 4 && i%4 == 0 {
			white = 200
		}
		if tier == 5 && i%8 < 2 {
			strobe = 150
		}

		scene := cache.GetOrCreate(color.Name, color.RGB,
			tierMotor[tier], lasers, strobe, tierUV[tier], white)
		debug.LogEvery(64, "generate", "beat %d tier=%d scene=%q", i, tier, scene.Name)
		main.Placements = append(main.Placements, Placement{
			SceneID:    scene.ID,
			StartMS:    startMS,
			DurationMS: endMS - startMS,
			ColorHex:   hexOf(color.RGB),
		})
		counter++
	}

	// Closing blackout fade over the last 2 seconds.
	if durMS > endStartMS {
		main.Placements = append(main.Placements, Placement{
			SceneID:    blackout.ID,
			StartMS:    endStartMS,
			DurationMS: durMS - endStartMS,
			ColorHex:   blackoutHex,
		})
	}

	strobeTrack := strobeHits(rec, segs, cache, blackout.ID, durMS)

	return &Timeline{
		BPM:        rec.BPM,
		DurationMS: durMS,
		Style:      style,
		Scenes:     cache.Scenes(),
		Tracks:     []Track{main, strobeTrack},
	}, nil
}

func energyAt(energies []float64, i int) float64 {
	if i < len(energies) {
		return energies[i]
	}
	return defaultEnergy
}
