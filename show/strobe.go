package show

import (
	"go-lightshow/analysis"
	"go-lightshow/debug"
	"go-lightshow/fixture"
)

// strobeHits builds the secondary track from onset clusters: a dense burst
// of onsets inside an energetic segment earns one short full-white strobe
// accent. Hits keep at least one beat period of spacing so clusters never
// produce rapid-fire spam.
func strobeHits(rec *analysis.Record, segs []Segment, cache *SceneCache, blackoutID, durMS int) Track {
	track := Track{Name: TrackStrobeHits, BoundSceneID: blackoutID}

	beatPeriod := 60.0 / rec.BPM
	var white *Scene
	prevEnd := -beatPeriod

	for i, t := range rec.OnsetTimes {
		hits := 0
		for j := i + 1; j <= i+clusterLookahead && j < len(rec.OnsetTimes); j++ {
			if rec.OnsetTimes[j]-t <= clusterWindowSec {
				hits++
			}
		}
		if hits < clusterMinOnsets {
			continue
		}
		if segs[segmentIndexAt(segs, t)].AvgEnergy <= strobeEnergyMin {
			continue
		}
		if t < prevEnd+beatPeriod {
			continue
		}

		startMS := int(t * 1000)
		hitDurMS := int(beatPeriod * 1000)
		if startMS >= durMS {
			break
		}
		if startMS+hitDurMS > durMS {
			hitDurMS = durMS - startMS
		}
		if hitDurMS <= 0 {
			continue
		}

		if white == nil {
			white = cache.GetOrCreate("white", fixture.RGB{255, 255, 255},
				0, [4]uint8{}, 255, 0, 255)
			track.BoundSceneID = white.ID
		}

		debug.Log("strobe", "cluster at %.2fs (%d onsets)", t, hits)
		track.Placements = append(track.Placements, Placement{
			SceneID:    white.ID,
			StartMS:    startMS,
			DurationMS: hitDurMS,
			ColorHex:   "#ffffff",
		})
		prevEnd = t + beatPeriod
	}

	return track
}
