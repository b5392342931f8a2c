package analysis

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Analyze runs beat, onset, and structure detection on a WAV file and
// returns a complete analysis record.
func Analyze(cfg *Config, in string) (*Record, error) {
	duration, err := ffprobeDuration(cfg, in)
	if err != nil {
		return nil, err
	}

	beats, err := aubioTimes(cfg, "beat", in)
	if err != nil {
		return nil, err
	}
	onsets, err := aubioTimes(cfg, "onset", in)
	if err != nil {
		return nil, err
	}

	bpm := bpmFromBeats(beats)
	if bpm <= 0 {
		bpm, err = aubioTempo(cfg, in)
		if err != nil {
			return nil, err
		}
	}

	rec := &Record{
		Filepath:          in,
		Duration:          duration,
		BPM:               bpm,
		BeatTimes:         beats,
		OnsetTimes:        onsets,
		SegmentBoundaries: segmentBoundaries(onsets, duration),
	}
	return rec, nil
}

// aubioTimes runs an aubio subcommand that prints one timestamp per line
// ("beat" or "onset") and collects the values.
func aubioTimes(cfg *Config, sub, in string) ([]float64, error) {
	if err := mustHave(cfg.AubioBin); err != nil {
		return nil, errors.New("aubio not found")
	}
	out, err := runCmd(cfg.AubioBin, sub, "-i", in)
	if err != nil && out == "" {
		return nil, fmt.Errorf("aubio %s failed: %v", sub, err)
	}

	var times []float64
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if v, err := strconv.ParseFloat(strings.Fields(line)[0], 64); err == nil {
			times = append(times, v)
		}
	}
	sort.Float64s(times)
	return times, nil
}

func aubioTempo(cfg *Config, in string) (float64, error) {
	out, err := runCmd(cfg.AubioBin, "tempo", "-i", in)
	if err != nil && out == "" {
		return 0, fmt.Errorf("aubio tempo failed: %v", err)
	}
	re := regexp.MustCompile(`([0-9]+(\.[0-9]+)?)\s*bpm`)
	var vals []float64
	sc := bufio.NewScanner(strings.NewReader(strings.ToLower(out)))
	for sc.Scan() {
		if m := re.FindStringSubmatch(sc.Text()); len(m) >= 2 {
			vals = append(vals, parseFloat(m[1]))
		}
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("no bpm in aubio tempo output")
	}
	sort.Float64s(vals)
	return vals[len(vals)/2], nil
}

// bpmFromBeats derives tempo from the median beat interval, which is more
// stable than aubio's own bpm line on tracks with tempo drift.
func bpmFromBeats(beats []float64) float64 {
	if len(beats) < 2 {
		return 0
	}
	diffs := make([]float64, 0, len(beats)-1)
	for i := 1; i < len(beats); i++ {
		if d := beats[i] - beats[i-1]; d > 0 {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return 0
	}
	sort.Float64s(diffs)
	return 60.0 / diffs[len(diffs)/2]
}

const (
	segmentTarget    = 8   // aim for this many structural segments
	segmentBinSec    = 1.0 // onset density bin width
	segmentSmoothWin = 4   // bins averaged on each side of a candidate
	segmentMinGapSec = 8.0 // minimum spacing between boundaries
)

// segmentBoundaries estimates structural boundaries from changes in onset
// density. A boundary candidate scores by how different the onset rate is
// on its two sides; the highest-scoring, well-separated candidates win.
func segmentBoundaries(onsets []float64, duration float64) []float64 {
	nbins := int(duration / segmentBinSec)
	if nbins < 2*segmentSmoothWin+1 {
		return nil
	}

	counts := make([]float64, nbins)
	for _, t := range onsets {
		bin := int(t / segmentBinSec)
		if bin >= 0 && bin < nbins {
			counts[bin]++
		}
	}

	type candidate struct {
		time  float64
		score float64
	}
	var cands []candidate
	for i := segmentSmoothWin; i < nbins-segmentSmoothWin; i++ {
		var before, after float64
		for j := 1; j <= segmentSmoothWin; j++ {
			before += counts[i-j]
			after += counts[i+j-1]
		}
		score := math.Abs(after-before) / float64(segmentSmoothWin)
		cands = append(cands, candidate{time: float64(i) * segmentBinSec, score: score})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].score > cands[j].score })

	var bounds []float64
	for _, c := range cands {
		if len(bounds) >= segmentTarget-1 {
			break
		}
		ok := true
		for _, b := range bounds {
			if math.Abs(b-c.time) < segmentMinGapSec {
				ok = false
				break
			}
		}
		if ok && c.time > segmentMinGapSec && c.time < duration-segmentMinGapSec {
			bounds = append(bounds, c.time)
		}
	}
	sort.Float64s(bounds)
	return bounds
}
