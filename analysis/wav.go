package analysis

import (
	"fmt"
	"os"

	"github.com/faiface/beep/wav"
)

// WAVDuration reads a WAV file's duration in seconds by decoding its
// header, avoiding an ffprobe round trip for the common case.
func WAVDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("decode wav %s: %w", path, err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()).Seconds(), nil
}
