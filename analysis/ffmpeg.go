package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ConvertToWAV converts any audio file to 16-bit 44.1kHz stereo WAV.
// QLC+'s show manager syncs tightest against uncompressed WAV.
func ConvertToWAV(cfg *Config, in, out string) error {
	if err := mustHave(cfg.FFmpegBin); err != nil {
		return errors.New("ffmpeg not found")
	}
	output, err := runCmd(cfg.FFmpegBin, "-i", in,
		"-acodec", "pcm_s16le",
		"-ar", "44100",
		"-ac", "2",
		"-y", out)
	if err != nil {
		return fmt.Errorf("ffmpeg convert %s: %v\n%s", in, err, output)
	}
	return nil
}

// ffprobeDuration reads a file's duration in seconds via ffprobe.
func ffprobeDuration(cfg *Config, in string) (float64, error) {
	if err := mustHave(cfg.FFprobeBin); err != nil {
		return 0, errors.New("ffprobe not found")
	}
	out, err := runCmd(cfg.FFprobeBin, "-v", "error", "-show_format", "-of", "json", in)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %v", in, err)
	}
	var ff struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &ff); err != nil {
		return 0, err
	}
	d := parseFloat(ff.Format.Duration)
	if d <= 0 {
		return 0, fmt.Errorf("ffprobe returned no duration for %s", in)
	}
	return d, nil
}
