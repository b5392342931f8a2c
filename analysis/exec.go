package analysis

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Config holds tool binary paths for the exec-based analyzers.
type Config struct {
	FFmpegBin  string
	FFprobeBin string
	AubioBin   string
}

// DefaultConfig returns tool paths resolved from $PATH.
func DefaultConfig() *Config {
	return &Config{
		FFmpegBin:  "ffmpeg",
		FFprobeBin: "ffprobe",
		AubioBin:   "aubio",
	}
}

func mustHave(bin string) error { _, err := exec.LookPath(bin); return err }

func runCmd(bin string, args ...string) (string, error) {
	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
