// Package playlist keeps the song catalog (playlist.json): which tracks
// exist, where their audio, analysis, and show files live, and the
// detected bpm/duration once analysis has run.
package playlist

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Song is one catalog entry.
type Song struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	File            string  `json:"file"`
	BPM             float64 `json:"bpm"`
	DurationSeconds float64 `json:"duration_seconds"`
	AnalysisFile    string  `json:"analysis_file"`
	ShowFile        string  `json:"show_file"`
	Notes           string  `json:"notes"`
}

// Playlist is the catalog of all tracked songs.
type Playlist struct {
	Songs []Song `json:"songs"`
}

// Load reads a playlist file. A missing file is an empty playlist, not
// an error, so the first `add` bootstraps the catalog.
func Load(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Playlist{}, nil
		}
		return nil, err
	}
	var p Playlist
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse playlist %s: %w", path, err)
	}
	return &p, nil
}

// Save writes the playlist with stable indentation.
func (p *Playlist) Save(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Find returns the song with the given id, or nil.
func (p *Playlist) Find(id string) *Song {
	for i := range p.Songs {
		if p.Songs[i].ID == id {
			return &p.Songs[i]
		}
	}
	return nil
}

// Add appends a song unless its id is already cataloged. Reports whether
// the song was added.
func (p *Playlist) Add(s Song) bool {
	if p.Find(s.ID) != nil {
		return false
	}
	p.Songs = append(p.Songs, s)
	return true
}

// UpdateAnalysis stores detected bpm and duration on the song whose audio
// file matches. Reports whether a song matched.
func (p *Playlist) UpdateAnalysis(file string, bpm, duration float64) bool {
	for i := range p.Songs {
		if p.Songs[i].File == file {
			p.Songs[i].BPM = round1(bpm)
			p.Songs[i].DurationSeconds = round1(duration)
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

var nonWord = regexp.MustCompile(`[^\w\s]`)
var spaces = regexp.MustCompile(`\s+`)

// MakeSongID derives a stable id like "artist__song_title".
func MakeSongID(artist, title string) string {
	return slugify(artist) + "__" + slugify(title)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWord.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "_")
	return s
}
