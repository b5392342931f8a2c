// go-lightshow turns beat analysis of a music track into a QLC+ light
// show: analyze audio, generate a beat-synced timeline, preview it in the
// terminal, and keep a playlist catalog of everything generated.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go-lightshow/analysis"
	"go-lightshow/debug"
	"go-lightshow/fixture"
	"go-lightshow/midishow"
	"go-lightshow/playlist"
	"go-lightshow/qlc"
	"go-lightshow/show"
	"go-lightshow/tui"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: go-lightshow <command> [flags]

Commands:
  generate     generate a QLC+ show from analysis + fixture config
  analyze      detect bpm/beats/onsets/structure in a WAV file
  convert      convert audio to 16-bit 44.1kHz WAV
  add          full pipeline: convert, catalog, analyze, generate
  preview      render a generated timeline in the terminal
  export-midi  export the timeline as a Standard MIDI File
`)
	os.Exit(2)
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "generate":
		cmdGenerate(os.Args[2:])
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "convert":
		cmdConvert(os.Args[2:])
	case "add":
		cmdAdd(os.Args[2:])
	case "preview":
		cmdPreview(os.Args[2:])
	case "export-midi":
		cmdExportMIDI(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
	}
}

// loadInputs reads and validates the two generation inputs.
func loadInputs(analysisPath, fixturesPath, styleName string) (*analysis.Record, *fixture.Profile, show.Style) {
	fmt.Printf("Loading analysis: %s\n", analysisPath)
	rec, err := analysis.Load(analysisPath)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Loading fixtures: %s\n", fixturesPath)
	prof, err := fixture.Load(fixturesPath)
	if err != nil {
		fail("%v", err)
	}

	style, err := show.ParseStyle(styleName)
	if err != nil {
		fail("%v", err)
	}
	return rec, prof, style
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	analysisPath := fs.String("analysis", "", "beat analysis JSON (from `analyze`)")
	fixturesPath := fs.String("fixtures", "", "fixture configuration JSON or YAML")
	output := fs.String("output", "", "output .qxw file path")
	audioPath := fs.String("audio-path", "", "audio file path to embed in the show")
	styleName := fs.String("style", "moderate", "show style: calm, moderate, energetic, dramatic")
	midiOut := fs.String("midi", "", "also export a .mid file to this path")
	debugLog := fs.Bool("debug", false, "write a debug log of generation decisions")
	fs.Parse(args)

	if *analysisPath == "" || *fixturesPath == "" || *output == "" {
		fail("generate needs -analysis, -fixtures, and -output")
	}
	if *debugLog {
		if err := debug.Enable(); err != nil {
			fail("enable debug log: %v", err)
		}
		defer debug.Disable()
	}

	rec, prof, style := loadInputs(*analysisPath, *fixturesPath, *styleName)

	fmt.Printf("Generating show (style: %s)...\n", style)
	tl, err := show.Generate(rec, prof, style)
	if err != nil {
		fail("%v", err)
	}

	audio := *audioPath
	if audio == "" {
		audio = rec.Filepath
	}
	if err := qlc.WriteFile(*output, tl, prof, audio); err != nil {
		fail("write show: %v", err)
	}

	if *midiOut != "" {
		if err := midishow.Write(*midiOut, tl); err != nil {
			fail("write midi: %v", err)
		}
		fmt.Printf("Exported MIDI: %s\n", *midiOut)
	}

	fmt.Printf("\nGenerated: %s\n", *output)
	fmt.Printf("  Fixtures: %d\n", len(prof.Fixtures))
	fmt.Printf("  Colors: %d\n", len(prof.Palette.Colors))
	fmt.Printf("  Scenes: %d\n", len(tl.Scenes))
	fmt.Printf("  BPM: %.1f\n", tl.BPM)
	fmt.Printf("  Duration: %.1fs\n", float64(tl.DurationMS)/1000)
	for _, tr := range tl.Tracks {
		fmt.Printf("  %s: %d placements\n", tr.Name, len(tr.Placements))
	}
	fmt.Printf("\nOpen in QLC+ to preview and refine the show.\n")
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 1 {
		fail("analyze needs an audio file argument")
	}
	in := fs.Arg(0)
	if _, err := os.Stat(in); err != nil {
		fail("file not found: %s", in)
	}

	rec, err := analysis.Analyze(analysis.DefaultConfig(), in)
	if err != nil {
		fail("%v", err)
	}

	out := strings.TrimSuffix(in, filepath.Ext(in)) + "_analysis.json"
	if err := rec.Save(out); err != nil {
		fail("save analysis: %v", err)
	}

	fmt.Printf("Analysis complete:\n")
	fmt.Printf("  BPM: %.1f\n", rec.BPM)
	fmt.Printf("  Duration: %.1fs\n", rec.Duration)
	fmt.Printf("  Beats: %d\n", len(rec.BeatTimes))
	fmt.Printf("  Onsets: %d\n", len(rec.OnsetTimes))
	fmt.Printf("  Segments: %d\n", len(rec.SegmentBoundaries))
	fmt.Printf("  Saved to: %s\n", out)

	updatePlaylistEntry(in, rec.BPM, rec.Duration)
}

// updatePlaylistEntry refreshes bpm/duration in a playlist.json sitting
// next to the audio file, if one exists.
func updatePlaylistEntry(audioPath string, bpm, duration float64) {
	plPath := filepath.Join(filepath.Dir(audioPath), "playlist.json")
	if _, err := os.Stat(plPath); err != nil {
		return
	}
	pl, err := playlist.Load(plPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	if !pl.UpdateAnalysis(filepath.Base(audioPath), bpm, duration) {
		fmt.Printf("  Warning: no matching entry for %q in playlist.json\n", filepath.Base(audioPath))
		return
	}
	if err := pl.Save(plPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: save playlist: %v\n", err)
		return
	}
	fmt.Printf("  Updated playlist.json: bpm=%.1f, duration=%.1f\n", bpm, duration)
}

func cmdConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 2 {
		fail("convert needs <input> and <output.wav> arguments")
	}
	in, out := fs.Arg(0), fs.Arg(1)
	if _, err := os.Stat(in); err != nil {
		fail("file not found: %s", in)
	}
	if err := analysis.ConvertToWAV(analysis.DefaultConfig(), in, out); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Converted: %s -> %s\n", in, out)
}

func cmdAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	artist := fs.String("artist", "", "artist name")
	title := fs.String("title", "", "song title")
	styleName := fs.String("style", "energetic", "show style")
	fixturesPath := fs.String("fixtures", filepath.Join("fixtures", "keobin_l2800.json"), "fixture config")
	dir := fs.String("dir", ".", "project directory (holds audio/ and shows/)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fail("add needs an audio file argument")
	}
	if *artist == "" || *title == "" {
		fail("add needs -artist and -title")
	}
	in := fs.Arg(0)
	if _, err := os.Stat(in); err != nil {
		fail("file not found: %s", in)
	}

	songID := playlist.MakeSongID(*artist, *title)
	fmt.Printf("Song ID: %s\n", songID)

	audioDir := filepath.Join(*dir, "audio")
	showsDir := filepath.Join(*dir, "shows")
	if err := os.MkdirAll(audioDir, 0755); err != nil {
		fail("%v", err)
	}

	// Step 1: get a 16-bit WAV into audio/.
	wavName := songID + ".wav"
	wavPath := filepath.Join(audioDir, wavName)
	if strings.EqualFold(filepath.Ext(in), ".wav") {
		if err := copyFile(in, wavPath); err != nil {
			fail("copy wav: %v", err)
		}
	} else {
		fmt.Printf("Converting %s -> %s\n", in, wavPath)
		if err := analysis.ConvertToWAV(analysis.DefaultConfig(), in, wavPath); err != nil {
			fail("%v", err)
		}
	}
	if dur, err := analysis.WAVDuration(wavPath); err == nil {
		fmt.Printf("WAV ready: %s (%.1fs)\n", wavPath, dur)
	}

	// Step 2: catalog the song.
	plPath := filepath.Join(audioDir, "playlist.json")
	pl, err := playlist.Load(plPath)
	if err != nil {
		fail("%v", err)
	}
	added := pl.Add(playlist.Song{
		ID:           songID,
		Title:        *title,
		Artist:       *artist,
		File:         wavName,
		AnalysisFile: songID + "_analysis.json",
		ShowFile:     filepath.Join("..", "shows", songID+"_show.qxw"),
	})
	if !added {
		fmt.Printf("Song %q already in playlist.json - skipping add.\n", songID)
	}

	// Step 3: analyze.
	fmt.Printf("\n--- Analyzing %s ---\n", wavName)
	rec, err := analysis.Analyze(analysis.DefaultConfig(), wavPath)
	if err != nil {
		fail("%v", err)
	}
	analysisPath := filepath.Join(audioDir, songID+"_analysis.json")
	if err := rec.Save(analysisPath); err != nil {
		fail("save analysis: %v", err)
	}
	pl.UpdateAnalysis(wavName, rec.BPM, rec.Duration)
	if err := pl.Save(plPath); err != nil {
		fail("save playlist: %v", err)
	}

	// Step 4: generate the show.
	fmt.Printf("\n--- Generating show (%s) ---\n", *styleName)
	prof, err := fixture.Load(*fixturesPath)
	if err != nil {
		fail("%v", err)
	}
	style, err := show.ParseStyle(*styleName)
	if err != nil {
		fail("%v", err)
	}
	tl, err := show.Generate(rec, prof, style)
	if err != nil {
		fail("%v", err)
	}
	showPath := filepath.Join(showsDir, songID+"_show.qxw")
	if err := qlc.WriteFile(showPath, tl, prof, wavPath); err != nil {
		fail("write show: %v", err)
	}

	fmt.Printf("\nDone! Song '%s - %s' is ready.\n", *artist, *title)
	fmt.Printf("  Playlist:  %s\n", plPath)
	fmt.Printf("  Analysis:  %s\n", analysisPath)
	fmt.Printf("  Show file: %s\n", showPath)
}

func cmdPreview(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	analysisPath := fs.String("analysis", "", "beat analysis JSON")
	fixturesPath := fs.String("fixtures", "", "fixture configuration JSON or YAML")
	styleName := fs.String("style", "moderate", "show style")
	fs.Parse(args)

	if *analysisPath == "" || *fixturesPath == "" {
		fail("preview needs -analysis and -fixtures")
	}
	rec, prof, style := loadInputs(*analysisPath, *fixturesPath, *styleName)
	tl, err := show.Generate(rec, prof, style)
	if err != nil {
		fail("%v", err)
	}
	if err := tui.Run(tl); err != nil {
		fail("%v", err)
	}
}

func cmdExportMIDI(args []string) {
	fs := flag.NewFlagSet("export-midi", flag.ExitOnError)
	analysisPath := fs.String("analysis", "", "beat analysis JSON")
	fixturesPath := fs.String("fixtures", "", "fixture configuration JSON or YAML")
	output := fs.String("output", "", "output .mid file path")
	styleName := fs.String("style", "moderate", "show style")
	fs.Parse(args)

	if *analysisPath == "" || *fixturesPath == "" || *output == "" {
		fail("export-midi needs -analysis, -fixtures, and -output")
	}
	rec, prof, style := loadInputs(*analysisPath, *fixturesPath, *styleName)
	tl, err := show.Generate(rec, prof, style)
	if err != nil {
		fail("%v", err)
	}
	if err := midishow.Write(*output, tl); err != nil {
		fail("write midi: %v", err)
	}
	fmt.Printf("Exported: %s\n", *output)
}

func copyFile(src, dst string) error {
	if abs1, err := filepath.Abs(src); err == nil {
		if abs2, err := filepath.Abs(dst); err == nil && abs1 == abs2 {
			return nil
		}
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
