package show

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"go-lightshow/fixture"
)

// Scene is one immutable, uniquely identified device state. Two scenes
// with identical parameter tuples are the same scene; the cache enforces
// that.
type Scene struct {
	ID        int
	Name      string
	ColorName string
	Values    fixture.ChannelValues
}

// RGB returns the scene's color component.
func (s *Scene) RGB() fixture.RGB { return s.Values.RGB }

// Hex returns the scene color as #rrggbb.
func (s *Scene) Hex() string { return hexOf(s.Values.RGB) }

func hexOf(c fixture.RGB) string {
	return colorful.Color{
		R: float64(c[0]) / 255,
		G: float64(c[1]) / 255,
		B: float64(c[2]) / 255,
	}.Hex()
}

// Placement schedules one scene on a track.
type Placement struct {
	SceneID    int    `json:"sceneId"`
	StartMS    int    `json:"startMs"`
	DurationMS int    `json:"durationMs"`
	ColorHex   string `json:"colorHex"`
}

// Track is an ordered, non-overlapping list of placements.
type Track struct {
	Name         string      `json:"name"`
	BoundSceneID int         `json:"boundSceneId"`
	Placements   []Placement `json:"placements"`
}

// Timeline is the full output of one generation run.
type Timeline struct {
	BPM        float64  `json:"bpm"`
	DurationMS int      `json:"durationMs"`
	Style      Style    `json:"style"`
	Scenes     []*Scene `json:"scenes"`
	Tracks     []Track  `json:"tracks"`
}

// SceneByID resolves a placement's scene reference.
func (t *Timeline) SceneByID(id int) *Scene {
	for _, s := range t.Scenes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

type sceneKey struct {
	colorName string
	values    fixture.ChannelValues
}

// SceneCache owns every scene minted during one generation run. It is not
// safe for concurrent use; each run gets its own cache.
type SceneCache struct {
	byKey   map[sceneKey]*Scene
	catalog []*Scene
}

// NewSceneCache returns an empty cache.
func NewSceneCache() *SceneCache {
	return &SceneCache{byKey: make(map[sceneKey]*Scene)}
}

// GetOrCreate returns the canonical scene for the exact parameter tuple,
// minting and cataloging a new one only for unseen tuples.
func (c *SceneCache) GetOrCreate(colorName string, rgb fixture.RGB, motor uint8, lasers [4]uint8, strobe, uv, white uint8) *Scene {
	key := sceneKey{
		colorName: colorName,
		values: fixture.ChannelValues{
			RGB:    rgb,
			Motor:  motor,
			Lasers: lasers,
			Strobe: strobe,
			UV:     uv,
			White:  white,
		},
	}
	if s, ok := c.byKey[key]; ok {
		return s
	}

	s := &Scene{
		ID:        len(c.catalog),
		Name:      sceneName(colorName, key.values),
		ColorName: colorName,
		Values:    key.values,
	}
	c.byKey[key] = s
	c.catalog = append(c.catalog, s)
	return s
}

// Scenes returns the catalog in creation order.
func (c *SceneCache) Scenes() []*Scene { return c.catalog }

// Len returns the number of distinct scenes minted so far.
func (c *SceneCache) Len() int { return len(c.catalog) }

func sceneName(colorName string, v fixture.ChannelValues) string {
	if colorName == "off" {
		return "Blackout"
	}

	parts := []string{capitalize(colorName)}
	if v.Motor > 0 {
		parts = append(parts, fmt.Sprintf("m%d", v.Motor))
	}
	if v.UV > 0 {
		parts = append(parts, fmt.Sprintf("uv%d", v.UV))
	}
	lit := 0
	for _, l := range v.Lasers {
		if l > 0 {
			lit++
		}
	}
	if lit > 0 {
		parts = append(parts, fmt.Sprintf("lsr%d", lit))
	}
	if v.White > 0 {
		parts = append(parts, fmt.Sprintf("w%d", v.White))
	}
	if v.Strobe > 0 {
		parts = append(parts, fmt.Sprintf("st%d", v.Strobe))
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
