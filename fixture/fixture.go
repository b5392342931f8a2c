package fixture

import "fmt"

// RGB is a color triple in DMX value range.
type RGB [3]uint8

// Hex returns the #rrggbb form used for timeline display colors.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// PaletteColor is one named color from a profile's vocabulary.
type PaletteColor struct {
	Name string
	RGB  RGB
}

// Palette is the profile's color vocabulary in declaration order.
// Order matters: section color rotation walks it cyclically.
type Palette struct {
	Colors []PaletteColor
}

// Lookup returns the RGB for a color name.
func (p *Palette) Lookup(name string) (RGB, bool) {
	for _, c := range p.Colors {
		if c.Name == name {
			return c.RGB, true
		}
	}
	return RGB{}, false
}

// Has reports whether the palette defines the named color.
func (p *Palette) Has(name string) bool {
	_, ok := p.Lookup(name)
	return ok
}

// Rotation returns every color except the reserved "off" entry,
// which is kept for blackouts only.
func (p *Palette) Rotation() []PaletteColor {
	out := make([]PaletteColor, 0, len(p.Colors))
	for _, c := range p.Colors {
		if c.Name == "off" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Fixture describes one addressable device.
type Fixture struct {
	Name         string         `json:"name" yaml:"name"`
	Manufacturer string         `json:"manufacturer" yaml:"manufacturer"`
	Model        string         `json:"model" yaml:"model"`
	Mode         string         `json:"mode" yaml:"mode"`
	Universe     int            `json:"universe" yaml:"universe"`
	Address      int            `json:"address" yaml:"address"` // 1-indexed DMX address
	Channels     int            `json:"channels" yaml:"channels"`
	ChannelMap   map[string]int `json:"channel_map" yaml:"channel_map"`

	channels  []Channel // resolved from ChannelMap, sorted by offset
	simpleRGB bool
}

// Profile is a full fixture configuration: devices plus color vocabulary.
type Profile struct {
	Fixtures []*Fixture
	Palette  Palette
}

// Validate checks the fail-fast input contract: a non-empty fixture list,
// complete fixture descriptors, and a palette containing "off".
func (p *Profile) Validate() error {
	if len(p.Fixtures) == 0 {
		return fmt.Errorf("fixture config must contain a non-empty fixtures list")
	}
	if len(p.Palette.Colors) == 0 {
		return fmt.Errorf("fixture config must contain a non-empty color_palette")
	}
	if !p.Palette.Has("off") {
		return fmt.Errorf("color_palette missing reserved \"off\" entry")
	}
	for _, f := range p.Fixtures {
		if err := f.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fixture) validate() error {
	name := f.Name
	if name == "" {
		name = "?"
	}
	missing := ""
	switch {
	case f.Name == "":
		missing = "name"
	case f.Manufacturer == "":
		missing = "manufacturer"
	case f.Model == "":
		missing = "model"
	case f.Mode == "":
		missing = "mode"
	case f.Universe == 0:
		missing = "universe"
	case f.Address == 0:
		missing = "address"
	case f.Channels == 0:
		missing = "channels"
	case len(f.ChannelMap) == 0:
		missing = "channel_map"
	}
	if missing != "" {
		return fmt.Errorf("fixture %q missing field %q", name, missing)
	}
	return nil
}
