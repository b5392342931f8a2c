package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type profileFile struct {
	Fixtures     []*Fixture `json:"fixtures" yaml:"fixtures"`
	ColorPalette Palette    `json:"color_palette" yaml:"color_palette"`
}

// Load reads a fixture profile from a JSON or YAML file, validates it,
// and resolves every fixture's channel roles.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pf profileFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &pf)
	default:
		err = json.Unmarshal(data, &pf)
	}
	if err != nil {
		return nil, fmt.Errorf("parse fixture config %s: %w", path, err)
	}

	p := &Profile{Fixtures: pf.Fixtures, Palette: pf.ColorPalette}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for _, f := range p.Fixtures {
		f.ResolveRoles()
	}
	return p, nil
}

// UnmarshalJSON keeps the palette in file declaration order, which the
// stock map type would scramble.
func (p *Palette) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("color_palette must be an object")
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)

		var rgb [3]int
		if err := dec.Decode(&rgb); err != nil {
			return fmt.Errorf("color %q: %w", name, err)
		}
		p.Colors = append(p.Colors, PaletteColor{
			Name: name,
			RGB:  RGB{clamp255(rgb[0]), clamp255(rgb[1]), clamp255(rgb[2])},
		})
	}

	_, err = dec.Token() // closing brace
	return err
}

// UnmarshalYAML does the same for YAML profiles, walking the mapping node
// directly since yaml.v3 preserves key order there.
func (p *Palette) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("color_palette must be a mapping")
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		var rgb [3]int
		if err := value.Content[i+1].Decode(&rgb); err != nil {
			return fmt.Errorf("color %q: %w", name, err)
		}
		p.Colors = append(p.Colors, PaletteColor{
			Name: name,
			RGB:  RGB{clamp255(rgb[0]), clamp255(rgb[1]), clamp255(rgb[2])},
		})
	}
	return nil
}

func clamp255(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
