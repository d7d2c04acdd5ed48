package gamedata

import "github.com/gdamore/tcell/v2"

// UnitTypeDef defines the base stats of a unit type loaded from YAML.
type UnitTypeDef struct {
	ID      string `yaml:"id"`      // Unique identifier (e.g., "archer")
	Name    string `yaml:"name"`    // Display name (e.g., "Archer")
	Glyph   string `yaml:"glyph"`   // Single character for rendering (e.g., "a")
	Color   string `yaml:"color"`   // Hex color code (e.g., "#00FF00")
	HP      int    `yaml:"hp"`      // Base and maximum hit points
	Attack  int    `yaml:"attack"`  // Base attack power
	Defense int    `yaml:"defense"` // Base defense value
	Speed   int    `yaml:"speed"`   // Movement and attack cadence
	Range   int    `yaml:"range"`   // Attack reach in range units
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *UnitTypeDef) GlyphRune() rune {
	if len(d.Glyph) == 0 {
		return '?'
	}
	return rune(d.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (d *UnitTypeDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// UnitTypesFile represents the structure of unit_types.yaml.
type UnitTypesFile struct {
	UnitTypes []UnitTypeDef `yaml:"unit_types"`
}

// LoadUnitTypes loads unit type definitions from the embedded unit_types.yaml file.
func LoadUnitTypes() ([]UnitTypeDef, error) {
	file, err := Load[UnitTypesFile]("unit_types.yaml")
	if err != nil {
		return nil, err
	}
	return file.UnitTypes, nil
}
