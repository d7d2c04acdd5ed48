package world

// Terrain is the ground type of a battlefield. It only affects how the field
// is drawn.
type Terrain string

const (
	TerrainGrass Terrain = "grass"
	TerrainSand  Terrain = "sand"
	TerrainSnow  Terrain = "snow"
)

// ParseTerrain maps a config value to a Terrain, falling back to grass.
func ParseTerrain(s string) Terrain {
	switch t := Terrain(s); t {
	case TerrainGrass, TerrainSand, TerrainSnow:
		return t
	default:
		return TerrainGrass
	}
}

// Rune returns the background glyph for the terrain.
func (t Terrain) Rune() rune {
	switch t {
	case TerrainSand:
		return '~'
	case TerrainSnow:
		return '*'
	default:
		return '.'
	}
}

// Color returns the background glyph color as a hex string.
func (t Terrain) Color() string {
	switch t {
	case TerrainSand:
		return "#5C5030"
	case TerrainSnow:
		return "#50585C"
	default:
		return "#2E4A2E"
	}
}
