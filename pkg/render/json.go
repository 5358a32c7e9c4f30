package render

import (
	"encoding/json"

	"github.com/matzehuels/mosaic/pkg/treemap"
)

// Document is the JSON shape of a rendered treemap: layout extents
// plus every level's tiles in drawing order.
type Document struct {
	NormX  float64     `json:"norm_x"`
	NormY  float64     `json:"norm_y"`
	Levels []LevelJSON `json:"levels"`
}

type LevelJSON struct {
	Name  string     `json:"name,omitempty"`
	Tiles []TileJSON `json:"tiles"`
}

type TileJSON struct {
	ID    string   `json:"id"`
	Path  []string `json:"path"`
	Label string   `json:"label,omitempty"`
	Fill  string   `json:"fill,omitempty"`
	Area  float64  `json:"area"`
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	DX    float64  `json:"dx"`
	DY    float64  `json:"dy"`
}

// RenderJSON serializes a laid-out treemap. Rectangles stay in data
// coordinates with the origin at the lower left, matching the layout.
func RenderJSON(t *treemap.Tree, normX, normY float64) ([]byte, error) {
	doc := Document{NormX: normX, NormY: normY}
	for _, level := range t.Levels {
		lj := LevelJSON{Name: level.Name, Tiles: make([]TileJSON, 0, len(level.Groups))}
		for _, g := range level.Groups {
			lj.Tiles = append(lj.Tiles, TileJSON{
				ID:    g.ID(),
				Path:  g.Path,
				Label: g.Label,
				Fill:  g.Fill,
				Area:  g.Area,
				X:     g.Rect.X,
				Y:     g.Rect.Y,
				DX:    g.Rect.DX,
				DY:    g.Rect.DY,
			})
		}
		doc.Levels = append(doc.Levels, lj)
	}
	return json.MarshalIndent(doc, "", "  ")
}
