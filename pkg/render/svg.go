package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
	"github.com/matzehuels/mosaic/pkg/render/styles"
	"github.com/matzehuels/mosaic/pkg/textfit"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

const (
	defaultWidth   = 960.0
	defaultExtent  = 100.0
	defaultPadPt   = 1.0
	defaultFontPt  = 10.0
	defaultMaxFont = 36.0
)

// LabelOptions controls text fitting and placement for one level of
// the hierarchy.
type LabelOptions struct {
	Show        bool
	Reflow      bool       // allow wrapping onto multiple lines
	Grow        bool       // scale text up to fill the tile
	Place       geom.Place // anchor within the tile
	Rotation    float64    // degrees counterclockwise; reflow requires 0
	MinFontSize float64    // points, 0 means no floor
	MaxFontSize float64    // points, 0 means no cap
	XMax, YMax  float64    // fraction of the tile available to text
	PadX, PadY  float64    // inset from the tile border, in points
	Color       string
}

// DefaultLabelOptions returns the label settings used when a level
// enables text without further configuration.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{
		Show:  true,
		Place: geom.Center,
		XMax:  1, YMax: 1,
		PadX: defaultPadPt, PadY: defaultPadPt,
	}
}

// TileOptions overrides the style's tile appearance for one level.
type TileOptions struct {
	Fill   string
	Stroke string
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style         styles.Style
	metrics       textfit.Metrics
	font          textfit.Font
	dpi           float64
	normX, normY  float64
	width, height float64
	top           bool
	leaf          LabelOptions
	frames        map[string]frameOptions

	sx, sy float64
}

type frameOptions struct {
	tile  TileOptions
	label LabelOptions
}

func WithStyle(s styles.Style) SVGOption        { return func(r *svgRenderer) { r.style = s } }
func WithMetrics(m textfit.Metrics) SVGOption   { return func(r *svgRenderer) { r.metrics = m } }
func WithFont(f textfit.Font) SVGOption         { return func(r *svgRenderer) { r.font = f } }
func WithDPI(dpi float64) SVGOption             { return func(r *svgRenderer) { r.dpi = dpi } }
func WithExtents(x, y float64) SVGOption        { return func(r *svgRenderer) { r.normX, r.normY = x, y } }
func WithSize(w, h float64) SVGOption           { return func(r *svgRenderer) { r.width, r.height = w, h } }
func WithTop() SVGOption                        { return func(r *svgRenderer) { r.top = true } }
func WithLeafLabels(lo LabelOptions) SVGOption  { return func(r *svgRenderer) { r.leaf = lo } }

// WithLevelFrames draws outline rectangles and labels for a non-leaf
// level. Levels without a frame option are laid out but not drawn.
func WithLevelFrames(level string, to TileOptions, lo LabelOptions) SVGOption {
	return func(r *svgRenderer) { r.frames[level] = frameOptions{tile: to, label: lo} }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:  styles.Simple{},
		dpi:    textfit.DefaultDPI,
		normX:  defaultExtent,
		normY:  defaultExtent,
		leaf:   DefaultLabelOptions(),
		frames: make(map[string]frameOptions),
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.font.Size == 0 {
		r.font.Size = defaultFontPt
	}
	if r.width == 0 {
		r.width = defaultWidth
	}
	if r.height == 0 {
		r.height = r.width * r.normY / r.normX
	}
	r.sx = r.width / r.normX
	r.sy = r.height / r.normY
	return r
}

// RenderSVG draws a laid-out treemap as an SVG document. Tile
// rectangles come straight from the layout; labels are fitted with the
// renderer's metrics and placed per level.
func RenderSVG(t *treemap.Tree, opts ...SVGOption) ([]byte, error) {
	if t == nil || len(t.Levels) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot render an empty treemap")
	}
	r := newSVGRenderer(opts...)

	if r.metrics == nil {
		m, err := textfit.NewTrueTypeMetrics(r.font.Family)
		if err != nil {
			return nil, err
		}
		r.metrics = m
	}
	engine := textfit.Engine{Metrics: r.metrics, DPI: r.dpi}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	r.style.RenderDefs(&buf)

	leaf := t.Leaf()
	fills := styles.ResolveFills(groupFills(leaf))
	leafTiles := make([]styles.Tile, 0, len(leaf.Groups))
	for _, g := range leaf.Groups {
		tile := r.tile(g, len(t.Levels)-1, true)
		tile.Fill = fills[g.Fill]
		leafTiles = append(leafTiles, tile)
		r.style.RenderTile(&buf, tile)
	}

	// Group frames go on top of the leaf tiles so their outlines stay
	// visible.
	for depth, level := range t.Levels[:len(t.Levels)-1] {
		fo, ok := r.frames[level.Name]
		if !ok {
			continue
		}
		for _, g := range level.Groups {
			tile := r.tile(g, depth, false)
			tile.Fill = fo.tile.Fill
			tile.Stroke = fo.tile.Stroke
			r.style.RenderTile(&buf, tile)
		}
	}

	for depth, level := range t.Levels[:len(t.Levels)-1] {
		fo, ok := r.frames[level.Name]
		if !ok || !fo.label.Show {
			continue
		}
		for _, g := range level.Groups {
			if err := r.renderLabel(&buf, &engine, r.tile(g, depth, false), g, fo.label); err != nil {
				return nil, err
			}
		}
	}
	if r.leaf.Show {
		for i, g := range leaf.Groups {
			if err := r.renderLabel(&buf, &engine, leafTiles[i], g, r.leaf); err != nil {
				return nil, err
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// tile converts a group's layout rectangle from data coordinates
// (y up) to pixel coordinates (y down).
func (r *svgRenderer) tile(g *treemap.Group, depth int, isLeaf bool) styles.Tile {
	py := (r.normY - g.Rect.Y - g.Rect.DY) * r.sy
	if r.top {
		py = g.Rect.Y * r.sy
	}
	return styles.Tile{
		ID:    g.ID(),
		Label: g.DisplayLabel(),
		X:     g.Rect.X * r.sx,
		Y:     py,
		W:     g.Rect.DX * r.sx,
		H:     g.Rect.DY * r.sy,
		Level: depth,
		Leaf:  isLeaf,
	}
}

func (r *svgRenderer) renderLabel(buf *bytes.Buffer, engine *textfit.Engine, tile styles.Tile, g *treemap.Group, lo LabelOptions) error {
	text := g.DisplayLabel()
	if text == "" {
		return nil
	}

	// The border inset only applies when text may use the full tile;
	// a reduced xmax/ymax already keeps text off the edge.
	padX, padY := 0.0, 0.0
	if lo.XMax >= 1 {
		padX = geom.PointsToPixels(lo.PadX, r.dpi)
	}
	if lo.YMax >= 1 {
		padY = geom.PointsToPixels(lo.PadY, r.dpi)
	}
	boxW := max(0, tile.W*lo.XMax-2*padX)
	boxH := max(0, tile.H*lo.YMax-2*padY)

	font := r.font
	font.Rotation = lo.Rotation
	if vertical(lo.Rotation) {
		boxW, boxH = boxH, boxW
	}
	c := textfit.Constraint{Min: lo.MinFontSize, Max: lo.MaxFontSize}
	if c.Max == 0 {
		c.Max = defaultMaxFont
	}
	fit, err := engine.Fit(text, boxW, boxH, font, c, lo.Reflow, lo.Grow)
	if err != nil {
		return err
	}

	sizePx := geom.PointsToPixels(fit.FontSize, r.dpi)
	ls := font.LineSpacing
	if ls == 0 {
		ls = textfit.DefaultLineSpacing
	}

	ax, ay := pixelAnchor(tile, lo.Place, padX, padY)
	r.style.RenderLabel(buf, tile, styles.Label{
		Lines:      fit.Lines,
		SizePx:     sizePx,
		LineHeight: sizePx * ls,
		X:          ax,
		Y:          ay,
		Rotation:   lo.Rotation,
		HAlign:     halignName(lo.Place.H),
		VAlign:     valignName(lo.Place.V),
		Color:      lo.Color,
	})
	return nil
}

// vertical reports whether a rotation turns the text sideways, which
// swaps the box dimensions for fitting.
func vertical(deg float64) bool {
	d := math.Mod(math.Abs(deg), 180)
	return d > 45 && d < 135
}

// pixelAnchor resolves a placement anchor on a pixel-space tile, where
// "top" means the smaller y coordinate.
func pixelAnchor(t styles.Tile, p geom.Place, padX, padY float64) (x, y float64) {
	switch p.H {
	case geom.Left:
		x = t.X + padX
	case geom.Right:
		x = t.X + t.W - padX
	default:
		x = t.X + t.W/2
	}
	switch p.V {
	case geom.Top:
		y = t.Y + padY
	case geom.Bottom:
		y = t.Y + t.H - padY
	default:
		y = t.Y + t.H/2
	}
	return x, y
}

func halignName(h geom.HAlign) string {
	if h == "" {
		return "center"
	}
	return string(h)
}

func valignName(v geom.VAlign) string {
	if v == "" {
		return "center"
	}
	return string(v)
}

func groupFills(l *treemap.Level) []string {
	fills := make([]string, 0, len(l.Groups))
	for _, g := range l.Groups {
		fills = append(fills, g.Fill)
	}
	return fills
}
