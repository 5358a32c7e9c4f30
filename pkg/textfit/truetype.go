package textfit

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// TrueTypeMetrics measures single lines of text against a parsed
// TrueType face. Faces are cached per (size, dpi) pair and guarded by
// a mutex, since the underlying glyph caches are not safe for
// concurrent use; the provider as a whole is reentrant.
type TrueTypeMetrics struct {
	mu    sync.Mutex
	ttf   *truetype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	size, dpi float64
}

// NewTrueTypeMetrics loads a TrueType face by family name using the
// system font paths. An empty family falls back to the embedded Go
// Regular face, which keeps measurement working on systems without
// any installed fonts.
func NewTrueTypeMetrics(family string) (*TrueTypeMetrics, error) {
	data := goregular.TTF
	if family != "" {
		path, err := findfont.Find(family)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "font family %q", family)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFontNotFound, err, "read font file %q", path)
		}
	}

	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse font data")
	}
	return &TrueTypeMetrics{
		ttf:   ttf,
		faces: make(map[faceKey]font.Face),
	}, nil
}

// Measure returns the advance width and line height of a single line
// of text at the font's point size, in pixels.
func (m *TrueTypeMetrics) Measure(text string, f Font, dpi float64) (float64, float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face := m.face(f.Size, dpi)
	width := float64(font.MeasureString(face, text)) / 64

	met := face.Metrics()
	height := float64(met.Ascent+met.Descent) / 64

	return width, height, nil
}

func (m *TrueTypeMetrics) face(size, dpi float64) font.Face {
	key := faceKey{size: size, dpi: dpi}
	if f, ok := m.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(m.ttf, &truetype.Options{Size: size, DPI: dpi})
	m.faces[key] = f
	return f
}

// Ensure TrueTypeMetrics implements Metrics.
var _ Metrics = (*TrueTypeMetrics)(nil)
