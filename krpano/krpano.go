// Package krpano implements the krpano multiresolution panorama frontend:
// parsing a krpano XML descriptor (cube, flat, or other shapes, explicit
// levels or a multires token series) and producing one ZoomLevel per
// (level, shape, side).
//
// See https://krpano.com/docu/xml/#image
package krpano

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log"

	"github.com/Harold2017/dezoomer/dezoomer"
	"github.com/Harold2017/dezoomer/internal/urlutil"
	"github.com/Harold2017/dezoomer/vec2d"
)

const frontendName = "krpano"

const defaultBaseIndex = 1

// Dezoomer is the krpano frontend's dezoomer.Dezoomer implementation.
type Dezoomer struct{}

func (Dezoomer) Name() string { return frontendName }

func (Dezoomer) ZoomLevels(input dezoomer.Input) ([]dezoomer.ZoomLevel, error) {
	return zoomLevels(input.URI, input.Contents)
}

func zoomLevels(uri string, contents []byte) ([]dezoomer.ZoomLevel, error) {
	contents = urlutil.RemoveBOM(contents)
	var root xmlMetadata
	if err := xml.NewDecoder(bytes.NewReader(contents)).Decode(&root); err != nil {
		return nil, dezoomer.NewNotMyFormatError(frontendName, fmt.Errorf("invalid krpano XML: %w", err))
	}
	if len(root.Images) == 0 {
		return nil, dezoomer.NewNotMyFormatError(frontendName, fmt.Errorf("no <image> elements"))
	}

	var levels []dezoomer.ZoomLevel
	for _, image := range root.Images {
		levels = append(levels, levelsFromImage(uri, image)...)
	}
	if len(levels) == 0 {
		return nil, dezoomer.NewError(frontendName, fmt.Errorf("no usable level could be built from this descriptor"))
	}
	return levels, nil
}

// levelsFromImage expands one <image> element into its ZoomLevels: one per
// explicit <level> child, plus one per generated level of any multires
// shape declared directly on the image.
func levelsFromImage(baseURI string, image xmlImage) []dezoomer.ZoomLevel {
	baseIndex := uint32(defaultBaseIndex)
	if image.BaseIndex != nil {
		baseIndex = *image.BaseIndex
	}

	var out []dezoomer.ZoomLevel
	for levelIndex, xl := range image.Levels {
		size := vec2d.Vec2d{X: xl.Width, Y: xl.Height}
		out = append(out, levelsFromShapes(baseURI, xl.xmlShapes.entries(), size, image.TileSize, uint32(levelIndex), baseIndex)...)
	}

	for _, entry := range image.xmlShapes.entries() {
		if entry.shape.Multires == "" {
			log.Printf("krpano: %s: shape %q declared directly on <image> without multires and without an enclosing <level>; skipping",
				baseURI, entry.shapeName)
			continue
		}
		out = append(out, levelsFromMultiresShape(baseURI, entry, image.TileSize, baseIndex)...)
	}
	return out
}

// levelsFromShapes builds one ZoomLevel per (shape, side) for an explicitly
// sized level. tileSize falls back to the shape's own tilesize, then the
// image's root tilesize; a level with no resolvable tile size anywhere is
// skipped with a warning.
func levelsFromShapes(baseURI string, shapes []shapeWithName, size vec2d.Vec2d, rootTileSize *uint32, levelIndex, baseIndex uint32) []dezoomer.ZoomLevel {
	var out []dezoomer.ZoomLevel
	for _, entry := range shapes {
		tileSize, ok := resolveTileSize(entry.shape.TileSize, rootTileSize)
		if !ok {
			log.Printf("krpano: %s: level %d shape %q has no tile size (own or root); skipping", baseURI, levelIndex, entry.shapeName)
			continue
		}
		tokens := parseTemplate(entry.shape.URL)
		for _, s := range entry.sides {
			out = append(out, &Level{
				label:     describeLevel(entry.shapeName, s.name, levelIndex),
				baseURI:   baseURI,
				size:      size,
				tileSize:  vec2d.Vec2d{X: tileSize, Y: tileSize},
				baseIndex: baseIndex,
				tokens:    resolveStatic(tokens, levelIndex+baseIndex, s.letter),
			})
		}
	}
	return out
}

// levelsFromMultiresShape expands a multires-bearing shape declared
// directly on an <image> into one ZoomLevel per generated level token, per
// side. A malformed leading tile size drops the whole shape (there's no
// level geometry to fall back on); malformed individual level tokens are
// dropped by parseMultires itself.
func levelsFromMultiresShape(baseURI string, entry shapeWithName, rootTileSize *uint32, baseIndex uint32) []dezoomer.ZoomLevel {
	label := fmt.Sprintf("%s %s", baseURI, entry.shapeName)
	fallbackTileSize, multiresLevels, err := parseMultires(label, entry.shape.Multires)
	if err != nil {
		log.Printf("krpano: %s: %v; skipping shape", label, err)
		return nil
	}
	if len(multiresLevels) == 0 {
		log.Printf("krpano: %s: multires attribute produced no usable levels", label)
		return nil
	}

	tokens := parseTemplate(entry.shape.URL)
	var out []dezoomer.ZoomLevel
	for levelIndex, ml := range multiresLevels {
		tileSize := fallbackTileSize
		if ml.tileSize != nil {
			tileSize = *ml.tileSize
		}
		if tileSize == 0 {
			if rt, ok := resolveTileSize(nil, rootTileSize); ok {
				tileSize = rt
			} else {
				log.Printf("krpano: %s: level %d has no tile size; skipping", label, levelIndex)
				continue
			}
		}
		for _, s := range entry.sides {
			out = append(out, &Level{
				label:     describeLevel(entry.shapeName, s.name, uint32(levelIndex)),
				baseURI:   baseURI,
				size:      ml.size,
				tileSize:  vec2d.Vec2d{X: tileSize, Y: tileSize},
				baseIndex: baseIndex,
				tokens:    resolveStatic(tokens, uint32(levelIndex)+baseIndex, s.letter),
			})
		}
	}
	return out
}

func resolveTileSize(own, root *uint32) (uint32, bool) {
	if own != nil && *own > 0 {
		return *own, true
	}
	if root != nil && *root > 0 {
		return *root, true
	}
	return 0, false
}

func describeLevel(shapeName, sideName string, levelIndex uint32) string {
	if sideName == "" {
		return fmt.Sprintf("krpano %s level %d", shapeName, levelIndex)
	}
	return fmt.Sprintf("krpano %s %s level %d", shapeName, sideName, levelIndex)
}

// Level is one (level, shape, side) resolution of a krpano panorama.
type Level struct {
	label     string
	baseURI   string
	size      vec2d.Vec2d
	tileSize  vec2d.Vec2d
	baseIndex uint32
	tokens    []token
}

var _ dezoomer.ZoomLevel = (*Level)(nil)

func (l *Level) Size() vec2d.Vec2d     { return l.size }
func (l *Level) TileSize() vec2d.Vec2d { return l.tileSize }

func (l *Level) TileURL(colRow vec2d.Vec2d) string {
	rel := render(l.tokens, l.baseIndex+colRow.X, l.baseIndex+colRow.Y)
	return urlutil.ResolveRelative(l.baseURI, rel)
}

func (l *Level) TileRef(colRow vec2d.Vec2d) dezoomer.TileReference {
	return dezoomer.TileReference{
		URL:      l.TileURL(colRow),
		Position: l.TileSize().Mul(colRow),
	}
}

func (l *Level) String() string { return l.label }
