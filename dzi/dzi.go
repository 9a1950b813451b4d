// Package dzi implements the Microsoft Deep Zoom Image frontend: parsing a
// DZI XML descriptor and producing one ZoomLevel per halving of the image
// size down to 1x1.
//
// See https://docs.microsoft.com/previous-versions/windows/silverlight/dotnet-windows-silverlight/cc645043(v=vs.95)
package dzi

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Harold2017/dezoomer/dezoomer"
	"github.com/Harold2017/dezoomer/internal/urlutil"
	"github.com/Harold2017/dezoomer/vec2d"
)

const frontendName = "deepzoom"

// ErrInvalidTileSize is returned when the descriptor declares TileSize="0".
var ErrInvalidTileSize = errors.New("invalid tile size")

// ErrNoSize is returned when the descriptor has no Size child element.
var ErrNoSize = errors.New("expected a size in the DZI file")

// Dezoomer is the dzi frontend's dezoomer.Dezoomer implementation.
type Dezoomer struct{}

func (Dezoomer) Name() string { return frontendName }

func (Dezoomer) ZoomLevels(input dezoomer.Input) ([]dezoomer.ZoomLevel, error) {
	return zoomLevels(input.URI, input.Contents)
}

type xmlImage struct {
	XMLName  xml.Name `xml:"Image"`
	TileSize uint32   `xml:"TileSize,attr"`
	Overlap  uint32   `xml:"Overlap,attr"`
	Format   string   `xml:"Format,attr"`
	URL      string   `xml:"Url,attr"`
	Size     *xmlSize `xml:"Size"`
}

type xmlSize struct {
	Width  uint32 `xml:"Width,attr"`
	Height uint32 `xml:"Height,attr"`
}

func zoomLevels(uri string, contents []byte) ([]dezoomer.ZoomLevel, error) {
	var img xmlImage
	if err := xml.Unmarshal(urlutil.RemoveBOM(contents), &img); err != nil {
		return nil, dezoomer.NewNotMyFormatError(frontendName, fmt.Errorf("unable to parse the dzi file: %w", err))
	}
	if img.TileSize == 0 {
		return nil, dezoomer.NewError(frontendName, ErrInvalidTileSize)
	}
	if img.Size == nil {
		return nil, dezoomer.NewError(frontendName, ErrNoSize)
	}

	base := deriveBaseURL(uri, img.URL)
	size0 := vec2d.Vec2d{X: img.Size.Width, Y: img.Size.Height}
	maxLevel := maxLevelOf(size0)
	tileSize := vec2d.Square(img.TileSize)

	var levels []dezoomer.ZoomLevel
	size := size0
	ordinal := uint32(0)
	for {
		levels = append(levels, &Level{
			baseURL:  base,
			size:     size,
			tileSize: tileSize,
			format:   img.Format,
			overlap:  img.Overlap,
			level:    maxLevel - ordinal,
		})
		if size.X <= 1 && size.Y <= 1 {
			break
		}
		size = size.CeilDiv(vec2d.Square(2))
		ordinal++
	}
	return levels, nil
}

// deriveBaseURL returns explicitURL if the descriptor supplied one,
// otherwise derives "{stem}_files" from uri, where stem is everything before
// uri's last '.' (or the whole uri if it has no '.' — see DESIGN.md's Open
// Question decision). A trailing slash is always stripped.
func deriveBaseURL(uri, explicitURL string) string {
	var out string
	if explicitURL != "" {
		out = explicitURL
	} else {
		stem := uri
		if i := strings.LastIndexByte(uri, '.'); i >= 0 {
			stem = uri[:i]
		}
		out = stem + "_files"
	}
	return strings.TrimSuffix(out, "/")
}

func maxLevelOf(size vec2d.Vec2d) uint32 {
	maxDim := size.X
	if size.Y > maxDim {
		maxDim = size.Y
	}
	if maxDim <= 1 {
		return 0
	}
	return uint32(math.Ceil(math.Log2(float64(maxDim))))
}

// Level is one resolution level of a DZI pyramid.
type Level struct {
	baseURL  string
	size     vec2d.Vec2d
	tileSize vec2d.Vec2d
	format   string
	overlap  uint32
	level    uint32
}

var _ dezoomer.ZoomLevel = (*Level)(nil)

func (l *Level) Size() vec2d.Vec2d     { return l.size }
func (l *Level) TileSize() vec2d.Vec2d { return l.tileSize }

func (l *Level) TileURL(colRow vec2d.Vec2d) string {
	return fmt.Sprintf("%s/%d/%d_%d.%s", l.baseURL, l.level, colRow.X, colRow.Y, l.format)
}

func (l *Level) TileRef(colRow vec2d.Vec2d) dezoomer.TileReference {
	delta := vec2d.Vec2d{}
	if colRow.X != 0 {
		delta.X = l.overlap
	}
	if colRow.Y != 0 {
		delta.Y = l.overlap
	}
	return dezoomer.TileReference{
		URL:      l.TileURL(colRow),
		Position: l.TileSize().Mul(colRow).Sub(delta),
	}
}

func (l *Level) String() string {
	return "Deep Zoom Image"
}
