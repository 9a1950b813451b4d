// Package iiif implements the International Image Interoperability
// Framework Image API frontend (v1.1 and v2): parsing an info.json
// descriptor and producing one ZoomLevel per (tile entry, scale factor).
//
// See https://iiif.io/api/image/
package iiif

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Harold2017/dezoomer/dezoomer"
	"github.com/Harold2017/dezoomer/vec2d"
)

const frontendName = "iiif"

// Dezoomer is the iiif frontend's dezoomer.Dezoomer implementation.
type Dezoomer struct{}

func (Dezoomer) Name() string { return frontendName }

func (Dezoomer) ZoomLevels(input dezoomer.Input) ([]dezoomer.ZoomLevel, error) {
	return zoomLevels(input.URI, input.Contents)
}

// tileEntry mirrors one entry of an info.json "tiles" array.
type tileEntry struct {
	Width        uint32   `json:"width"`
	Height       *uint32  `json:"height"`
	ScaleFactors []uint32 `json:"scaleFactors"`
}

// ImageInfo is the decoded shape of an info.json document, covering both
// IIIF 1.1 (tile_width/tile_height/scale_factors, @id) and IIIF 2.x (tiles,
// id) fields.
type ImageInfo struct {
	ID     string `json:"id"`
	AtID   string `json:"@id"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`

	Tiles []tileEntry `json:"tiles"`

	TileWidth    *uint32  `json:"tile_width"`
	TileHeight   *uint32  `json:"tile_height"`
	ScaleFactors []uint32 `json:"scale_factors"`

	Qualities []string `json:"qualities"`
	Formats   []string `json:"formats"`
	Supports  []string `json:"supports,omitempty"`
}

func (info *ImageInfo) id() (string, bool) {
	if info.ID != "" {
		return info.ID, true
	}
	if info.AtID != "" {
		return info.AtID, true
	}
	return "", false
}

// size returns (width, height).
func (info *ImageInfo) size() vec2d.Vec2d {
	return vec2d.Vec2d{X: info.Width, Y: info.Height}
}

// bestQuality prefers "default", then "native", then the first listed
// quality, then falls back to "default".
func (info *ImageInfo) bestQuality() string {
	if containsString(info.Qualities, "default") {
		return "default"
	}
	if containsString(info.Qualities, "native") {
		return "native"
	}
	if len(info.Qualities) > 0 {
		return info.Qualities[0]
	}
	return "default"
}

// bestFormat prefers "jpg", then the first listed format, then falls back
// to "jpg".
func (info *ImageInfo) bestFormat() string {
	if containsString(info.Formats, "jpg") {
		return "jpg"
	}
	if len(info.Formats) > 0 {
		return info.Formats[0]
	}
	return "jpg"
}

// sizeFormat is whether a tile's size segment is rendered "W,H" or "W,".
type sizeFormat int

const (
	sizeFormatWidthHeight sizeFormat = iota
	sizeFormatWidth
)

// preferredSizeFormat is WidthHeight unless the server declares sizeByW
// support without sizeByWh support.
func (info *ImageInfo) preferredSizeFormat() sizeFormat {
	if containsString(info.Supports, "sizeByW") && !containsString(info.Supports, "sizeByWh") {
		return sizeFormatWidth
	}
	return sizeFormatWidthHeight
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// tileInfos normalizes the explicit/legacy/default tile-set rules of the
// IIIF Image API. No legacy or default entry is synthesized with a zero
// width; an explicit "tiles" array is returned as is, and levelsFromInfo
// skips any of its entries whose width is zero. A zero nominal tile
// dimension has no valid geometry to enumerate and only arises from a
// degenerate or unrelated JSON object (see the info.json scavenger in
// zoomLevels).
func (info *ImageInfo) tileInfos() []tileEntry {
	if len(info.Tiles) > 0 {
		return info.Tiles
	}
	if info.TileWidth != nil && *info.TileWidth > 0 {
		return []tileEntry{{
			Width:        *info.TileWidth,
			Height:       info.TileHeight,
			ScaleFactors: info.ScaleFactors,
		}}
	}
	if info.Width > 0 && info.Height > 0 {
		w := info.Width
		if w > 512 {
			w = 512
		}
		h := info.Height
		if h > 512 {
			h = 512
		}
		return []tileEntry{{Width: w, Height: &h, ScaleFactors: []uint32{1}}}
	}
	return nil
}

func zoomLevels(uri string, raw []byte) ([]dezoomer.ZoomLevel, error) {
	var info ImageInfo
	primaryErr := json.Unmarshal(raw, &info)
	if primaryErr == nil {
		return levelsFromInfo(uri, &info), nil
	}
	var levels []dezoomer.ZoomLevel
	for _, candidate := range allJSONObjects(raw) {
		var candidateInfo ImageInfo
		if err := json.Unmarshal(candidate, &candidateInfo); err != nil {
			continue
		}
		levels = append(levels, levelsFromInfo(uri, &candidateInfo)...)
	}
	if len(levels) == 0 {
		return nil, dezoomer.NewNotMyFormatError(frontendName, fmt.Errorf("invalid IIIF info.json file: %w", primaryErr))
	}
	return levels, nil
}

func levelsFromInfo(uri string, info *ImageInfo) []dezoomer.ZoomLevel {
	base := uri
	if id, ok := info.id(); ok {
		base = id
	} else {
		base = strings.TrimSuffix(base, "/info.json")
	}
	quality := info.bestQuality()
	format := info.bestFormat()
	sizeFmt := info.preferredSizeFormat()

	var levels []dezoomer.ZoomLevel
	for _, tile := range info.tileInfos() {
		if tile.Width == 0 {
			continue
		}
		height := tile.Width
		if tile.Height != nil {
			height = *tile.Height
		}
		tileSize := vec2d.Vec2d{X: tile.Width, Y: height}
		for _, scaleFactor := range tile.ScaleFactors {
			if scaleFactor == 0 {
				continue
			}
			levels = append(levels, &Level{
				info:        info,
				baseURL:     base,
				quality:     quality,
				format:      format,
				sizeFormat:  sizeFmt,
				tileSize:    tileSize,
				scaleFactor: scaleFactor,
			})
		}
	}
	return levels
}

// Level is one (tile entry, scale factor) resolution of an IIIF image.
type Level struct {
	info        *ImageInfo
	baseURL     string
	quality     string
	format      string
	sizeFormat  sizeFormat
	tileSize    vec2d.Vec2d
	scaleFactor uint32
}

var _ dezoomer.ZoomLevel = (*Level)(nil)

func (l *Level) Size() vec2d.Vec2d {
	return l.info.size().DivScalar(l.scaleFactor)
}

func (l *Level) TileSize() vec2d.Vec2d { return l.tileSize }

func (l *Level) TileURL(colRow vec2d.Vec2d) string {
	scaledTile := l.tileSize.MulScalar(l.scaleFactor)
	xy := colRow.Mul(scaledTile)
	scaledTile = scaledTile.Min(l.info.size().Sub(xy))
	outputTile := scaledTile.DivScalar(l.scaleFactor)

	var sizeSegment string
	switch l.sizeFormat {
	case sizeFormatWidth:
		sizeSegment = fmt.Sprintf("%d,", outputTile.X)
	default:
		sizeSegment = fmt.Sprintf("%d,%d", outputTile.X, outputTile.Y)
	}

	return fmt.Sprintf("%s/%d,%d,%d,%d/%s/0/%s.%s",
		l.baseURL, xy.X, xy.Y, scaledTile.X, scaledTile.Y, sizeSegment, l.quality, l.format)
}

func (l *Level) TileRef(colRow vec2d.Vec2d) dezoomer.TileReference {
	return dezoomer.TileReference{
		URL:      l.TileURL(colRow),
		Position: l.TileSize().Mul(colRow),
	}
}

// String returns the last non-empty path segment of the base URL, or
// "IIIF Image" if none exists (original_source/src/iiif/mod.rs's Debug impl).
func (l *Level) String() string {
	parts := strings.Split(l.baseURL, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(parts[i]); s != "" {
			return s
		}
	}
	return "IIIF Image"
}
