package krpano

import "encoding/xml"

// xmlMetadata is the root <krpano> element: a list of <image> entries.
type xmlMetadata struct {
	XMLName xml.Name   `xml:"krpano"`
	Images  []xmlImage `xml:"image"`
}

// xmlImage is one <image> entry: an optional root tile size, a base index
// (default 1), zero or more explicit <level> children, and — for images
// that skip the <level> wrapper entirely in favor of a multires shape —
// shape children declared directly on the image.
type xmlImage struct {
	TileSize  *uint32    `xml:"tilesize,attr"`
	BaseIndex *uint32    `xml:"baseindex,attr"`
	Levels    []xmlLevel `xml:"level"`
	xmlShapes
}

// xmlLevel declares a logical pyramid level's size and the shape(s) that
// publish its tiles.
type xmlLevel struct {
	Width  uint32 `xml:"tiledimagewidth,attr"`
	Height uint32 `xml:"tiledimageheight,attr"`
	xmlShapes
}

// xmlShapes holds every shape tag krpano recognizes; encoding/xml flattens
// this anonymous struct's tags into whichever struct embeds it, so both
// xmlImage and xmlLevel can carry shape children directly.
type xmlShapes struct {
	Cube     *xmlShape `xml:"cube"`
	Flat     *xmlShape `xml:"flat"`
	Sphere   *xmlShape `xml:"sphere"`
	Cylinder *xmlShape `xml:"cylinder"`
	Left     *xmlShape `xml:"left"`
	Right    *xmlShape `xml:"right"`
	Front    *xmlShape `xml:"front"`
	Back     *xmlShape `xml:"back"`
	Up       *xmlShape `xml:"up"`
	Down     *xmlShape `xml:"down"`
}

// xmlShape is one <cube>/<flat>/.../<down> element.
type xmlShape struct {
	URL      string  `xml:"url,attr"`
	TileSize *uint32 `xml:"tilesize,attr"`
	Multires string  `xml:"multires,attr"`
}

// side is one face of a shape's expansion: a human label and the letter
// substituted for the %s template variable.
type side struct {
	name   string
	letter string
}

var cubeSides = []side{
	{"forward", "f"},
	{"back", "b"},
	{"up", "u"},
	{"down", "d"},
	{"left", "l"},
	{"right", "r"},
}

var singleSide = []side{{"", ""}}

// shapeWithName pairs a shape element with its tag name and the side set it
// expands over.
type shapeWithName struct {
	shapeName string
	shape     xmlShape
	sides     []side
}

// entries returns every shape child present, in a fixed tag order.
func (s xmlShapes) entries() []shapeWithName {
	var out []shapeWithName
	add := func(name string, shape *xmlShape, sides []side) {
		if shape != nil {
			out = append(out, shapeWithName{shapeName: name, shape: *shape, sides: sides})
		}
	}
	add("Cube", s.Cube, cubeSides)
	add("Flat", s.Flat, singleSide)
	add("Sphere", s.Sphere, singleSide)
	add("Cylinder", s.Cylinder, singleSide)
	add("Left", s.Left, []side{{"", "l"}})
	add("Right", s.Right, []side{{"", "r"}})
	add("Front", s.Front, []side{{"", "f"}})
	add("Back", s.Back, []side{{"", "b"}})
	add("Up", s.Up, []side{{"", "u"}})
	add("Down", s.Down, []side{{"", "d"}})
	return out
}
