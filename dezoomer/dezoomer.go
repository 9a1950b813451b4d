// Package dezoomer defines the shared contract every tile-source frontend
// (dzi, iiif, krpano) implements: a uniform ZoomLevel abstraction turning
// format-specific descriptor metadata into (url, pixel position) tile
// references, plus the typed error and dispatch machinery that lets a
// caller try each frontend in turn without knowing ahead of time which
// format a descriptor is in.
package dezoomer

import (
	"errors"
	"fmt"

	"github.com/gammazero/deque"

	"github.com/Harold2017/dezoomer/vec2d"
)

// TileReference is one tile of a ZoomLevel: the URL to fetch it from and the
// pixel coordinate of its top-left corner in the fully reconstructed level
// image.
type TileReference struct {
	URL      string
	Position vec2d.Vec2d
}

// ZoomLevel is one resolution of a multi-resolution image pyramid, as
// produced by any of the three frontends. Size and TileSize describe the
// level's geometry; TileURL and TileRef are the per-cell producers that
// Tiles drives to enumerate the full grid.
type ZoomLevel interface {
	// Size returns the level's pixel dimensions.
	Size() vec2d.Vec2d
	// TileSize returns the nominal tile dimensions. Tiles at the right and
	// bottom edges of the level may be narrower.
	TileSize() vec2d.Vec2d
	// TileURL returns the URL of the tile at column/row colRow.
	TileURL(colRow vec2d.Vec2d) string
	// TileRef returns the full TileReference (url + pixel position) for the
	// tile at column/row colRow.
	TileRef(colRow vec2d.Vec2d) TileReference
	// String returns a short human-readable label for the level.
	String() string
}

// TileQueue is the FIFO plan a ZoomLevel hands to whatever (out-of-scope)
// component actually downloads tiles: the core's job ends at producing this
// queue, never at draining it.
type TileQueue struct {
	d deque.Deque
}

// Len returns the number of tiles remaining in the queue.
func (q *TileQueue) Len() int {
	return q.d.Len()
}

// PopFront removes and returns the next tile reference in row-major order.
// ok is false when the queue is empty.
func (q *TileQueue) PopFront() (ref TileReference, ok bool) {
	if q.d.Len() == 0 {
		return TileReference{}, false
	}
	return q.d.PopFront().(TileReference), true
}

// All drains the queue into a plain slice, preserving row-major order. Most
// callers that just want "every tile" use this instead of popping by hand.
func (q *TileQueue) All() []TileReference {
	out := make([]TileReference, 0, q.d.Len())
	for q.d.Len() > 0 {
		out = append(out, q.d.PopFront().(TileReference))
	}
	return out
}

// Tiles enumerates every (col, row) tile of level in row-major order and
// returns the resulting queue. This is the default "all tiles of a level"
// iteration every frontend's ZoomLevel gets for free from Size/TileSize/
// TileRef.
func Tiles(level ZoomLevel) *TileQueue {
	size := level.Size()
	tileSize := level.TileSize()
	cols := size.CeilDiv(tileSize).X
	rows := size.CeilDiv(tileSize).Y
	q := &TileQueue{}
	for row := uint32(0); row < rows; row++ {
		for col := uint32(0); col < cols; col++ {
			q.d.PushBack(level.TileRef(vec2d.Vec2d{X: col, Y: row}))
		}
	}
	return q
}

// Input is what a Dezoomer consumes: the URI the descriptor was retrieved
// from (used as the base for relative URL resolution, and as the fallback
// stem for DZI's "_files" derivation) and the raw descriptor bytes.
type Input struct {
	URI      string
	Contents []byte
}

// Error is the error type every frontend funnels its failures into. When
// NotMyFormat is true, the frontend could not even recognize the descriptor
// as its format (so a dispatcher should try the next frontend); when false,
// the descriptor was recognized but malformed.
type Error struct {
	Frontend    string
	NotMyFormat bool
	Cause       error
}

func (e *Error) Error() string {
	if e.NotMyFormat {
		return fmt.Sprintf("%s: not a recognized descriptor: %v", e.Frontend, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Frontend, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError wraps cause as a malformed-descriptor error from frontend.
func NewError(frontend string, cause error) *Error {
	return &Error{Frontend: frontend, Cause: cause}
}

// NewNotMyFormatError wraps cause as a "not my format" error from frontend.
func NewNotMyFormatError(frontend string, cause error) *Error {
	return &Error{Frontend: frontend, NotMyFormat: true, Cause: cause}
}

// Dezoomer is the uniform entry point every frontend implements.
type Dezoomer interface {
	// Name is the frontend's short identifier, e.g. "deepzoom", "iiif", "krpano".
	Name() string
	// ZoomLevels attempts to parse input as this frontend's format and
	// produce its zoom levels, in the order the descriptor declares them
	// (for DZI, from full resolution down to 1x1).
	ZoomLevels(input Input) ([]ZoomLevel, error)
}

// Dispatch tries every dezoomer in order against input and returns the
// levels produced by the first one that recognizes the format. If every
// dezoomer reports NotMyFormat, the last such error is returned; a
// recognized-but-malformed error (NotMyFormat == false) is returned
// immediately, since further frontends are assumed to not apply either once
// one dezoomer has positively identified the format.
func Dispatch(dezoomers []Dezoomer, input Input) ([]ZoomLevel, error) {
	var lastNotMyFormat error
	for _, d := range dezoomers {
		levels, err := d.ZoomLevels(input)
		if err == nil {
			return levels, nil
		}
		var dzErr *Error
		if errors.As(err, &dzErr) && dzErr.NotMyFormat {
			lastNotMyFormat = err
			continue
		}
		return nil, err
	}
	if lastNotMyFormat != nil {
		return nil, lastNotMyFormat
	}
	return nil, nil
}
