package dezoomer

import (
	"errors"
	"testing"

	"github.com/Harold2017/dezoomer/vec2d"
)

// fakeLevel is a trivial ZoomLevel used to exercise Tiles() independent of
// any real frontend.
type fakeLevel struct {
	size, tileSize vec2d.Vec2d
}

func (f fakeLevel) Size() vec2d.Vec2d     { return f.size }
func (f fakeLevel) TileSize() vec2d.Vec2d { return f.tileSize }
func (f fakeLevel) TileURL(pos vec2d.Vec2d) string {
	return pos.String()
}
func (f fakeLevel) TileRef(pos vec2d.Vec2d) TileReference {
	return TileReference{URL: f.TileURL(pos), Position: f.tileSize.Mul(pos)}
}
func (f fakeLevel) String() string { return "fake" }

// Tiles().Len() is the product of the per-axis tile counts.
func TestTilesCount(t *testing.T) {
	level := fakeLevel{size: vec2d.Vec2d{X: 600, Y: 300}, tileSize: vec2d.Vec2d{X: 256, Y: 256}}
	all := Tiles(level).All()
	want := int(level.size.CeilDiv(level.tileSize).X) * int(level.size.CeilDiv(level.tileSize).Y)
	if len(all) != want {
		t.Errorf("len(All()) = %d, want %d", len(all), want)
	}
}

// TileRef(col,row).Position is component-wise monotonically non-decreasing
// in col and row.
func TestTilePositionsMonotonic(t *testing.T) {
	level := fakeLevel{size: vec2d.Vec2d{X: 600, Y: 300}, tileSize: vec2d.Vec2d{X: 256, Y: 256}}
	all := Tiles(level).All()
	cols := int(level.size.CeilDiv(level.tileSize).X)
	for i := 1; i < len(all); i++ {
		sameRow := i%cols != 0
		if sameRow && all[i].Position.X < all[i-1].Position.X {
			t.Errorf("tile %d x position decreased: %v -> %v", i, all[i-1].Position, all[i].Position)
		}
		if !sameRow && all[i].Position.Y < all[i-cols].Position.Y {
			t.Errorf("tile %d y position decreased across rows", i)
		}
	}
}

func TestTileQueuePopFront(t *testing.T) {
	level := fakeLevel{size: vec2d.Vec2d{X: 2, Y: 1}, tileSize: vec2d.Vec2d{X: 1, Y: 1}}
	q := Tiles(level)
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	first, ok := q.PopFront()
	if !ok || first.Position != (vec2d.Vec2d{X: 0, Y: 0}) {
		t.Errorf("first tile = %+v, ok=%v", first, ok)
	}
	second, ok := q.PopFront()
	if !ok || second.Position != (vec2d.Vec2d{X: 1, Y: 0}) {
		t.Errorf("second tile = %+v, ok=%v", second, ok)
	}
	if _, ok := q.PopFront(); ok {
		t.Error("PopFront on empty queue returned ok=true")
	}
}

type stubDezoomer struct {
	name   string
	levels []ZoomLevel
	err    error
}

func (s stubDezoomer) Name() string { return s.name }
func (s stubDezoomer) ZoomLevels(Input) ([]ZoomLevel, error) {
	return s.levels, s.err
}

func TestDispatchSkipsNotMyFormat(t *testing.T) {
	wantLevels := []ZoomLevel{fakeLevel{}}
	dezoomers := []Dezoomer{
		stubDezoomer{name: "a", err: NewNotMyFormatError("a", errors.New("nope"))},
		stubDezoomer{name: "b", levels: wantLevels},
	}
	levels, err := Dispatch(dezoomers, Input{})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(levels) != 1 {
		t.Errorf("Dispatch() returned %d levels, want 1", len(levels))
	}
}

func TestDispatchStopsOnMalformed(t *testing.T) {
	dezoomers := []Dezoomer{
		stubDezoomer{name: "a", err: NewError("a", errors.New("bad xml"))},
		stubDezoomer{name: "b", levels: []ZoomLevel{fakeLevel{}}},
	}
	_, err := Dispatch(dezoomers, Input{})
	var dzErr *Error
	if !errors.As(err, &dzErr) || dzErr.NotMyFormat {
		t.Fatalf("Dispatch() error = %v, want a malformed (non-NotMyFormat) *Error", err)
	}
}

func TestDispatchAllNotMyFormat(t *testing.T) {
	dezoomers := []Dezoomer{
		stubDezoomer{name: "a", err: NewNotMyFormatError("a", errors.New("nope"))},
		stubDezoomer{name: "b", err: NewNotMyFormatError("b", errors.New("nope either"))},
	}
	_, err := Dispatch(dezoomers, Input{})
	var dzErr *Error
	if !errors.As(err, &dzErr) || !dzErr.NotMyFormat {
		t.Fatalf("Dispatch() error = %v, want a NotMyFormat *Error", err)
	}
}
