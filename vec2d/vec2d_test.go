package vec2d

import "testing"

func TestSubSaturates(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2d
		want Vec2d
	}{
		{"no underflow", Vec2d{5, 5}, Vec2d{2, 2}, Vec2d{3, 3}},
		{"x underflows", Vec2d{0, 5}, Vec2d{2, 2}, Vec2d{0, 3}},
		{"both underflow", Vec2d{0, 0}, Vec2d{2, 2}, Vec2d{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Sub(tt.b); got != tt.want {
				t.Errorf("%v.Sub(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b, want Vec2d
	}{
		{Vec2d{600, 300}, Vec2d{256, 256}, Vec2d{3, 2}},
		{Vec2d{512, 512}, Vec2d{256, 256}, Vec2d{2, 2}},
		{Vec2d{1, 1}, Vec2d{2, 2}, Vec2d{1, 1}},
	}
	for _, tt := range tests {
		if got := tt.a.CeilDiv(tt.b); got != tt.want {
			t.Errorf("%v.CeilDiv(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// CeilDiv(a,b) * b is always >= a and < a + b, component-wise.
func TestCeilDivBounds(t *testing.T) {
	sizes := []Vec2d{{600, 300}, {1, 1}, {257, 1}, {15001, 48002}}
	tileSizes := []Vec2d{{256, 256}, {1, 1}, {512, 512}}
	for _, size := range sizes {
		for _, tile := range tileSizes {
			n := size.CeilDiv(tile)
			covered := n.Mul(tile)
			if covered.X < size.X || covered.Y < size.Y {
				t.Errorf("CeilDiv(%v,%v) under-covers: %v*%v = %v", size, tile, n, tile, covered)
			}
			bound := size.Add(tile)
			if covered.X >= bound.X || covered.Y >= bound.Y {
				t.Errorf("CeilDiv(%v,%v) over-covers: %v*%v = %v >= %v", size, tile, n, tile, covered, bound)
			}
		}
	}
}

func TestDisplay(t *testing.T) {
	if got := (Vec2d{3, 4}).String(); got != "x=3 y=4" {
		t.Errorf("String() = %q, want %q", got, "x=3 y=4")
	}
}

func TestMinMax(t *testing.T) {
	a, b := Vec2d{1, 9}, Vec2d{5, 2}
	if got, want := a.Min(b), (Vec2d{1, 2}); got != want {
		t.Errorf("Min = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec2d{5, 9}); got != want {
		t.Errorf("Max = %v, want %v", got, want)
	}
}
