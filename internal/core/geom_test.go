package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if r.Right() != 6 || r.Bottom() != 8 {
		t.Errorf("Right, Bottom = %d, %d, expected 6, 8", r.Right(), r.Bottom())
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
		empty    bool
	}{
		{"inside", NewRect(0, 0, 10, 10), NewRect(2, 2, 3, 3), NewRect(2, 2, 3, 3), false},
		{"partial", NewRect(0, 0, 10, 10), NewRect(5, 8, 10, 10), NewRect(5, 8, 5, 2), false},
		{"negative origin", NewRect(-3, -2, 5, 5), NewRect(0, 0, 10, 10), NewRect(0, 0, 2, 3), false},
		{"touching", NewRect(0, 0, 5, 5), NewRect(5, 0, 5, 5), Rect{}, true},
		{"separate", NewRect(0, 0, 2, 2), NewRect(7, 7, 2, 2), Rect{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Intersect(tc.b)
			if got.Empty() != tc.empty {
				t.Fatalf("Intersect() = %+v, Empty() = %v, expected %v", got, got.Empty(), tc.empty)
			}
			if !tc.empty && got != tc.expected {
				t.Errorf("Intersect() = %+v, expected %+v", got, tc.expected)
			}
			if reverse := tc.b.Intersect(tc.a); reverse.Empty() != tc.empty || (!tc.empty && reverse != got) {
				t.Errorf("Intersect() (reversed) = %+v, expected %+v", reverse, got)
			}
		})
	}
}

func TestRectFUnion(t *testing.T) {
	a := NewRectF(0, 0, 10, 10)
	b := a.Translate(5, -3)

	u := a.Union(b)
	if u.X != 0 || u.Y != -3 || u.Right() != 15 || u.Bottom() != 10 {
		t.Errorf("Union() = %+v, expected (0,-3) to (15,10)", u)
	}

	cx, cy := a.Center()
	if cx != 5 || cy != 5 {
		t.Errorf("Center() = (%v, %v), expected (5, 5)", cx, cy)
	}
}

func TestRectFTranslate(t *testing.T) {
	r := NewRectF(1.5, 2, 3, 4).Translate(-0.5, 0.25)
	if r.X != 1 || r.Y != 2.25 || r.W != 3 || r.H != 4 {
		t.Errorf("Translate() = %+v", r)
	}
}
