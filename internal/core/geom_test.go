package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 10, 6)
	if r.Right() != 13 {
		t.Errorf("Right() = %d, expected 13", r.Right())
	}
	if r.Bottom() != 10 {
		t.Errorf("Bottom() = %d, expected 10", r.Bottom())
	}
}

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name  string
		outer Rect
		w, h  int
		want  Rect
	}{
		{"even fit", NewRect(0, 0, 80, 24), 40, 22, NewRect(20, 1, 40, 22)},
		{"odd slack rounds down", NewRect(0, 0, 11, 5), 4, 2, NewRect(3, 1, 4, 2)},
		{"offset outer", NewRect(10, 5, 22, 22), 10, 5, NewRect(16, 13, 10, 5)},
		{"exact size", NewRect(2, 2, 6, 3), 6, 3, NewRect(2, 2, 6, 3)},
		{"larger than outer", NewRect(0, 0, 4, 4), 8, 8, NewRect(-2, -2, 8, 8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outer.Center(tc.w, tc.h); got != tc.want {
				t.Errorf("Center(%d, %d) = %+v, expected %+v", tc.w, tc.h, got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{24, 8, 64, 24},
		{2, 8, 64, 8},
		{100, 8, 64, 64},
		{8, 8, 64, 8},
		{64, 8, 64, 64},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, -1) != -1 || Min(-1, 3) != -1 {
		t.Error("Min should return the smaller value")
	}
	if Max(3, -1) != 3 || Max(-1, 3) != 3 {
		t.Error("Max should return the larger value")
	}
}
