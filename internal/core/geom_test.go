package core

import "testing"

func TestRectClip(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside", NewRect(2, 2, 3, 3), NewRect(2, 2, 3, 3)},
		{"overhang right and bottom", NewRect(8, 4, 5, 5), NewRect(8, 4, 2, 2)},
		{"overhang left and top", NewRect(-2, -1, 4, 3), NewRect(0, 0, 2, 2)},
		{"fully outside", NewRect(12, 1, 3, 3), NewRect(12, 1, 0, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Clip(10, 6)
			if got.W > 0 && got.H > 0 && got != tc.want {
				t.Errorf("Clip(%+v) = %+v, want %+v", tc.in, got, tc.want)
			}
			if got.Empty() != (tc.want.W <= 0 || tc.want.H <= 0) {
				t.Errorf("Clip(%+v).Empty() = %v", tc.in, got.Empty())
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{0.5, 0.5},
		{1.2, 1},
		{-0.01, 0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.v, 0, 1); got != tc.want {
			t.Errorf("ClampF(%v, 0, 1) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionRight)
	f.Set(ActionLeft)

	if !f.Has(ActionRight) || f.Has(ActionPause) {
		t.Error("Has() should report recorded actions only")
	}
	want := []Action{ActionLeft, ActionRight, ActionLeft}
	for i, a := range want {
		if f.Actions[i] != a {
			t.Errorf("action %d = %v, expected %v", i, f.Actions[i], a)
		}
	}

	f.Clear()
	if len(f.Actions) != 0 {
		t.Error("Clear() should drop actions")
	}
}
