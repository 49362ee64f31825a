package bsp

import "testing"

func TestByteViewBoundsChecking(t *testing.T) {
	v := newByteView(make([]byte, 4))

	if _, ok := v.u32(0); !ok {
		t.Error("u32(0) on a 4-byte buffer should fit")
	}
	if _, ok := v.u32(1); ok {
		t.Error("u32(1) on a 4-byte buffer should not fit")
	}
	if ok := v.putU16(3, 1); ok {
		t.Error("putU16(3) on a 4-byte buffer should not fit")
	}
}

func TestByteViewFloat32RoundTrip(t *testing.T) {
	v := newByteView(make([]byte, 4))
	v.putF32(0, 3.5)
	got, ok := v.f32(0)
	if !ok || got != 3.5 {
		t.Errorf("f32 round trip = (%v, %v), want (3.5, true)", got, ok)
	}
}

func TestPad4(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
		want int
	}{
		{"Empty", nil, 0},
		{"AlreadyAligned", make([]byte, 8), 8},
		{"NeedsOneByte", make([]byte, 7), 8},
		{"NeedsThreeBytes", make([]byte, 5), 8},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := pad4(tc.in)
			if len(got) != tc.want {
				t.Errorf("pad4(len %d) has len %d, want %d", len(tc.in), len(got), tc.want)
			}
		})
	}
}
