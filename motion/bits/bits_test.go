package bits

import "testing"

func TestSetUnsetBit(t *testing.T) {
	v := SetBit(0, 0)
	v = SetBit(v, 3)
	if v != 0b1001 {
		t.Fatalf("SetBit() = %b, want 1001", v)
	}
	if !HasBit(v, 3) || HasBit(v, 1) {
		t.Fatalf("HasBit() wrong for %b", v)
	}
	if v = UnsetBit(v, 0); v != 0b1000 {
		t.Fatalf("UnsetBit() = %b, want 1000", v)
	}
	if v = UnsetBit(v, 5); v != 0b1000 {
		t.Fatalf("UnsetBit() on clear bit = %b, want 1000", v)
	}
}

func TestWidth(t *testing.T) {
	tests := []struct{ limit, want uint }{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {256, 8},
	}
	for _, tt := range tests {
		if got := width(tt.limit); got != tt.want {
			t.Fatalf("width(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestAppendReadValue(t *testing.T) {
	// Two 3-bit fields (max 7) behind a 2-bit field (max 3).
	v := AppendValue(0, 2, 3)
	v = AppendValue(v, 5, 7)
	v = AppendValue(v, 6, 7)

	if got := ReadValue(v, 0, 7); got != 6 {
		t.Fatalf("ReadValue(0) = %d, want 6", got)
	}
	if got := ReadValue(v, 3, 7); got != 5 {
		t.Fatalf("ReadValue(3) = %d, want 5", got)
	}
	if got := ReadValue(v, 6, 3); got != 2 {
		t.Fatalf("ReadValue(6) = %d, want 2", got)
	}
}
