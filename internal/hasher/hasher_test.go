package hasher

import "testing"

func TestContentHash(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		// xxHash64 of the empty input with seed 0.
		{"empty", "", "ef46db3751d8e999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentHash([]byte(tt.data)); got != tt.want {
				t.Errorf("ContentHash: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestContentHash_Distinct(t *testing.T) {
	a := ContentHash([]byte("image-a"))
	b := ContentHash([]byte("image-b"))
	if a == b {
		t.Errorf("different inputs hashed to the same value %s", a)
	}
	if len(a) != 16 {
		t.Errorf("length: got %d, want 16", len(a))
	}
}

