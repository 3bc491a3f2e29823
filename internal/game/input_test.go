package game

import "testing"

func keyFor(d Direction) Key {
	switch d {
	case Up:
		return KeyUp
	case Down:
		return KeyDown
	case Left:
		return KeyLeft
	case Right:
		return KeyRight
	}
	return KeyOther
}

// TestMapKeyAntiReversal checks every (pressed, last) pair: only the exact
// reverse of last is rejected.
func TestMapKeyAntiReversal(t *testing.T) {
	dirs := []Direction{Up, Down, Left, Right}

	for _, d := range dirs {
		for _, last := range dirs {
			t.Run(d.String()+"_after_"+last.String(), func(t *testing.T) {
				got, ok := MapKey(keyFor(d), last)
				wantReject := d == last.Opposite()

				if ok == wantReject {
					t.Fatalf("MapKey(%s, last=%s) ok=%v, want %v", keyFor(d), last, ok, !wantReject)
				}
				if ok && got != d {
					t.Errorf("Expected %s, got %s", d, got)
				}
			})
		}
	}
}

func TestMapKeyNonArrow(t *testing.T) {
	for _, key := range []Key{KeyOther, KeySpace, KeyEscape} {
		if _, ok := MapKey(key, Right); ok {
			t.Errorf("Non-arrow key %s should map to no change", key)
		}
	}
}

func TestMapKeySameDirection(t *testing.T) {
	got, ok := MapKey(KeyRight, Right)
	if !ok || got != Right {
		t.Errorf("Pressing the current direction should re-confirm it, got %s ok=%v", got, ok)
	}
}

func TestIsRestartKey(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		gameOver bool
		want     bool
	}{
		{"space after death", KeySpace, true, true},
		{"space while running", KeySpace, false, false},
		{"arrow after death", KeyUp, true, false},
		{"escape after death", KeyEscape, true, false},
		{"other while running", KeyOther, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRestartKey(tt.key, tt.gameOver); got != tt.want {
				t.Errorf("IsRestartKey(%s, %v) = %v, want %v", tt.key, tt.gameOver, got, tt.want)
			}
		})
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := [][2]Direction{{Up, Down}, {Left, Right}}
	for _, p := range pairs {
		if p[0].Opposite() != p[1] || p[1].Opposite() != p[0] {
			t.Errorf("%s and %s should be opposites", p[0], p[1])
		}
	}
}
