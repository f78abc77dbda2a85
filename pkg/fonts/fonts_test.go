package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFace(t *testing.T) {
	for _, w := range []Weight{Regular, Bold, Weight(7)} {
		f, err := Face(w, 14)
		if err != nil {
			t.Fatalf("Face(%d) error = %v", w, err)
		}
		if adv := font.MeasureString(f, "radar"); adv <= 0 {
			t.Errorf("Face(%d) measured %v for non-empty text", w, adv)
		}
	}
}

func TestBoldIsWider(t *testing.T) {
	reg, _ := Face(Regular, 14)
	bold, _ := Face(Bold, 14)
	if font.MeasureString(bold, "Platforms") <= font.MeasureString(reg, "Platforms") {
		t.Error("bold face should measure wider than regular")
	}
}
