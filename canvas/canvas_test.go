package canvas

import "testing"

func TestSaveRestoreTranslate(t *testing.T) {
	c := &Canvas{}
	c.Translate(10, 20)
	c.Save()
	c.Translate(5, 5)
	if c.tx != 15 || c.ty != 25 {
		t.Fatalf("got %v,%v", c.tx, c.ty)
	}
	c.Restore()
	if c.tx != 10 || c.ty != 20 {
		t.Fatalf("got %v,%v", c.tx, c.ty)
	}
}

func TestRestoreOnEmptyStackIsNoop(t *testing.T) {
	c := &Canvas{}
	c.Translate(1, 1)
	c.Restore()
	if c.tx != 1 || c.ty != 1 {
		t.Fatalf("got %v,%v", c.tx, c.ty)
	}
}

func TestToNRGBAClamps(t *testing.T) {
	got := toNRGBA(Color{R: 2, G: -1, B: 0.5, A: 1})
	if got.R != 255 || got.G != 0 || got.B != 127 || got.A != 255 {
		t.Fatalf("got %+v", got)
	}
}

func TestBlendModeDefaultsToSourceOver(t *testing.T) {
	b := BlendMode(999)
	if b.ebitenBlend() != (BlendSourceOver.ebitenBlend()) {
		t.Fatal("expected unknown blend mode to fall back to source-over")
	}
}
