package pixel

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMonoImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewMonoImage(size.X, size.Y)
	}, MonoModel)
}

func TestMonoVerticalLSBImageImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewMonoVerticalLSBImage(size.X, size.Y)
	}, MonoModel)
}

func TestMonoImageLayout(t *testing.T) {
	i := NewMonoImage(12, 2)
	if i.Stride != 2 {
		t.Fatalf("expected stride 2, got %d", i.Stride)
	}
	i.SetBit(0, 0, Foreground)
	i.SetBit(9, 0, Foreground)
	i.SetBit(7, 1, Foreground)
	if diff := cmp.Diff([]byte{0x80, 0x40, 0x01, 0x00}, i.Pix); diff != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", diff)
	}
}

func TestMonoVerticalLSBImageLayout(t *testing.T) {
	i := NewMonoVerticalLSBImage(4, 16)
	if v := i.Pages(); v != 2 {
		t.Fatalf("expected 2 pages, got %d", v)
	}
	i.SetBit(0, 0, Foreground)
	i.SetBit(1, 7, Foreground)
	i.SetBit(2, 8, Foreground)
	i.SetBit(3, 15, Foreground)
	if diff := cmp.Diff([]byte{0x01, 0x80, 0x00, 0x00, 0x00, 0x00, 0x01, 0x80}, i.Pix); diff != "" {
		t.Errorf("unexpected pixels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0x00, 0x00, 0x01, 0x80}, i.Page(1)); diff != "" {
		t.Errorf("unexpected page 1 (-want +got):\n%s", diff)
	}
	if v := i.Page(2); v != nil {
		t.Errorf("expected nil for page out of range, got %v", v)
	}
}

func TestSetBitModes(t *testing.T) {
	for _, f := range []func() Image{
		func() Image { return NewMonoImage(16, 16) },
		func() Image { return NewMonoVerticalLSBImage(16, 16) },
	} {
		i := f()
		t.Run("", func(it *testing.T) {
			i.SetBit(3, 5, Foreground)
			if !i.Bit(3, 5) {
				it.Fatal("expected pixel to be set")
			}
			i.SetBit(3, 5, Background)
			if i.Bit(3, 5) {
				it.Fatal("expected pixel to be cleared")
			}
			i.SetBit(3, 5, Invert)
			i.SetBit(3, 5, Invert)
			if i.Bit(3, 5) {
				it.Fatal("expected double invert to restore the pixel")
			}
			i.SetBit(-1, 5, Foreground)
			i.SetBit(16, 5, Foreground)
			if i.Bit(-1, 5) || i.Bit(16, 5) {
				it.Fatal("expected out of bounds bits to be unset")
			}
		})
	}
}

func TestWrap(t *testing.T) {
	pix := make([]byte, 16)
	v, err := WrapMonoVerticalLSBImage(pix, 8, 16)
	if err != nil {
		t.Fatal(err)
	}
	v.SetBit(1, 9, Foreground)
	if pix[9] != 0x02 {
		t.Errorf("expected shared storage to be written, got %#02x", pix[9])
	}

	h, err := WrapMonoImage(pix[:2], 16, 1)
	if err != nil {
		t.Fatal(err)
	}
	h.SetBit(0, 0, Foreground)
	if pix[0] != 0x80 {
		t.Errorf("expected shared storage to be written, got %#02x", pix[0])
	}

	if _, err = WrapMonoImage(pix[:1], 16, 1); !errors.Is(err, ErrBufferSize) {
		t.Errorf("expected ErrBufferSize, got %v", err)
	}
	if _, err = WrapMonoVerticalLSBImage(pix, 8, 24); !errors.Is(err, ErrBufferSize) {
		t.Errorf("expected ErrBufferSize, got %v", err)
	}
	for _, size := range [][2]int{{-8, 8}, {8, -8}} {
		if _, err = WrapMonoImage(pix, size[0], size[1]); !errors.Is(err, ErrBufferSize) {
			t.Errorf("%dx%d: expected ErrBufferSize, got %v", size[0], size[1], err)
		}
		if _, err = WrapMonoVerticalLSBImage(pix, size[0], size[1]); !errors.Is(err, ErrBufferSize) {
			t.Errorf("%dx%d: expected ErrBufferSize, got %v", size[0], size[1], err)
		}
	}
}

func TestInvert(t *testing.T) {
	i := NewMonoVerticalLSBImage(8, 8)
	i.SetBit(0, 0, Foreground)
	i.Invert()
	if i.Bit(0, 0) || !i.Bit(1, 0) {
		t.Errorf("expected all bits to be toggled")
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(128, 64),
		image.Pt(256, 32),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("in-bounds-matching-model", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := model.Convert(testRandomColor())
						i.Set(x, y, c)
						if i.At(x, y) != c {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, i.At(x, y), c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := monoModel(i.At(x, y)); v != Off {
						itt.Fatalf("pixel (%d,%d) is not black", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
