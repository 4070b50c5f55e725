package layout

import "testing"

func TestFitBox(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		b    int
		want Fit
	}{
		{"landscape", 1920, 1080, 192, Fit{Width: 192, Height: 108, Margins: Margins{Top: 42, Bottom: 42}}},
		{"portrait", 1080, 1920, 192, Fit{Width: 108, Height: 192, Margins: Margins{Left: 42, Right: 42}}},
		{"square", 500, 500, 100, Fit{Width: 100, Height: 100}},
		{"odd margin floors", 3, 2, 10, Fit{Width: 10, Height: 6, Margins: Margins{Top: 2, Bottom: 2}}},
		{"tiny short side", 1000, 1, 100, Fit{Width: 100, Height: 0, Margins: Margins{Top: 50, Bottom: 50}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitBox(tt.w, tt.h, tt.b); got != tt.want {
				t.Errorf("FitBox(%d, %d, %d) = %+v, want %+v", tt.w, tt.h, tt.b, got, tt.want)
			}
		})
	}
}

func TestFitImage(t *testing.T) {
	img := FitImage(42, 1920, 1080, 640, 1024, true)
	if img.URL != "/img/1024/42.jpg" {
		t.Errorf("URL = %q", img.URL)
	}
	if img.Width != 640 || img.Height != 360 || img.NativeWidth != 1920 || !img.CanEdit {
		t.Errorf("FitImage() = %+v", img)
	}
}

func TestSlideAndThumbnail(t *testing.T) {
	if SlideBBox != 138 || SlidePadding != 26 {
		t.Fatalf("slide constants = %d/%d, want 138/26", SlideBBox, SlidePadding)
	}
	s := Slide(7, 3000, 2000, false)
	if s.Width != 138 || s.Height != 92 || s.Margins.Top != 23 || s.URL != "/img/350/7.jpg" {
		t.Errorf("Slide() = %+v", s)
	}
	th := Thumbnail(8, 600, 800)
	if th.Height != 192 || th.Width != 144 || th.URL != "/img/192/8.jpg" {
		t.Errorf("Thumbnail() = %+v", th)
	}
}
