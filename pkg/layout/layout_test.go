package layout

import (
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name        string
		in          Viewport
		st          State
		orientation Orientation
		bbox        int
		sidebar     int
		renderSize  int
		scrollbar   int
	}{
		{
			name: "wide desktop without scrollbar, never measured",
			in: Viewport{Width: 1440, Height: 900, Chrome: 56, OuterWidth: 1440, InnerWidth: 1440,
				ContentWidth: 1440, DPR: 1, Rem: 16},
			// contentX = 1426, contentY = 844, sidebar = floor(285.2)-16 = 269
			// bbox = min(828, 1426-269-16-1=1140) = 828
			orientation: Wide, bbox: 828, sidebar: 269, renderSize: 1024, scrollbar: 0,
		},
		{
			name: "wide with visible scrollbar",
			in: Viewport{Width: 1440, Height: 900, Chrome: 56, OuterWidth: 1440, InnerWidth: 1425,
				ContentWidth: 1425, DPR: 2, Rem: 16},
			// bbox = 828, pixels 1656 beats every ladder step
			orientation: Wide, bbox: 828, sidebar: 269, renderSize: 1920, scrollbar: 15,
		},
		{
			name: "remembered scrollbar is subtracted",
			in: Viewport{Width: 800, Height: 600, Chrome: 50, OuterWidth: 800, InnerWidth: 800,
				ContentWidth: 800, DPR: 1, Rem: 16},
			st: State{Scrollbar: 20},
			// contentX = 780, contentY = 550, sidebar = floor(max(144,156))-16 = 140
			// bbox = min(534, 780-140-17=623) = 534
			orientation: Wide, bbox: 534, sidebar: 140, renderSize: 640, scrollbar: 20,
		},
		{
			name: "narrow sidebar clamps to minimum",
			in: Viewport{Width: 600, Height: 500, Chrome: 40, OuterWidth: 600, InnerWidth: 600,
				ContentWidth: 600, DPR: 1, Rem: 16},
			// contentX = 586, contentY = 460, sidebar = 144-16 = 128
			// bbox = min(444, 586-128-17=441) = 441
			orientation: Wide, bbox: 441, sidebar: 128, renderSize: 640, scrollbar: 0,
		},
		{
			name: "tall phone",
			in: Viewport{Width: 390, Height: 844, Chrome: 56, OuterWidth: 390, InnerWidth: 390,
				ContentWidth: 390, DPR: 3, Rem: 16},
			// contentX = 376, contentY = 788, bbox = min(376, 596) = 376, pixels 1128
			orientation: Tall, bbox: 376, renderSize: 1440, scrollbar: 0,
		},
		{
			name: "dpr below one counts as one",
			in: Viewport{Width: 390, Height: 844, Chrome: 56, OuterWidth: 390, InnerWidth: 390,
				ContentWidth: 390, DPR: 0, Rem: 16},
			orientation: Tall, bbox: 376, renderSize: 640, scrollbar: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.in, tt.st)
			if got.Orientation != tt.orientation {
				t.Errorf("Orientation = %v, want %v", got.Orientation, tt.orientation)
			}
			if got.BBox != tt.bbox {
				t.Errorf("BBox = %d, want %d", got.BBox, tt.bbox)
			}
			if got.Sidebar != tt.sidebar {
				t.Errorf("Sidebar = %d, want %d", got.Sidebar, tt.sidebar)
			}
			if got.RenderSize != tt.renderSize {
				t.Errorf("RenderSize = %d, want %d", got.RenderSize, tt.renderSize)
			}
			if got.State.Scrollbar != tt.scrollbar {
				t.Errorf("State.Scrollbar = %d, want %d", got.State.Scrollbar, tt.scrollbar)
			}
		})
	}
}

func TestComputeIdempotent(t *testing.T) {
	in := Viewport{Width: 1280, Height: 720, Chrome: 56, OuterWidth: 1280, InnerWidth: 1265, ContentWidth: 1265, DPR: 1.5, Rem: 16}
	a := Compute(in, State{})
	b := Compute(in, State{})
	if a.CSS() != b.CSS() || a.BBox != b.BBox || a.State != b.State {
		t.Errorf("Compute is not idempotent: %+v vs %+v", a, b)
	}
}

func TestRenderSizeLastMatchWins(t *testing.T) {
	tests := []struct {
		bbox int
		dpr  float64
		want int
	}{
		{2000, 1, 1920},
		{1440, 1, 1920},
		{1439, 1, 1440},
		{1000, 1, 1024},
		{600, 1, 640},
		{300, 1, 350},
		{300, 2, 640},
		{10, -1, 350},
	}
	for _, tt := range tests {
		if got := RenderSize(tt.bbox, tt.dpr); got != tt.want {
			t.Errorf("RenderSize(%d, %v) = %d, want %d", tt.bbox, tt.dpr, got, tt.want)
		}
	}
}

func TestResultCSS(t *testing.T) {
	wide := Compute(Viewport{Height: 900, Chrome: 56, OuterWidth: 1440, InnerWidth: 1440, ContentWidth: 1440, DPR: 1, Rem: 16}, State{})
	css := wide.CSS()
	if !strings.Contains(css, "img.pp-bigimage { margin-bottom: 1rem !important; margin-top: 1rem !important; }\n") {
		t.Errorf("missing big image rule:\n%s", css)
	}
	if !strings.Contains(css, "div.pp-data { margin-left: 1rem; margin-top: 1rem; width: 269px; vertical-align: top; display: inline-block; }\n") {
		t.Errorf("missing sidebar rule:\n%s", css)
	}

	tall := Compute(Viewport{Height: 844, Chrome: 56, OuterWidth: 390, InnerWidth: 390, ContentWidth: 390, DPR: 1, Rem: 16}, State{})
	if strings.Contains(tall.CSS(), "pp-data") {
		t.Error("tall layout should not style the sidebar")
	}
}

func TestCurrentImage(t *testing.T) {
	tops := map[int64]float64{1: -500, 2: -81, 3: -79, 4: 300}
	top := func(id int64) (float64, bool) {
		y, ok := tops[id]
		return y, ok
	}

	if id, ok := CurrentImage([]int64{1, 2, 3, 4}, top); !ok || id != 3 {
		t.Errorf("CurrentImage() = %d, %v, want 3, true", id, ok)
	}
	if _, ok := CurrentImage([]int64{1, 99, 3}, top); ok {
		t.Error("missing image should stop tracking")
	}
	if _, ok := CurrentImage([]int64{1, 2}, top); ok {
		t.Error("no image below the threshold should report false")
	}
}
