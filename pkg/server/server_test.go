package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photogrid/pkg/batch"
	"github.com/matzehuels/photogrid/pkg/layout"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(Options{Logger: log.New(io.Discard)}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string, v any) int {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

const viewportBody = `{"viewport":{"width":1280,"height":800,"chrome":56,
	"outer_width":1280,"inner_width":1280,"content_width":1280,"dpr":1,"rem":16}}`

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body healthResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode != http.StatusOK || body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("healthz = %d %v", resp.StatusCode, body)
	}
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t)

	var first layoutResponse
	for i := 0; i < 2; i++ {
		var res layoutResponse
		if code := post(t, srv, "/api/layout", viewportBody, &res); code != http.StatusOK {
			t.Fatalf("status = %d", code)
		}
		if res.Orientation != layout.Wide || res.BBox != 728 || res.Sidebar != 237 || res.RenderSize != 1024 {
			t.Errorf("layout = %+v", res.Result)
		}
		if !strings.Contains(res.CSS, "div.pp-data") {
			t.Errorf("css = %q", res.CSS)
		}
		if i == 0 {
			first = res
		} else if !reflect.DeepEqual(res, first) {
			t.Error("the same viewport should give the same layout")
		}
	}
}

func TestLayoutRejectsBadViewport(t *testing.T) {
	srv := newTestServer(t)
	var e errorResponse
	code := post(t, srv, "/api/layout", `{"viewport":{"width":0}}`, &e)
	if code != http.StatusBadRequest || e.Code != "INVALID_INPUT" {
		t.Errorf("bad viewport = %d %+v", code, e)
	}
	code = post(t, srv, "/api/layout", `{`, &e)
	if code != http.StatusBadRequest {
		t.Errorf("malformed body = %d", code)
	}
}

func TestFit(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name, body string
		want       layout.Image
	}{
		{
			name: "box",
			body: `{"id":7,"width":400,"height":300,"box":200}`,
			want: layout.FitImage(7, 400, 300, 200, 350, false),
		},
		{
			name: "thumbnail",
			body: `{"id":3,"width":300,"height":600}`,
			want: layout.Thumbnail(3, 300, 600),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got layout.Image
			if code := post(t, srv, "/api/fit", tt.body, &got); code != http.StatusOK {
				t.Fatalf("status = %d", code)
			}
			if got != tt.want {
				t.Errorf("fit = %+v, want %+v", got, tt.want)
			}
		})
	}

	var slide layout.SlideImage
	post(t, srv, "/api/fit", `{"id":1,"width":36,"height":24,"slide":true}`, &slide)
	if slide.Frame != layout.SlideFrame || slide.URL != "/img/350/1.jpg" {
		t.Errorf("slide = %+v", slide)
	}
}

func TestSpy(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		body string
		want spyResponse
	}{
		{"first below threshold", `{"ids":[1,2,3],"tops":{"1":-500,"2":-79,"3":300}}`, spyResponse{ID: 2, Found: true}},
		{"all scrolled past", `{"ids":[1,2],"tops":{"1":-900,"2":-400}}`, spyResponse{}},
		{"page changed", `{"ids":[1,2],"tops":{"2":10}}`, spyResponse{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got spyResponse
			if code := post(t, srv, "/api/spy", tt.body, &got); code != http.StatusOK {
				t.Fatalf("status = %d", code)
			}
			if got != tt.want {
				t.Errorf("spy = %+v, want %+v", got, tt.want)
			}
		})
	}
	if code := post(t, srv, "/api/spy", `{"ids":[]}`, nil); code != http.StatusBadRequest {
		t.Errorf("empty ids = %d", code)
	}
}

const picturesJSON = `[
	{"id":1,"cap":"a","wid":10,"hgt":10,"tag":[{"id":5,"txt":"sea","act":true}]},
	{"id":2,"cap":"a","wid":10,"hgt":10}
]`

func TestBatchSummary(t *testing.T) {
	srv := newTestServer(t)
	var st batch.State
	if code := post(t, srv, "/api/batch/summary", `{"pictures":`+picturesJSON+`}`, &st); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if st.Count != 2 || st.Scalars["cap"].Last != "a" || st.Scalars["cap"].Varies {
		t.Errorf("state = %+v", st)
	}
	if len(st.Tags) != 1 || !st.Tags[0].Varies {
		t.Errorf("tags = %+v", st.Tags)
	}

	var e errorResponse
	if code := post(t, srv, "/api/batch/summary", `{"pictures":[]}`, &e); code != http.StatusBadRequest {
		t.Errorf("empty selection = %d", code)
	}
}

func TestBatchUpdates(t *testing.T) {
	srv := newTestServer(t)
	body := `{"pictures":` + picturesJSON + `,"edits":{"scalars":{"cap":"b"},
		"toggles":[{"kind":"tag","id":5,"pending":"add"}]}}`
	var res updatesResponse
	if code := post(t, srv, "/api/batch/updates", body, &res); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var got []string
	for _, c := range res.Commands {
		got = append(got, c.String())
	}
	want := `img=1 cap="b"|img=1 tag="5"|img=2 cap="b"|img=2 tag="5"`
	if strings.Join(got, "|") != want {
		t.Errorf("commands = %v", got)
	}

	var e errorResponse
	bad := `{"pictures":` + picturesJSON + `,"edits":{"scalars":{"xyz":"1"}}}`
	if code := post(t, srv, "/api/batch/updates", bad, &e); code != http.StatusBadRequest || e.Code != "INVALID_FIELD" {
		t.Errorf("unknown field = %d %+v", code, e)
	}
}

func TestRecovery(t *testing.T) {
	h := recovery(log.New(io.Discard))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestListenAndServeStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := New(Options{Logger: log.New(io.Discard)})
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() = %v", err)
	}
}
