package gallery

import (
	"testing"

	"github.com/matzehuels/photogrid/pkg/errors"
)

func TestParseFragment(t *testing.T) {
	tests := []struct {
		frag    string
		want    BrowseQuery
		param   string
		value   string
		wantErr bool
	}{
		{frag: "#dr", want: BrowseQuery{Mode: "r"}, param: "mode", value: "r"},
		{frag: "#dm", want: BrowseQuery{Mode: "m"}, param: "mode", value: "m"},
		{frag: "#dp", want: BrowseQuery{Mode: "p"}, param: "mode", value: "p"},
		{frag: "#dl12", want: BrowseQuery{Mode: "l", ID: "12"}, param: "id", value: "12"},
		{frag: "dl", want: BrowseQuery{Mode: "l"}, param: "mode", value: "l"},
		{frag: "#ddd2019-03-01", want: BrowseQuery{Mode: "d", Sub: "d", Arg: "2019-03-01"}, param: "date", value: "2019-03-01"},
		{frag: "#ddm2019-03", want: BrowseQuery{Mode: "d", Sub: "m", Arg: "2019-03"}, param: "month", value: "2019-03"},
		{frag: "#ddp7", want: BrowseQuery{Mode: "d", Sub: "p", Arg: "7"}, param: "person", value: "7"},
		{frag: "#ddtsummer trip", want: BrowseQuery{Mode: "d", Sub: "t", Arg: "summer trip"}, param: "tag", value: "summer trip"},
		{frag: "#ddn", want: BrowseQuery{Mode: "d", Sub: "n"}, param: "new", value: "1"},

		{frag: "#t", wantErr: true},
		{frag: "#d", wantErr: true},
		{frag: "#dx", wantErr: true},
		{frag: "#dd", wantErr: true},
		{frag: "#ddz1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.frag, func(t *testing.T) {
			got, err := ParseFragment(tt.frag)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFragment) {
					t.Errorf("ParseFragment(%q) error = %v, want INVALID_FRAGMENT", tt.frag, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFragment(%q) error: %v", tt.frag, err)
			}
			if got != tt.want {
				t.Errorf("ParseFragment(%q) = %+v, want %+v", tt.frag, got, tt.want)
			}
			if v := got.Values().Get(tt.param); v != tt.value {
				t.Errorf("Values()[%q] = %q, want %q", tt.param, v, tt.value)
			}
		})
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	for _, frag := range []string{"#dr", "#dl3", "#ddd2020-01-01", "#ddn", "#ddt2019"} {
		q, err := ParseFragment(frag)
		if err != nil {
			t.Fatalf("ParseFragment(%q): %v", frag, err)
		}
		if got := q.Fragment(); got != frag {
			t.Errorf("Fragment() = %q, want %q", got, frag)
		}
	}
}
