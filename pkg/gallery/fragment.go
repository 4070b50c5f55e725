package gallery

import (
	"net/url"
	"strings"

	"github.com/matzehuels/photogrid/pkg/errors"
)

// Browse modes understood by the browse endpoint.
const (
	ModeRecent   = "r"
	ModeMonth    = "m"
	ModeLocation = "l"
	ModePerson   = "p"
	ModeNew      = "n"
	ModeDetail   = "d"
)

// Detail submodes, selecting which pictures a "d" browse returns.
const (
	SubDate   = "d"
	SubMonth  = "m"
	SubPerson = "p"
	SubTag    = "t"
	SubNew    = "n"
)

// BrowseQuery is what a "#d..." fragment asks the browse endpoint for.
type BrowseQuery struct {
	Mode string
	// Sub and Arg are only set for detail browses.
	Sub string
	Arg string
	// ID is the location root for location browses; empty means the top.
	ID string
}

// ParseFragment parses a browse fragment such as "#dr", "#dl12" or
// "#ddt2019 trip". The leading '#' is optional.
func ParseFragment(frag string) (BrowseQuery, error) {
	frag = strings.TrimPrefix(frag, "#")
	if !strings.HasPrefix(frag, "d") || len(frag) < 2 {
		return BrowseQuery{}, errors.New(errors.ErrCodeInvalidFragment, "not a browse fragment: %q", frag)
	}
	q := BrowseQuery{Mode: frag[1:2]}
	switch q.Mode {
	case ModeLocation:
		q.ID = frag[2:]
	case ModeRecent, ModeMonth, ModePerson:
	case ModeDetail:
		if len(frag) < 3 {
			return BrowseQuery{}, errors.New(errors.ErrCodeInvalidFragment, "detail fragment has no submode: %q", frag)
		}
		q.Sub = frag[2:3]
		q.Arg = frag[3:]
		switch q.Sub {
		case SubDate, SubMonth, SubPerson, SubTag:
		case SubNew:
			q.Arg = ""
		default:
			return BrowseQuery{}, errors.New(errors.ErrCodeInvalidFragment, "bad detail submode %q", q.Sub)
		}
	default:
		return BrowseQuery{}, errors.New(errors.ErrCodeInvalidFragment, "bad browse mode %q", q.Mode)
	}
	return q, nil
}

// Fragment renders q back into its "#d..." form.
func (q BrowseQuery) Fragment() string {
	switch q.Mode {
	case ModeLocation:
		return "#dl" + q.ID
	case ModeDetail:
		return "#dd" + q.Sub + q.Arg
	}
	return "#d" + q.Mode
}

// Values returns the browse endpoint's query parameters.
func (q BrowseQuery) Values() url.Values {
	v := url.Values{"mode": {q.Mode}}
	switch q.Mode {
	case ModeLocation:
		if q.ID != "" {
			v.Set("id", q.ID)
		}
	case ModeDetail:
		switch q.Sub {
		case SubDate:
			v.Set("date", q.Arg)
		case SubMonth:
			v.Set("month", q.Arg)
		case SubPerson:
			v.Set("person", q.Arg)
		case SubTag:
			v.Set("tag", q.Arg)
		case SubNew:
			v.Set("new", "1")
		}
	}
	return v
}
