package gallery

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Relations a location [Entry] can have to the picture's own location.
const (
	RelSelf       = ""
	RelParent     = "p"
	RelChild      = "c"
	RelSuggestion = "s"
)

// Entry is one element of a tag, people or location list.
type Entry struct {
	ID     int64  `json:"id" bson:"id"`
	Text   string `json:"txt" bson:"txt"`
	Active bool   `json:"act,omitempty" bson:"act,omitempty"`
	Rel    string `json:"rel,omitempty" bson:"rel,omitempty"`
}

// Picture is one photo as served by the edit and browse endpoints.
type Picture struct {
	ID       int64   `json:"id"`
	Aperture Text    `json:"apt,omitempty"`
	Camera   Text    `json:"cam,omitempty"`
	Caption  Text    `json:"cap,omitempty"`
	Date     Text    `json:"dat,omitempty"`
	Deleted  Text    `json:"del,omitempty"`
	Exposure Text    `json:"exp,omitempty"`
	File     Text    `json:"fil,omitempty"`
	Film     Text    `json:"flm,omitempty"`
	Focal    Text    `json:"foc,omitempty"`
	Metering Text    `json:"met,omitempty"`
	Process  Text    `json:"pcs,omitempty"`
	Shutter  Text    `json:"sht,omitempty"`
	Title    Text    `json:"tit,omitempty"`
	TS       Text    `json:"ts,omitempty"`
	TZ       Text    `json:"tz,omitempty"`
	Wmk      Text    `json:"wmk,omitempty"`
	Height   int     `json:"hgt"`
	Width    int     `json:"wid"`
	Size     Text    `json:"siz,omitempty"`
	Rotation *int    `json:"rot,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
	Alt      float64 `json:"alt,omitempty"`
	People   []Entry `json:"ppl,omitempty"`
	Tags     []Entry `json:"tag,omitempty"`
	Loc      []Entry `json:"loc,omitempty"`
	New      *bool   `json:"new,omitempty"`
	Flash    *bool   `json:"fls,omitempty"`
	Download bool    `json:"dl,omitempty"`
	CanEdit  bool    `json:"ed,omitempty"`

	// Selected marks the picture as part of the current batch selection.
	// It never leaves the process.
	Selected bool `json:"-"`
}

// Field returns a scalar field by its wire name, or "" if unknown.
func (p *Picture) Field(name string) string {
	switch name {
	case "apt":
		return string(p.Aperture)
	case "cam":
		return string(p.Camera)
	case "cap":
		return string(p.Caption)
	case "dat":
		return string(p.Date)
	case "exp":
		return string(p.Exposure)
	case "fil":
		return string(p.File)
	case "flm":
		return string(p.Film)
	case "foc":
		return string(p.Focal)
	case "met":
		return string(p.Metering)
	case "pcs":
		return string(p.Process)
	case "sht":
		return string(p.Shutter)
	case "tit":
		return string(p.Title)
	case "ts":
		return string(p.TS)
	case "tz":
		return string(p.TZ)
	case "wmk":
		return string(p.Wmk)
	}
	return ""
}

// Location returns the picture's own location: the first entry without a
// relation. Parents, children and suggestions ride along in the same list.
func (p *Picture) Location() (Entry, bool) {
	for _, e := range p.Loc {
		if e.Rel == RelSelf {
			return e, true
		}
	}
	return Entry{}, false
}

// Collection returns the tag ("tag") or people ("ppl") list.
func (p *Picture) Collection(kind string) []Entry {
	switch kind {
	case KindTag:
		return p.Tags
	case KindPeople:
		return p.People
	}
	return nil
}

// IsNew reports whether the server flags the picture as not yet reviewed.
func (p *Picture) IsNew() bool { return p.New != nil && *p.New }

// IsDeleted reports whether the picture carries a deletion timestamp.
func (p *Picture) IsDeleted() bool { return p.Deleted != "" && p.Deleted != "false" }

// Merge applies a partial edit response on top of p. The server only sends
// the structures a POST touched, so absent keys leave p unchanged.
func (p *Picture) Merge(partial *Partial) {
	if partial == nil {
		return
	}
	if partial.Loc != nil {
		p.Loc = partial.Loc
	}
	if partial.Tags != nil {
		p.Tags = partial.Tags
	}
	if partial.People != nil {
		p.People = partial.People
	}
	if partial.New != nil {
		p.New = partial.New
	}
	if partial.Deleted != nil {
		if *partial.Deleted {
			p.Deleted = "true"
		} else {
			p.Deleted = ""
		}
	}
}

// Partial is the edit endpoint's POST response: only what changed.
type Partial struct {
	Loc     []Entry `json:"loc,omitempty"`
	Tags    []Entry `json:"tag,omitempty"`
	People  []Entry `json:"ppl,omitempty"`
	New     *bool   `json:"new,omitempty"`
	Deleted *bool   `json:"del,omitempty"`
}

// Kinds of tag-like collections.
const (
	KindTag    = "tag"
	KindPeople = "ppl"
)

// Text is a scalar metadata value. The server emits most of them as JSON
// strings but timestamps, numbers and booleans leak through unquoted, so
// any scalar is accepted and kept in its textual form.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(data)
	}
	return nil
}

// Int parses the value as an integer, returning 0 when it is not one.
func (t Text) Int() int64 {
	n, _ := strconv.ParseInt(string(t), 10, 64)
	return n
}
