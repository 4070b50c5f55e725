package gallery

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/photogrid/pkg/errors"
)

// ScalarFields are the free-form scalar keys the edit endpoint accepts.
var ScalarFields = []string{"apt", "cam", "cap", "exp", "fil", "flm", "foc", "met", "pcs", "sht", "tit", "ts", "tz", "wmk"}

// Command is one POST to the edit endpoint. Fields never contains "img".
type Command struct {
	Img    int64             `json:"img" bson:"img"`
	Fields map[string]string `json:"fields" bson:"fields"`
}

// NewCommand returns an empty command for img.
func NewCommand(img int64) Command {
	return Command{Img: img, Fields: make(map[string]string)}
}

// Set adds a field and returns the command for chaining.
func (c Command) Set(key, value string) Command {
	if c.Fields == nil {
		c.Fields = make(map[string]string)
	}
	c.Fields[key] = value
	return c
}

// Keys returns the field names, sorted.
func (c Command) Keys() []string {
	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Form returns the command as an urlencoded form body.
func (c Command) Form() url.Values {
	v := url.Values{"img": {strconv.FormatInt(c.Img, 10)}}
	for k, val := range c.Fields {
		v.Set(k, val)
	}
	return v
}

func (c Command) String() string {
	parts := make([]string, 0, len(c.Fields)+1)
	parts = append(parts, fmt.Sprintf("img=%d", c.Img))
	for _, k := range c.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%q", k, c.Fields[k]))
	}
	return strings.Join(parts, " ")
}

// EditFields is a single-picture edit as entered on the command line.
// Pointer fields distinguish "leave alone" from "set to empty".
type EditFields struct {
	Aperture *string `validate:"omitempty,max=32"`
	Camera   *string `validate:"omitempty,max=32"`
	Caption  *string
	Exposure *string `validate:"omitempty,max=64"`
	File     *string `validate:"omitempty,max=255"`
	Film     *string `validate:"omitempty,max=32"`
	Focal    *string `validate:"omitempty,max=64"`
	Metering *string `validate:"omitempty,max=32"`
	Process  *string `validate:"omitempty,max=32"`
	Shutter  *string `validate:"omitempty,max=32"`
	Title    *string `validate:"omitempty,max=100"`
	TS       *string
	TZ       *string `validate:"omitempty,max=100"`
	Wmk      *string `validate:"omitempty,max=64"`

	Rotation *int `validate:"omitempty,oneof=0 90 180 270"`
	Flash    *bool
	New      *bool
	Deleted  *bool

	Loc        int64 `validate:"gte=0"`
	LocFree    string
	PeopleFree string
	TagFree    string

	Tags      []int64 `validate:"dive,gt=0"`
	TagsDel   []int64 `validate:"dive,gt=0"`
	People    []int64 `validate:"dive,gt=0"`
	PeopleDel []int64 `validate:"dive,gt=0"`

	// ReadExif asks the server to re-read the file's EXIF block.
	ReadExif bool
}

var validate = validator.New()

// Validate checks length limits and id ranges.
func (f *EditFields) Validate() error {
	if err := validate.Struct(f); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return errors.New(errors.ErrCodeInvalidField, "%s fails %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		}
		return errors.Wrap(errors.ErrCodeInvalidField, err, "invalid edit")
	}
	return nil
}

// Commands turns the edit into the command sequence for img: one command
// with every scalar change, then one per people entry, then one per tag.
// The edit endpoint only reads the first value of a repeated key, so each
// collection change gets its own command.
func (f *EditFields) Commands(img int64) []Command {
	scalar := NewCommand(img)
	str := func(key string, v *string) {
		if v != nil {
			scalar.Fields[key] = *v
		}
	}
	str("apt", f.Aperture)
	str("cam", f.Camera)
	str("cap", f.Caption)
	str("exp", f.Exposure)
	str("fil", f.File)
	str("flm", f.Film)
	str("foc", f.Focal)
	str("met", f.Metering)
	str("pcs", f.Process)
	str("sht", f.Shutter)
	str("tit", f.Title)
	str("ts", f.TS)
	str("tz", f.TZ)
	str("wmk", f.Wmk)
	if f.Rotation != nil {
		scalar.Fields["rot"] = strconv.Itoa(*f.Rotation)
	}
	if f.Flash != nil {
		scalar.Fields["fls"] = strconv.FormatBool(*f.Flash)
	}
	if f.New != nil {
		scalar.Fields["new"] = strconv.FormatBool(*f.New)
	}
	if f.Deleted != nil {
		scalar.Fields["del"] = strconv.FormatBool(*f.Deleted)
	}
	if f.Loc > 0 {
		scalar.Fields["loc"] = strconv.FormatInt(f.Loc, 10)
	}
	if f.LocFree != "" {
		scalar.Fields["loc_fre"] = f.LocFree
	}
	if f.PeopleFree != "" {
		scalar.Fields["ppl_fre"] = f.PeopleFree
	}
	if f.TagFree != "" {
		scalar.Fields["tag_fre"] = f.TagFree
	}
	if f.ReadExif {
		scalar.Fields["exf"] = "true"
	}

	var cmds []Command
	if len(scalar.Fields) > 0 {
		cmds = append(cmds, scalar)
	}
	add := func(key string, ids []int64) {
		for _, id := range ids {
			cmds = append(cmds, NewCommand(img).Set(key, strconv.FormatInt(id, 10)))
		}
	}
	add(KindPeople, f.People)
	add(KindPeople+"_del", f.PeopleDel)
	add(KindTag, f.Tags)
	add(KindTag+"_del", f.TagsDel)
	return cmds
}

// Suggestion is a remembered-values list with its default.
type Suggestion struct {
	Options []string `json:"opt"`
	Default string   `json:"dfl,omitempty"`
}

// Suggestions is the suggest endpoint's response.
type Suggestions struct {
	Watermark *Suggestion `json:"wmk,omitempty"`
	Timezone  *Suggestion `json:"tmz,omitempty"`
	Location  []Entry     `json:"loc,omitempty"`
}

// UploadResult is the upload endpoint's response: the ids it created and
// the server-side import log.
type UploadResult struct {
	IDs []int64 `json:"ids"`
	Log string  `json:"log"`
}

// UploadFields are the form fields sent with every file of an upload.
type UploadFields struct {
	TS      string
	TZ      string
	Camera  string
	Film    string
	Process string
	Wmk     string
	Loc     int64
	// NewLoc is a free-form location name to create under Loc.
	NewLoc string
	Tags   []int64
}

// Form returns the non-file multipart fields.
func (u UploadFields) Form() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("ts", u.TS)
	set("tz", u.TZ)
	set("cam", u.Camera)
	set("flm", u.Film)
	set("pcs", u.Process)
	set("wmk", u.Wmk)
	if u.Loc > 0 {
		v.Set("loc", strconv.FormatInt(u.Loc, 10))
	}
	set("nlc", u.NewLoc)
	for _, t := range u.Tags {
		v.Add("tag", strconv.FormatInt(t, 10))
	}
	return v
}
