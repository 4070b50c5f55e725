package gallery

import (
	"encoding/json"

	"github.com/matzehuels/photogrid/pkg/errors"
)

// NavEntry is a navigation thumbnail standing in for a group of pictures
// (a month, a person, a sub-location). Act is the fragment that opens it.
type NavEntry struct {
	ID     int64  `json:"id"`
	Count  int    `json:"count"`
	Text   string `json:"text"`
	Act    string `json:"act"`
	Height int    `json:"h"`
	Width  int    `json:"w"`
}

// Item is one element of a browse page in server order. Exactly one of
// Header, Nav or Picture is set.
type Item struct {
	Header  string
	Nav     *NavEntry
	Picture *Picture
}

// Collection is the decoded result of one browse request.
type Collection struct {
	Title  string
	Params map[string]string
	Items  []Item
	// Count is set by location browses: the total below the current node.
	Count int

	pictures []*Picture
	index    map[int64]*Picture
}

type browseResponse struct {
	Title  string            `json:"title"`
	Params map[string]string `json:"params"`
	Images []json.RawMessage `json:"images"`
	Count  int               `json:"count"`
}

// itemPeek tells headers and navigation entries apart from pictures.
type itemPeek struct {
	Hdr   *string          `json:"hdr"`
	Count *json.RawMessage `json:"count"`
}

// DecodeBrowse decodes a browse response body. Objects with "hdr" are page
// headers, objects with "count" are navigation entries, everything else is
// a picture.
func DecodeBrowse(data []byte) (*Collection, error) {
	var resp browseResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode browse response")
	}
	c := &Collection{
		Title:  resp.Title,
		Params: resp.Params,
		Count:  resp.Count,
		index:  make(map[int64]*Picture, len(resp.Images)),
	}
	for i, raw := range resp.Images {
		var peek itemPeek
		if err := json.Unmarshal(raw, &peek); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode browse item %d", i)
		}
		switch {
		case peek.Hdr != nil:
			c.Items = append(c.Items, Item{Header: *peek.Hdr})
		case peek.Count != nil:
			var nav NavEntry
			if err := json.Unmarshal(raw, &nav); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode navigation entry %d", i)
			}
			c.Items = append(c.Items, Item{Nav: &nav})
		default:
			var pic Picture
			if err := json.Unmarshal(raw, &pic); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode picture %d", i)
			}
			c.addPicture(&pic)
		}
	}
	return c, nil
}

// NewCollection builds a collection holding just the given pictures.
func NewCollection(pics ...Picture) *Collection {
	c := &Collection{index: make(map[int64]*Picture, len(pics))}
	for i := range pics {
		p := pics[i]
		c.addPicture(&p)
	}
	return c
}

func (c *Collection) addPicture(p *Picture) {
	if c.index == nil {
		c.index = make(map[int64]*Picture)
	}
	c.Items = append(c.Items, Item{Picture: p})
	c.pictures = append(c.pictures, p)
	c.index[p.ID] = p
}

// Pictures returns the pictures in display order.
func (c *Collection) Pictures() []*Picture { return c.pictures }

// IDs returns picture ids in display order.
func (c *Collection) IDs() []int64 {
	ids := make([]int64, len(c.pictures))
	for i, p := range c.pictures {
		ids[i] = p.ID
	}
	return ids
}

// Len returns the number of pictures.
func (c *Collection) Len() int { return len(c.pictures) }

// Get looks a picture up by id.
func (c *Collection) Get(id int64) (*Picture, bool) {
	p, ok := c.index[id]
	return p, ok
}

// Replace swaps in a refreshed copy of a picture. The local selection flag
// survives; everything else comes from fresh.
func (c *Collection) Replace(fresh Picture) error {
	old, ok := c.index[fresh.ID]
	if !ok {
		return errors.New(errors.ErrCodePictureNotFound, "picture %d is not in the collection", fresh.ID)
	}
	fresh.Selected = old.Selected
	*old = fresh
	return nil
}

// ===== Selection =====

// SelectAll selects every picture.
func (c *Collection) SelectAll() {
	for _, p := range c.pictures {
		p.Selected = true
	}
}

// SelectNone clears the selection.
func (c *Collection) SelectNone() {
	for _, p := range c.pictures {
		p.Selected = false
	}
}

// Invert flips every picture's selection.
func (c *Collection) Invert() {
	for _, p := range c.pictures {
		p.Selected = !p.Selected
	}
}

// Toggle flips one picture's selection and reports the new state.
func (c *Collection) Toggle(id int64) (bool, error) {
	p, ok := c.index[id]
	if !ok {
		return false, errors.New(errors.ErrCodePictureNotFound, "picture %d is not in the collection", id)
	}
	p.Selected = !p.Selected
	return p.Selected, nil
}

// Select sets one picture's selection. Unlike Toggle it is idempotent, so
// naming an id twice keeps it selected.
func (c *Collection) Select(id int64, on bool) error {
	p, ok := c.index[id]
	if !ok {
		return errors.New(errors.ErrCodePictureNotFound, "picture %d is not in the collection", id)
	}
	p.Selected = on
	return nil
}

// Selected returns copies of the selected pictures in display order.
func (c *Collection) Selected() []Picture {
	var out []Picture
	for _, p := range c.pictures {
		if p.Selected {
			out = append(out, *p)
		}
	}
	return out
}

// SelectedCount returns how many pictures are selected.
func (c *Collection) SelectedCount() int {
	n := 0
	for _, p := range c.pictures {
		if p.Selected {
			n++
		}
	}
	return n
}
