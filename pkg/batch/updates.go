package batch

import (
	"strconv"

	"github.com/matzehuels/photogrid/pkg/gallery"
)

// BuildUpdateList expands the pending edits of st into edit commands for
// each picture of selection, in order. Per picture there is at most one
// command carrying every scalar, location and free-text change, followed
// by one command per pending people entry and then one per pending tag.
//
// With a caption edit and one tag added over pictures 1 and 2 the list is
//
//	img=1 cap="shore"
//	img=1 tag="8"
//	img=2 cap="shore"
//	img=2 tag="8"
//
// Removals use the tag_del and ppl_del fields. An empty or nil st, or one
// with nothing pending, yields no commands.
func BuildUpdateList(selection []gallery.Picture, st *State) []gallery.Command {
	if st.Empty() {
		return nil
	}
	pending := st.Pending()

	var cmds []gallery.Command
	for i := range selection {
		img := selection[i].ID
		if len(pending) > 0 {
			c := gallery.NewCommand(img)
			for k, v := range pending {
				c.Fields[k] = v
			}
			cmds = append(cmds, c)
		}
		for _, kind := range []string{gallery.KindPeople, gallery.KindTag} {
			for _, e := range st.Entries(kind) {
				switch e.Pending {
				case Add:
					cmds = append(cmds, gallery.NewCommand(img).Set(kind, formatID(e.ID)))
				case Remove:
					cmds = append(cmds, gallery.NewCommand(img).Set(kind+"_del", formatID(e.ID)))
				}
			}
		}
	}
	return cmds
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }
