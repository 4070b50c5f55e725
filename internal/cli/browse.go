package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/layout"
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		asJSON        bool
		notifications bool
	)

	cmd := &cobra.Command{
		Use:   "browse [FRAGMENT]",
		Short: "List a browse page",
		Long: `List a browse page of the gallery.

FRAGMENT is the page's "#d..." address, for example:

  #dr         recent pictures
  #dm         months
  #dp         people
  #dl12       location 12 and what lies below it
  #ddt5       pictures with tag 5
  #ddn        new pictures

Without FRAGMENT the recent page is listed.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeFragment,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			if notifications {
				n, err := cl.Notifications(ctx)
				if err != nil {
					return reauthHint(err)
				}
				printInfo("%s new pictures", StyleNumber.Render(strconv.Itoa(n)))
				return nil
			}

			frag := "#dr"
			if len(args) == 1 {
				frag = args[0]
			}
			q, err := gallery.ParseFragment(frag)
			if err != nil {
				return err
			}
			coll, err := c.browse(ctx, cl, q)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(coll.Items)
			}
			c.printCollection(q, coll)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page items as JSON")
	cmd.Flags().BoolVarP(&notifications, "notifications", "n", false, "print only the number of new pictures")
	return cmd
}

// browse fetches one page behind a spinner.
func (c *CLI) browse(ctx context.Context, cl *client, q gallery.BrowseQuery) (*gallery.Collection, error) {
	spinner := newSpinnerWithContext(ctx, "Loading "+q.Fragment()+"...")
	spinner.Start()
	coll, err := cl.Browse(ctx, q)
	if err != nil {
		spinner.StopWithError("Browse failed")
		return nil, reauthHint(err)
	}
	spinner.Stop()
	c.Logger.Debug("browsed", "fragment", q.Fragment(), "items", len(coll.Items), "pictures", coll.Len())
	return coll, nil
}

func (c *CLI) printCollection(q gallery.BrowseQuery, coll *gallery.Collection) {
	title := coll.Title
	if title == "" {
		title = q.Fragment()
	}
	fmt.Fprintln(out, StyleTitle.Render(title))
	if coll.Count > 0 {
		printDetail("%d pictures below this location", coll.Count)
	}

	var box, render int
	if cfg, err := c.loadConfig(); err == nil {
		res := layout.Compute(cfg.Layout.Viewport(0, 0), layout.State{})
		box, render = res.BBox, res.RenderSize
	}

	var rows [][]string
	flush := func() {
		if len(rows) > 0 {
			printTable([]string{"ID", "Caption", "Size", "Fit", "Tags"}, rows)
			rows = nil
		}
	}
	for _, it := range coll.Items {
		switch {
		case it.Header != "":
			flush()
			printNewline()
			fmt.Fprintln(out, StyleHighlight.Render(it.Header))
		case it.Nav != nil:
			flush()
			n := it.Nav
			fmt.Fprintf(out, "  %s %s %s\n", StyleValue.Render(n.Text),
				StyleDim.Render(fmt.Sprintf("(%d)", n.Count)), styleCommand.Render(n.Act))
		case it.Picture != nil:
			p := it.Picture
			fit := "-"
			if box > 0 && p.Width > 0 && p.Height > 0 {
				img := layout.FitImage(p.ID, p.Width, p.Height, box, render, p.CanEdit)
				fit = fmt.Sprintf("%dx%d", img.Width, img.Height)
			}
			rows = append(rows, []string{
				strconv.FormatInt(p.ID, 10),
				truncate(string(p.Caption), 40),
				fmt.Sprintf("%dx%d", p.Width, p.Height),
				fit,
				entryNames(p.Tags),
			})
		}
	}
	flush()
}

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show IMG",
		Short: "Show one picture's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "IMG")
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			p, err := cl.GetPicture(ctx, id)
			if err != nil {
				return reauthHint(err)
			}
			if asJSON {
				return writeJSON(p)
			}
			printPicture(p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw picture as JSON")
	return cmd
}

func printPicture(p *gallery.Picture) {
	title := string(p.Title)
	if title == "" {
		title = fmt.Sprintf("Picture %d", p.ID)
	}
	fmt.Fprintln(out, StyleTitle.Render(title))
	if p.Caption != "" {
		printDetail("%s", string(p.Caption))
	}
	printNewline()

	md := gallery.CleanedMetadata(p)
	for _, f := range gallery.MetadataFields {
		if v, ok := md[f.Key]; ok {
			printKeyValue(f.Label, v)
		}
	}
	if loc, ok := p.Location(); ok {
		printKeyValue("location", fmt.Sprintf("%s (%d)", loc.Text, loc.ID))
	}
	if len(p.People) > 0 {
		printKeyValue("people", entryNames(p.People))
	}
	if len(p.Tags) > 0 {
		printKeyValue("tags", entryNames(p.Tags))
	}
	if p.IsDeleted() {
		printWarning("marked deleted")
	}
}

// entryNames joins the active entries' names; inactive ones are shown dim.
func entryNames(entries []gallery.Entry) string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Active {
			names = append(names, e.Text)
		} else {
			names = append(names, StyleDim.Render(e.Text+"?"))
		}
	}
	return strings.Join(names, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func parseID(s, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive id, got %q", name, s)
	}
	return id, nil
}
