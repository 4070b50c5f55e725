package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/pkg/layout"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		vp        layout.Viewport
		scrollbar int
		asJSON    bool
		cssOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the picture layout for a display",
		Long: `Compute the picture layout for a display.

The viewport defaults come from the [layout] section of the config file.
Pass --outer-width and --inner-width to report a visible scrollbar; pass
--scrollbar to reuse a width measured earlier.

Prints the bounding box, render size, orientation and the stylesheet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			in := cfg.Layout.Viewport(vp.Width, vp.Height)
			if cmd.Flags().Changed("chrome") {
				in.Chrome = vp.Chrome
			}
			if cmd.Flags().Changed("rem") {
				in.Rem = vp.Rem
			}
			if cmd.Flags().Changed("dpr") {
				in.DPR = vp.DPR
			}
			if vp.OuterWidth > 0 {
				in.OuterWidth = vp.OuterWidth
			}
			if vp.InnerWidth > 0 {
				in.InnerWidth = vp.InnerWidth
			}
			if vp.ContentWidth > 0 {
				in.ContentWidth = vp.ContentWidth
			}

			res := layout.Compute(in, layout.State{Scrollbar: scrollbar})
			c.Logger.Debug("layout computed", "viewport", fmt.Sprintf("%dx%d", in.Width, in.Height),
				"bbox", res.BBox, "render", res.RenderSize)

			switch {
			case cssOnly:
				printRaw(res.CSS())
			case asJSON:
				return writeJSON(struct {
					layout.Result
					CSS string `json:"css"`
				}{res, res.CSS()})
			default:
				printLayout(in, res)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&vp.Width, "width", 0, "viewport width in CSS pixels")
	f.IntVar(&vp.Height, "height", 0, "viewport height in CSS pixels")
	f.IntVar(&vp.Chrome, "chrome", 0, "height of the fixed header")
	f.IntVar(&vp.Rem, "rem", 0, "root font size in pixels")
	f.Float64Var(&vp.DPR, "dpr", 0, "device pixel ratio")
	f.IntVar(&vp.OuterWidth, "outer-width", 0, "window outer width")
	f.IntVar(&vp.InnerWidth, "inner-width", 0, "window inner width")
	f.IntVar(&vp.ContentWidth, "content-width", 0, "measured content width")
	f.IntVar(&scrollbar, "scrollbar", 0, "previously measured scrollbar width")
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	f.BoolVar(&cssOnly, "css", false, "print only the stylesheet")
	cmd.MarkFlagsMutuallyExclusive("json", "css")

	return cmd
}

func printLayout(in layout.Viewport, res layout.Result) {
	fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("Layout %dx%d", in.Width, in.Height)))
	printKeyValue("Orientation", string(res.Orientation))
	printKeyValue("Box", strconv.Itoa(res.BBox)+"px")
	printKeyValue("Render size", strconv.Itoa(res.RenderSize))
	if res.Sidebar > 0 {
		printKeyValue("Sidebar", strconv.Itoa(res.Sidebar)+"px")
	}
	printKeyValue("Scrollbar", strconv.Itoa(res.State.Scrollbar))
	printNewline()
	printRaw(StyleDim.Render(res.CSS()))
	printNewline()
}

// fitCommand creates the fit command.
func (c *CLI) fitCommand() *cobra.Command {
	var (
		id      int64
		box     int
		dpr     float64
		slide   bool
		thumb   bool
		canEdit bool
	)

	cmd := &cobra.Command{
		Use:   "fit WIDTH HEIGHT",
		Short: "Fit a picture into a square box",
		Long: `Fit a WIDTH x HEIGHT picture into a square box.

Without --box the box of the configured layout is used. --slide mounts the
picture as a slide; --thumbnail fits it like a navigation entry.`,
		Example: `  photogrid fit 4000 3000 --box 600
  photogrid fit 3000 4000 --slide`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := positiveArg(args[0], "WIDTH")
			if err != nil {
				return err
			}
			h, err := positiveArg(args[1], "HEIGHT")
			if err != nil {
				return err
			}

			var img layout.Image
			switch {
			case slide:
				s := layout.Slide(id, w, h, canEdit)
				img = s.Image
				printKeyValue("Frame", strconv.Itoa(s.Frame))
				printKeyValue("Padding", strconv.Itoa(s.Padding))
			case thumb:
				img = layout.Thumbnail(id, w, h)
			default:
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				if dpr == 0 {
					dpr = cfg.Layout.DPR
				}
				if box == 0 {
					vp := cfg.Layout.Viewport(0, 0)
					box = layout.Compute(vp, layout.State{}).BBox
				}
				img = layout.FitImage(id, w, h, box, layout.RenderSize(box, dpr), canEdit)
			}
			printFit(img)
			return nil
		},
	}

	f := cmd.Flags()
	f.Int64Var(&id, "id", 0, "picture id used in the image URL")
	f.IntVar(&box, "box", 0, "box size in CSS pixels (default: from the configured layout)")
	f.Float64Var(&dpr, "dpr", 0, "device pixel ratio for the render size")
	f.BoolVar(&slide, "slide", false, "mount as a slide")
	f.BoolVar(&thumb, "thumbnail", false, "fit as a navigation thumbnail")
	f.BoolVar(&canEdit, "editable", false, "mark the picture as editable")
	cmd.MarkFlagsMutuallyExclusive("slide", "thumbnail", "box")

	return cmd
}

func printFit(img layout.Image) {
	printKeyValue("Size", fmt.Sprintf("%dx%d", img.Width, img.Height))
	m := img.Margins
	printKeyValue("Margins", fmt.Sprintf("%d %d %d %d", m.Top, m.Right, m.Bottom, m.Left))
	printKeyValue("URL", img.URL)
}

func positiveArg(s, name string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return n, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
