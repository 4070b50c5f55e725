package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/photogrid/pkg/gallery"
)

// editFlags binds EditFields to command-line flags. Scalars only take
// effect when their flag is given, so an empty value clears a field.
type editFlags struct {
	scalars map[string]*string
	rot     int
	flash   bool
	isNew   bool
	del     bool
	fields  gallery.EditFields
}

var scalarFlags = []struct{ name, usage string }{
	{"apt", "aperture"},
	{"cam", "camera"},
	{"cap", "caption"},
	{"exp", "exposure"},
	{"fil", "original file name"},
	{"flm", "film"},
	{"foc", "focal length"},
	{"met", "metering"},
	{"pcs", "process"},
	{"sht", "shutter"},
	{"tit", "title"},
	{"ts", "timestamp"},
	{"tz", "time zone"},
	{"wmk", "watermark"},
}

func (e *editFlags) register(f *pflag.FlagSet) {
	e.scalars = make(map[string]*string, len(scalarFlags))
	for _, s := range scalarFlags {
		e.scalars[s.name] = f.String(s.name, "", "set the "+s.usage)
	}
	f.IntVar(&e.rot, "rot", 0, "rotation: 0, 90, 180 or 270")
	f.BoolVar(&e.flash, "fls", false, "flash fired")
	f.BoolVar(&e.isNew, "new", false, "mark as new (--new=false marks reviewed)")
	f.BoolVar(&e.del, "del", false, "mark deleted (--del=false restores)")
	f.Int64Var(&e.fields.Loc, "loc", 0, "location id")
	f.StringVar(&e.fields.LocFree, "loc-new", "", "create a location with this name")
	f.StringVar(&e.fields.PeopleFree, "ppl-new", "", "create a person with this name")
	f.StringVar(&e.fields.TagFree, "tag-new", "", "create a tag with this name")
	f.Int64SliceVar(&e.fields.Tags, "tag", nil, "add tag id (repeatable)")
	f.Int64SliceVar(&e.fields.TagsDel, "tag-del", nil, "remove tag id (repeatable)")
	f.Int64SliceVar(&e.fields.People, "ppl", nil, "add person id (repeatable)")
	f.Int64SliceVar(&e.fields.PeopleDel, "ppl-del", nil, "remove person id (repeatable)")
	f.BoolVar(&e.fields.ReadExif, "exf", false, "re-read EXIF data from the file")
}

// build resolves the flags that were actually given into EditFields.
func (e *editFlags) build(f *pflag.FlagSet) (*gallery.EditFields, error) {
	ef := e.fields
	set := map[string]**string{
		"apt": &ef.Aperture, "cam": &ef.Camera, "cap": &ef.Caption,
		"exp": &ef.Exposure, "fil": &ef.File, "flm": &ef.Film,
		"foc": &ef.Focal, "met": &ef.Metering, "pcs": &ef.Process,
		"sht": &ef.Shutter, "tit": &ef.Title, "ts": &ef.TS,
		"tz": &ef.TZ, "wmk": &ef.Wmk,
	}
	for name, dst := range set {
		if f.Changed(name) {
			*dst = e.scalars[name]
		}
	}
	if f.Changed("rot") {
		ef.Rotation = &e.rot
	}
	if f.Changed("fls") {
		ef.Flash = &e.flash
	}
	if f.Changed("new") {
		ef.New = &e.isNew
	}
	if f.Changed("del") {
		ef.Deleted = &e.del
	}
	if err := ef.Validate(); err != nil {
		return nil, err
	}
	return &ef, nil
}

// editCommand creates the edit command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		flags  editFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "edit IMG",
		Short: "Edit one picture",
		Long: `Edit one picture.

Scalar fields are sent together in one request; every tag or person change
is its own request. Only the flags you give are changed, so --cap "" clears
the caption.`,
		Example: `  photogrid edit 1234 --cap "Ocean Beach at dusk" --tag 5 --tag-del 7
  photogrid edit 1234 --del
  photogrid edit 1234 --exf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "IMG")
			if err != nil {
				return err
			}
			fields, err := flags.build(cmd.Flags())
			if err != nil {
				return err
			}
			cmds := fields.Commands(id)
			if len(cmds) == 0 {
				return fmt.Errorf("nothing to change (see '%s edit --help')", appName)
			}
			if dryRun {
				printCommands(cmds)
				return nil
			}

			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			pic, err := cl.GetPicture(ctx, id)
			if err != nil {
				return reauthHint(err)
			}
			for _, ec := range cmds {
				c.Logger.Debug("edit", "cmd", ec.String())
				partial, err := cl.Edit(ctx, ec)
				if err != nil {
					printError("%s", ec)
					return reauthHint(err)
				}
				pic.Merge(partial)
				printSuccess("%s", ec)
			}
			printNewline()
			printPicture(pic)
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the requests without sending them")
	return cmd
}

func printCommands(cmds []gallery.Command) {
	for _, ec := range cmds {
		fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(ec.String()))
	}
}
