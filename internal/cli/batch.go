package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/photogrid/pkg/batch"
	"github.com/matzehuels/photogrid/pkg/commit"
	"github.com/matzehuels/photogrid/pkg/debounce"
	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/gallery"
)

// selectFlags picks the batch selection out of a browse page.
type selectFlags struct {
	ids         []int64
	all         bool
	interactive bool
}

func (s *selectFlags) register(f *pflag.FlagSet) {
	f.Int64SliceVar(&s.ids, "ids", nil, "select these picture ids")
	f.BoolVar(&s.all, "all", false, "select every picture on the page")
	f.BoolVarP(&s.interactive, "interactive", "i", false, "pick pictures interactively")
}

// batchCommand creates the batch command with subcommands.
func (c *CLI) batchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Summarize and edit a selection of pictures",
		Long: `Summarize and edit a selection of pictures.

A selection is taken from one browse page (see 'photogrid browse --help'
for fragments) with --ids, --all or --interactive. 'summary' shows what
the selected pictures share; 'apply' commits edits to all of them, one
request at a time, stopping at the first failure.`,
	}

	cmd.AddCommand(c.batchSummaryCommand())
	cmd.AddCommand(c.batchApplyCommand())

	return cmd
}

func (c *CLI) batchSummaryCommand() *cobra.Command {
	var (
		sel    selectFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:               "summary FRAGMENT",
		Short:             "Show what the selected pictures have in common",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFragment,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			sess, ok, err := c.selection(ctx, cl, args[0], sel)
			if err != nil || !ok {
				return err
			}
			if asJSON {
				return writeJSON(sess.State())
			}
			printState(sess.State())
			return nil
		},
	}
	sel.register(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func (c *CLI) batchApplyCommand() *cobra.Command {
	var (
		sel    selectFlags
		scal   = make(map[string]*string)
		loc    int64
		free   = make(map[string]*string)
		tagAdd []int64
		tagDel []int64
		pplAdd []int64
		pplDel []int64
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "apply FRAGMENT",
		Short: "Commit edits to every selected picture",
		Example: `  photogrid batch apply '#ddt5' --all --cap "Summer trip" --tag-add 12
  photogrid batch apply '#dr' -i --loc 9 --tag-del 7
  photogrid batch apply '#dl9' --ids 101,102 --wmk "(c) A" --dry-run`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFragment,
		RunE: func(cmd *cobra.Command, args []string) error {
			edits := batch.Edits{Scalars: map[string]string{}, Free: map[string]string{}}
			for name, v := range scal {
				if cmd.Flags().Changed(name) {
					edits.Scalars[name] = *v
				}
			}
			for kind, v := range free {
				if cmd.Flags().Changed(kind + "-new") {
					edits.Free[kind] = *v
				}
			}
			if cmd.Flags().Changed("loc") {
				edits.Loc = &loc
			}
			edits.Toggles = append(edits.Toggles, toggles(gallery.KindTag, tagAdd, batch.Add)...)
			edits.Toggles = append(edits.Toggles, toggles(gallery.KindTag, tagDel, batch.Remove)...)
			edits.Toggles = append(edits.Toggles, toggles(gallery.KindPeople, pplAdd, batch.Add)...)
			edits.Toggles = append(edits.Toggles, toggles(gallery.KindPeople, pplDel, batch.Remove)...)

			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			sess, ok, err := c.selection(ctx, cl, args[0], sel)
			if err != nil || !ok {
				return err
			}
			if err := checkRemovals(sess.State(), edits.Toggles); err != nil {
				return err
			}
			if err := sess.State().Apply(edits); err != nil {
				return err
			}
			cmds := sess.Updates()
			if len(cmds) == 0 {
				printInfo("Nothing to change")
				return nil
			}
			if dryRun {
				printInfo("%d requests for %d pictures", len(cmds), sess.State().Count)
				printCommands(cmds)
				return nil
			}
			return c.commit(ctx, cl, sess.Collection(), cmds)
		},
	}

	f := cmd.Flags()
	sel.register(f)
	for _, name := range batch.ScalarFields {
		scal[name] = f.String(name, "", "set "+name+" on every selected picture")
	}
	for _, kind := range batch.FreeTextFields {
		free[kind] = f.String(kind+"-new", "", "create a new "+kind+" entry with this name")
	}
	f.Int64Var(&loc, "loc", 0, "set the location id")
	f.Int64SliceVar(&tagAdd, "tag-add", nil, "add tag id")
	f.Int64SliceVar(&tagDel, "tag-del", nil, "remove tag id")
	f.Int64SliceVar(&pplAdd, "ppl-add", nil, "add person id")
	f.Int64SliceVar(&pplDel, "ppl-del", nil, "remove person id")
	f.BoolVar(&dryRun, "dry-run", false, "print the requests without sending them")
	return cmd
}

func toggles(kind string, ids []int64, t batch.Toggle) []batch.EntryToggle {
	ts := make([]batch.EntryToggle, len(ids))
	for i, id := range ids {
		ts[i] = batch.EntryToggle{Kind: kind, ID: id, Pending: t}
	}
	return ts
}

// checkRemovals rejects removing a tag or person no selected picture
// carries. The batch state would ignore it silently.
func checkRemovals(st *batch.State, ts []batch.EntryToggle) error {
	for _, t := range ts {
		if t.Pending == batch.Remove && !st.Has(t.Kind, t.ID) {
			return errors.New(errors.ErrCodeInvalidInput, "%s %d is not on any selected picture", t.Kind, t.ID)
		}
	}
	return nil
}

// selection loads the page behind frag and selects pictures according to
// sel. ok is false when the user quit the picker.
func (c *CLI) selection(ctx context.Context, cl *client, frag string, sel selectFlags) (*batch.Session, bool, error) {
	q, err := gallery.ParseFragment(frag)
	if err != nil {
		return nil, false, err
	}
	coll, err := c.browse(ctx, cl, q)
	if err != nil {
		return nil, false, err
	}
	if coll.Len() == 0 {
		return nil, false, errors.New(errors.ErrCodeNotFound, "no pictures on %s", q.Fragment())
	}

	switch {
	case sel.all:
		coll.SelectAll()
	case len(sel.ids) > 0:
		for _, id := range sel.ids {
			if err := coll.Select(id, true); err != nil {
				return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "--ids %d", id)
			}
		}
	case !sel.interactive:
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "choose pictures with --ids, --all or --interactive")
	}

	sess := batch.NewSession(coll)
	if sel.interactive {
		confirmed, err := c.pick(sess)
		if err != nil || !confirmed {
			return nil, false, err
		}
	}
	if sess.State().Empty() {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "no pictures selected")
	}
	return sess, true, nil
}

// pick runs the interactive picker over sess.
func (c *CLI) pick(sess *batch.Session) (bool, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return false, err
	}
	var p *tea.Program
	resize := debounce.NewDriver(debounce.DefaultInterval, debounce.DefaultTrailing, func() {
		if p != nil {
			go p.Send(relayoutMsg{})
		}
	})
	defer resize.Stop()

	p = tea.NewProgram(NewSelectModel(sess, cfg.Layout.Viewport(0, 0), resize))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("picker: %w", err)
	}
	m, ok := final.(SelectModel)
	return ok && m.Confirmed, nil
}

// commit runs cmds and reports the outcome.
func (c *CLI) commit(ctx context.Context, cl *client, coll *gallery.Collection, cmds []gallery.Command) error {
	return c.drive(ctx, cl, coll, 0, len(cmds), func(r *commit.Runner) (*commit.Result, error) {
		return r.Run(ctx, cmds)
	})
}

// resume continues a journaled run under its own id.
func (c *CLI) resume(ctx context.Context, cl *client, e commit.Entry) error {
	return c.drive(ctx, cl, nil, e.Applied, e.Total, func(r *commit.Runner) (*commit.Result, error) {
		return r.Resume(ctx, e)
	})
}

// drive runs a commit behind a spinner and reports how it ended.
func (c *CLI) drive(ctx context.Context, cl *client, coll *gallery.Collection, applied, total int, run func(*commit.Runner) (*commit.Result, error)) error {
	journal, err := c.newJournal(ctx)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer journal.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Applying %d/%d...", applied, total))
	spinner.Start()
	prog := newProgress(c.Logger)
	runner := commit.NewRunner(cl, coll, commit.Options{
		Logger:  c.Logger,
		Journal: journal,
		Progress: func(applied, total int) {
			spinner.SetMessage(fmt.Sprintf("Applying %d/%d...", applied, total))
		},
	})

	res, err := run(runner)
	if err != nil {
		spinner.StopWithError("Commit failed")
		if res == nil {
			return err
		}
		printDetail("stopped after %d of %d requests", res.Applied, res.Total)
		if res.Failed != nil {
			printDetail("failed: %s", res.Failed)
		}
		printDetail("%d requests not applied", len(res.Remaining))
		printNextStep("Resume", appName+" runs resume "+res.RunID)
		return reauthHint(err)
	}
	spinner.Stop()
	prog.done("applied", "requests", res.Applied-applied, "run", res.RunID)
	printSuccess("Run %s complete", res.RunID)
	return nil
}

// printState renders a batch summary.
func printState(st *batch.State) {
	fmt.Fprintln(out, StyleTitle.Render(fmt.Sprintf("%d pictures selected", st.Count)))
	names := make([]string, 0, len(st.Scalars))
	for name := range st.Scalars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := st.Scalars[name]
		v := s.Last
		if s.Varies {
			v = StyleDim.Render("(varies)")
		}
		printKeyValue(name, v)
	}
	if st.Loc != nil {
		v := fmt.Sprintf("%s (%d)", st.Loc.Text, st.Loc.ID)
		if st.Loc.Varies {
			v = StyleDim.Render("(varies)")
		}
		printKeyValue("loc", v)
	}

	var rows [][]string
	for _, kind := range []string{gallery.KindTag, gallery.KindPeople} {
		for _, e := range st.Entries(kind) {
			share := "all"
			if e.Varies {
				share = "some"
			}
			rows = append(rows, []string{kind, strconv.FormatInt(e.ID, 10), e.Text, share})
		}
	}
	if len(rows) > 0 {
		printNewline()
		printTable([]string{"Kind", "ID", "Name", "On"}, rows)
	}
}
