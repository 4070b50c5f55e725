package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/pkg/commit"
	"github.com/matzehuels/photogrid/pkg/errors"
)

// runsCommand creates the runs command with subcommands.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect and resume recorded batch commits",
		Long: `Inspect and resume recorded batch commits.

Every 'batch apply' is recorded in the journal (a directory of JSON files
by default, or MongoDB when configured). A run that stopped early can be
resumed: the commands it did not apply are sent again, starting with the
one that failed.`,
	}
	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())
	cmd.AddCommand(c.runsResumeCommand())
	return cmd
}

func (c *CLI) runsListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			j, err := c.newJournal(ctx)
			if err != nil {
				return err
			}
			defer j.Close()

			entries, err := j.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No runs recorded")
				return nil
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.RunID, e.StartedAt.Local().Format(time.DateTime),
					fmt.Sprintf("%d/%d", e.Applied, e.Total), runStatus(e)}
			}
			printTable([]string{"Run", "Started", "Applied", "Status"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show (0 = all)")
	return cmd
}

func (c *CLI) runsShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show RUN",
		Short: "Show one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadRun(cmd, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(e)
			}
			fmt.Fprintln(out, StyleTitle.Render("Run "+e.RunID))
			printKeyValue("Started", e.StartedAt.Local().Format(time.DateTime))
			printKeyValue("Finished", e.FinishedAt.Local().Format(time.DateTime))
			printKeyValue("Applied", strconv.Itoa(e.Applied)+" of "+strconv.Itoa(e.Total))
			printKeyValue("Status", runStatus(e))
			if e.Error != "" {
				printKeyValue("Error", e.Error)
			}
			printNewline()
			for i, cmd := range e.Commands {
				mark := kindSuccess.mark.Render(iconSuccess)
				if i >= e.Applied {
					mark = StyleDim.Render("·")
				}
				if e.Failed != nil && i == e.Applied {
					mark = kindError.mark.Render(iconError)
				}
				fmt.Fprintln(out, "  "+mark+" "+cmd.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the journal entry as JSON")
	return cmd
}

func (c *CLI) runsResumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume RUN",
		Short: "Send the commands a run did not apply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.loadRun(cmd, args[0])
			if err != nil {
				return err
			}
			pending := e.Pending()
			if len(pending) == 0 {
				printInfo("Run %s is complete", e.RunID)
				return nil
			}

			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			printInfo("Resuming %d of %d requests from run %s", len(pending), e.Total, e.RunID)
			return c.resume(ctx, cl, e)
		},
	}
}

func (c *CLI) loadRun(cmd *cobra.Command, runID string) (commit.Entry, error) {
	ctx := cmd.Context()
	j, err := c.newJournal(ctx)
	if err != nil {
		return commit.Entry{}, err
	}
	defer j.Close()

	e, ok, err := j.Get(ctx, runID)
	if err != nil {
		return commit.Entry{}, err
	}
	if !ok {
		return commit.Entry{}, errors.New(errors.ErrCodeNotFound, "no run %s in the journal", runID)
	}
	return e, nil
}

func runStatus(e commit.Entry) string {
	switch {
	case e.Error != "":
		return StyleWarning.Render("stopped")
	case e.Applied < e.Total:
		return StyleDim.Render("interrupted")
	}
	return StyleSuccess.Render("done")
}
