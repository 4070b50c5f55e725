package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/integrations/photoprism"
	"github.com/matzehuels/photogrid/pkg/render/locgraph"
)

// locationsCommand creates the locations command.
func (c *CLI) locationsCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:     "locations LOC",
		Aliases: []string{"loc"},
		Short:   "Show a location with its parents, children and suggestions",
		Long: `Show a location with its parents, children and suggestions.

The default text format lists the neighbourhood and the remembered
watermark and time zone values. --format dot prints Graphviz source and
--format svg renders the graph.`,
		Example: `  photogrid locations 9
  photogrid locations 9 --format svg -o ocean-beach.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "LOC")
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			cl, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer cl.Close()

			sugg, err := cl.Suggest(ctx, photoprism.SuggestQuery{Watermark: true, Timezone: true, Loc: id})
			if err != nil {
				return reauthHint(err)
			}
			g, err := locgraph.FromSuggestions(sugg.Location)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "text":
				printLocation(g, sugg)
				return nil
			case "dot":
				data = []byte(locgraph.ToDOT(g, locgraph.Options{Detailed: detailed}))
			case "svg":
				if data, err = locgraph.RenderSVG(ctx, locgraph.ToDOT(g, locgraph.Options{Detailed: detailed})); err != nil {
					return fmt.Errorf("render: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q (want text, dot or svg)", format)
			}

			if output == "" {
				printRaw(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Location graph written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include ids in graph labels")
	return cmd
}

func printLocation(g locgraph.Graph, sugg *gallery.Suggestions) {
	fmt.Fprintln(out, StyleTitle.Render(g.Current.Text)+" "+StyleDim.Render("#dl"+strconv.FormatInt(g.Current.ID, 10)))
	var rows [][]string
	add := func(rel string, entries []gallery.Entry) {
		for _, e := range entries {
			rows = append(rows, []string{rel, strconv.FormatInt(e.ID, 10), e.Text})
		}
	}
	add("parent", g.Parents)
	add("child", g.Children)
	add("suggested", g.Suggested)
	if len(rows) > 0 {
		printTable([]string{"Relation", "ID", "Name"}, rows)
	}
	if s := sugg.Watermark; s != nil && len(s.Options) > 0 {
		printKeyValue("watermarks", fmt.Sprintf("%v (default %q)", s.Options, s.Default))
	}
	if s := sugg.Timezone; s != nil && len(s.Options) > 0 {
		printKeyValue("time zones", fmt.Sprintf("%v (default %q)", s.Options, s.Default))
	}
}
