package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	lifeio "github.com/naturelab/lifelist/pkg/io"
	"github.com/naturelab/lifelist/pkg/render"
	"github.com/naturelab/lifelist/pkg/taxonlist"
)

// graphCommand creates the "graph" command: export a query's taxonomy as a
// Graphviz diagram.
func (a *app) graphCommand() *cobra.Command {
	var (
		output   string
		fmtName  string
		detailed bool
		per      string
		refresh  bool
		records  string
	)

	cmd := &cobra.Command{
		Use:   "graph <query>",
		Short: "Export the filtered taxonomy as a diagram",
		Long: `Run a query and export its filtered taxonomy as a Graphviz diagram.

Formats:
  svg   rendered diagram (default)
  dot   Graphviz source, for external tooling

Examples:
  lifelist graph "my birds" -o birds.svg
  lifelist graph "my spiders per family" --format dot -o spiders.dot
  lifelist graph --records birds.json -o birds.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if fmtName != "svg" && fmtName != "dot" {
				return fmt.Errorf("unknown format %q (want svg or dot)", fmtName)
			}

			var listing *taxonlist.Listing
			switch {
			case records != "":
				var err error
				if listing, err = a.offlineListing(records, per); err != nil {
					return err
				}
			case len(args) == 1:
				runner, err := a.newRunner(ctx)
				if err != nil {
					return err
				}
				opts := a.pipelineOptions(args[0], refresh)
				if per != "" {
					opts.Policy = per
				}

				spinner := newSpinnerWithContext(ctx, "Resolving query...")
				runner.Progress = spinner.SetMessage
				spinner.Start()
				result, err := runner.Execute(ctx, opts)
				spinner.Stop()
				if err != nil {
					return err
				}
				listing = result.Listing
			default:
				return fmt.Errorf("need a query argument or --records")
			}

			dot := render.ToDOT(listing, render.Options{Detailed: detailed})

			var data []byte
			if fmtName == "dot" {
				data = []byte(dot)
			} else {
				var err error
				if data, err = render.SVG(ctx, dot); err != nil {
					return err
				}
			}

			if output == "" {
				output = "lifelist." + fmtName
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess("Rendered %d taxa", len(listing.Entries))
			printFile(output)
			if fmtName == "dot" {
				printNextStep("Render it", "dot -Tsvg "+output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default lifelist.<format>)")
	cmd.Flags().StringVar(&fmtName, "format", "svg", "output format: svg or dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include rank and counts in node labels")
	cmd.Flags().StringVar(&per, "per", "", "group per rank, or main, any, leaf, child")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the resolve cache")
	cmd.Flags().StringVar(&records, "records", "", "render from an exported records file instead of querying")

	return cmd
}

// offlineListing builds a listing from a records file exported with
// "list --export", skipping the query pipeline entirely.
func (a *app) offlineListing(path, per string) (*taxonlist.Listing, error) {
	recs, err := lifeio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	policy := per
	if policy == "" {
		policy = a.cfg.Display.Policy
	}
	pol, err := taxonlist.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	return taxonlist.New(recs, taxonlist.Options{Policy: pol})
}
