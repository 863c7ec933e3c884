package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naturelab/lifelist/pkg/format"
	lifeio "github.com/naturelab/lifelist/pkg/io"
)

// listCommand creates the "list" command: run one query, print its pages.
func (a *app) listCommand() *cobra.Command {
	var (
		page    int
		all     bool
		per     string
		perPage int
		sortKey string
		order   string
		refresh bool
		noTitle bool
		output  string
		export  string
	)

	cmd := &cobra.Command{
		Use:   "list <query>",
		Short: "Run a life-list query and print the result",
		Long: `Run a natural-language query and print its paginated life list.

The query uses the same clauses everywhere: "of" taxa, "by" an observer,
"from" a place, "in-prj" a project, plus macros like rg, my, and unseen.

Examples:
  lifelist list "my birds from home"
  lifelist list "rg spiders by benarm" --per species
  lifelist list "unseen birds" --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := a.newRunner(ctx)
			if err != nil {
				return err
			}

			opts := a.pipelineOptions(args[0], refresh)
			if per != "" {
				opts.Policy = per
			}
			if perPage > 0 {
				opts.PerPage = perPage
			}
			if sortKey != "" {
				opts.Sort = sortKey
			}
			if order != "" {
				opts.Order = order
			}

			spinner := newSpinnerWithContext(ctx, "Resolving query...")
			runner.Progress = spinner.SetMessage
			spinner.Start()
			result, err := runner.Execute(ctx, opts)
			spinner.Stop()
			if err != nil {
				return err
			}

			if export != "" {
				if err := lifeio.WriteFile(result.Records, export); err != nil {
					return err
				}
				printSuccess("Exported %d records", len(result.Records))
				printFile(export)
			}

			var pages []string
			if all {
				for p := 0; p <= result.Renderer.Pager().LastPage(); p++ {
					formatted, err := result.Renderer.Format(!noTitle && p == 0, p, -1)
					if err != nil {
						return err
					}
					pages = append(pages, formatted)
				}
			} else {
				formatted, err := result.Renderer.Format(!noTitle, page, -1)
				if err != nil {
					return err
				}
				pages = append(pages, formatted)
			}
			text := strings.Join(pages, "\n\n")

			if output != "" {
				// Standard markdown renderers collapse single newlines, so
				// file output gets hard line breaks.
				text = format.ApplyDialect(text, format.DialectMarkdown)
				if err := os.WriteFile(output, []byte(text+"\n"), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printSuccess("Wrote %d page(s)", len(pages))
				printFile(output)
				return nil
			}

			fmt.Println(text)
			printListStats(result.Stats.RecordCount, result.Stats.EntryCount, result.CacheInfo.ResolveHit)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page to print (zero-based)")
	cmd.Flags().BoolVar(&all, "all", false, "print every page")
	cmd.Flags().StringVar(&per, "per", "", "group per rank, or main, any, leaf, child")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "entries per page")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort flat listings by name or obs")
	cmd.Flags().StringVar(&order, "order", "", "sort order: asc or desc")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the resolve cache")
	cmd.Flags().BoolVar(&noTitle, "no-title", false, "omit the title line")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write pages to a file instead of stdout")
	cmd.Flags().StringVar(&export, "export", "", "also save the raw records as JSON, for graph --records")

	return cmd
}
