package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naturelab/lifelist/pkg/format"
	"github.com/naturelab/lifelist/pkg/query"
	"github.com/naturelab/lifelist/pkg/taxon"
)

// taxonCommand creates the "taxon" command: look up one taxon and print a
// summary with its ancestry.
func (a *app) taxonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxon <name or id>",
		Short: "Look up a single taxon",
		Long: `Look up a taxon by scientific name, common name, or numeric id and
print its rank, observation count, and ancestor hierarchy.

Examples:
  lifelist taxon "Corvus corax"
  lifelist taxon raven
  lifelist taxon 8021`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := a.newRunner(ctx)
			if err != nil {
				return err
			}
			client := runner.Client

			var matched string
			id, err := strconv.Atoi(args[0])
			if err != nil {
				matches, err := client.TaxaAutocomplete(ctx, args[0], nil)
				if err != nil {
					return err
				}
				if len(matches) == 0 {
					printError("No taxon matches %q", args[0])
					return nil
				}
				id = matches[0].ID
				matched = matches[0].MatchedTerm
			}

			t, ancestors, err := client.GetTaxonWithAncestors(ctx, id)
			if err != nil {
				return err
			}

			printKeyValue("Name", format.TaxonName(t, format.NameOptions{WithCommon: true}))
			if matched != "" && !strings.EqualFold(matched, t.Name) && !strings.EqualFold(matched, t.CommonName) {
				printKeyValue("Matched", matched)
			}
			printKeyValue("Rank", string(t.Rank))
			printKeyValue("Observations", strconv.Itoa(t.ObsCount()))
			if chain := ancestryLine(ancestors); chain != "" {
				printKeyValue("In", chain)
			}
			printKeyValue("URL", query.TaxonURL(t.ID))
			if t.Inactive {
				printWarning("This taxon is inactive")
			}
			return nil
		},
	}

	return cmd
}

// ancestryLine joins the common-rank ancestors, coarsest first, skipping the
// "Life" super-root.
func ancestryLine(ancestors []*taxon.Taxon) string {
	common := make(map[taxon.Rank]bool, len(taxon.CommonRanks))
	for _, r := range taxon.CommonRanks {
		common[r] = true
	}
	var names []string
	for _, anc := range ancestors {
		if anc.ID == taxon.RootTaxonID || !common[anc.Rank] {
			continue
		}
		names = append(names, anc.Name)
	}
	return strings.Join(names, " > ")
}
