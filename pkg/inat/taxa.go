package inat

import (
	"context"
	"net/url"
	"strconv"

	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/taxon"
)

// apiTaxon is the wire shape of a taxon across the taxa and observation
// taxonomy endpoints. Fields absent from an endpoint decode to zero values.
type apiTaxon struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Rank                string `json:"rank"`
	ParentID            int    `json:"parent_id"`
	AncestorIDs         []int  `json:"ancestor_ids"`
	PreferredCommonName string `json:"preferred_common_name"`
	MatchedTerm         string `json:"matched_term"`
	IsActive            *bool  `json:"is_active"`
	ObservationsCount   int    `json:"observations_count"`
	Count               int    `json:"count"`
	DescendantObsCount  int    `json:"descendant_obs_count"`
	DirectObsCount      int    `json:"direct_obs_count"`

	// Ancestors is populated by the taxa detail endpoint only.
	Ancestors []apiTaxon `json:"ancestors"`
}

type taxaResponse struct {
	TotalResults int        `json:"total_results"`
	Results      []apiTaxon `json:"results"`
}

type taxonomyResponse struct {
	TotalResults      int        `json:"total_results"`
	CountWithoutTaxon int        `json:"count_without_taxon"`
	Results           []apiTaxon `json:"results"`
}

func (a *apiTaxon) record() *taxon.Taxon {
	direct := a.DirectObsCount
	if direct == 0 {
		direct = a.Count
	}
	rollup := a.DescendantObsCount
	if rollup == 0 {
		// The taxa endpoints report a single global count instead of the
		// per-query rollup.
		rollup = a.ObservationsCount
	}
	t := &taxon.Taxon{
		ID:                 a.ID,
		Name:               a.Name,
		Rank:               taxon.Rank(a.Rank),
		ParentID:           a.ParentID,
		AncestorIDs:        a.AncestorIDs,
		CommonName:         a.PreferredCommonName,
		MatchedTerm:        a.MatchedTerm,
		Count:              direct,
		DescendantObsCount: rollup,
	}
	if a.IsActive != nil && !*a.IsActive {
		t.Inactive = true
	}
	return t
}

func records(results []apiTaxon) []*taxon.Taxon {
	taxa := make([]*taxon.Taxon, len(results))
	for i := range results {
		taxa[i] = results[i].record()
	}
	return taxa
}

// LifeList fetches the observed-taxa tree for an observation query: every
// taxon with at least one matching observation, annotated with ancestor ids
// and per-taxon counts. The flat record list is the input to taxonlist.New.
func (c *Client) LifeList(ctx context.Context, params map[string]string) ([]*taxon.Taxon, error) {
	var resp taxonomyResponse
	if err := c.cached(ctx, "taxonomy", "/observations/taxonomy", values(params), &resp); err != nil {
		return nil, err
	}
	return records(resp.Results), nil
}

// GetTaxon fetches one taxon by id.
func (c *Client) GetTaxon(ctx context.Context, id int) (*taxon.Taxon, error) {
	var resp taxaResponse
	err := c.cached(ctx, "taxa", "/taxa/"+strconv.Itoa(id), nil, &resp)
	if err != nil {
		if lserr.Is(err, lserr.ErrCodeNotFound) {
			return nil, lserr.New(lserr.ErrCodeTaxonNotFound, "taxon %d not found", id)
		}
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, lserr.New(lserr.ErrCodeTaxonNotFound, "taxon %d not found", id)
	}
	return resp.Results[0].record(), nil
}

// GetTaxonWithAncestors fetches one taxon by id along with its ancestor
// chain, root-first, for hierarchy displays.
func (c *Client) GetTaxonWithAncestors(ctx context.Context, id int) (*taxon.Taxon, []*taxon.Taxon, error) {
	var resp taxaResponse
	err := c.cached(ctx, "taxa", "/taxa/"+strconv.Itoa(id), nil, &resp)
	if err != nil {
		if lserr.Is(err, lserr.ErrCodeNotFound) {
			return nil, nil, lserr.New(lserr.ErrCodeTaxonNotFound, "taxon %d not found", id)
		}
		return nil, nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil, lserr.New(lserr.ErrCodeTaxonNotFound, "taxon %d not found", id)
	}
	return resp.Results[0].record(), records(resp.Results[0].Ancestors), nil
}

// TaxaAutocomplete matches taxa by name the way the website's search box
// does, best match first.
func (c *Client) TaxaAutocomplete(ctx context.Context, q string, ranks []string) ([]*taxon.Taxon, error) {
	params := url.Values{}
	params.Set("q", q)
	if len(ranks) > 0 {
		for _, rank := range ranks {
			params.Add("rank", rank)
		}
	}
	var resp taxaResponse
	if err := c.cached(ctx, "taxa", "/taxa/autocomplete", params, &resp); err != nil {
		return nil, err
	}
	return records(resp.Results), nil
}
