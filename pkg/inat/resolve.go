package inat

import (
	"context"
	"strconv"
	"strings"

	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/query"
	"github.com/naturelab/lifelist/pkg/taxon"
)

// Defaults supplies the caller's identity for queries that say "me" or
// "home". Both are optional; a query that needs an unset default fails with
// INVALID_QUERY.
type Defaults struct {
	// Login is the user behind "my"/"me" clauses.
	Login string
	// HomePlaceID is the place behind "home" clauses.
	HomePlaceID int
}

// Resolve looks up every named object in a parsed query against the API and
// returns the concrete response used to build observation parameters.
// Numeric values short-circuit to direct id lookups; names go through the
// autocomplete endpoints and take the best match.
func (c *Client) Resolve(ctx context.Context, q *query.Query, defaults Defaults) (*query.Response, error) {
	r := &query.Response{
		Observed: query.DateSelector{On: q.ObsOn, D1: q.ObsSince, D2: q.ObsUntil},
		Added:    query.DateSelector{On: q.AddedOn, D1: q.AddedSince, D2: q.AddedUntil},
	}

	if len(q.Main) > 0 {
		t, err := c.resolveTaxon(ctx, q)
		if err != nil {
			return nil, err
		}
		r.Taxon = t
	}

	var err error
	if r.User, err = c.resolveUser(ctx, q.User, defaults); err != nil {
		return nil, err
	}
	if r.UnobservedBy, err = c.resolveUser(ctx, q.UnobservedBy, defaults); err != nil {
		return nil, err
	}
	if r.IDBy, err = c.resolveUser(ctx, q.IDBy, defaults); err != nil {
		return nil, err
	}
	if r.ExceptBy, err = c.resolveUser(ctx, q.ExceptBy, defaults); err != nil {
		return nil, err
	}

	if q.Place != "" {
		if r.Place, err = c.resolvePlace(ctx, q.Place, defaults); err != nil {
			return nil, err
		}
	}
	if q.Project != "" {
		if r.Project, err = c.resolveProject(ctx, q.Project); err != nil {
			return nil, err
		}
	}

	if len(q.Options) > 0 {
		r.Options = parseOptions(q.Options)
	}
	return r, nil
}

// resolveTaxon matches the "of" clause: a pasted id, an exact-phrase quoted
// name, or free text through autocomplete, optionally narrowed by
// "rank" clause ranks.
func (c *Client) resolveTaxon(ctx context.Context, q *query.Query) (*taxon.Taxon, error) {
	text := strings.Join(q.Main, " ")
	if id, ok := parseID(text); ok {
		return c.GetTaxon(ctx, id)
	}

	matches, err := c.TaxaAutocomplete(ctx, strings.Trim(text, `"`), q.Ranks)
	if err != nil {
		return nil, err
	}
	if exact := strings.HasPrefix(text, `"`); exact {
		want := strings.ToLower(strings.Trim(text, `"`))
		for _, t := range matches {
			if strings.ToLower(t.Name) == want || strings.ToLower(t.CommonName) == want {
				return t, nil
			}
		}
		return nil, lserr.New(lserr.ErrCodeTaxonNotFound, "no taxon exactly matches %s", text)
	}
	if len(matches) == 0 {
		return nil, lserr.New(lserr.ErrCodeTaxonNotFound, "no taxon matches %q", text)
	}
	return matches[0], nil
}

func (c *Client) resolveUser(ctx context.Context, name string, defaults Defaults) (*query.User, error) {
	if name == "" {
		return nil, nil
	}
	if name == "me" {
		if defaults.Login == "" {
			return nil, lserr.New(lserr.ErrCodeInvalidQuery,
				"no user configured: set your login to use \"my\" or \"me\"")
		}
		name = defaults.Login
	}
	if _, ok := parseID(name); ok {
		return c.GetUser(ctx, name)
	}
	return c.UserAutocomplete(ctx, name)
}

func (c *Client) resolvePlace(ctx context.Context, name string, defaults Defaults) (*query.Place, error) {
	if name == "home" {
		if defaults.HomePlaceID == 0 {
			return nil, lserr.New(lserr.ErrCodeInvalidQuery,
				"no home place configured: set one to use \"home\"")
		}
		name = strconv.Itoa(defaults.HomePlaceID)
	}
	if id, ok := parseID(name); ok {
		return &query.Place{ID: id, Name: name}, nil
	}
	return c.PlaceAutocomplete(ctx, name)
}

func (c *Client) resolveProject(ctx context.Context, name string) (*query.Project, error) {
	if id, ok := parseID(name); ok {
		return &query.Project{ID: id, Name: name}, nil
	}
	return c.ProjectAutocomplete(ctx, name)
}

// parseOptions turns "opt" clause words into API parameters. A bare word is
// a boolean flag; "key=value" passes through.
func parseOptions(opts []string) map[string]string {
	params := make(map[string]string, len(opts))
	for _, opt := range opts {
		if key, value, found := strings.Cut(opt, "="); found {
			params[key] = value
		} else {
			params[opt] = "true"
		}
	}
	return params
}
