package inat

import (
	"context"
	"net/url"
	"strconv"

	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/query"
)

type apiUser struct {
	ID    int    `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

type apiPlace struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type apiProject struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type usersResponse struct {
	TotalResults int       `json:"total_results"`
	Results      []apiUser `json:"results"`
}

type placesResponse struct {
	TotalResults int        `json:"total_results"`
	Results      []apiPlace `json:"results"`
}

type projectsResponse struct {
	TotalResults int          `json:"total_results"`
	Results      []apiProject `json:"results"`
}

// GetUser fetches one user by id or login.
func (c *Client) GetUser(ctx context.Context, idOrLogin string) (*query.User, error) {
	var resp usersResponse
	err := c.cached(ctx, "users", "/users/"+url.PathEscape(idOrLogin), nil, &resp)
	if err != nil {
		if lserr.Is(err, lserr.ErrCodeNotFound) {
			return nil, lserr.New(lserr.ErrCodeNotFound, "user %s not found", idOrLogin)
		}
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, lserr.New(lserr.ErrCodeNotFound, "user %s not found", idOrLogin)
	}
	u := resp.Results[0]
	return &query.User{ID: u.ID, Login: u.Login, Name: u.Name}, nil
}

// UserAutocomplete matches users by login or name, best match first.
func (c *Client) UserAutocomplete(ctx context.Context, q string) (*query.User, error) {
	params := url.Values{}
	params.Set("q", q)
	var resp usersResponse
	if err := c.cached(ctx, "users", "/users/autocomplete", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, lserr.New(lserr.ErrCodeNotFound, "no user matches %q", q)
	}
	u := resp.Results[0]
	return &query.User{ID: u.ID, Login: u.Login, Name: u.Name}, nil
}

// PlaceAutocomplete matches places by name, best match first.
func (c *Client) PlaceAutocomplete(ctx context.Context, q string) (*query.Place, error) {
	params := url.Values{}
	params.Set("q", q)
	var resp placesResponse
	if err := c.cached(ctx, "places", "/places/autocomplete", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, lserr.New(lserr.ErrCodeNotFound, "no place matches %q", q)
	}
	p := resp.Results[0]
	name := p.DisplayName
	if name == "" {
		name = p.Name
	}
	return &query.Place{ID: p.ID, Name: name}, nil
}

// ProjectAutocomplete matches projects by title, best match first.
func (c *Client) ProjectAutocomplete(ctx context.Context, q string) (*query.Project, error) {
	params := url.Values{}
	params.Set("q", q)
	var resp projectsResponse
	if err := c.cached(ctx, "projects", "/projects/autocomplete", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, lserr.New(lserr.ErrCodeNotFound, "no project matches %q", q)
	}
	p := resp.Results[0]
	return &query.Project{ID: p.ID, Name: p.Title}, nil
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	return id, err == nil && id > 0
}
