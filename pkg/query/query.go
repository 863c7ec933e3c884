package query

import (
	"strconv"
	"strings"

	"github.com/naturelab/lifelist/pkg/taxon"
)

// Query is the structured form of a natural-language request: one or more
// "who", "what", "when", and "where" clauses plus pass-through options. It
// carries raw clause text; resolving names to concrete records is the data
// source's job (see [Response]).
type Query struct {
	Main     []string // "of": taxon names, phrases, or an id
	Ancestor []string // "in": ancestor taxon of the "of" match
	Ranks    []string // "rank": restrict taxon matches to these ranks

	User         string // "by": the observer
	UnobservedBy string // "not by": species the user has not observed
	IDBy         string // "id by": the identifier
	ExceptBy     string // "except by": exclude this observer

	Place   string // "from": place name or id
	Project string // "in prj": project name or id

	Per    string // "per": listing policy (rank name, main, any, leaf, child)
	SortBy string // "sort by": name or count
	Order  string // "order": asc or desc

	Options []string // "opt": raw key=value pass-through options

	ObsSince   string // "since"
	ObsUntil   string // "until"
	ObsOn      string // "on"
	AddedSince string // "added since"
	AddedUntil string // "added until"
	AddedOn    string // "added on"
}

// String reassembles the query into its canonical clause syntax.
func (q *Query) String() string {
	var clauses []string
	add := func(keyword string, value string) {
		if value != "" {
			if keyword == "" {
				clauses = append(clauses, value)
			} else {
				clauses = append(clauses, keyword+" "+value)
			}
		}
	}
	add("", strings.Join(q.Main, " "))
	add("rank", strings.Join(q.Ranks, " "))
	add("in", strings.Join(q.Ancestor, " "))
	add("from", q.Place)
	add("in prj", q.Project)
	add("by", q.User)
	add("id by", q.IDBy)
	add("not by", q.UnobservedBy)
	add("except by", q.ExceptBy)
	add("per", q.Per)
	add("sort by", q.SortBy)
	add("order", q.Order)
	add("opt", strings.Join(q.Options, " "))
	add("since", q.ObsSince)
	add("until", q.ObsUntil)
	add("on", q.ObsOn)
	add("added since", q.AddedSince)
	add("added until", q.AddedUntil)
	add("added on", q.AddedOn)
	return strings.Join(clauses, " ")
}

// DateSelector selects records by date: either an exact day or an inclusive
// range. Dates are ISO-8601 strings, passed through to the data source.
type DateSelector struct {
	On string
	D1 string
	D2 string
}

// User is a resolved observer.
type User struct {
	ID    int
	Login string
	Name  string
}

// Place is a resolved place.
type Place struct {
	ID   int
	Name string
}

// Project is a resolved project.
type Project struct {
	ID   int
	Name string
}

// Response is a query with every name resolved against the data source: the
// reference taxon, the user, the place, and so on. It is the context the
// listing and rendering layers need to build titles, footers, and scoped
// observation links.
type Response struct {
	Taxon        *taxon.Taxon
	User         *User
	UnobservedBy *User
	IDBy         *User
	ExceptBy     *User
	Place        *Place
	Project      *Project
	Options      map[string]string
	Observed     DateSelector
	Added        DateSelector
}

// ObsArgs returns the /v1/observations API parameters for the response.
//
// Verifiable defaults to true, relaxed to "any" when a project, user, or
// identifier is part of the query so results match what those users see on
// the website. Explicit opt overrides win over both.
func (r *Response) ObsArgs() map[string]string {
	args := map[string]string{"verifiable": "true"}
	if r.Taxon != nil {
		args["taxon_id"] = strconv.Itoa(r.Taxon.ID)
	}
	if r.User != nil {
		args["user_id"] = strconv.Itoa(r.User.ID)
	}
	if r.Project != nil {
		args["project_id"] = strconv.Itoa(r.Project.ID)
	}
	if r.Place != nil {
		args["place_id"] = strconv.Itoa(r.Place.ID)
	}
	if r.IDBy != nil {
		args["ident_user_id"] = strconv.Itoa(r.IDBy.ID)
	}
	if r.UnobservedBy != nil {
		args["unobserved_by_user_id"] = strconv.Itoa(r.UnobservedBy.ID)
		args["lrank"] = "species"
	}
	if r.ExceptBy != nil {
		args["not_user_id"] = strconv.Itoa(r.ExceptBy.ID)
	}
	if args["project_id"] != "" || args["user_id"] != "" || args["ident_user_id"] != "" {
		args["verifiable"] = "any"
	}
	for key, value := range r.Options {
		args[key] = value
	}
	if r.Observed.On != "" {
		args["observed_on"] = r.Observed.On
	} else {
		if r.Observed.D1 != "" {
			args["d1"] = r.Observed.D1
		}
		if r.Observed.D2 != "" {
			args["d2"] = r.Observed.D2
		}
	}
	if r.Added.On != "" {
		args["created_on"] = r.Added.On
	} else {
		if r.Added.D1 != "" {
			args["created_d1"] = r.Added.D1
		}
		if r.Added.D2 != "" {
			args["created_d2"] = r.Added.D2
		}
	}
	return args
}

// Adjectives describes the quality-grade options as display adjectives,
// e.g. "*Research Grade*".
func (r *Response) Adjectives() []string {
	var adjectives []string
	grades := strings.Split(r.Options["quality_grade"], ",")
	research, needsID := false, false
	for _, grade := range grades {
		switch grade {
		case "any":
			return nil
		case "research":
			research = true
		case "needs_id":
			needsID = true
		}
	}
	switch verifiable := r.Options["verifiable"]; verifiable {
	case "true":
		research, needsID = true, true
	case "false":
		return []string{"*not Verifiable*"}
	}
	switch {
	case research && needsID:
		adjectives = append(adjectives, "*Verifiable*")
	case research:
		adjectives = append(adjectives, "*Research Grade*")
	case needsID:
		adjectives = append(adjectives, "*Needs ID*")
	}
	return adjectives
}

// ObsQueryDescription renders the response as the tail of a report title,
// e.g. "of taxa by benarmstrong from Nova Scotia".
func (r *Response) ObsQueryDescription(taxonName func(*taxon.Taxon) string) string {
	what := "taxa"
	if r.Taxon != nil && taxonName != nil {
		what = taxonName(r.Taxon)
	}
	parts := append(r.Adjectives(), what)
	description := "of " + strings.Join(parts, " ")
	if r.User != nil {
		description += " by " + r.User.Login
	}
	if r.UnobservedBy != nil {
		description += " unobserved by " + r.UnobservedBy.Login
	}
	if r.IDBy != nil {
		description += " identified by " + r.IDBy.Login
	}
	if r.ExceptBy != nil {
		description += " except by " + r.ExceptBy.Login
	}
	if r.Place != nil {
		description += " from " + r.Place.Name
	}
	if r.Project != nil {
		description += " in " + r.Project.Name
	}
	return description
}
