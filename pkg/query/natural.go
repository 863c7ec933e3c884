package query

import (
	"regexp"
	"strings"

	"github.com/naturelab/lifelist/pkg/lserr"
)

// macros expand single-word shorthands into query clauses. Macros that
// expand to opt arguments accumulate; any other expansion supersedes an
// earlier value for the same clause.
var macros = map[string]Query{
	"rg":      {Options: []string{"quality_grade=research"}},
	"nid":     {Options: []string{"quality_grade=needs_id"}},
	"oldest":  {Options: []string{"order=asc", "order_by=observed_on"}},
	"newest":  {Options: []string{"order=desc", "order_by=observed_on"}},
	"reverse": {Options: []string{"order=asc"}},
	"faves":   {Options: []string{"popular", "order_by=votes"}},
	"spp":     {Options: []string{"hrank=species"}},
	"species": {Options: []string{"hrank=species"}},
	"my":      {User: "me"},
	"home":    {Place: "home"},
	"unseen":  {UnobservedBy: "me", Place: "home"},
}

// clauseKeywords maps a clause keyword to the field it fills. Multi-word
// keywords are normalized to these hyphenated forms before tokenizing.
var clauseKeywords = map[string]bool{
	"of": true, "in": true, "by": true, "not-by": true, "id-by": true,
	"except-by": true, "from": true, "rank": true, "per": true,
	"sort-by": true, "order": true, "opt": true, "in-prj": true,
	"since": true, "until": true, "on": true,
	"added-since": true, "added-until": true, "added-on": true,
}

var (
	// "id by", "not by", "except by", "sort by" normalize to one token.
	joinedByPat = regexp.MustCompile(`(?i)((^| )(id|not|except|sort)) ?by `)
	// "in prj" normalizes to "in-prj".
	inPrjPat = regexp.MustCompile(`(?i)((^| )in ?prj) `)
	// "added on|since|until" normalize to "added-..." tokens.
	addedPat = regexp.MustCompile(`(?i)((^| )added) (on|since|until) `)
)

// ParseNatural parses a natural-language query such as
//
//	"my rg birds from home rank species sort by count order desc"
//
// into a structured [Query]. Words before the first clause keyword are the
// implicit "of" clause. Single-word macros (my, rg, home, ...) expand
// anywhere except directly after a clause keyword, so "from home" means the
// place named home while a bare "home" means the user's home place.
func ParseNatural(argument string) (*Query, error) {
	normalized := joinedByPat.ReplaceAllString(argument, "$2$3-by ")
	normalized = inPrjPat.ReplaceAllString(normalized, "$2in-prj ")
	normalized = addedPat.ReplaceAllString(normalized, "$2-$3 ")

	tokens, err := splitQuoted(normalized)
	if err != nil {
		return nil, lserr.Wrap(lserr.ErrCodeInvalidQuery, err, "cannot tokenize query")
	}

	q := &Query{}
	var expanded Query
	var opts []string
	clause := "of"
	seenClause := false
	suppressMacro := false

	for _, token := range tokens {
		lower := strings.ToLower(token)
		if clauseKeywords[lower] && (lower != "of" || !seenClause) {
			clause = lower
			seenClause = true
			suppressMacro = lower != "of"
			continue
		}
		if !suppressMacro && clause == "of" {
			if macro, ok := macros[lower]; ok {
				opts = append(opts, macro.Options...)
				if macro.User != "" {
					expanded.User = macro.User
				}
				if macro.UnobservedBy != "" {
					expanded.UnobservedBy = macro.UnobservedBy
				}
				if macro.Place != "" {
					expanded.Place = macro.Place
				}
				continue
			}
		}
		suppressMacro = false
		q.addClauseWord(clause, token)
	}

	// Deferred macro expansions apply only when the user gave no explicit
	// value for the same clause.
	if q.User == "" {
		q.User = expanded.User
	}
	if q.UnobservedBy == "" {
		q.UnobservedBy = expanded.UnobservedBy
	}
	if q.Place == "" {
		q.Place = expanded.Place
	}
	q.Options = append(opts, q.Options...)
	return q, nil
}

// addClauseWord appends one word to the clause's value.
func (q *Query) addClauseWord(clause, word string) {
	join := func(value string) string {
		if value == "" {
			return word
		}
		return value + " " + word
	}
	switch clause {
	case "of":
		q.Main = append(q.Main, word)
	case "in":
		q.Ancestor = append(q.Ancestor, word)
	case "rank":
		q.Ranks = append(q.Ranks, strings.ToLower(word))
	case "by":
		q.User = join(q.User)
	case "not-by":
		q.UnobservedBy = join(q.UnobservedBy)
	case "id-by":
		q.IDBy = join(q.IDBy)
	case "except-by":
		q.ExceptBy = join(q.ExceptBy)
	case "from":
		q.Place = join(q.Place)
	case "in-prj":
		q.Project = join(q.Project)
	case "per":
		q.Per = join(q.Per)
	case "sort-by":
		q.SortBy = join(q.SortBy)
	case "order":
		q.Order = join(q.Order)
	case "opt":
		q.Options = append(q.Options, word)
	case "since":
		q.ObsSince = join(q.ObsSince)
	case "until":
		q.ObsUntil = join(q.ObsUntil)
	case "on":
		q.ObsOn = join(q.ObsOn)
	case "added-since":
		q.AddedSince = join(q.AddedSince)
	case "added-until":
		q.AddedUntil = join(q.AddedUntil)
	case "added-on":
		q.AddedOn = join(q.AddedOn)
	}
}

// splitQuoted splits on whitespace, keeping double-quoted phrases as single
// tokens with the quotes preserved (they mark exact-phrase taxon matches).
func splitQuoted(s string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inQuote := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			current.WriteRune(r)
		case !inQuote && (r == ' ' || r == '\t' || r == '\n'):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if inQuote {
		return nil, lserr.New(lserr.ErrCodeInvalidQuery, "unbalanced quote in query")
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
