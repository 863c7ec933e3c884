package query

import (
	"reflect"
	"testing"
)

func TestParseNaturalClauses(t *testing.T) {
	tests := []struct {
		name     string
		argument string
		want     Query
	}{
		{
			name:     "implicit of",
			argument: "birds",
			want:     Query{Main: []string{"birds"}},
		},
		{
			name:     "of and in",
			argument: "of birds in australia",
			want:     Query{Main: []string{"birds"}, Ancestor: []string{"australia"}},
		},
		{
			name:     "multi-word user",
			argument: "birds by jane doe",
			want:     Query{Main: []string{"birds"}, User: "jane doe"},
		},
		{
			name:     "joined not by",
			argument: "birds not by me",
			want:     Query{Main: []string{"birds"}, UnobservedBy: "me"},
		},
		{
			name:     "joined id by and except by",
			argument: "birds id by alice except by bob",
			want:     Query{Main: []string{"birds"}, IDBy: "alice", ExceptBy: "bob"},
		},
		{
			name:     "place and project",
			argument: "birds from nova scotia in prj birding 2024",
			want:     Query{Main: []string{"birds"}, Place: "nova scotia", Project: "birding 2024"},
		},
		{
			name:     "inprj without space",
			argument: "birds inprj seabirds",
			want:     Query{Main: []string{"birds"}, Project: "seabirds"},
		},
		{
			name:     "rank lowercased",
			argument: "birds rank Species",
			want:     Query{Main: []string{"birds"}, Ranks: []string{"species"}},
		},
		{
			name:     "per and sort by and order",
			argument: "birds by me per main sort by count order desc",
			want: Query{
				Main: []string{"birds"}, User: "me",
				Per: "main", SortBy: "count", Order: "desc",
			},
		},
		{
			name:     "opt accumulates",
			argument: "birds opt popular photos",
			want:     Query{Main: []string{"birds"}, Options: []string{"popular", "photos"}},
		},
		{
			name:     "observed dates",
			argument: "birds since 2024-01-01 until 2024-12-31",
			want: Query{
				Main:     []string{"birds"},
				ObsSince: "2024-01-01", ObsUntil: "2024-12-31",
			},
		},
		{
			name:     "added date clauses",
			argument: "birds added since 2024-01-01 added on 2024-06-15",
			want: Query{
				Main:       []string{"birds"},
				AddedSince: "2024-01-01", AddedOn: "2024-06-15",
			},
		},
		{
			name:     "quoted phrase stays one token",
			argument: `"song sparrow" by me`,
			want:     Query{Main: []string{`"song sparrow"`}, User: "me"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNatural(tt.argument)
			if err != nil {
				t.Fatalf("ParseNatural(%q): %v", tt.argument, err)
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("ParseNatural(%q) = %+v, want %+v", tt.argument, *got, tt.want)
			}
		})
	}
}

func TestParseNaturalMacros(t *testing.T) {
	tests := []struct {
		name     string
		argument string
		want     Query
	}{
		{
			name:     "my",
			argument: "my birds",
			want:     Query{Main: []string{"birds"}, User: "me"},
		},
		{
			name:     "home",
			argument: "home birds",
			want:     Query{Main: []string{"birds"}, Place: "home"},
		},
		{
			name:     "rg expands to option",
			argument: "rg birds",
			want:     Query{Main: []string{"birds"}, Options: []string{"quality_grade=research"}},
		},
		{
			name:     "newest",
			argument: "newest birds by me",
			want: Query{
				Main: []string{"birds"}, User: "me",
				Options: []string{"order=desc", "order_by=observed_on"},
			},
		},
		{
			name:     "unseen",
			argument: "unseen birds",
			want:     Query{Main: []string{"birds"}, UnobservedBy: "me", Place: "home"},
		},
		{
			name:     "explicit clause wins over macro",
			argument: "my birds by alice",
			want:     Query{Main: []string{"birds"}, User: "alice"},
		},
		{
			name:     "macro word after keyword is literal",
			argument: "birds from home",
			want:     Query{Main: []string{"birds"}, Place: "home"},
		},
		{
			name:     "macro options precede explicit options",
			argument: "rg birds opt photos",
			want: Query{
				Main:    []string{"birds"},
				Options: []string{"quality_grade=research", "photos"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNatural(tt.argument)
			if err != nil {
				t.Fatalf("ParseNatural(%q): %v", tt.argument, err)
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("ParseNatural(%q) = %+v, want %+v", tt.argument, *got, tt.want)
			}
		})
	}
}

func TestParseNaturalUnbalancedQuote(t *testing.T) {
	if _, err := ParseNatural(`"song sparrow by me`); err == nil {
		t.Fatal("expected error for unbalanced quote")
	}
}
