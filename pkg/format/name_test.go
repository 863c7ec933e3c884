package format

import (
	"testing"

	"github.com/naturelab/lifelist/pkg/taxon"
)

func TestTaxonName(t *testing.T) {
	tests := []struct {
		name string
		tx   taxon.Taxon
		opts NameOptions
		want string
	}{
		{
			name: "class with rank",
			tx:   taxon.Taxon{Name: "Aves", Rank: "class"},
			opts: NameOptions{WithRank: true},
			want: "Class Aves",
		},
		{
			name: "class without rank",
			tx:   taxon.Taxon{Name: "Aves", Rank: "class"},
			want: "Aves",
		},
		{
			name: "genus italicized with rank",
			tx:   taxon.Taxon{Name: "Anser", Rank: "genus"},
			opts: NameOptions{WithRank: true},
			want: "Genus *Anser*",
		},
		{
			name: "species italicized without rank word",
			tx:   taxon.Taxon{Name: "Anser anser", Rank: "species"},
			opts: NameOptions{WithRank: true},
			want: "*Anser anser*",
		},
		{
			name: "genushybrid not italicized",
			tx:   taxon.Taxon{Name: "Anas × Mareca", Rank: "genushybrid"},
			opts: NameOptions{WithRank: true},
			want: "Genushybrid Anas × Mareca",
		},
		{
			name: "subgenus not italicized",
			tx:   taxon.Taxon{Name: "Pica", Rank: "subgenus"},
			opts: NameOptions{WithRank: true},
			want: "Subgenus Pica",
		},
		{
			name: "trinomial variety",
			tx:   taxon.Taxon{Name: "Anser anser domesticus", Rank: "variety"},
			opts: NameOptions{WithRank: true},
			want: "*Anser anser* var. *domesticus*",
		},
		{
			name: "trinomial subspecies",
			tx:   taxon.Taxon{Name: "Turdus migratorius migratorius", Rank: "subspecies"},
			want: "*Turdus migratorius* ssp. *migratorius*",
		},
		{
			name: "two-word subspecies left alone",
			tx:   taxon.Taxon{Name: "Oddball name", Rank: "subspecies"},
			want: "*Oddball name*",
		},
		{
			name: "common name appended",
			tx:   taxon.Taxon{Name: "Aves", Rank: "class", CommonName: "Birds"},
			opts: NameOptions{WithRank: true, WithCommon: true},
			want: "Class Aves (Birds)",
		},
		{
			name: "hierarchy bolds primary ranks",
			tx:   taxon.Taxon{Name: "Aves", Rank: "class"},
			opts: NameOptions{Hierarchy: true, WithCommon: true},
			want: "\n> **Aves**",
		},
		{
			name: "hierarchy leaves secondary ranks plain",
			tx:   taxon.Taxon{Name: "Passeri", Rank: "suborder"},
			opts: NameOptions{Hierarchy: true},
			want: "Passeri",
		},
		{
			name: "inactive flagged",
			tx:   taxon.Taxon{Name: "Anser anser", Rank: "species", Inactive: true},
			want: "*Anser anser* ❗ Inactive Taxon",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TaxonName(&tt.tx, tt.opts); got != tt.want {
				t.Errorf("TaxonName() = %q, want %q", got, tt.want)
			}
		})
	}
}
