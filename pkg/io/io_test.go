package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/naturelab/lifelist/pkg/taxon"
)

func TestRoundTrip(t *testing.T) {
	records := []*taxon.Taxon{
		{ID: 3, Name: "Aves", Rank: "class", DescendantObsCount: 3},
		{
			ID: 8021, Name: "Corvus corax", Rank: taxon.RankSpecies,
			ParentID: 3, AncestorIDs: []int{3},
			CommonName: "Common Raven", Count: 2, DescendantObsCount: 2,
		},
		{ID: 12705, Name: "Turdus migratorius", Rank: taxon.RankSpecies, ParentID: 3, AncestorIDs: []int{3}, Inactive: true, Count: 1, DescendantObsCount: 1},
	}

	path := filepath.Join(t.TempDir(), "taxa.json")
	if err := WriteFile(records, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("ReadFile() returned %d records, want %d", len(got), len(records))
	}
	for i, want := range records {
		g, w := *got[i], *want
		// Slices keep Taxon from being comparable, so check ancestry
		// separately.
		if !slices.Equal(g.AncestorIDs, w.AncestorIDs) {
			t.Errorf("record %d ancestors = %v, want %v", i, g.AncestorIDs, w.AncestorIDs)
		}
		g.AncestorIDs, w.AncestorIDs = nil, nil
		if !reflect.DeepEqual(g, w) {
			t.Errorf("record %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestReadJSONValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"malformed", `{"taxa": [`, "decoding taxa"},
		{"missing id", `{"taxa": [{"name": "Aves", "rank": "class"}]}`, "invalid id"},
		{"missing name", `{"taxa": [{"id": 3, "rank": "class"}]}`, "missing name"},
		{"missing rank", `{"taxa": [{"id": 3, "name": "Aves"}]}`, "missing rank"},
		{"duplicate id", `{"taxa": [{"id": 3, "name": "Aves", "rank": "class"}, {"id": 3, "name": "Aves", "rank": "class"}]}`, "duplicate taxon id 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ReadJSON() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteJSONOmitsZeroFields(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON([]*taxon.Taxon{{ID: 3, Name: "Aves", Rank: "class"}}, &buf)
	if err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	for _, field := range []string{"parent_id", "count", "inactive", "common_name"} {
		if strings.Contains(buf.String(), field) {
			t.Errorf("output contains %q for a zero-valued field:\n%s", field, buf.String())
		}
	}
}
