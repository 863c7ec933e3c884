package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/naturelab/lifelist/pkg/taxon"
)

// ReadJSON decodes taxon records from r.
//
// The input must be a JSON object with a "taxa" array. Each entry needs an
// id, a name, and a rank; counts and ancestry are optional. ReadJSON returns
// an error if:
//   - The JSON is malformed
//   - A record is missing a required field
//   - Two records share an id
//
// Unknown rank strings are kept as-is so that data from sources with a
// richer rank vocabulary still round-trips.
func ReadJSON(r io.Reader) ([]*taxon.Taxon, error) {
	var doc document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding taxa: %w", err)
	}

	records := make([]*taxon.Taxon, 0, len(doc.Taxa))
	seen := make(map[int]bool, len(doc.Taxa))
	for i, rec := range doc.Taxa {
		if rec.ID <= 0 {
			return nil, fmt.Errorf("taxon %d: missing or invalid id", i)
		}
		if rec.Name == "" {
			return nil, fmt.Errorf("taxon %d (id %d): missing name", i, rec.ID)
		}
		if rec.Rank == "" {
			return nil, fmt.Errorf("taxon %d (id %d): missing rank", i, rec.ID)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("duplicate taxon id %d", rec.ID)
		}
		seen[rec.ID] = true

		records = append(records, &taxon.Taxon{
			ID:                 rec.ID,
			Name:               rec.Name,
			Rank:               taxon.Rank(rec.Rank),
			ParentID:           rec.ParentID,
			AncestorIDs:        rec.AncestorIDs,
			CommonName:         rec.CommonName,
			Inactive:           rec.Inactive,
			Count:              rec.Count,
			DescendantObsCount: rec.DescendantObsCount,
		})
	}
	return records, nil
}

// ReadFile reads taxon records from the named JSON file.
func ReadFile(path string) ([]*taxon.Taxon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
