package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/naturelab/lifelist/pkg/taxon"
)

type document struct {
	Taxa []record `json:"taxa"`
}

type record struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Rank               string `json:"rank"`
	ParentID           int    `json:"parent_id,omitempty"`
	AncestorIDs        []int  `json:"ancestor_ids,omitempty"`
	CommonName         string `json:"common_name,omitempty"`
	Inactive           bool   `json:"inactive,omitempty"`
	Count              int    `json:"count,omitempty"`
	DescendantObsCount int    `json:"descendant_obs_count,omitempty"`
}

// WriteJSON encodes taxon records as JSON and writes them to w.
// The output preserves every field, so it can be re-imported with
// [ReadJSON] for round-trip processing.
func WriteJSON(records []*taxon.Taxon, w io.Writer) error {
	doc := document{Taxa: make([]record, len(records))}
	for i, t := range records {
		doc.Taxa[i] = record{
			ID:                 t.ID,
			Name:               t.Name,
			Rank:               string(t.Rank),
			ParentID:           t.ParentID,
			AncestorIDs:        t.AncestorIDs,
			CommonName:         t.CommonName,
			Inactive:           t.Inactive,
			Count:              t.Count,
			DescendantObsCount: t.DescendantObsCount,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding taxa: %w", err)
	}
	return nil
}

// WriteFile writes taxon records to the named file as JSON, creating or
// truncating it.
func WriteFile(records []*taxon.Taxon, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteJSON(records, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
