// Package io provides JSON import and export for taxon record sets.
//
// # Overview
//
// This package serializes the flat record lists produced by a life-list
// query to and from a simple JSON format. The format is designed for:
//
//   - Saving a query's records for offline re-rendering
//   - Integration with external tools that produce or consume taxon data
//   - Round-trip preservation: export, re-import, and render identically
//
// # JSON Format
//
// The format has one required top-level array:
//
//	{
//	  "taxa": [
//	    {"id": 3, "name": "Aves", "rank": "class"},
//	    {"id": 8021, "name": "Corvus corax", "rank": "species",
//	     "parent_id": 3, "ancestor_ids": [3],
//	     "count": 2, "descendant_obs_count": 2}
//	  ]
//	}
//
// Per-record fields mirror [taxon.Taxon]: id, name, and rank are required,
// everything else is optional. Counts default to zero, which renders the
// record as unobserved.
package io
