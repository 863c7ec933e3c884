// Package taxon defines the taxon record model and the rank vocabulary: the
// mapping from rank names to numeric rank levels, rank synonyms, rank groups
// that share a level, and pluralization of rank names for display.
//
// Rank levels order the classification tiers numerically, with higher levels
// for coarser ranks ("kingdom" is 70, "species" is 10). Everything else in
// the module compares ranks through these levels rather than by position in
// an ad-hoc list.
package taxon
