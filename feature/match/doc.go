// Package match resolves generated combinations to internal inventory item
// numbers.
//
// Matching is deterministic and explainable rather than globally optimal: a
// layered strategy narrows reference rows by name similarity, then requires
// the row's base color words to be a subset of the combination's base color
// and its material code to match exactly after normalization. The first
// qualifying row in table order wins.
package match
