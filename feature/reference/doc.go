// Package reference loads and indexes the secondary reference dataset used
// to resolve internal inventory item numbers.
//
// The dataset is a tabular file (xlsx or csv) with four required columns:
// item number, item name, base color text, and material/color code. Rows
// are pre-normalized into matchable fields at load time; the table stays in
// memory for the lifetime of the run.
package reference
