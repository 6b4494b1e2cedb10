// Package combination derives the legal feature combinations of a product.
//
// It partitions a product's features into enumeration axes (standalone
// features and merged mutually-exclusive groups) and computes the Cartesian
// product across them, optionally restricted by a material allow-list.
package combination
