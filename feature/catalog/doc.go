// Package catalog talks to the upstream product-configuration service.
//
// It provides the product list and per-product configuration fetches (with a
// per-run cache), the feature-set normalization applied before enumeration,
// and the image URL builder whose exact query shape downstream consumers
// depend on.
package catalog
