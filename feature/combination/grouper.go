package combination

import "catalog-exporter/feature/catalog"

// Group partitions a product's features into enumeration axes.
//
// For each declared exclusive set, the intersection with the product's
// present (and not yet processed) features is computed per product, since
// not every product carries every feature of a declared set. An
// intersection of fewer than two features means the set does not apply and
// the features stay standalone. Two or more intersecting features are
// merged into one grouped entity whose options keep their originating
// feature tag.
//
// Merged entities come first, in declared-set order; remaining features
// follow as standalone entities in product feature order. A product with
// zero features yields an empty list, never a single empty combination.
func Group(features []catalog.Feature, exclusiveSets [][]string) []Entity {
	if len(features) == 0 {
		return nil
	}

	index := make(map[string]catalog.Feature, len(features))
	for _, f := range features {
		index[f.Code] = f
	}

	processed := make(map[string]bool, len(features))
	entities := make([]Entity, 0, len(features))

	for _, set := range exclusiveSets {
		member := make(map[string]bool, len(set))
		for _, code := range set {
			member[code] = true
		}

		// Intersection in product feature order keeps output deterministic.
		var present []catalog.Feature
		for _, f := range features {
			if member[f.Code] && !processed[f.Code] {
				present = append(present, f)
			}
		}
		if len(present) < 2 {
			continue
		}

		entity := Entity{Grouped: true}
		for _, f := range present {
			processed[f.Code] = true
			entity.Features = append(entity.Features, f.Code)
			for _, opt := range f.Options {
				entity.Options = append(entity.Options, TaggedOption{
					Feature: f.Code,
					Code:    opt.Code,
					Name:    opt.Name,
				})
			}
		}
		entities = append(entities, entity)
	}

	for _, f := range features {
		if processed[f.Code] {
			continue
		}
		entity := Entity{Features: []string{f.Code}}
		for _, opt := range f.Options {
			entity.Options = append(entity.Options, TaggedOption{
				Feature: f.Code,
				Code:    opt.Code,
				Name:    opt.Name,
			})
		}
		entities = append(entities, entity)
	}

	return entities
}

// SetsFromFeatureGroups converts API-declared feature groups into the same
// shape as the statically configured exclusive sets. When a product carries
// feature groups they replace the configured sets for that product.
func SetsFromFeatureGroups(groups []catalog.FeatureGroup) [][]string {
	if len(groups) == 0 {
		return nil
	}
	sets := make([][]string, 0, len(groups))
	for _, g := range groups {
		if len(g.Features) == 0 {
			continue
		}
		sets = append(sets, g.Features)
	}
	return sets
}
