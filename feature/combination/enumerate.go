package combination

// ApplyAllowList filters grouped entities to the allowed material option
// codes. Standalone entities are never filtered. The returned bool is false
// when filtering emptied an entity, in which case the product yields no
// combinations for this filter configuration.
//
// An empty allow-list is a no-op; applying the same list twice is a no-op.
func ApplyAllowList(entities []Entity, allow map[string]struct{}) ([]Entity, bool) {
	if len(allow) == 0 {
		return entities, true
	}

	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if !e.Grouped {
			out = append(out, e)
			continue
		}

		filtered := Entity{Grouped: true, Features: e.Features}
		for _, opt := range e.Options {
			if _, ok := allow[opt.Code]; ok {
				filtered.Options = append(filtered.Options, opt)
			}
		}
		if len(filtered.Options) == 0 {
			return nil, false
		}
		out = append(out, filtered)
	}
	return out, true
}

// Enumerate computes the Cartesian product across all entities. The result
// is empty for an empty entity list. Order is stable: entity list order
// crossed with within-entity option order, last entity varying fastest.
//
// Output size is multiplicative across entities; large results are an
// expected outcome, not an error.
func Enumerate(entities []Entity) []Combination {
	if len(entities) == 0 {
		return nil
	}

	total := 1
	for _, e := range entities {
		if len(e.Options) == 0 {
			return nil
		}
		total *= len(e.Options)
	}

	combos := make([]Combination, 0, total)
	indices := make([]int, len(entities))

	for {
		combo := make(Combination, len(entities))
		for i, e := range entities {
			combo[i] = e.Options[indices[i]]
		}
		combos = append(combos, combo)

		// Advance the odometer, last entity fastest
		pos := len(indices) - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(entities[pos].Options) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			return combos
		}
	}
}
