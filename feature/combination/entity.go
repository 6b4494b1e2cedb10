package combination

// TaggedOption is an option annotated with the feature it originates from.
// The tag is what later populates the correct output column when options
// from several mutually exclusive features share one enumeration axis.
type TaggedOption struct {
	Feature string
	Code    string
	Name    string
}

// Entity is one enumeration axis: either all options of one standalone
// feature, or the merged options of the features covered by an exclusive
// set that applies to this product.
type Entity struct {
	// Grouped is true when the entity merges several mutually exclusive features.
	Grouped bool
	// Features lists the originating feature codes (one for standalone entities).
	Features []string
	// Options are the selectable options, in source order.
	Options []TaggedOption
}

// Combination is a selection of exactly one option per entity.
type Combination []TaggedOption

// OptionFor returns the chosen option code for a feature code, if the
// combination carries one.
func (c Combination) OptionFor(feature string) (string, bool) {
	for _, opt := range c {
		if opt.Feature == feature {
			return opt.Code, true
		}
	}
	return "", false
}
