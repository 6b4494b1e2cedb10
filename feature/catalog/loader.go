package catalog

// BuildFeatureSet normalizes a product configuration into the features that
// can participate in enumeration. Features without options are dropped since
// they cannot contribute a choice; feature and option order is preserved as
// given by the source.
//
// Disabled products are gated before this is called; a disabled product is a
// distinct short-circuit, not "zero features".
func BuildFeatureSet(cfg *Configuration) []Feature {
	if cfg == nil {
		return nil
	}
	out := make([]Feature, 0, len(cfg.Features))
	for _, f := range cfg.Features {
		if len(f.Options) == 0 {
			continue
		}
		out = append(out, f)
	}
	return out
}
