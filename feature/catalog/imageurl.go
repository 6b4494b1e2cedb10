package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// Selection is one chosen option for one feature.
type Selection struct {
	Feature string
	Option  string
}

// ImageParams controls the generated image URL.
type ImageParams struct {
	Frame          int
	Size           int
	SkipSharpening bool
}

// BuildImageURL renders the image URL for one product combination.
//
// Each selection becomes one feature query parameter with the value
// "FEATURE:OPTION". Downstream consumers require the colon to stay
// unescaped while other reserved characters are percent-encoded.
func BuildImageURL(cfg Config, productCode string, params ImageParams, selections []Selection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s/%s/products/%s/frames/%d/%s.PNG",
		strings.TrimSuffix(cfg.BaseURL, "/"), cfg.CustomerID,
		url.PathEscape(productCode), params.Frame, url.PathEscape(productCode))

	fmt.Fprintf(&b, "?size=%d&encoding=png&removeEnvironmentShadow=true", params.Size)
	if params.SkipSharpening {
		b.WriteString("&skipSharpening=true")
	}

	for _, sel := range selections {
		b.WriteString("&feature=")
		b.WriteString(escapeColonSafe(sel.Feature + ":" + sel.Option))
	}

	return b.String()
}

// escapeColonSafe percent-encodes a query value but keeps ':' literal,
// mirroring quote(safe=':') semantics.
func escapeColonSafe(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	return strings.ReplaceAll(escaped, "%3A", ":")
}
