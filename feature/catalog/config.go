package catalog

// Config holds configuration for the upstream catalog service.
type Config struct {
	// BaseURL is the root of the content API.
	BaseURL string `mapstructure:"base_url" default:"https://content.cylindo.com/api/v2"`
	// CustomerID identifies the customer whose products are exported.
	CustomerID string `mapstructure:"customer_id" default:"4928"`
	// TimeoutSeconds bounds each request to the catalog service.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"20"`
}
