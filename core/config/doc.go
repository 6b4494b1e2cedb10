// Package config provides configuration management for the catalog exporter.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: run journal connection details (sqlite or MySQL)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Catalog: Cylindo content API endpoint and customer id
//   - Reference: reference dataset path and column mapping
//   - Export: frames, image size, exclusive sets and CSV output
//   - Match: identity matching strategy and fuzzy threshold
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Export.OutputFile)
package config
